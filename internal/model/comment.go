package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a reply attached to exactly one post.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	PostID    uuid.UUID `json:"post" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User      Author            `json:"user" gorm:"foreignKey:UserID"`
	Reactions []CommentReaction `json:"-" gorm:"foreignKey:CommentID"`

	Likes    []uuid.UUID `json:"likes" gorm:"-"`
	Dislikes []uuid.UUID `json:"dislikes" gorm:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// DeriveReactions fills Likes and Dislikes from the reaction rows.
func (c *Comment) DeriveReactions() {
	c.Likes, c.Dislikes = splitReactions(c.Reactions)
}
