package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStatus represents the moderation status of a post.
type PostStatus string

const (
	PostStatusPending  PostStatus = "pending"
	PostStatusApproved PostStatus = "approved"
	PostStatusRejected PostStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusPending, PostStatusApproved, PostStatusRejected:
		return true
	}
	return false
}

// IsDecision reports whether s is a status an admin may set.
func (s PostStatus) IsDecision() bool {
	return s == PostStatusApproved || s == PostStatusRejected
}

// Post is a question submitted by a user and moderated by admins.
type Post struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Question  string     `json:"question" gorm:"type:text;not null"`
	Tag       string     `json:"tag" gorm:"size:255;not null;index"`
	Status    PostStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	UserID    uuid.UUID  `json:"-" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	User      Author         `json:"user" gorm:"foreignKey:UserID"`
	Comments  []Comment      `json:"comments" gorm:"foreignKey:PostID"`
	Reactions []PostReaction `json:"-" gorm:"foreignKey:PostID"`

	// Derived from Reactions by DeriveReactions.
	Likes    []uuid.UUID `json:"likes" gorm:"-"`
	Dislikes []uuid.UUID `json:"dislikes" gorm:"-"`
}

// BeforeCreate sets UUID and initial status before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PostStatusPending
	}
	return nil
}

// OwnedBy reports whether userID owns the post.
func (p *Post) OwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}

// DeriveReactions fills Likes and Dislikes of the post and of each loaded
// comment from their reaction rows.
func (p *Post) DeriveReactions() {
	p.Likes, p.Dislikes = splitReactions(p.Reactions)
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	for i := range p.Comments {
		p.Comments[i].DeriveReactions()
	}
}

// TagCount is one row of the tag distribution. The tag is emitted as _id,
// the group key the admin dashboard reads.
type TagCount struct {
	Tag   string `json:"_id" gorm:"column:tag"`
	Count int64  `json:"count"`
}

// PostStats summarises posts for the admin dashboard.
type PostStats struct {
	TotalPosts      int64      `json:"totalPosts"`
	PendingPosts    int64      `json:"pendingPosts"`
	ApprovedPosts   int64      `json:"approvedPosts"`
	RejectedPosts   int64      `json:"rejectedPosts"`
	TagDistribution []TagCount `json:"tagDistribution"`
}
