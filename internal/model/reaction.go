package model

import (
	"time"

	"github.com/google/uuid"
)

// ReactionKind is the reaction a user holds on a post or comment.
// The zero value means no reaction.
type ReactionKind string

const (
	ReactionNone    ReactionKind = ""
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Toggle returns the reaction held after requesting r while holding k.
// Requesting the held reaction clears it; requesting the other one replaces
// it, so a user never likes and dislikes the same subject.
func (k ReactionKind) Toggle(r ReactionKind) ReactionKind {
	if k == r {
		return ReactionNone
	}
	return r
}

// PostReaction is a user's like or dislike on a post. The composite primary
// key allows one reaction per user and post.
type PostReaction struct {
	PostID    uuid.UUID    `json:"post_id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID    `json:"user_id" gorm:"type:char(36);primaryKey;index"`
	Kind      ReactionKind `json:"kind" gorm:"type:varchar(10);not null"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// CommentReaction is a user's like or dislike on a comment.
type CommentReaction struct {
	CommentID uuid.UUID    `json:"comment_id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID    `json:"user_id" gorm:"type:char(36);primaryKey;index"`
	Kind      ReactionKind `json:"kind" gorm:"type:varchar(10);not null"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (r PostReaction) reactor() (uuid.UUID, ReactionKind)    { return r.UserID, r.Kind }
func (r CommentReaction) reactor() (uuid.UUID, ReactionKind) { return r.UserID, r.Kind }

type reaction interface {
	PostReaction | CommentReaction
	reactor() (uuid.UUID, ReactionKind)
}

func splitReactions[R reaction](rows []R) (likes, dislikes []uuid.UUID) {
	likes, dislikes = []uuid.UUID{}, []uuid.UUID{}
	for _, row := range rows {
		userID, kind := row.reactor()
		switch kind {
		case ReactionLike:
			likes = append(likes, userID)
		case ReactionDislike:
			dislikes = append(dislikes, userID)
		}
	}
	return likes, dislikes
}
