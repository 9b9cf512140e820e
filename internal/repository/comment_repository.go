package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"financeqa/internal/model"
)

// OrphanCounts reports how many rows a comment sweep removed.
type OrphanCounts struct {
	Comments  int64 `json:"comments"`
	Reactions int64 `json:"commentReactions"`
}

// CommentRepository defines comment and comment reaction persistence operations.
type CommentRepository interface {
	CreateForPost(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	FindReaction(ctx context.Context, commentID, userID uuid.UUID) (model.ReactionKind, error)
	SetReaction(ctx context.Context, commentID, userID uuid.UUID, kind model.ReactionKind) error
	DeleteOrphans(ctx context.Context) (OrphanCounts, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// CreateForPost inserts the comment and links it to its parent post in one
// transaction. The parent row is locked so a concurrent delete can't slip in
// between. Returns gorm.ErrRecordNotFound when the post doesn't exist.
func (r *commentRepository) CreateForPost(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", comment.PostID).
			Take(&post).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", post.ID).
			Update("updated_at", time.Now()).Error
	})
}

// FindByID finds a comment with its author and reactions resolved.
func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Reactions", oldestFirst).
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	comment.DeriveReactions()
	return &comment, nil
}

// FindReaction returns the reaction userID holds on the comment, if any.
func (r *commentRepository) FindReaction(ctx context.Context, commentID, userID uuid.UUID) (model.ReactionKind, error) {
	var reaction model.CommentReaction
	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Take(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ReactionNone, nil
	}
	if err != nil {
		return model.ReactionNone, err
	}
	return reaction.Kind, nil
}

// SetReaction stores kind as the user's reaction; ReactionNone removes it.
func (r *commentRepository) SetReaction(ctx context.Context, commentID, userID uuid.UUID, kind model.ReactionKind) error {
	if kind == model.ReactionNone {
		return r.db.WithContext(ctx).
			Where("comment_id = ? AND user_id = ?", commentID, userID).
			Delete(&model.CommentReaction{}).Error
	}
	reaction := model.CommentReaction{CommentID: commentID, UserID: userID, Kind: kind}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "updated_at"}),
	}).Create(&reaction).Error
}

// DeleteOrphans removes comments whose post is gone, then reactions whose
// comment is gone.
func (r *commentRepository) DeleteOrphans(ctx context.Context) (OrphanCounts, error) {
	var counts OrphanCounts
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id NOT IN (?)", tx.Model(&model.Post{}).Select("id")).
			Delete(&model.Comment{})
		if res.Error != nil {
			return res.Error
		}
		counts.Comments = res.RowsAffected

		res = tx.Where("comment_id NOT IN (?)", tx.Model(&model.Comment{}).Select("id")).
			Delete(&model.CommentReaction{})
		if res.Error != nil {
			return res.Error
		}
		counts.Reactions = res.RowsAffected
		return nil
	})
	return counts, err
}
