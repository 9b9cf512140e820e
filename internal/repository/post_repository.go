package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"financeqa/internal/model"
)

// PostFilter selects posts for listing. Zero fields don't filter.
type PostFilter struct {
	Status  model.PostStatus
	OwnerID uuid.UUID
	// Tag matches as a case-insensitive substring.
	Tag string
}

// PostRepository defines post and post reaction persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindExpanded(ctx context.Context, id uuid.UUID) (*model.Post, error)
	List(ctx context.Context, filter PostFilter) ([]model.Post, error)
	UpdateContent(ctx context.Context, id uuid.UUID, question, tag string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.PostStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindReaction(ctx context.Context, postID, userID uuid.UUID) (model.ReactionKind, error)
	SetReaction(ctx context.Context, postID, userID uuid.UUID, kind model.ReactionKind) error
	Stats(ctx context.Context) (*model.PostStats, error)
	DeleteOrphanReactions(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// expandPost preloads the owner, the comments with their authors, and the
// reaction rows of both.
func expandPost(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Reactions", oldestFirst).
		Preload("Comments", oldestFirst).
		Preload("Comments.User").
		Preload("Comments.Reactions", oldestFirst)
}

func oldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// Create creates a new post.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// FindByID finds a post by ID without expanding references.
func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindExpanded finds a post by ID with owner, comments and reactions resolved.
func (r *postRepository) FindExpanded(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := expandPost(r.db.WithContext(ctx)).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	post.DeriveReactions()
	return &post, nil
}

// List returns expanded posts matching filter, newest first.
func (r *postRepository) List(ctx context.Context, filter PostFilter) ([]model.Post, error) {
	query := expandPost(r.db.WithContext(ctx))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OwnerID != uuid.Nil {
		query = query.Where("user_id = ?", filter.OwnerID)
	}
	if filter.Tag != "" {
		query = query.Where("LOWER(tag) LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(filter.Tag))+"%")
	}

	posts := []model.Post{}
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].DeriveReactions()
	}
	return posts, nil
}

// UpdateContent overwrites question and tag, including with empty values.
func (r *postRepository) UpdateContent(ctx context.Context, id uuid.UUID, question, tag string) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"question": question, "tag": tag}).Error
}

// UpdateStatus sets the moderation status of a post.
func (r *postRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.PostStatus) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete removes the post row only. Comments and reactions stay behind.
func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}

// FindReaction returns the reaction userID holds on the post, if any.
func (r *postRepository) FindReaction(ctx context.Context, postID, userID uuid.UUID) (model.ReactionKind, error) {
	var reaction model.PostReaction
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
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
func (r *postRepository) SetReaction(ctx context.Context, postID, userID uuid.UUID, kind model.ReactionKind) error {
	if kind == model.ReactionNone {
		return r.db.WithContext(ctx).
			Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&model.PostReaction{}).Error
	}
	reaction := model.PostReaction{PostID: postID, UserID: userID, Kind: kind}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "updated_at"}),
	}).Create(&reaction).Error
}

// Stats counts posts per status and per lowercased tag.
func (r *postRepository) Stats(ctx context.Context) (*model.PostStats, error) {
	var byStatus []struct {
		Status model.PostStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Post{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}

	stats := &model.PostStats{TagDistribution: []model.TagCount{}}
	for _, row := range byStatus {
		stats.TotalPosts += row.Count
		switch row.Status {
		case model.PostStatusPending:
			stats.PendingPosts = row.Count
		case model.PostStatusApproved:
			stats.ApprovedPosts = row.Count
		case model.PostStatusRejected:
			stats.RejectedPosts = row.Count
		}
	}

	if err := r.db.WithContext(ctx).Model(&model.Post{}).
		Select("LOWER(tag) AS tag, COUNT(*) AS count").
		Group("LOWER(tag)").
		Order("count DESC, tag ASC").
		Scan(&stats.TagDistribution).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// DeleteOrphanReactions removes reactions whose post no longer exists.
func (r *postRepository) DeleteOrphanReactions(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)
	res := db.Where("post_id NOT IN (?)", db.Model(&model.Post{}).Select("id")).
		Delete(&model.PostReaction{})
	return res.RowsAffected, res.Error
}

// escapeLike escapes LIKE wildcards using '!' as the escape character.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
