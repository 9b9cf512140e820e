package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"financeqa/internal/auth"
	"financeqa/internal/errors"
	"financeqa/internal/model"
	"financeqa/internal/repository"
)

var (
	// ErrPostNotFound is returned when a post id does not resolve.
	ErrPostNotFound = errors.New(errors.ErrNotFound, "post not found")
	// ErrPostNotOwned masks both a missing post and one owned by someone else.
	ErrPostNotOwned = errors.New(errors.ErrNotFound, "post not found or unauthorized")
	// ErrQuestionRequired is returned when a post is created without question or tag.
	ErrQuestionRequired = errors.New(errors.ErrValidation, "question and tag are required")
	// ErrInvalidStatus is returned when a moderation decision is neither approved nor rejected.
	ErrInvalidStatus = errors.New(errors.ErrValidation, `invalid status. Must be either "approved" or "rejected"`)
	// ErrInvalidFilter is returned when a listing names an unknown status.
	ErrInvalidFilter = errors.New(errors.ErrValidation, "invalid post status filter")
)

// PostService handles post lifecycle, moderation and reactions.
type PostService interface {
	Create(ctx context.Context, caller auth.Identity, question, tag string) (*model.Post, error)
	List(ctx context.Context, caller auth.Identity, filter repository.PostFilter) ([]model.Post, error)
	SetStatus(ctx context.Context, caller auth.Identity, id uuid.UUID, status model.PostStatus) (*model.Post, error)
	Edit(ctx context.Context, caller auth.Identity, id uuid.UUID, question, tag string) (*model.Post, error)
	Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error
	ToggleLike(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Post, error)
	ToggleDislike(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Post, error)
	Stats(ctx context.Context, caller auth.Identity) (*model.PostStats, error)
}

type postService struct {
	repo repository.PostRepository
}

// NewPostService creates a new post service.
func NewPostService(repo repository.PostRepository) PostService {
	return &postService{repo: repo}
}

// Create stores a new pending post owned by the caller.
func (s *postService) Create(ctx context.Context, caller auth.Identity, question, tag string) (*model.Post, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(question) == "" || strings.TrimSpace(tag) == "" {
		return nil, ErrQuestionRequired
	}

	post := &model.Post{
		Question: question,
		Tag:      tag,
		Status:   model.PostStatusPending,
		UserID:   caller.UserID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.expanded(ctx, post.ID)
}

// List returns posts newest first. Listing a status across all owners is
// reserved to admins, except for the approved feed.
func (s *postService) List(ctx context.Context, caller auth.Identity, filter repository.PostFilter) ([]model.Post, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}
	if !filter.Status.Valid() {
		return nil, ErrInvalidFilter
	}
	if filter.OwnerID == uuid.Nil && filter.Status != model.PostStatusApproved {
		if err := requireAdmin(caller); err != nil {
			return nil, err
		}
	}

	posts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// SetStatus records an admin's moderation decision. Any status may follow
// any other; only re-setting the current status is refused.
func (s *postService) SetStatus(ctx context.Context, caller auth.Identity, id uuid.UUID, status model.PostStatus) (*model.Post, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if !status.IsDecision() {
		return nil, ErrInvalidStatus
	}

	post, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Status == status {
		return nil, errors.Newf(errors.ErrConflict, "post is already %s", status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update post status: %w", err)
	}
	return s.expanded(ctx, id)
}

// Edit overwrites question and tag of the caller's own post. The values are
// stored as given, without the non-empty check Create applies.
func (s *postService) Edit(ctx context.Context, caller auth.Identity, id uuid.UUID, question, tag string) (*model.Post, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}
	if _, err := s.findOwned(ctx, caller, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateContent(ctx, id, question, tag); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return s.expanded(ctx, id)
}

// Delete removes the caller's own post. The admin role grants nothing here.
func (s *postService) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if err := requireAuthenticated(caller); err != nil {
		return err
	}
	if _, err := s.findOwned(ctx, caller, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// ToggleLike likes the post, or removes the caller's like if present.
func (s *postService) ToggleLike(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Post, error) {
	return s.toggle(ctx, caller, id, model.ReactionLike)
}

// ToggleDislike dislikes the post, or removes the caller's dislike if present.
func (s *postService) ToggleDislike(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Post, error) {
	return s.toggle(ctx, caller, id, model.ReactionDislike)
}

// toggle is a read-then-write of the caller's reaction row. Two concurrent
// toggles by the same user may both read the old value; the last write wins.
func (s *postService) toggle(ctx context.Context, caller auth.Identity, id uuid.UUID, requested model.ReactionKind) (*model.Post, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	current, err := s.repo.FindReaction(ctx, id, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("find reaction: %w", err)
	}
	if err := s.repo.SetReaction(ctx, id, caller.UserID, current.Toggle(requested)); err != nil {
		return nil, fmt.Errorf("set reaction: %w", err)
	}
	return s.expanded(ctx, id)
}

// Stats summarises posts for the admin dashboard.
func (s *postService) Stats(ctx context.Context, caller auth.Identity) (*model.PostStats, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("post stats: %w", err)
	}
	return stats, nil
}

func (s *postService) find(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

func (s *postService) findOwned(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Post, error) {
	post, err := s.find(ctx, id)
	if errors.Is(err, errors.ErrNotFound) || (err == nil && !post.OwnedBy(caller.UserID)) {
		return nil, ErrPostNotOwned
	}
	return post, err
}

func (s *postService) expanded(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.repo.FindExpanded(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	return post, nil
}
