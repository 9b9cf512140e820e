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
	// ErrCommentNotFound is returned when a comment id does not resolve.
	ErrCommentNotFound = errors.New(errors.ErrNotFound, "comment not found")
	// ErrCommentTextRequired is returned for empty or whitespace-only comments.
	ErrCommentTextRequired = errors.New(errors.ErrValidation, "comment text is required")
)

// SweepResult reports the rows removed by an orphan sweep.
type SweepResult struct {
	Comments         int64 `json:"comments"`
	CommentReactions int64 `json:"commentReactions"`
	PostReactions    int64 `json:"postReactions"`
}

// CommentService handles comment creation, reactions and orphan cleanup.
type CommentService interface {
	Create(ctx context.Context, caller auth.Identity, postID uuid.UUID, text string) (*model.Comment, error)
	ToggleLike(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Comment, error)
	ToggleDislike(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Comment, error)
	SweepOrphans(ctx context.Context, caller auth.Identity) (*SweepResult, error)
}

type commentService struct {
	repo     repository.CommentRepository
	postRepo repository.PostRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(repo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{repo: repo, postRepo: postRepo}
}

// Create attaches a trimmed comment to an existing post.
func (s *commentService) Create(ctx context.Context, caller auth.Identity, postID uuid.UUID, text string) (*model.Comment, error) {
	if err := requireAuthenticated(caller); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentTextRequired
	}

	comment := &model.Comment{
		Text:   text,
		PostID: postID,
		UserID: caller.UserID,
	}
	if err := s.repo.CreateForPost(ctx, comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return s.find(ctx, comment.ID)
}

// ToggleLike likes the comment, or removes the caller's like if present.
func (s *commentService) ToggleLike(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Comment, error) {
	return s.toggle(ctx, caller, id, model.ReactionLike)
}

// ToggleDislike dislikes the comment, or removes the caller's dislike if present.
func (s *commentService) ToggleDislike(ctx context.Context, caller auth.Identity, id uuid.UUID) (*model.Comment, error) {
	return s.toggle(ctx, caller, id, model.ReactionDislike)
}

func (s *commentService) toggle(ctx context.Context, caller auth.Identity, id uuid.UUID, requested model.ReactionKind) (*model.Comment, error) {
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
	return s.find(ctx, id)
}

// SweepOrphans removes comments and reactions left behind by deleted posts.
func (s *commentService) SweepOrphans(ctx context.Context, caller auth.Identity) (*SweepResult, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	counts, err := s.repo.DeleteOrphans(ctx)
	if err != nil {
		return nil, fmt.Errorf("sweep comments: %w", err)
	}
	postReactions, err := s.postRepo.DeleteOrphanReactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("sweep post reactions: %w", err)
	}

	return &SweepResult{
		Comments:         counts.Comments,
		CommentReactions: counts.Reactions,
		PostReactions:    postReactions,
	}, nil
}

func (s *commentService) find(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}
