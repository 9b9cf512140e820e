package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"financeqa/internal/model"
	"financeqa/internal/repository"
	"financeqa/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a new question.
type CreatePostRequest struct {
	Question string `json:"question"`
	Tag      string `json:"tag"`
}

// UpdatePostRequest represents an edit of the caller's own question.
type UpdatePostRequest struct {
	Question string `json:"question"`
	Tag      string `json:"tag"`
}

// ListApproved godoc
// @Summary List approved posts
// @Description Public feed, newest first. The tag filter is a case-insensitive substring match.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param tag query string false "Tag search"
// @Success 200 {array} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts/approved [get]
func (h *PostHandler) ListApproved(c echo.Context) error {
	return h.list(c, repository.PostFilter{
		Status: model.PostStatusApproved,
		Tag:    c.QueryParam("tag"),
	})
}

// ListApprovedByUser godoc
// @Summary List a user's approved posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts/approved/{userId} [get]
func (h *PostHandler) ListApprovedByUser(c echo.Context) error {
	return h.listOwned(c, model.PostStatusApproved)
}

// ListPendingByUser godoc
// @Summary List a user's pending posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts/pending/{userId} [get]
func (h *PostHandler) ListPendingByUser(c echo.Context) error {
	return h.listOwned(c, model.PostStatusPending)
}

// ListPending godoc
// @Summary List the moderation queue
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /posts/pending [get]
func (h *PostHandler) ListPending(c echo.Context) error {
	return h.list(c, repository.PostFilter{Status: model.PostStatusPending})
}

func (h *PostHandler) listOwned(c echo.Context, status model.PostStatus) error {
	owner := pathID(c, "userId")
	if owner == uuid.Nil {
		// an unparseable owner matches nobody
		return c.JSON(http.StatusOK, []model.Post{})
	}
	return h.list(c, repository.PostFilter{Status: status, OwnerID: owner})
}

func (h *PostHandler) list(c echo.Context, filter repository.PostFilter) error {
	posts, err := h.postService.List(c.Request().Context(), identityFrom(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// Create godoc
// @Summary Submit a question
// @Description New posts start pending until an admin approves them.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Question"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}

	post, err := h.postService.Create(c.Request().Context(), identityFrom(c), req.Question, req.Tag)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

// Update godoc
// @Summary Edit own post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body UpdatePostRequest true "New content"
// @Success 200 {object} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}

	post, err := h.postService.Edit(c.Request().Context(), identityFrom(c), pathID(c, "id"), req.Question, req.Tag)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete own post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.postService.Delete(c.Request().Context(), identityFrom(c), pathID(c, "id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Post deleted successfully"})
}

// Like godoc
// @Summary Like or unlike a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id}/like [post]
func (h *PostHandler) Like(c echo.Context) error {
	post, err := h.postService.ToggleLike(c.Request().Context(), identityFrom(c), pathID(c, "id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// Dislike godoc
// @Summary Dislike or un-dislike a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id}/dislike [post]
func (h *PostHandler) Dislike(c echo.Context) error {
	post, err := h.postService.ToggleDislike(c.Request().Context(), identityFrom(c), pathID(c, "id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// Approve godoc
// @Summary Approve a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id}/approve [post]
func (h *PostHandler) Approve(c echo.Context) error {
	return h.setStatus(c, model.PostStatusApproved)
}

// Reject godoc
// @Summary Reject a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id}/reject [post]
func (h *PostHandler) Reject(c echo.Context) error {
	return h.setStatus(c, model.PostStatusRejected)
}

func (h *PostHandler) setStatus(c echo.Context, status model.PostStatus) error {
	post, err := h.postService.SetStatus(c.Request().Context(), identityFrom(c), pathID(c, "id"), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}
