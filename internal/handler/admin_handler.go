package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"financeqa/internal/model"
	"financeqa/internal/repository"
	"financeqa/internal/service"
)

// AdminHandler handles the moderation dashboard endpoints.
type AdminHandler struct {
	postService    service.PostService
	commentService service.CommentService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(postService service.PostService, commentService service.CommentService) *AdminHandler {
	return &AdminHandler{postService: postService, commentService: commentService}
}

// StatusRequest carries a moderation decision.
type StatusRequest struct {
	Status model.PostStatus `json:"status"`
}

// StatusResponse wraps the moderated post.
type StatusResponse struct {
	Message string      `json:"message"`
	Post    *model.Post `json:"post"`
}

// PendingPosts godoc
// @Summary Moderation queue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/pending-posts [get]
func (h *AdminHandler) PendingPosts(c echo.Context) error {
	posts, err := h.postService.List(c.Request().Context(), identityFrom(c), repository.PostFilter{
		Status: model.PostStatusPending,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// UpdateStatus godoc
// @Summary Approve or reject a post
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body StatusRequest true "Decision"
// @Success 200 {object} StatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/posts/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(c echo.Context) error {
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}

	post, err := h.postService.SetStatus(c.Request().Context(), identityFrom(c), pathID(c, "id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, StatusResponse{
		Message: fmt.Sprintf("Post %s successfully", req.Status),
		Post:    post,
	})
}

// Stats godoc
// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PostStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.postService.Stats(c.Request().Context(), identityFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Sweep godoc
// @Summary Remove comments and reactions orphaned by deleted posts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SweepResult
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/sweep [post]
func (h *AdminHandler) Sweep(c echo.Context) error {
	result, err := h.commentService.SweepOrphans(c.Request().Context(), identityFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
