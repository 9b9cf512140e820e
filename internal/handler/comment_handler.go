package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"financeqa/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a reply to a post.
type CreateCommentRequest struct {
	PostID string `json:"postId"`
	Text   string `json:"text"`
}

// Create godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCommentRequest true "Comment"
// @Success 201 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}

	// A malformed post id is left as uuid.Nil so the text is still
	// validated first; the lookup then fails as not found.
	postID, _ := uuid.Parse(req.PostID)

	comment, err := h.commentService.Create(c.Request().Context(), identityFrom(c), postID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// Like godoc
// @Summary Like or unlike a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} model.Comment
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id}/like [post]
func (h *CommentHandler) Like(c echo.Context) error {
	comment, err := h.commentService.ToggleLike(c.Request().Context(), identityFrom(c), pathID(c, "id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

// Dislike godoc
// @Summary Dislike or un-dislike a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} model.Comment
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id}/dislike [post]
func (h *CommentHandler) Dislike(c echo.Context) error {
	comment, err := h.commentService.ToggleDislike(c.Request().Context(), identityFrom(c), pathID(c, "id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}
