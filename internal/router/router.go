package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"financeqa/internal/auth"
	"financeqa/internal/config"
	"financeqa/internal/handler"
	"financeqa/internal/model"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Post    *handler.PostHandler
	Comment *handler.CommentHandler
	Admin   *handler.AdminHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	h Handlers,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(JWTConfig(jwtService)), RejectRevoked(tokenStore))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/me", h.User.Me)

	// Post routes
	secured.GET("/posts/approved", h.Post.ListApproved)
	secured.GET("/posts/approved/:userId", h.Post.ListApprovedByUser)
	secured.GET("/posts/pending", h.Post.ListPending)
	secured.GET("/posts/pending/:userId", h.Post.ListPendingByUser)
	secured.POST("/posts", h.Post.Create)
	secured.PUT("/posts/:id", h.Post.Update)
	secured.DELETE("/posts/:id", h.Post.Delete)
	secured.POST("/posts/:id/like", h.Post.Like)
	secured.POST("/posts/:id/dislike", h.Post.Dislike)
	secured.POST("/posts/:id/approve", h.Post.Approve)
	secured.POST("/posts/:id/reject", h.Post.Reject)

	// Comment routes
	secured.POST("/comments", h.Comment.Create)
	secured.POST("/comments/:id/like", h.Comment.Like)
	secured.POST("/comments/:id/dislike", h.Comment.Dislike)

	// Admin routes
	admin := secured.Group("/admin", RequireRole(model.RoleAdmin))
	admin.GET("/pending-posts", h.Admin.PendingPosts)
	admin.PATCH("/posts/:id/status", h.Admin.UpdateStatus)
	admin.GET("/stats", h.Admin.Stats)
	admin.POST("/sweep", h.Admin.Sweep)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
