package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"votehub/internal/auth"
	"votehub/internal/config"
	apperrors "votehub/internal/errors"
	"votehub/internal/handler"
	"votehub/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	pollHandler *handler.PollHandler,
	voteHandler *handler.VoteHandler,
	mediaHandler *handler.MediaHandler,
	userHandler *handler.UserHandler,
	notificationHandler *handler.NotificationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", userHandler.Me)
	secured.GET("/me/notifications", notificationHandler.GetPreferences)
	secured.PUT("/me/notifications", notificationHandler.UpdatePreferences)

	// Poll routes
	secured.GET("/polls", pollHandler.ListPolls)
	secured.GET("/polls/slug/:slug", pollHandler.GetPollBySlug)
	secured.GET("/polls/:id", pollHandler.GetPoll)
	secured.GET("/polls/:id/results", pollHandler.GetResults)
	secured.POST("/polls/:id/vote", voteHandler.SubmitVote)

	// Admin routes (require the admin role on top of a valid token)
	admin := secured.Group("", requireAdmin)
	admin.POST("/polls/create", pollHandler.CreatePoll)
	admin.POST("/polls/upload", mediaHandler.Upload)
	admin.PATCH("/polls/:id", pollHandler.UpdatePoll)
	admin.PATCH("/polls/:id/status", pollHandler.UpdateStatus)
	admin.GET("/users", userHandler.ListUsers)
	admin.POST("/users", userHandler.CreateUser)
	admin.PATCH("/users/:id", userHandler.UpdateUser)
}

// requireAdmin rejects callers whose token does not carry the admin role.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := handler.CurrentClaims(c)
		if err != nil {
			httpErr := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		if claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: apperrors.ErrForbidden.Error(),
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
