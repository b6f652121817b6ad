package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/pkg/auth"
	"github.com/devlinkhq/devlink/pkg/logger"
)

type RouterDeps struct {
	AuthHandler    *AuthHandler
	ProfileHandler *ProfileHandler
	GithubHandler  *GithubHandler
	JWTService     *auth.JWTService
	Logger         logger.Logger
}

// NewRouter wires the full API surface; shared between cmd/server and the
// e2e suite.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(deps.Logger))

	authRequired := AuthMiddleware(deps.JWTService)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "UP"})
		})

		api.POST("/users", deps.AuthHandler.Register)
		api.POST("/auth/login", deps.AuthHandler.Login)

		api.GET("/profile", deps.ProfileHandler.List)
		api.GET("/profile/user/:user_id", deps.ProfileHandler.GetByUser)
		api.GET("/profile/github/:username", deps.GithubHandler.GetRepos)

		api.GET("/profile/me", authRequired, deps.ProfileHandler.GetMe)
		api.POST("/profile", authRequired, deps.ProfileHandler.Upsert)
		api.DELETE("/profile", authRequired, deps.ProfileHandler.DeleteAccount)

		api.PUT("/profile/experience", authRequired, deps.ProfileHandler.AddExperience)
		api.DELETE("/profile/experience/:exp_id", authRequired, deps.ProfileHandler.RemoveExperience)
		api.PUT("/profile/education", authRequired, deps.ProfileHandler.AddEducation)
		api.DELETE("/profile/education/:edu_id", authRequired, deps.ProfileHandler.RemoveEducation)
	}

	return router
}
