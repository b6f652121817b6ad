package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/internal/application/service"
	githubUC "github.com/devlinkhq/devlink/internal/application/usecase/github"
	"github.com/devlinkhq/devlink/pkg/apperror"
)

type GithubHandler struct {
	lookupUseCase *githubUC.LookupUseCase
}

func NewGithubHandler(uc *githubUC.LookupUseCase) *GithubHandler {
	return &GithubHandler{lookupUseCase: uc}
}

func (h *GithubHandler) GetRepos(c *gin.Context) {
	username := c.Param("username")

	repos, err := h.lookupUseCase.Execute(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrNoGithubProfile) {
			c.Error(apperror.NewNotFoundMsg("No Github profile found", username))
			return
		}
		c.Error(apperror.NewUpstream("github repo lookup failed", err))
		return
	}

	c.JSON(http.StatusOK, repos)
}
