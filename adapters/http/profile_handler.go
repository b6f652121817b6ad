package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/devlinkhq/devlink/internal/application/usecase/profile"
	"github.com/devlinkhq/devlink/internal/domain/profile"
	"github.com/devlinkhq/devlink/pkg/apperror"
	"github.com/devlinkhq/devlink/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("ownerID not found in context", nil))
		return
	}

	p, err := h.profileUseCase.GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.Error(apperror.NewNotFoundMsg("There is no profile for this user", ownerID.String()))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) Upsert(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("ownerID not found in context", nil))
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile upsert", err))
		return
	}

	input := profileUC.UpsertProfileInput{
		OwnerID:        ownerID,
		Status:         req.Status,
		Skills:         req.Skills,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	}
	p, err := h.profileUseCase.Upsert(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileUseCase.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTOs(profiles))
}

func (h *ProfileHandler) GetByUser(c *gin.Context) {
	// a malformed id is a client mistake, not a fault: same 404 as a
	// missing profile
	ownerID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.Error(apperror.NewNotFoundMsg("Profile not found", c.Param("user_id")))
		return
	}

	p, err := h.profileUseCase.GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			c.Error(apperror.NewNotFoundMsg("Profile not found", ownerID.String()))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("ownerID not found in context", nil))
		return
	}

	if err := h.profileUseCase.DeleteAccount(c.Request.Context(), ownerID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("ownerID not found in context", nil))
		return
	}

	var req ExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for experience", err))
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid from date", err))
		return
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid to date", err))
		return
	}

	input := profileUC.ExperienceInput{
		OwnerID:     ownerID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	}
	p, err := h.profileUseCase.AddExperience(c.Request.Context(), input)
	if err != nil {
		c.Error(h.mapMutationError(err, ownerID))
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("ownerID not found in context", nil))
		return
	}

	entryID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		c.Error(apperror.NewAppError(apperror.ErrInvalidInput, "Experience id invalid", c.Param("exp_id"), err))
		return
	}

	p, err := h.profileUseCase.RemoveExperience(c.Request.Context(), ownerID, entryID)
	if err != nil {
		if errors.Is(err, profile.ErrEntryNotFound) {
			c.Error(apperror.NewAppError(apperror.ErrInvalidInput, "Experience id invalid", entryID.String(), nil))
			return
		}
		c.Error(h.mapMutationError(err, ownerID))
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("ownerID not found in context", nil))
		return
	}

	var req EducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for education", err))
		return
	}

	from, err := parseDate(req.From)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid from date", err))
		return
	}
	to, err := parseOptionalDate(req.To)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid to date", err))
		return
	}

	input := profileUC.EducationInput{
		OwnerID:      ownerID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	}
	p, err := h.profileUseCase.AddEducation(c.Request.Context(), input)
	if err != nil {
		c.Error(h.mapMutationError(err, ownerID))
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("ownerID not found in context", nil))
		return
	}

	entryID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		c.Error(apperror.NewAppError(apperror.ErrInvalidInput, "Education id invalid", c.Param("edu_id"), err))
		return
	}

	p, err := h.profileUseCase.RemoveEducation(c.Request.Context(), ownerID, entryID)
	if err != nil {
		if errors.Is(err, profile.ErrEntryNotFound) {
			c.Error(apperror.NewAppError(apperror.ErrInvalidInput, "Education id invalid", entryID.String(), nil))
			return
		}
		c.Error(h.mapMutationError(err, ownerID))
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(p))
}

// mapMutationError translates a missing profile on sub-list mutations; a
// user must create a profile before adding entries to it.
func (h *ProfileHandler) mapMutationError(err error, ownerID uuid.UUID) error {
	if errors.Is(err, profile.ErrProfileNotFound) {
		return apperror.NewNotFoundMsg("There is no profile for this user", ownerID.String())
	}
	return err
}
