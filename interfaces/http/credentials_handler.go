package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-publisher/domain/dto"
	"social-publisher/domain/model"
	"social-publisher/infrastructure/cache"
	"social-publisher/infrastructure/clients/linkedin"
	"social-publisher/infrastructure/configuration"
	"social-publisher/infrastructure/logger"
	"social-publisher/usecase"
)

type ICredentialsHandler interface {
	Get(c *gin.Context)
	SaveLinkedIn(c *gin.Context)
	SaveTwitter(c *gin.Context)
	Disable(c *gin.Context)
	LinkedInAuthURL(c *gin.Context)
}

type CredentialsHandler struct {
	credentialsUsecase usecase.ICredentialsUsecase
	states             *cache.StateStore
}

func NewCredentialsHandler(credentialsUsecase usecase.ICredentialsUsecase, states *cache.StateStore) ICredentialsHandler {
	return &CredentialsHandler{credentialsUsecase: credentialsUsecase, states: states}
}

// Get returns the redacted credentials view: enabled/connected flags and
// profile metadata only, never secrets.
func (h *CredentialsHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	creds, err := h.credentialsUsecase.Get(c.Request.Context(), userID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error fetching user credentials")
		c.JSON(http.StatusInternalServerError, dto.Fail("Error fetching credentials"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "credentials": creds})
}

func (h *CredentialsHandler) SaveLinkedIn(c *gin.Context) {
	userID := c.GetString("user_id")

	var req model.ReqLinkedInCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.FailWithError(ErrorUnmarshal, err))
		return
	}

	if err := h.credentialsUsecase.SaveLinkedIn(c.Request.Context(), userID, req); err != nil {
		if errors.Is(err, usecase.ErrLinkedInClientIDRequired) {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}
		logger.GetLogger().WithField("error", err).Error("Error saving LinkedIn credentials")
		c.JSON(http.StatusInternalServerError, dto.Fail("Error saving LinkedIn credentials"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "LinkedIn credentials saved successfully",
		"platform": "linkedin",
	})
}

func (h *CredentialsHandler) SaveTwitter(c *gin.Context) {
	userID := c.GetString("user_id")

	var req model.ReqTwitterCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.FailWithError(ErrorUnmarshal, err))
		return
	}

	if err := h.credentialsUsecase.SaveTwitter(c.Request.Context(), userID, req); err != nil {
		if errors.Is(err, usecase.ErrTwitterFieldsRequired) {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}
		logger.GetLogger().WithField("error", err).Error("Error saving Twitter credentials")
		c.JSON(http.StatusInternalServerError, dto.Fail("Error saving Twitter credentials"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Twitter credentials saved successfully",
		"platform": "twitter",
	})
}

func (h *CredentialsHandler) Disable(c *gin.Context) {
	userID := c.GetString("user_id")
	platform := model.Platform(c.Param("platform"))

	if err := h.credentialsUsecase.Disable(c.Request.Context(), userID, platform); err != nil {
		if errors.Is(err, usecase.ErrInvalidPlatform) {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}
		logger.GetLogger().WithField("error", err).Error("Error disabling platform")
		c.JSON(http.StatusInternalServerError, dto.Fail("Error disabling platform"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": string(platform) + " disabled successfully",
	})
}

// LinkedInAuthURL builds a consent URL from the user's own stored LinkedIn
// client id, for accounts connected through their own LinkedIn app.
func (h *CredentialsHandler) LinkedInAuthURL(c *gin.Context) {
	userID := c.GetString("user_id")

	stored, err := h.credentialsUsecase.GetStored(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail("Error fetching credentials"))
		return
	}
	if stored == nil || stored.Platforms.LinkedIn.ClientID == "" {
		c.JSON(http.StatusBadRequest, dto.Fail("LinkedIn Client ID is required"))
		return
	}

	state := h.states.Issue(c.Request.Context())
	authURL, err := linkedin.AuthorizationURLFor(
		stored.Platforms.LinkedIn.ClientID,
		configuration.C.OAuth.LinkedIn.RedirectURI,
		state,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.FailWithError("Failed to generate LinkedIn authorization URL", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "authUrl": authURL, "state": state})
}
