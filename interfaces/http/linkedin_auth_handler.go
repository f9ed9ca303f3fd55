package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"social-publisher/domain/dto"
	"social-publisher/domain/model"
	"social-publisher/domain/repository"
	"social-publisher/infrastructure/cache"
	"social-publisher/infrastructure/configuration"
	"social-publisher/infrastructure/logger"
	"social-publisher/infrastructure/utils"
)

type ILinkedInAuthHandler interface {
	Login(c *gin.Context)
	Callback(c *gin.Context)
	TokenStatus(c *gin.Context)
	Tokens(c *gin.Context)
}

// LinkedInAuthHandler drives the app-level OAuth flow: redirect to consent,
// exchange the callback code, link the result to a user account and hand
// back a bearer token.
type LinkedInAuthHandler struct {
	auth      repository.ILinkedInAuth
	userRepo  repository.IUser
	states    *cache.StateStore
	secretKey string
}

func NewLinkedInAuthHandler(auth repository.ILinkedInAuth, userRepo repository.IUser, states *cache.StateStore, secretKey string) ILinkedInAuthHandler {
	return &LinkedInAuthHandler{auth: auth, userRepo: userRepo, states: states, secretKey: secretKey}
}

func (h *LinkedInAuthHandler) Login(c *gin.Context) {
	state := h.states.Issue(c.Request.Context())
	url, err := h.auth.AuthorizationURL(state)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error generating auth URL")
		c.JSON(http.StatusInternalServerError, dto.FailWithError("Failed to generate LinkedIn authorization URL", err))
		return
	}
	c.Redirect(http.StatusFound, url)
}

func (h *LinkedInAuthHandler) Callback(c *gin.Context) {
	// OAuth errors come back as query params and are surfaced verbatim.
	if errParam := c.Query("error"); errParam != "" {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":       errParam,
			"description": c.Query("error_description"),
		}).Error("LinkedIn OAuth error")
		c.JSON(http.StatusBadRequest, gin.H{
			"success":     false,
			"error":       errParam,
			"description": c.Query("error_description"),
			"message":     "LinkedIn authentication failed",
		})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, dto.Fail("Authorization code is missing"))
		return
	}
	if !h.states.Consume(c.Request.Context(), c.Query("state")) {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid or expired state"))
		return
	}

	token, err := h.auth.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.FailWithError("LinkedIn authentication failed", err))
		return
	}

	profile, err := h.auth.UserInfo(c.Request.Context(), token.AccessToken)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Could not retrieve LinkedIn user info")
	}

	res := gin.H{
		"success":   true,
		"message":   "LinkedIn authentication successful",
		"expiresAt": token.ExpiresAt,
	}

	if profile != nil && profile.Email != "" {
		user, err := h.userRepo.GetByEmail(c.Request.Context(), profile.Email)
		if err == nil && user == nil {
			now := utils.GetCurrentTime()
			user, err = h.userRepo.Create(c.Request.Context(), &model.User{
				Name:      profile.Name,
				Email:     profile.Email,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.FailWithError("Server error", err))
			return
		}
		if err := h.userRepo.UpdateLinkedInAuth(c.Request.Context(), user.ID.Hex(), token.AccessToken, token.ExpiresAt, profile.URN); err != nil {
			logger.GetLogger().WithField("error", err).Error("Failed to store LinkedIn token")
		}
		bearer, err := utils.GenerateToken(user.ID.Hex(), user.Email, h.secretKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.FailWithError("Server error", err))
			return
		}
		res["user"] = user.View()
		res["token"] = bearer
	} else {
		logger.GetLogger().Warn("No email in LinkedIn user info, cannot link to user account")
	}

	c.JSON(http.StatusOK, res)
}

// TokenStatus reports both halves of the expiry story for the caller's
// stored LinkedIn token: the local timestamp check and the remote userinfo
// probe.
func (h *LinkedInAuthHandler) TokenStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	reAuthURL := configuration.C.App.BaseURL + "/auth/linkedin/login"

	user, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.FailWithError("Failed to check token status", err))
		return
	}
	if user == nil || user.LinkedinToken == "" {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"hasToken":    false,
			"needsReauth": true,
			"message":     "No LinkedIn token found",
			"reAuthUrl":   reAuthURL,
		})
		return
	}

	if h.auth.IsTokenExpired(user.LinkedinTokenExpiry) {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"hasToken":    true,
			"expired":     true,
			"needsReauth": true,
			"message":     "LinkedIn token has expired",
			"expiryDate":  user.LinkedinTokenExpiry,
			"reAuthUrl":   reAuthURL,
		})
		return
	}

	valid := h.auth.IsTokenValid(c.Request.Context(), user.LinkedinToken)
	res := gin.H{
		"success":     true,
		"hasToken":    true,
		"expired":     false,
		"valid":       valid,
		"needsReauth": !valid,
		"expiryDate":  user.LinkedinTokenExpiry,
	}
	if valid {
		res["message"] = "LinkedIn token is valid and ready to use"
	} else {
		res["message"] = "LinkedIn token is invalid"
		res["reAuthUrl"] = reAuthURL
	}
	c.JSON(http.StatusOK, res)
}

// Tokens is a debug view of the transient OAuth state cache. Nothing here is
// authoritative; persisted tokens live in the credential store.
func (h *LinkedInAuthHandler) Tokens(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"pendingStates": h.states.Active(c.Request.Context()),
	})
}
