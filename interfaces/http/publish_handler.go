package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-publisher/domain/dto"
	"social-publisher/domain/model"
	"social-publisher/domain/repository"
	"social-publisher/infrastructure/configuration"
	"social-publisher/infrastructure/logger"
	"social-publisher/usecase"
)

type IPublishHandler interface {
	PostToTwitter(c *gin.Context)
	PostToLinkedIn(c *gin.Context)
}

type PublishHandler struct {
	publishUsecase usecase.IPublishUsecase
}

func NewPublishHandler(publishUsecase usecase.IPublishUsecase) IPublishHandler {
	return &PublishHandler{publishUsecase: publishUsecase}
}

func (h *PublishHandler) PostToTwitter(c *gin.Context) {
	h.publish(c, model.PlatformTwitter)
}

func (h *PublishHandler) PostToLinkedIn(c *gin.Context) {
	h.publish(c, model.PlatformLinkedIn)
}

func (h *PublishHandler) publish(c *gin.Context, platform model.Platform) {
	userID := c.GetString("user_id")

	var req model.ReqPublish
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.FailWithError(ErrorUnmarshal, err))
		return
	}

	result, err := h.publishUsecase.Publish(c.Request.Context(), userID, platform, req.Content, req.PostID)
	if err != nil {
		h.writePublishError(c, platform, err)
		return
	}

	switch platform {
	case model.PlatformTwitter:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"platform": "twitter",
			"message":  "Posted to Twitter successfully!",
			"tweetId":  result.RemoteID,
		})
	case model.PlatformLinkedIn:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"platform": "linkedin",
			"message":  "Posted to LinkedIn successfully!",
			"postId":   result.RemoteID,
		})
	}
}

func (h *PublishHandler) writePublishError(c *gin.Context, platform model.Platform, err error) {
	logger.GetLogger().WithFields(map[string]interface{}{
		"platform": platform,
		"error":    err,
	}).Error("Publish failed")

	if errors.Is(err, usecase.ErrContentNeeded) {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	var configErr *usecase.ConfigError
	if errors.As(err, &configErr) {
		c.JSON(http.StatusBadRequest, dto.Fail(configErr.Msg))
		return
	}

	var platformErr *repository.PlatformError
	if errors.As(err, &platformErr) {
		switch platformErr.StatusCode {
		case http.StatusUnauthorized:
			body := gin.H{"success": false, "message": platformErr.Message}
			if platform == model.PlatformLinkedIn {
				body["needsReauth"] = true
				body["reAuthUrl"] = configuration.C.App.BaseURL + "/auth/linkedin/login"
			}
			c.JSON(http.StatusUnauthorized, body)
		case http.StatusForbidden:
			c.JSON(http.StatusForbidden, dto.Fail(platformErr.Message))
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to post to " + string(platform) + ": " + platformErr.Message,
				"error":   platformErr.Body,
			})
		}
		return
	}

	c.JSON(http.StatusInternalServerError, dto.FailWithError("Failed to post to "+string(platform), err))
}
