package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-publisher/domain/dto"
	"social-publisher/domain/model"
	"social-publisher/infrastructure/logger"
	"social-publisher/usecase"
)

const (
	ErrorUnmarshal = "Error while unmarshal"
)

type IUserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Authenticate(c *gin.Context)
	GetProfile(c *gin.Context)
	UpdateTokens(c *gin.Context)
}

type UserHandler struct {
	userUsecase usecase.IUserUsecase
}

func NewUserHandler(userUsecase usecase.IUserUsecase) IUserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req model.ReqRegister
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.FailWithError(ErrorUnmarshal, err))
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, dto.Fail("Please add all fields (name, email, password)"))
		return
	}

	res, err := h.userUsecase.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailExists) {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.FailWithError("Server error", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    res.User,
		"token":   res.Token,
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req model.ReqLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.FailWithError(ErrorUnmarshal, err))
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, dto.Fail("Please provide email and password"))
		return
	}

	res, err := h.userUsecase.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidLogin) {
			c.JSON(http.StatusUnauthorized, dto.Fail(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.FailWithError("Server error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    res.User,
		"token":   res.Token,
	})
}

// Authenticate is the legacy find-or-create login kept for backward
// compatibility with older clients.
func (h *UserHandler) Authenticate(c *gin.Context) {
	var req model.ReqAuthenticate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.FailWithError(ErrorUnmarshal, err))
		return
	}
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, dto.Fail("Email is required"))
		return
	}

	res, err := h.userUsecase.Authenticate(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.FailWithError("Server error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    res.User,
		"token":   res.Token,
	})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	view, err := h.userUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.FailWithError("Server error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": view})
}

func (h *UserHandler) UpdateTokens(c *gin.Context) {
	userID := c.GetString("user_id")

	var req model.ReqUpdateToken
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.FailWithError(ErrorUnmarshal, err))
		return
	}
	platform := model.Platform(req.Platform)
	if !platform.Valid() {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid platform"))
		return
	}

	view, err := h.userUsecase.UpdateToken(c.Request.Context(), userID, platform, req.Token)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("User not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.FailWithError("Server error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": req.Platform + " token updated successfully",
		"user":    view,
	})
}
