package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"social-publisher/domain/dto"
	"social-publisher/domain/model"
	"social-publisher/usecase"
)

type IPostHandler interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type PostHandler struct {
	postUsecase usecase.IPostUsecase
}

func NewPostHandler(postUsecase usecase.IPostUsecase) IPostHandler {
	return &PostHandler{postUsecase: postUsecase}
}

func (h *PostHandler) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req model.ReqCreatePost
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.FailWithError(ErrorUnmarshal, err))
		return
	}

	post, err := h.postUsecase.Create(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, usecase.ErrContentNeeded) {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.FailWithError("Server error", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "post": post})
}

func (h *PostHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	post, err := h.postUsecase.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

func (h *PostHandler) List(c *gin.Context) {
	userID := c.GetString("user_id")

	posts, err := h.postUsecase.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.FailWithError("Server error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts, "count": len(posts)})
}

func (h *PostHandler) Update(c *gin.Context) {
	userID := c.GetString("user_id")

	var req model.ReqUpdatePost
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.FailWithError(ErrorUnmarshal, err))
		return
	}

	post, err := h.postUsecase.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

func (h *PostHandler) Delete(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.postUsecase.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted"})
}

func (h *PostHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPostNotFound):
		c.JSON(http.StatusNotFound, dto.Fail(err.Error()))
	case errors.Is(err, usecase.ErrNotPostOwner):
		c.JSON(http.StatusForbidden, dto.Fail(err.Error()))
	case errors.Is(err, usecase.ErrContentNeeded):
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, dto.FailWithError("Server error", err))
	}
}
