// Package handler はprofileフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"devport_backend/internal/feature/profile/domain/entity"
	"devport_backend/internal/feature/profile/transport/http/dto"
	"devport_backend/internal/feature/profile/usecase"
	jwtmw "devport_backend/internal/platform/jwt"
)

// ProfileUsecase はプロフィール操作のユースケースを定義します。
type ProfileUsecase interface {
	Get(ctx context.Context, id uint) (*entity.Profile, error)
	GetPublic(ctx context.Context, id uint) (*entity.Profile, error)
	Update(ctx context.Context, id uint, upd entity.Update) (*entity.Profile, error)
}

// ProfileHandler はプロフィール操作のHTTPリクエストを処理します。
type ProfileHandler struct {
	uc ProfileUsecase
}

// NewProfileHandler は新しい ProfileHandler を作成します。
func NewProfileHandler(uc ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// GetMine は認証ユーザー自身のプロフィールを返します。
func (h *ProfileHandler) GetMine(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	p, err := h.uc.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileRes(p))
}

// UpdateMine は認証ユーザー自身のプロフィールを部分更新します。
func (h *ProfileHandler) UpdateMine(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update profile validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.uc.Update(c.Request.Context(), userID, entity.Update{
		Name:         req.Name,
		JobTitle:     req.JobTitle,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileRes(p))
}

// GetPublic は公開ポートフォリオ用のプロフィールを返します。
func (h *ProfileHandler) GetPublic(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := h.uc.GetPublic(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPublicProfileRes(p))
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	slog.Error("profile request failed", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
