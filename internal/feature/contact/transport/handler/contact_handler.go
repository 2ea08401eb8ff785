// Package handler はcontactフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"devport_backend/internal/feature/contact/transport/http/dto"
	"devport_backend/internal/feature/contact/usecase"
)

// ContactUsecase はお問い合わせ送信のユースケースを定義します。
type ContactUsecase interface {
	Send(ctx context.Context, visitorEmail, message string, ownerID uint) error
}

// ContactHandler はお問い合わせ送信のHTTPリクエストを処理します。
type ContactHandler struct {
	uc ContactUsecase
}

// NewContactHandler は新しい ContactHandler を作成します。
func NewContactHandler(uc ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Send はポートフォリオ所有者へメールを送信します。
// - 所有者が存在しない場合は404
// - メール送信に失敗した場合は502
func (h *ContactHandler) Send(c *gin.Context) {
	var req dto.ContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("contact validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.uc.Send(c.Request.Context(), string(req.Email), req.Message, req.UserID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
	case errors.Is(err, usecase.ErrOwnerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, usecase.ErrInvalidMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrDeliveryFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send email"})
	default:
		slog.Error("contact request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
