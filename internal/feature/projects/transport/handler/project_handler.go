// Package handler はprojectsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"devport_backend/internal/feature/projects/domain/entity"
	"devport_backend/internal/feature/projects/transport/http/dto"
	"devport_backend/internal/feature/projects/usecase"
	jwtmw "devport_backend/internal/platform/jwt"
)

// ProjectUsecase はプロジェクト操作のユースケースを定義します。
type ProjectUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.Project, error)
	Create(ctx context.Context, userID uint, in usecase.ProjectInput) (*entity.Project, error)
	Update(ctx context.Context, userID, id uint, patch usecase.ProjectPatch) (*entity.Project, error)
	Delete(ctx context.Context, userID, id uint) error
}

// ProjectHandler はプロジェクト操作のHTTPリクエストを処理します。
type ProjectHandler struct {
	uc ProjectUsecase
}

// NewProjectHandler は新しい ProjectHandler を作成します。
func NewProjectHandler(uc ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

// ListMine は認証ユーザー自身のプロジェクト一覧を返します。
func (h *ProjectHandler) ListMine(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	h.list(c, userID)
}

// ListByUser は公開ポートフォリオ用に :id のユーザーのプロジェクト一覧を返します。
func (h *ProjectHandler) ListByUser(c *gin.Context) {
	userID, ok := parseID(c)
	if !ok {
		return
	}
	h.list(c, userID)
}

func (h *ProjectHandler) list(c *gin.Context, userID uint) {
	projects, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(projects))
}

// Create はプロジェクトを作成し201を返します。
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req dto.CreateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create project validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.uc.Create(c.Request.Context(), userID, usecase.ProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		RepositoryURL: req.RepositoryURL,
		DemoURL:       req.DemoURL,
		Image:         req.Image,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromEntity(*p))
}

// Update は所有者のみプロジェクトを部分更新します。
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update project validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.uc.Update(c.Request.Context(), userID, id, usecase.ProjectPatch{
		Name:          req.Name,
		Description:   req.Description,
		RepositoryURL: req.RepositoryURL,
		DemoURL:       req.DemoURL,
		Image:         req.Image,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*p))
}

// Delete は所有者のみプロジェクトを削除します。
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project removed"})
}

// parseID reads the :id path parameter, writing 400 on failure.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
	case errors.Is(err, usecase.ErrInvalidProject):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("project request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
