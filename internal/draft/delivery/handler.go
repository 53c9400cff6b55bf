package delivery

import (
	"errors"
	"io"
	"net/http"

	"email-planner-backend/internal/draft/usecase"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	draftUsecase usecase.DraftUsecase
}

func NewDraftHandler(draftUsecase usecase.DraftUsecase) *DraftHandler {
	return &DraftHandler{
		draftUsecase: draftUsecase,
	}
}

type generateDraftRequest struct {
	Mode         string `json:"mode"`
	Instructions string `json:"instructions"`
}

func (h *DraftHandler) GenerateDraft(c *gin.Context) {
	userID := c.GetString("userID")
	emailID := c.Param("email_id")

	var req generateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.draftUsecase.GenerateDraft(c.Request.Context(), userID, emailID, req.Mode, req.Instructions)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "draft": draft})
}

func (h *DraftHandler) ListDrafts(c *gin.Context) {
	userID := c.GetString("userID")

	drafts, err := h.draftUsecase.ListDrafts(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"drafts": drafts})
}
