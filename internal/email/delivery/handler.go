package delivery

import (
	"errors"
	"net/http"
	"strconv"

	emaildto "email-planner-backend/internal/email/dto"
	"email-planner-backend/internal/email/repository"
	"email-planner-backend/internal/email/usecase"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	emailUsecase usecase.EmailUsecase
}

func NewEmailHandler(emailUsecase usecase.EmailUsecase) *EmailHandler {
	return &EmailHandler{
		emailUsecase: emailUsecase,
	}
}

// SyncEmails triggers one sync invocation for the authenticated user. The
// outcome is always an envelope — failures come back with success=false, not
// as HTTP errors.
func (h *EmailHandler) SyncEmails(c *gin.Context) {
	userID := c.GetString("userID")

	limit := int64(50)
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	result := h.emailUsecase.SyncEmails(c.Request.Context(), userID, limit)
	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) AnalyzeEmail(c *gin.Context) {
	userID := c.GetString("userID")
	emailID := c.Param("id")

	result, err := h.emailUsecase.AnalyzeEmail(c.Request.Context(), userID, emailID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Email not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) AnalyzeBatch(c *gin.Context) {
	userID := c.GetString("userID")

	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	result, err := h.emailUsecase.AnalyzeBatch(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *EmailHandler) ListEmails(c *gin.Context) {
	userID := c.GetString("userID")

	f := repository.ListFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sender:   c.Query("sender"),
		Skip:     0,
		Limit:    10,
	}

	if v := c.Query("skip"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			f.Skip = parsed
		}
	}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			f.Limit = parsed
		}
	}
	if v := c.Query("min_priority"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			f.MinPriority = parsed
		}
	}
	if v := c.Query("has_action_items"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			f.HasActionItems = &parsed
		}
	}

	page, err := h.emailUsecase.ListEmails(userID, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, emaildto.EmailListResponse{
		Total:  page.Total,
		Emails: page.Emails,
	})
}
