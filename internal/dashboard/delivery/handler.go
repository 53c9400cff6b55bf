package delivery

import (
	"net/http"
	"strconv"

	"email-planner-backend/internal/dashboard/repository"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	statsRepo repository.StatsRepository
}

func NewDashboardHandler(statsRepo repository.StatsRepository) *DashboardHandler {
	return &DashboardHandler{
		statsRepo: statsRepo,
	}
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID := c.GetString("userID")

	stats, err := h.statsRepo.GetStats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) GetTimeline(c *gin.Context) {
	userID := c.GetString("userID")

	days := 7
	if v := c.Query("days"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			days = parsed
		}
	}

	timeline, err := h.statsRepo.GetTimeline(userID, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"timeline": timeline})
}
