package api

import (
	"net/http"
	"strconv"

	"PremierSync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StandingsHandler 提供给前端的只读查询接口
type StandingsHandler struct {
	repo   *repository.QueryRepository
	season string
	logger *logrus.Logger
}

// NewStandingsHandler 创建StandingsHandler
func NewStandingsHandler(db *gorm.DB, logger *logrus.Logger, season string) *StandingsHandler {
	return &StandingsHandler{
		repo:   repository.NewQueryRepository(db),
		season: season,
		logger: logger,
	}
}

// GetStandings 当前积分榜（最近一次完整采集批次）
// GET /api/standings
func (h *StandingsHandler) GetStandings(c *gin.Context) {
	rows, err := h.repo.CurrentStandings(c.Request.Context(), h.season)
	if err != nil {
		h.logger.WithError(err).Error("GetStandings failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"season": h.season, "standings": rows})
}

// GetTopScorers 射手榜前N名
// GET /api/scorers?limit=10
func (h *StandingsHandler) GetTopScorers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, err := h.repo.TopScorers(c.Request.Context(), h.season, limit)
	if err != nil {
		h.logger.WithError(err).Error("GetTopScorers failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"season": h.season, "scorers": rows})
}
