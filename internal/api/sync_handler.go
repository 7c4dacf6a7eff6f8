package api

import (
	"net/http"

	"PremierSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SyncHandler 手动触发一次采集管道
type SyncHandler struct {
	pipeline *service.PipelineService
	logger   *logrus.Logger
}

// NewSyncHandler 创建SyncHandler
func NewSyncHandler(pipeline *service.PipelineService, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{pipeline: pipeline, logger: logger}
}

// RunSync 同步执行一次完整更新并返回汇总。
// 管道内部吸收所有失败，接口总是返回200与逐阶段结果
// POST /sync/run
func (h *SyncHandler) RunSync(c *gin.Context) {
	summary := h.pipeline.RunAll(c.Request.Context())
	c.JSON(http.StatusOK, summary)
}
