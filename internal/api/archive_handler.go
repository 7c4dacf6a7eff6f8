package api

import (
	"net/http"

	"PremierSync/internal/interfaces"
	"PremierSync/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ArchiveHandler 归档快照查询接口
type ArchiveHandler struct {
	archiver interfaces.Archiver
	logger   *logrus.Logger
}

// NewArchiveHandler 创建ArchiveHandler
func NewArchiveHandler(archiver interfaces.Archiver, logger *logrus.Logger) *ArchiveHandler {
	return &ArchiveHandler{archiver: archiver, logger: logger}
}

// ListSnapshots 列举某数据类型的全部归档key
// GET /api/archive/:data_type
func (h *ArchiveHandler) ListSnapshots(c *gin.Context) {
	dataType := model.DataType(c.Param("data_type"))
	if !dataType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown data type: " + string(dataType)})
		return
	}

	keys, err := h.archiver.ListEntries(c.Request.Context(), dataType)
	if err != nil {
		h.logger.WithError(err).Error("ListSnapshots failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data_type": dataType, "keys": keys})
}
