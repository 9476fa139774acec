package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/tastebook-backend/internal/http/response"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

type HealthHandler struct {
	log *logger.Logger
	db  *gorm.DB
}

func NewHealthHandler(baseLog *logger.Logger, db *gorm.DB) *HealthHandler {
	return &HealthHandler{log: baseLog.With("handler", "HealthHandler"), db: db}
}

func (h *HealthHandler) Check(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.log.Error("Health check failed", "error", err)
		c.JSON(503, gin.H{"status": "degraded"})
		return
	}
	response.OK(c, gin.H{"status": "ok"})
}
