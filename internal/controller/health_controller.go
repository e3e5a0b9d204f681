package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, redisClient *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: redisClient}
}

// Health godoc
// @Summary 健康检查
// @Description 返回服务、数据库与缓存的可用状态
// @Tags 系统
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	status := http.StatusOK
	result := gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	if sqlDB, err := c.DB.DB(); err != nil || sqlDB.Ping() != nil {
		result["database"] = "down"
		result["status"] = "degraded"
		status = http.StatusServiceUnavailable
	} else {
		result["database"] = "up"
	}

	if c.Redis != nil {
		if err := c.Redis.Ping(ctx.Request.Context()).Err(); err != nil {
			result["redis"] = "down"
			result["status"] = "degraded"
		} else {
			result["redis"] = "up"
		}
	}

	ctx.JSON(status, result)
}
