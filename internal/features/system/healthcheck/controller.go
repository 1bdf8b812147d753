package system_healthcheck

import (
	"net/http"

	"taskhive-backend/internal/config"
	"taskhive-backend/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/disk"
)

type HealthcheckController struct{}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/healthcheck", c.Healthcheck)
}

// Healthcheck
// @Summary Service liveness and disk headroom
// @Tags system
// @Produce json
// @Success 200 {object} map[string]any
// @Router /healthcheck [get]
func (c *HealthcheckController) Healthcheck(ctx *gin.Context) {
	response := gin.H{"status": "ok"}

	usage, err := disk.Usage(config.GetEnv().UploadsFolder)
	if err != nil {
		// uploads folder may not exist until the first attachment
		usage, err = disk.Usage("/")
	}
	if err != nil {
		logger.GetLogger().Warn("Failed to read disk usage", "error", err)
	} else {
		response["disk"] = gin.H{
			"totalBytes":  usage.Total,
			"freeBytes":   usage.Free,
			"usedPercent": usage.UsedPercent,
		}
	}

	ctx.JSON(http.StatusOK, response)
}
