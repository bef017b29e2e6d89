package http

import (
	"github.com/labstack/echo/v4"

	"github.com/tunewave/audio-stream-encoder/internal/transcode"
)

func MapTranscodeRoutes(group *echo.Group, h transcode.Handlers) {
	group.POST("/jobs", h.EnqueueJob())
	group.POST("/presign", h.GetPresignUpload())
	group.GET("/metrics", h.GetMetrics())
}

func MapPlaySyncRoutes(group *echo.Group, h transcode.Handlers) {
	group.POST("/run", h.ForcePlaySync())
}
