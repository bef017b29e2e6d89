package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tunewave/audio-stream-encoder/internal/models"
	"github.com/tunewave/audio-stream-encoder/internal/transcode"
)

// PlaySyncer is the manual reconciliation entry point of the play-count
// aggregator.
type PlaySyncer interface {
	ForceSyncNow(ctx context.Context) (*models.PlaySyncResult, error)
}

type transcodeHandler struct {
	transcodeUC transcode.UseCase
	playSyncer  PlaySyncer
}

func NewTranscodeHandler(transcodeUC transcode.UseCase, playSyncer PlaySyncer) transcode.Handlers {
	return &transcodeHandler{
		transcodeUC: transcodeUC,
		playSyncer:  playSyncer,
	}
}

func (h *transcodeHandler) EnqueueJob() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.EnqueueInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		if err := h.transcodeUC.EnqueueJob(c.Request().Context(), input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusAccepted, map[string]string{"song_id": input.SongID, "status": "queued"})
	}
}

func (h *transcodeHandler) GetPresignUpload() echo.HandlerFunc {
	return func(c echo.Context) error {
		input := &models.UploadInput{}
		if err := c.Bind(input); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		presignURL, err := h.transcodeUC.GetPresignUploadURL(c.Request().Context(), input)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"presignUrl": presignURL})
	}
}

func (h *transcodeHandler) GetMetrics() echo.HandlerFunc {
	return func(c echo.Context) error {
		metrics, err := h.transcodeUC.GetMetrics(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, metrics)
	}
}

func (h *transcodeHandler) ForcePlaySync() echo.HandlerFunc {
	return func(c echo.Context) error {
		result, err := h.playSyncer.ForceSyncNow(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, result)
	}
}
