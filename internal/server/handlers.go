package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tunewave/audio-stream-encoder/internal/playsync"
	songsRepository "github.com/tunewave/audio-stream-encoder/internal/songs/repository"
	transcodeHttp "github.com/tunewave/audio-stream-encoder/internal/transcode/delivery/http"
	transcodeRepository "github.com/tunewave/audio-stream-encoder/internal/transcode/repository"
	transcodeUsecase "github.com/tunewave/audio-stream-encoder/internal/transcode/usecase"
	"github.com/tunewave/audio-stream-encoder/pkg/utils"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	sRepo := songsRepository.NewSongsRepo(s.db)
	tRedisRepo := transcodeRepository.NewTranscodeRedisRepo(s.redisClient)
	tAWSRepo := transcodeRepository.NewAwsRepository(s.s3Client, s.preSignClient, s.cfg.S3.PublicBaseURL)

	transcodeUC := transcodeUsecase.NewTranscodeUseCase(s.cfg, tRedisRepo, tAWSRepo, sRepo, s.logger)
	playSyncWorker := playsync.NewWorker(s.cfg, s.logger, tRedisRepo, sRepo)

	transcodeHandlers := transcodeHttp.NewTranscodeHandler(transcodeUC, playSyncWorker)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	transcodeGroup := v1.Group("/transcode")
	playSyncGroup := v1.Group("/playsync")

	transcodeHttp.MapTranscodeRoutes(transcodeGroup, transcodeHandlers)
	transcodeHttp.MapPlaySyncRoutes(playSyncGroup, transcodeHandlers)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}
