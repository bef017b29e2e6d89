package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tunewave/audio-stream-encoder/internal/config"
	"github.com/tunewave/audio-stream-encoder/internal/playsync"
	songsRepository "github.com/tunewave/audio-stream-encoder/internal/songs/repository"
	"github.com/tunewave/audio-stream-encoder/internal/transcode/ffmpeg"
	transcodeRepository "github.com/tunewave/audio-stream-encoder/internal/transcode/repository"
	"github.com/tunewave/audio-stream-encoder/internal/transcode/worker"
	"github.com/tunewave/audio-stream-encoder/pkg/db/aws"
	"github.com/tunewave/audio-stream-encoder/pkg/db/postgres"
	clientRedis "github.com/tunewave/audio-stream-encoder/pkg/db/redis"
	"github.com/tunewave/audio-stream-encoder/pkg/logger"
)

func main() {
	configFile := "config.yml"
	cfgFile, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("loadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("parseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to db: %s", err)
	}
	appLogger.Infof("db connected, status: %#v", psqlDB.Stats())
	defer psqlDB.Close()

	redisClient, err := clientRedis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("could not connect to redis: %s", err)
	}
	appLogger.Infof("redis connected")
	defer redisClient.Close()

	s3Client, presignClient, err := aws.NewAWSClient(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		appLogger.Fatalf("could not connect to s3: %s", err)
	}

	songsRepo := songsRepository.NewSongsRepo(psqlDB)
	redisRepo := transcodeRepository.NewTranscodeRedisRepo(redisClient)
	awsRepo := transcodeRepository.NewAwsRepository(s3Client, presignClient, cfg.S3.PublicBaseURL)
	transcoder := ffmpeg.NewTranscoder(cfg.Transcode.AudioBitrate, cfg.Transcode.SegmentSeconds, cfg.Worker.TranscodeTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	processor := worker.NewProcessor(cfg, appLogger, redisRepo, awsRepo, songsRepo, transcoder)
	transcodeWorker := worker.NewWorker(cfg, appLogger, redisRepo, processor)
	playSyncWorker := playsync.NewWorker(cfg, appLogger, redisRepo, songsRepo)

	transcodeWorker.Start(ctx)
	playSyncWorker.Start(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	appLogger.Infof("shutting down workers")
	cancel()
	transcodeWorker.Wait()
	playSyncWorker.Wait()
}
