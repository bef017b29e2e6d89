package worker

import (
	"context"
	"sync"
	"time"

	"github.com/tunewave/audio-stream-encoder/internal/config"
	"github.com/tunewave/audio-stream-encoder/internal/transcode"
	"github.com/tunewave/audio-stream-encoder/pkg/logger"
	"github.com/tunewave/audio-stream-encoder/pkg/utils"
)

// Worker polls the main queue on a fixed interval and hands each dequeued
// subject to the processor. Several workers may run against the same store;
// the per-subject lock provides correctness, not the loop.
type Worker struct {
	cfg       *config.Config
	logger    logger.Logger
	redisRepo transcode.RedisRepository
	processor *Processor
	wg        sync.WaitGroup
}

func NewWorker(cfg *config.Config, logger logger.Logger, redisRepo transcode.RedisRepository, processor *Processor) *Worker {
	return &Worker{
		cfg:       cfg,
		logger:    logger,
		redisRepo: redisRepo,
		processor: processor,
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.logger.Infof("starting %d transcode workers, poll interval %s", w.cfg.Worker.WorkerCount, w.cfg.Worker.PollInterval)
	for i := 0; i < w.cfg.Worker.WorkerCount; i++ {
		w.wg.Add(1)
		go w.run(ctx)
	}
}

func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	pollInterval := w.cfg.Worker.PollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick runs one poll cycle. A panic here must never stop the loop from
// reaching the next tick.
func (w *Worker) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Errorf("recovered panic in worker tick: %v", r)
		}
	}()

	if canAcceptJob, usage := utils.CheckCPUUsage(w.cfg.Worker.MaxCPUUsage); !canAcceptJob {
		w.logger.Infof("CPU usage %.2f%% too high, skipping poll", usage)
		return
	}

	songID, err := w.redisRepo.Dequeue(ctx, transcode.QueueKey)
	if err != nil {
		w.logger.Errorf("failed to dequeue job: %v", err)
		return
	}
	if songID == "" {
		return
	}

	w.processor.ProcessJob(ctx, songID)
}
