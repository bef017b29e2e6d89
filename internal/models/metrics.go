package models

// TranscodeMetrics is the aggregate snapshot kept in the shared store,
// plus the queue depths read at request time.
type TranscodeMetrics struct {
	SuccessCount    int64 `json:"success_count"`
	FailureCount    int64 `json:"failure_count"`
	TotalDurationMs int64 `json:"total_duration_ms"`
	QueueDepth      int64 `json:"queue_depth"`
	DeadLetterDepth int64 `json:"dead_letter_depth"`
}

type PlaySyncResult struct {
	SongsApplied int   `json:"songs_applied"`
	PlaysApplied int64 `json:"plays_applied"`
	ElapsedMs    int64 `json:"elapsed_ms"`
}
