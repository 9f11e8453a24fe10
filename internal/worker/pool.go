package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueClosingReport = "jobs:closing_report"

	// maxAttempts is the retry budget per job before it goes to the DLQ.
	maxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// ClosingReportPayload is the job envelope sent to QueueClosingReport.
type ClosingReportPayload struct {
	ClosingRecordID string `json:"closing_record_id"`
}

// EnqueueClosingReport pushes a closing-report job to Redis.
func (d *Dispatcher) EnqueueClosingReport(ctx context.Context, recordID uuid.UUID) error {
	return d.enqueue(ctx, QueueClosingReport, "closing_report",
		ClosingReportPayload{ClosingRecordID: recordID.String()})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handler processes one job payload. A returned error requeues the job until
// the retry budget is exhausted, then it lands in the DLQ.
type Handler interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

// Handlers maps job types to their processors.
type Handlers struct {
	ClosingReport Handler
}

// StartWorkerPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers Handlers, id int) {
	queues := []string{QueueClosingReport}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var handler Handler
	switch job.Type {
	case "closing_report":
		handler = handlers.ClosingReport
	}
	if handler == nil {
		log.Error().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type")
		return
	}

	if err := handler.Process(ctx, job.Payload); err != nil {
		job.Attempts++
		if job.Attempts >= maxAttempts {
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
			return
		}
		encoded, mErr := json.Marshal(job)
		if mErr != nil {
			log.Error().Err(mErr).Msg("failed to re-encode job for retry")
			return
		}
		if pErr := rdb.LPush(ctx, queue, encoded).Err(); pErr != nil {
			log.Error().Err(pErr).Str("queue", queue).Msg("failed to requeue job")
		}
		return
	}
	log.Info().Str("type", job.Type).Str("queue", queue).Msg("job processed")
}
