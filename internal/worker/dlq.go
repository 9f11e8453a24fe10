package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DLQPrefix namespaces the dead-letter lists; one list per source queue, so
// the closing-report queue dead-letters to "carmu:dlq:jobs:closing_report".
const DLQPrefix = "carmu:dlq:"

// DeadJob is what an operator finds when inspecting the list: the original
// payload plus enough context to decide whether to replay it.
type DeadJob struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	FailedAt time.Time       `json:"failedAt"`
	Attempts int             `json:"attempts"`
}

// SendToDLQ parks a job that exhausted its retries. Losing a closing-report
// job only delays a PDF mail, so failures here are logged, never fatal.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DeadJob{
		Queue:    queue,
		Type:     jobType,
		Payload:  payload,
		Reason:   reason,
		FailedAt: time.Now().UTC(),
		Attempts: attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}

	dlqKey := DLQPrefix + queue
	if err := rdb.LPush(ctx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", dlqKey).Msg("dlq: push failed, job lost")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job moved to dead letter queue")
}

// DLQLength exposes the list depth for monitoring.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
