package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueProjecao = "jobs:projecao"

const maxJobAttempts = 3

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type projecaoPayload struct {
	MaterialID string `json:"material_id"`
}

// Projetor recomputes and stores the current-stock projection of one
// material (satisfied by service.StockAtualService).
type Projetor interface {
	RefrescarProjecao(ctx context.Context, materialID uuid.UUID) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueProjecao schedules a projection refresh for one material.
func (d *Dispatcher) EnqueueProjecao(ctx context.Context, materialID uuid.UUID) error {
	return d.enqueue(ctx, QueueProjecao, "projecao", projecaoPayload{MaterialID: materialID.String()})
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

// StartWorkerPool launches numWorkers goroutines consuming the projection
// queue. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, projetor Projetor, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, projetor, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, projetor Projetor, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueProjecao).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, projetor, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, projetor Projetor, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var payload projecaoPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, "payload inválido: "+err.Error(), 1)
		return
	}
	materialID, err := uuid.Parse(payload.MaterialID)
	if err != nil {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, "material_id inválido", 1)
		return
	}

	var lastErr error
	for attempt := 1; attempt <= maxJobAttempts; attempt++ {
		if lastErr = projetor.RefrescarProjecao(ctx, materialID); lastErr == nil {
			log.Debug().Str("material_id", payload.MaterialID).Msg("projeção atualizada")
			return
		}
		log.Warn().
			Err(lastErr).
			Str("material_id", payload.MaterialID).
			Int("attempt", attempt).
			Msg("falha a atualizar projeção")
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, lastErr.Error(), maxJobAttempts)
}
