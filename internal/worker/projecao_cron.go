package worker

// projecao_cron.go
// Background goroutine that periodically rebuilds every material's
// current-stock projection, so the cache stays warm even without writes, and
// logs the materials sitting at or below their critical threshold.

import (
	"context"
	"time"

	"github.com/Imacx-maria/app-imacx-sub000/internal/dto"

	"github.com/rs/zerolog/log"
)

// Avaliador computes the full projection list (satisfied by
// service.StockAtualService).
type Avaliador interface {
	RecalcularTodos(ctx context.Context) ([]dto.StockAtualResponse, error)
}

// ProjecaoCronConfig holds the dependencies for the projection cron.
type ProjecaoCronConfig struct {
	Avaliador Avaliador
	Interval  time.Duration
}

// StartProjecaoCron launches a goroutine that ticks on the configured
// interval, recomputes every projection and reports critical materials.
// It respects the context for graceful shutdown.
func StartProjecaoCron(ctx context.Context, cfg ProjecaoCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("projecao_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("projecao_cron: shutting down")
				return
			case <-ticker.C:
				processTick(ctx, cfg)
			}
		}
	}()
}

func processTick(ctx context.Context, cfg ProjecaoCronConfig) {
	projecoes, err := cfg.Avaliador.RecalcularTodos(ctx)
	if err != nil {
		log.Error().Err(err).Msg("projecao_cron: falha a recalcular projeções")
		return
	}

	criticos := 0
	for i := range projecoes {
		p := &projecoes[i]
		if p.Estado != dto.EstadoCritico {
			continue
		}
		criticos++
		log.Warn().
			Str("material", p.Material).
			Str("material_id", p.MaterialID).
			Int("stock_final", p.StockFinal).
			Msg("projecao_cron: material em stock crítico")
	}

	log.Info().
		Int("materiais", len(projecoes)).
		Int("criticos", criticos).
		Msg("projecao_cron: projeções recalculadas")
}
