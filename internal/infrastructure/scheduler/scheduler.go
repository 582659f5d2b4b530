// Package scheduler ejecuta los trabajos periódicos del inventario con robfig/cron:
// alerta de stock bajo en el log y snapshot CSV del stock en disco.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/pkg/config"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Nombres de los trabajos.
const (
	JobLowStock = "low-stock"
	JobSnapshot = "snapshot"
)

// jobTimeout tope de cada ejecución.
const jobTimeout = 2 * time.Minute

// LowStockSource productos bajo umbral de una tienda.
type LowStockSource interface {
	LowStockProducts(ctx context.Context, shopID int64) ([]*entity.StockLine, error)
}

// SnapshotWriter escribe el CSV del stock en un directorio.
type SnapshotWriter interface {
	WriteSnapshotFile(ctx context.Context, shopID int64, dir string) (string, error)
}

// Job trabajo registrado con su expresión cron.
type Job struct {
	Schedule string
	Run      func(ctx context.Context) error
}

// Scheduler agenda de trabajos sobre una tienda.
type Scheduler struct {
	c    *cron.Cron
	jobs map[string]Job
	log  zerolog.Logger
}

// New registra los trabajos cuya expresión no está vacía. Una expresión inválida es error.
func New(cfg config.SchedulerConfig, shopID int64, low LowStockSource, snap SnapshotWriter, log zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		c:    cron.New(),
		jobs: map[string]Job{},
		log:  log,
	}
	all := map[string]Job{
		JobLowStock: {Schedule: cfg.LowStockCron, Run: func(ctx context.Context) error {
			return s.lowStockJob(ctx, low, shopID)
		}},
		JobSnapshot: {Schedule: cfg.SnapshotCron, Run: func(ctx context.Context) error {
			path, err := snap.WriteSnapshotFile(ctx, shopID, cfg.SnapshotDir)
			if err != nil {
				return err
			}
			s.log.Info().Str("path", path).Msg("snapshot de stock escrito")
			return nil
		}},
	}
	for name, j := range all {
		s.jobs[name] = j
		if j.Schedule == "" {
			continue
		}
		name, run := name, j.Run
		if _, err := s.c.AddFunc(j.Schedule, func() { s.runLogged(name, run) }); err != nil {
			return nil, fmt.Errorf("scheduler: trabajo %s (%q): %w", name, j.Schedule, err)
		}
		s.log.Info().Str("job", name).Str("schedule", j.Schedule).Msg("trabajo programado")
	}
	return s, nil
}

// Scheduled nombres de los trabajos con expresión cron, ordenados.
func (s *Scheduler) Scheduled() []string {
	var out []string
	for name, j := range s.jobs {
		if j.Schedule != "" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Start arranca la agenda en segundo plano.
func (s *Scheduler) Start() { s.c.Start() }

// Stop detiene la agenda y espera a que terminen los trabajos en curso o se cancele ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.c.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunJob ejecuta un trabajo una vez, esté programado o no.
func (s *Scheduler) RunJob(ctx context.Context, name string) error {
	j, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("scheduler: trabajo desconocido %q", name)
	}
	return j.Run(ctx)
}

func (s *Scheduler) runLogged(name string, run func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	start := time.Now()
	if err := run(ctx); err != nil {
		s.log.Error().Err(err).Str("job", name).Msg("trabajo fallido")
		return
	}
	s.log.Debug().Str("job", name).Dur("elapsed", time.Since(start)).Msg("trabajo terminado")
}

func (s *Scheduler) lowStockJob(ctx context.Context, src LowStockSource, shopID int64) error {
	lines, err := src.LowStockProducts(ctx, shopID)
	if err != nil {
		return err
	}
	for _, l := range lines {
		s.log.Warn().
			Int64("product_id", l.Product.ID).
			Str("product", l.Product.Label).
			Float64("stock_kg", l.StockKg).
			Float64("threshold_kg", l.Product.ThresholdKg).
			Msg("stock bajo umbral")
	}
	s.log.Info().Int64("shop_id", shopID).Int("count", len(lines)).Msg("revisión de stock bajo")
	return nil
}
