// Package scheduler tareas periódicas del servicio (robfig/cron).
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
)

// Reconciler reconstruye el índice desde el ledger y reporta diferencias.
type Reconciler interface {
	Reconcile(ctx context.Context) (*inventory.ReconcileReport, error)
}

// Scheduler envuelve cron.Cron con logging zerolog. Una ejecución lenta no se solapa con la siguiente.
type Scheduler struct {
	c       *cron.Cron
	log     zerolog.Logger
	timeout time.Duration
}

// New construye el scheduler. timeout acota cada ejecución (0 = sin límite).
func New(log zerolog.Logger, timeout time.Duration) *Scheduler {
	cl := cronLogger{log: log}
	return &Scheduler{
		c:       cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		log:     log,
		timeout: timeout,
	}
}

// AddReconcileJob programa la reconciliación ledger/índice. schedule acepta
// expresiones cron o descriptores (@every 1h, @daily).
func (s *Scheduler) AddReconcileJob(schedule string, r Reconciler) error {
	_, err := s.c.AddFunc(schedule, func() {
		ctx := context.Background()
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		_, _ = RunReconcile(ctx, r, s.log)
	})
	if err != nil {
		return fmt.Errorf("programar reconciliación %q: %w", schedule, err)
	}
	s.log.Info().Str("schedule", schedule).Msg("reconciliación programada")
	return nil
}

// Start arranca el scheduler en su propia goroutine.
func (s *Scheduler) Start() { s.c.Start() }

// Stop detiene el scheduler y espera las tareas en curso o hasta que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunReconcile ejecuta una reconciliación y registra cada diferencia encontrada.
func RunReconcile(ctx context.Context, r Reconciler, log zerolog.Logger) (*inventory.ReconcileReport, error) {
	start := time.Now()
	report, err := r.Reconcile(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconciliación fallida")
		return nil, err
	}
	for _, m := range report.Mismatches {
		log.Error().
			Str("product_id", m.Key.ProductID).
			Str("warehouse_id", m.Key.WarehouseID).
			Str("location_id", m.Key.LocationID).
			Int64("live", m.Live).
			Int64("replayed", m.Replayed).
			Msg("índice de stock difiere del ledger")
	}
	for _, b := range report.ChainBreaks {
		log.Error().
			Str("entry_id", b.EntryID).
			Int64("seq", b.Seq).
			Int64("expected", b.Expected).
			Int64("recorded", b.Recorded).
			Msg("new_stock_level rompe la cadena del ledger")
	}
	log.Info().
		Bool("consistent", report.Consistent()).
		Int("entries", report.EntriesReplayed).
		Int("keys", report.KeysChecked).
		Dur("took", time.Since(start)).
		Msg("reconciliación completada")
	return report, nil
}

// cronLogger adapta zerolog a cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
