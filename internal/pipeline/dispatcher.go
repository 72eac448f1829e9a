// internal/pipeline/dispatcher.go
package pipeline

import (
	"context"
	"sync"

	"credit-pipeline/internal/common/config"
	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"
	sendnotification "credit-pipeline/internal/workers/notification/send-notification"
)

// BatchRunner executes one queued batch.
type BatchRunner interface {
	Run(ctx context.Context, batch *Batch) error
}

// Dispatcher owns the bounded batch queue and the worker pool draining
// it. Submission is fire-and-forget: the HTTP layer answers immediately
// and the applicant learns the outcome through notifications.
type Dispatcher struct {
	queue    chan *Batch
	runner   BatchRunner
	notifier Notifier
	logger   logger.Logger
	workers  int
	wg       sync.WaitGroup
}

func NewDispatcher(cfg config.PipelineConfig, runner BatchRunner, notifier Notifier, log logger.Logger) *Dispatcher {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Dispatcher{
		queue:    make(chan *Batch, queueSize),
		runner:   runner,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"component": "dispatcher"}),
		workers:  workers,
	}
}

// Start launches the worker pool. Workers exit when the queue is closed
// by Stop or when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(ctx, i)
	}
	d.logger.Info("dispatcher started", map[string]interface{}{
		"workers":    d.workers,
		"queue_size": cap(d.queue),
	})
}

// Submit enqueues a batch without blocking. Returns false when the queue
// is full; callers should answer 503 in that case.
func (d *Dispatcher) Submit(batch *Batch) bool {
	select {
	case d.queue <- batch:
		return true
	default:
		d.logger.Warn("queue full, batch rejected", map[string]interface{}{
			"run":       batch.RunID,
			"applicant": batch.Applicant.ApplicantID,
		})
		return false
	}
}

// Stop closes the queue and waits for in-flight batches to finish.
func (d *Dispatcher) Stop() {
	close(d.queue)
	d.wg.Wait()
	d.logger.Info("dispatcher stopped", nil)
}

func (d *Dispatcher) work(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-d.queue:
			if !ok {
				return
			}
			d.process(ctx, batch, id)
		}
	}
}

// process isolates one batch run. A panic in any stage must not kill the
// worker; the applicant gets a system error notification instead.
func (d *Dispatcher) process(ctx context.Context, batch *Batch, worker int) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("batch panicked", map[string]interface{}{
				"run":    batch.RunID,
				"worker": worker,
				"panic":  rec,
			})
			d.notifier.Execute(ctx, &sendnotification.Input{
				Channel: sendnotification.ChannelPush,
				Target:  batch.Applicant.ApplicantID,
				Event:   models.EventSystemError,
				Payload: map[string]interface{}{"run_id": batch.RunID},
			})
		}
	}()

	if err := d.runner.Run(ctx, batch); err != nil {
		d.logger.Error("batch failed", map[string]interface{}{
			"run":    batch.RunID,
			"worker": worker,
			"error":  err.Error(),
		})
	}
}
