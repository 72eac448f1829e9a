// internal/pipeline/dispatcher_test.go
package pipeline

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"credit-pipeline/internal/common/config"
	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"
	sendnotification "credit-pipeline/internal/workers/notification/send-notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	done      chan *Batch
	panicking atomic.Bool
}

func (r *recordingRunner) Run(ctx context.Context, batch *Batch) error {
	if r.panicking.Load() {
		panic("stage exploded")
	}
	r.done <- batch
	return nil
}

type syncNotifier struct {
	inputs chan *sendnotification.Input
}

func (n *syncNotifier) Execute(ctx context.Context, input *sendnotification.Input) (*sendnotification.Output, error) {
	n.inputs <- input
	return &sendnotification.Output{Status: sendnotification.StatusSent}, nil
}

func dispatcherConfig(queueSize, workers int) config.PipelineConfig {
	return config.PipelineConfig{QueueSize: queueSize, Workers: workers}
}

func TestDispatcherRunsSubmittedBatch(t *testing.T) {
	runner := &recordingRunner{done: make(chan *Batch, 1)}
	d := NewDispatcher(dispatcherConfig(4, 2), runner, &syncNotifier{inputs: make(chan *sendnotification.Input, 1)}, logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer d.Stop()

	batch := &Batch{RunID: "run-1", Applicant: models.ApplicantProfile{ApplicantID: "app-1"}}
	require.True(t, d.Submit(batch))

	select {
	case got := <-runner.done:
		assert.Equal(t, "run-1", got.RunID)
	case <-time.After(2 * time.Second):
		t.Fatal("batch never ran")
	}
}

func TestDispatcherRejectsWhenQueueFull(t *testing.T) {
	// workers never started, so the queue fills up
	runner := &recordingRunner{done: make(chan *Batch, 8)}
	d := NewDispatcher(dispatcherConfig(1, 1), runner, &syncNotifier{inputs: make(chan *sendnotification.Input, 1)}, logger.NewTestLogger(t))

	assert.True(t, d.Submit(&Batch{RunID: "run-1"}))
	assert.False(t, d.Submit(&Batch{RunID: "run-2"}))
}

func TestDispatcherRecoversFromPanic(t *testing.T) {
	runner := &recordingRunner{done: make(chan *Batch, 1)}
	runner.panicking.Store(true)
	notifier := &syncNotifier{inputs: make(chan *sendnotification.Input, 1)}
	d := NewDispatcher(dispatcherConfig(4, 1), runner, notifier, logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	defer d.Stop()

	require.True(t, d.Submit(&Batch{RunID: "run-1", Applicant: models.ApplicantProfile{ApplicantID: "app-1"}}))

	select {
	case input := <-notifier.inputs:
		assert.Equal(t, models.EventSystemError, input.Event)
		assert.Equal(t, "app-1", input.Target)
	case <-time.After(2 * time.Second):
		t.Fatal("panic recovery never notified")
	}

	// the worker survives the panic and keeps draining
	runner.panicking.Store(false)
	require.True(t, d.Submit(&Batch{RunID: "run-2", Applicant: models.ApplicantProfile{ApplicantID: "app-1"}}))
	select {
	case got := <-runner.done:
		assert.Equal(t, "run-2", got.RunID)
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after panic")
	}
}
