package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fitmatch/backend/internal/models"
	"fitmatch/backend/internal/relations"
)

func TestPollerStopsOnTerminalStatus(t *testing.T) {
	var calls int32
	status := func(ctx context.Context) (models.RelationStatus, error) {
		switch atomic.AddInt32(&calls, 1) {
		case 1, 2:
			return models.StatusPending, nil
		default:
			return models.StatusAccepted, nil
		}
	}

	results := make(chan models.RelationStatus, 1)
	p := New(status, Options{Interval: time.Millisecond})
	p.Start(context.Background(), func(s models.RelationStatus) { results <- s })

	select {
	case got := <-results:
		assert.Equal(t, models.StatusAccepted, got)
	case <-time.After(time.Second):
		t.Fatal("poller did not deliver a terminal status")
	}

	p.Stop()
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(3))
}

func TestPollerRetriesThroughErrors(t *testing.T) {
	var calls int32
	status := func(ctx context.Context) (models.RelationStatus, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return "", errors.New("transient")
		}
		return models.StatusRejected, nil
	}

	results := make(chan models.RelationStatus, 1)
	p := New(status, Options{Interval: time.Millisecond})
	p.Start(context.Background(), func(s models.RelationStatus) { results <- s })
	defer p.Stop()

	select {
	case got := <-results:
		assert.Equal(t, models.StatusRejected, got)
	case <-time.After(time.Second):
		t.Fatal("poller did not survive transient errors")
	}
}

func TestPollerStopCancelsWithoutResult(t *testing.T) {
	status := func(ctx context.Context) (models.RelationStatus, error) {
		return models.StatusPending, nil
	}

	var delivered int32
	p := New(status, Options{Interval: time.Millisecond})
	p.Start(context.Background(), func(models.RelationStatus) { atomic.AddInt32(&delivered, 1) })

	time.Sleep(10 * time.Millisecond)
	p.Stop()
	// Stop is idempotent.
	p.Stop()

	assert.Equal(t, int32(0), atomic.LoadInt32(&delivered), "no result on cancellation")
}

func TestPollerMaxDurationDeliversNone(t *testing.T) {
	status := func(ctx context.Context) (models.RelationStatus, error) {
		return models.StatusPending, nil
	}

	results := make(chan models.RelationStatus, 1)
	p := New(status, Options{
		Interval:    time.Millisecond,
		MaxDuration: 20 * time.Millisecond,
	})
	p.Start(context.Background(), func(s models.RelationStatus) { results <- s })
	defer p.Stop()

	select {
	case got := <-results:
		assert.Equal(t, relations.StatusNone, got)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop at the deadline")
	}
}
