package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"leadcapture_frontend/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinged struct{ BaseEvent }

func (pinged) EventName() string { return "test.pinged" }

func TestPublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	boom := errors.New("boom")

	var calls int
	bus.Subscribe("test.pinged", HandlerFunc(func(context.Context, Event) error {
		calls++
		return nil
	}))
	bus.Subscribe("test.pinged", HandlerFunc(func(context.Context, Event) error {
		calls++
		return boom
	}))

	err := bus.PublishSync(context.Background(), pinged{NewBaseEvent()})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestPublishRecoversPanics(t *testing.T) {
	bus := NewInMemoryBus(logger.Discard())
	var ran atomic.Int32

	bus.Subscribe("test.pinged", HandlerFunc(func(context.Context, Event) error {
		panic("handler exploded")
	}))
	bus.Subscribe("test.pinged", HandlerFunc(func(context.Context, Event) error {
		ran.Add(1)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, pinged{NewBaseEvent()})
	cancel()
	bus.Wait()

	assert.Equal(t, int32(1), ran.Load())
}

func TestNewBaseEventHasIdentity(t *testing.T) {
	a, b := NewBaseEvent(), NewBaseEvent()
	assert.NotEqual(t, a.ID, b.ID)
	assert.WithinDuration(t, time.Now(), a.OccurredAt(), time.Second)
}
