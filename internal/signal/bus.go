// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package signal

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/parkpilot/parkpilot/internal/metrics"
	"github.com/parkpilot/parkpilot/internal/models"
)

// UpdateHandler receives wait-time snapshots. Handlers must not block;
// slow consumers stall the per-subscriber output channel, not the bus.
type UpdateHandler func(*models.CachedWaitTimes)

// Bus fans wait-time snapshots out to subscribers, one topic per park.
// The realtime upstream channel is reference-counted: the first subscriber
// for a park opens it, the last one closes it.
type Bus struct {
	pubsub   *gochannel.GoChannel
	realtime RealtimeProvider
	logger   zerolog.Logger

	mu    sync.Mutex
	parks map[string]*parkStream
}

// parkStream tracks one park's subscriber count and upstream stream.
type parkStream struct {
	subscribers int
	cancel      context.CancelFunc
	stop        func()
}

// NewBus creates the fan-out bus. realtime may be NoopRealtimeProvider
// when the push capability is absent.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBus(realtime RealtimeProvider, logger zerolog.Logger) *Bus {
	if realtime == nil {
		realtime = NoopRealtimeProvider{}
	}
	l := logger.With().Str("component", "signal.bus").Logger()
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 64,
		}, watermillAdapter{logger: l}),
		realtime: realtime,
		logger:   l,
		parks:    make(map[string]*parkStream),
	}
}

func topicFor(parkID string) string {
	return "waittimes." + parkID
}

// Publish fans a snapshot out to every subscriber of its park.
func (b *Bus) Publish(snapshot *models.CachedWaitTimes) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubsub.Publish(topicFor(snapshot.ParkID), msg); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	metrics.PubSubPublishes.WithLabelValues(snapshot.ParkID).Inc()
	return nil
}

// Subscribe registers a handler for a park's snapshots and returns an
// idempotent unsubscribe function. The first subscriber for a park opens
// the upstream realtime stream; the last unsubscribe closes it.
func (b *Bus) Subscribe(ctx context.Context, parkID string, handler UpdateHandler) (func(), error) {
	subCtx, cancelSub := context.WithCancel(ctx)

	msgs, err := b.pubsub.Subscribe(subCtx, topicFor(parkID))
	if err != nil {
		cancelSub()
		return nil, fmt.Errorf("subscribe %s: %w", parkID, err)
	}

	if err := b.addSubscriber(parkID); err != nil {
		cancelSub()
		return nil, err
	}

	go b.dispatch(parkID, msgs, handler)

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			cancelSub()
			b.removeSubscriber(parkID)
		})
	}
	return unsubscribe, nil
}

func (b *Bus) dispatch(parkID string, msgs <-chan *message.Message, handler UpdateHandler) {
	for msg := range msgs {
		var snapshot models.CachedWaitTimes
		if err := json.Unmarshal(msg.Payload, &snapshot); err != nil {
			b.logger.Error().Err(err).Str("park", parkID).Msg("malformed snapshot on bus")
			msg.Ack()
			continue
		}
		handler(&snapshot)
		msg.Ack()
	}
}

func (b *Bus) addSubscriber(parkID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stream, ok := b.parks[parkID]
	if !ok {
		streamCtx, cancel := context.WithCancel(context.Background())
		stop, err := b.realtime.Start(streamCtx, parkID, func(snapshot *models.CachedWaitTimes) {
			if err := b.Publish(snapshot); err != nil {
				b.logger.Error().Err(err).Str("park", parkID).Msg("realtime publish failed")
			}
		})
		if err != nil {
			cancel()
			return fmt.Errorf("open realtime stream for %s: %w", parkID, err)
		}
		stream = &parkStream{cancel: cancel, stop: stop}
		b.parks[parkID] = stream
		b.logger.Info().Str("park", parkID).Msg("realtime stream opened")
	}

	stream.subscribers++
	metrics.PubSubSubscribers.WithLabelValues(parkID).Set(float64(stream.subscribers))
	return nil
}

func (b *Bus) removeSubscriber(parkID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stream, ok := b.parks[parkID]
	if !ok {
		return
	}
	stream.subscribers--
	metrics.PubSubSubscribers.WithLabelValues(parkID).Set(float64(stream.subscribers))

	// The count can only be re-checked under the lock; a racing Subscribe
	// between the decrement and here would have bumped it back up.
	if stream.subscribers > 0 {
		return
	}
	stream.cancel()
	stream.stop()
	delete(b.parks, parkID)
	b.logger.Info().Str("park", parkID).Msg("realtime stream closed")
}

// Subscribers returns the current subscriber count for a park.
func (b *Bus) Subscribers(parkID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if stream, ok := b.parks[parkID]; ok {
		return stream.subscribers
	}
	return 0
}

// Close shuts the bus down, closing every upstream stream and all
// subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	for parkID, stream := range b.parks {
		stream.cancel()
		stream.stop()
		delete(b.parks, parkID)
	}
	b.mu.Unlock()
	return b.pubsub.Close()
}

// watermillAdapter bridges watermill's logging into zerolog.
type watermillAdapter struct {
	logger zerolog.Logger
}

func (a watermillAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.event(a.logger.Error().Err(err), msg, fields)
}

func (a watermillAdapter) Info(msg string, fields watermill.LogFields) {
	a.event(a.logger.Debug(), msg, fields) // watermill info is noise at our info level
}

func (a watermillAdapter) Debug(msg string, fields watermill.LogFields) {
	a.event(a.logger.Debug(), msg, fields)
}

func (a watermillAdapter) Trace(msg string, fields watermill.LogFields) {
	a.event(a.logger.Trace(), msg, fields)
}

func (a watermillAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	ctx := a.logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return watermillAdapter{logger: ctx.Logger()}
}

func (a watermillAdapter) event(e *zerolog.Event, msg string, fields watermill.LogFields) {
	for k, v := range fields {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}
