// Package analytics delivers best-effort event records to a downstream
// ingestion stream. Emission is fire-and-forget: callers never block on
// delivery and never observe its outcome.
package analytics

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultQueueSize = 256
	deliveryTimeout  = 10 * time.Second
)

// Sink transmits one encoded record to the ingestion stream.
type Sink interface {
	Put(ctx context.Context, record []byte) error
}

// record is the wire shape: one JSON object per line, UTF-8.
type record struct {
	EventType string          `json:"eventType"`
	Timestamp string          `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Emitter queues records onto a bounded channel drained by a single delivery
// goroutine. A full queue drops the event with a warning; delivery failures
// are logged and never retried (at-most-once).
type Emitter struct {
	sink  Sink
	log   *zap.Logger
	queue chan []byte
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewEmitter starts the delivery goroutine. A nil sink yields an inert emitter
// so development setups without a stream still work.
func NewEmitter(sink Sink, log *zap.Logger) *Emitter {
	e := &Emitter{
		sink:  sink,
		log:   log,
		queue: make(chan []byte, defaultQueueSize),
	}
	e.wg.Add(1)
	go e.run()
	return e
}

// Emit enqueues an event for asynchronous delivery and returns immediately.
func (e *Emitter) Emit(eventType string, payload interface{}) {
	if e.sink == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		e.log.Warn("analytics payload not serializable, dropping event",
			zap.String("event_type", eventType), zap.Error(err))
		return
	}

	data, err := json.Marshal(record{
		EventType: eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Payload:   body,
	})
	if err != nil {
		e.log.Warn("analytics record not serializable, dropping event",
			zap.String("event_type", eventType), zap.Error(err))
		return
	}
	data = append(data, '\n')

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.queue <- data:
	default:
		e.log.Warn("analytics queue full, dropping event",
			zap.String("event_type", eventType))
	}
}

// Close stops accepting events and waits for queued deliveries to finish.
func (e *Emitter) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.queue)
	e.mu.Unlock()

	e.wg.Wait()
}

func (e *Emitter) run() {
	defer e.wg.Done()
	for data := range e.queue {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		if err := e.sink.Put(ctx, data); err != nil {
			e.log.Warn("analytics delivery failed, dropping event", zap.Error(err))
		}
		cancel()
	}
}
