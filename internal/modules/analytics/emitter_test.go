package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureSink struct {
	mu      sync.Mutex
	records [][]byte
	err     error
}

func (s *captureSink) Put(_ context.Context, record []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	cp := make([]byte, len(record))
	copy(cp, record)
	s.records = append(s.records, cp)
	return nil
}

func (s *captureSink) all() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records
}

func TestEmitDeliversNewlineDelimitedJSON(t *testing.T) {
	sink := &captureSink{}
	e := NewEmitter(sink, zap.NewNop())

	e.Emit("post_view", map[string]interface{}{"postId": 7, "slug": "hello-world"})
	e.Close()

	records := sink.all()
	require.Len(t, records, 1)

	raw := records[0]
	assert.Equal(t, byte('\n'), raw[len(raw)-1])

	var rec struct {
		EventType string          `json:"eventType"`
		Timestamp string          `json:"timestamp"`
		Payload   json.RawMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.Equal(t, "post_view", rec.EventType)
	assert.NotEmpty(t, rec.Timestamp)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Payload, &payload))
	assert.EqualValues(t, 7, payload["postId"])
	assert.Equal(t, "hello-world", payload["slug"])
}

func TestEmitPreservesOrderPerEmitter(t *testing.T) {
	sink := &captureSink{}
	e := NewEmitter(sink, zap.NewNop())

	for i := 0; i < 10; i++ {
		e.Emit("post_view", map[string]interface{}{"seq": i})
	}
	e.Close()

	records := sink.all()
	require.Len(t, records, 10)
	for i, raw := range records {
		var rec struct {
			Payload struct {
				Seq int `json:"seq"`
			} `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(raw, &rec))
		assert.Equal(t, i, rec.Payload.Seq)
	}
}

func TestEmitSwallowsDeliveryFailure(t *testing.T) {
	sink := &captureSink{err: errors.New("stream throttled")}
	e := NewEmitter(sink, zap.NewNop())

	e.Emit("post_view", map[string]interface{}{"postId": 1})
	e.Close()

	assert.Empty(t, sink.all())
}

func TestEmitDropsUnserializablePayload(t *testing.T) {
	sink := &captureSink{}
	e := NewEmitter(sink, zap.NewNop())

	e.Emit("bad", map[string]interface{}{"ch": make(chan int)})
	e.Close()

	assert.Empty(t, sink.all())
}

func TestNilSinkIsInert(t *testing.T) {
	e := NewEmitter(nil, zap.NewNop())
	e.Emit("post_view", map[string]interface{}{"postId": 1})
	e.Close()
}

func TestEmitAfterCloseIsNoOp(t *testing.T) {
	sink := &captureSink{}
	e := NewEmitter(sink, zap.NewNop())
	e.Close()

	e.Emit("post_view", map[string]interface{}{"postId": 1})
	assert.Empty(t, sink.all())
}

func TestCloseIsIdempotent(t *testing.T) {
	e := NewEmitter(&captureSink{}, zap.NewNop())
	e.Close()
	e.Close()
}
