package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

type recordingWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestPublisher_EscribeEventosConClaveDeEmpresa(t *testing.T) {
	w := &recordingWriter{}
	p := newPublisher(w, logger.Nop())

	require.NoError(t, p.Publish(context.Background(), ports.Event{
		Type: ports.EventStockUpdated, CompanyID: "c1", EntityID: "p1",
	}))
	require.NoError(t, p.Close())

	require.Len(t, w.msgs, 1)
	assert.True(t, w.closed)
	assert.Equal(t, "c1", string(w.msgs[0].Key))

	var ev ports.Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, ports.EventStockUpdated, ev.Type)
	assert.Equal(t, "p1", ev.EntityID)
}

func TestPublisher_ErrorDeEscrituraNoBloquea(t *testing.T) {
	w := &recordingWriter{err: errors.New("broker caído")}
	p := newPublisher(w, logger.Nop())

	require.NoError(t, p.Publish(context.Background(), ports.Event{Type: ports.EventBookingCreated, CompanyID: "c1"}))
	require.NoError(t, p.Close())
	assert.Empty(t, w.msgs)
}

func TestPublisher_CerradoRechaza(t *testing.T) {
	p := newPublisher(&recordingWriter{}, logger.Nop())
	require.NoError(t, p.Close())
	assert.Error(t, p.Publish(context.Background(), ports.Event{Type: ports.EventInvoiceCreated}))
	assert.NoError(t, p.Close())
}
