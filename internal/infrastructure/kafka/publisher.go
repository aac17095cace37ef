// Package kafka publica los eventos de dominio en un tópico de Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/bizos-api/internal/application/ports"
	"github.com/jhoicas/bizos-api/pkg/config"
	"github.com/jhoicas/bizos-api/pkg/logger"
)

var (
	_ ports.EventPublisher = (*Publisher)(nil)
	_ ports.EventPublisher = NopPublisher{}
)

const queueSize = 1000

// Writer subconjunto de *kafka.Writer (permite sustituirlo en tests).
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher productor asíncrono: Publish encola y un goroutine escribe en Kafka.
// Con la cola llena el evento se descarta y se informa el error.
type Publisher struct {
	writer Writer
	events chan ports.Event
	log    *logger.Logger
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewPublisher crea el writer hacia cfg.Brokers/cfg.Topic y arranca el loop de envío.
func NewPublisher(cfg config.KafkaConfig, log *logger.Logger) *Publisher {
	return newPublisher(&kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}, log)
}

func newPublisher(w Writer, log *logger.Logger) *Publisher {
	p := &Publisher{
		writer: w,
		events: make(chan ports.Event, queueSize),
		log:    log.Named("kafka_publisher"),
		done:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.loop()
	return p
}

// Publish encola el evento sin bloquear.
func (p *Publisher) Publish(_ context.Context, ev ports.Event) error {
	select {
	case <-p.done:
		return fmt.Errorf("kafka: publisher cerrado")
	default:
	}
	select {
	case p.events <- ev:
		return nil
	default:
		return fmt.Errorf("kafka: cola llena, evento %s descartado", ev.Type)
	}
}

func (p *Publisher) loop() {
	defer p.wg.Done()
	for {
		select {
		case ev := <-p.events:
			p.send(ev)
		case <-p.done:
			// Vaciar lo que quedó encolado antes de cerrar.
			for {
				select {
				case ev := <-p.events:
					p.send(ev)
				default:
					return
				}
			}
		}
	}
}

func (p *Publisher) send(ev ports.Event) {
	value, err := json.Marshal(ev)
	if err != nil {
		p.log.Error().Err(err).Str("event", ev.Type).Msg("no se pudo serializar el evento")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.CompanyID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	})
	if err != nil {
		p.log.Error().Err(err).Str("event", ev.Type).Str("company_id", ev.CompanyID).Msg("no se pudo producir el evento")
	}
}

// Close detiene el loop tras vaciar la cola y cierra el writer.
func (p *Publisher) Close() error {
	var err error
	p.once.Do(func() {
		close(p.done)
		p.wg.Wait()
		err = p.writer.Close()
	})
	return err
}

// NopPublisher descarta los eventos (sin brokers configurados).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, ports.Event) error { return nil }
