package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/dwlr-monitor/internal/config"
	"github.com/couchcryptid/dwlr-monitor/internal/domain"
)

// Reading is the wire form of one station's water level at one tick.
type Reading struct {
	StationID  string       `json:"station_id"`
	WaterLevel float64      `json:"water_level"`
	Category   domain.Level `json:"category"`
	Seq        uint64       `json:"seq"`
	TakenAt    time.Time    `json:"taken_at"`
}

// Writer produces station readings to a Kafka topic.
// It implements simulator.SnapshotPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured readings topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes one message per station in a single WriteMessages call.
// Keys are station IDs so a station's readings stay ordered on one partition.
func (w *Writer) Publish(ctx context.Context, snap domain.Snapshot) error {
	if len(snap.Stations) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(snap.Stations))
	for i := range snap.Stations {
		msg, err := serializeReading(newReading(snap, snap.Stations[i]))
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish snapshot %d: %w", snap.Seq, err)
	}
	w.logger.Debug("snapshot published", "seq", snap.Seq, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func newReading(snap domain.Snapshot, s domain.Station) Reading {
	return Reading{
		StationID:  s.ID,
		WaterLevel: s.WaterLevel,
		Category:   domain.WaterLevelCategory(s.WaterLevel),
		Seq:        snap.Seq,
		TakenAt:    snap.TakenAt,
	}
}

// serializeReading marshals a Reading into a Kafka message.
func serializeReading(r Reading) (kafkago.Message, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize reading: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(r.StationID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(r.Category)},
			{Key: "taken_at", Value: []byte(r.TakenAt.Format(time.RFC3339))},
		},
	}, nil
}

// DecodeReading parses a message produced by Writer.
func DecodeReading(msg kafkago.Message) (Reading, error) {
	var r Reading
	if err := json.Unmarshal(msg.Value, &r); err != nil {
		return Reading{}, fmt.Errorf("decode reading %q: %w", msg.Key, err)
	}
	return r, nil
}
