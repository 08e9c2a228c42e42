package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldservice-api/internal/domain/entity"
)

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_PublishTransfer(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w}
	ts := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	err := p.PublishTransfer(context.Background(), &entity.TransferLogEntry{
		ID: "t1", CompanyID: "c1", PartID: "p1", PartName: "Filtro HEPA", Quantity: 5,
		Direction: entity.DirectionToFacility, FromLocation: entity.CentralWarehouseLabel,
		ToFacilityID: "F1", ToFacilityName: "Clinic A", TransferredBy: "Ana", Timestamp: ts,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "p1", string(w.msgs[0].Key))
	assert.Equal(t, ts, w.msgs[0].Time)

	var ev TransferEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, EventTransferCompleted, ev.Type)
	assert.Equal(t, "t1", ev.Entry.ID)
	assert.Equal(t, "Clinic A", ev.Entry.ToFacilityName)
	assert.Equal(t, 5, ev.Entry.Quantity)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
