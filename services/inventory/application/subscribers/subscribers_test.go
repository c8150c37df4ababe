package subscribers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/barstock/pkg/config"
	"github.com/ghuser/barstock/pkg/events"
	"github.com/ghuser/barstock/pkg/logger"
	inventoryevents "github.com/ghuser/barstock/services/inventory/domain/events"
	"github.com/ghuser/barstock/services/inventory/domain/models"
)

type recordingInvalidator struct {
	ids []models.ItemID
	err error
}

func (r *recordingInvalidator) InvalidateCache(_ context.Context, id models.ItemID) error {
	r.ids = append(r.ids, id)
	return r.err
}

func newMessage(t *testing.T, v any) *message.Message {
	t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return message.NewMessage(watermill.NewUUID(), payload)
}

func newLogger(buf *bytes.Buffer) logger.Logger {
	return logger.NewWithWriter(&config.Config{LogLevel: "debug"}, buf)
}

func TestHandlerFor_InvalidatesEveryTopic(t *testing.T) {
	for _, topic := range inventoryevents.Topics() {
		t.Run(topic, func(t *testing.T) {
			inv := &recordingInvalidator{}
			h := HandlerFor(topic, inv, logger.Nop())

			evt := inventoryevents.StockAdjustedEvent{Envelope: inventoryevents.NewEnvelope("7")}
			if err := h(context.Background(), newMessage(t, evt)); err != nil {
				t.Fatalf("handler: %v", err)
			}
			if len(inv.ids) != 1 || inv.ids[0] != "7" {
				t.Errorf("invalidated %v, want [7]", inv.ids)
			}
		})
	}
}

func TestStockAdjusted_LowStockWarning(t *testing.T) {
	tests := []struct {
		name     string
		lowStock bool
		wantWarn bool
	}{
		{"below threshold", true, true},
		{"healthy", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := HandlerFor(inventoryevents.TopicStockAdjusted, &recordingInvalidator{}, newLogger(&buf))

			evt := inventoryevents.StockAdjustedEvent{
				Envelope:          inventoryevents.NewEnvelope("3"),
				Name:              "Grey Goose",
				Delta:             -4,
				Quantity:          4,
				LowStockThreshold: 10,
				LowStock:          tt.lowStock,
			}
			if err := h(context.Background(), newMessage(t, evt)); err != nil {
				t.Fatalf("handler: %v", err)
			}

			warned := strings.Contains(buf.String(), `"msg":"low stock"`)
			if warned != tt.wantWarn {
				t.Errorf("low stock warning logged = %v, want %v (log %s)", warned, tt.wantWarn, buf.String())
			}
		})
	}
}

func TestHandler_MalformedPayload(t *testing.T) {
	for _, topic := range inventoryevents.Topics() {
		t.Run(topic, func(t *testing.T) {
			inv := &recordingInvalidator{}
			h := HandlerFor(topic, inv, logger.Nop())

			msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
			if err := h(context.Background(), msg); err == nil {
				t.Fatal("expected decode error")
			}
			if len(inv.ids) != 0 {
				t.Errorf("nothing should be invalidated, got %v", inv.ids)
			}
		})
	}
}

func TestHandler_InvalidationFailureIsRetried(t *testing.T) {
	boom := errors.New("redis down")
	inv := &recordingInvalidator{err: boom}
	h := HandlerFor(inventoryevents.TopicItemDeleted, inv, logger.Nop())

	evt := inventoryevents.ItemDeletedEvent{Envelope: inventoryevents.NewEnvelope("9")}
	if err := h(context.Background(), newMessage(t, evt)); !errors.Is(err, boom) {
		t.Errorf("expected invalidation error to surface for retry, got %v", err)
	}
}

type fakeBus struct {
	topics []string
	failOn string
}

func (f *fakeBus) Subscribe(_ context.Context, topic string, _ events.Handler) (<-chan error, error) {
	if topic == f.failOn {
		return nil, errors.New("no table")
	}
	f.topics = append(f.topics, topic)
	ch := make(chan error)
	close(ch)
	return ch, nil
}

func TestRegister(t *testing.T) {
	bus := &fakeBus{}
	if err := Register(context.Background(), bus, &recordingInvalidator{}, logger.Nop()); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(bus.topics) != len(inventoryevents.Topics()) {
		t.Errorf("subscribed %v, want %v", bus.topics, inventoryevents.Topics())
	}
}

func TestRegister_SubscribeFailure(t *testing.T) {
	bus := &fakeBus{failOn: inventoryevents.TopicItemUpdated}
	err := Register(context.Background(), bus, &recordingInvalidator{}, logger.Nop())
	if err == nil || !strings.Contains(err.Error(), inventoryevents.TopicItemUpdated) {
		t.Errorf("expected subscribe error naming the topic, got %v", err)
	}
}
