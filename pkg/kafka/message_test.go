package kafka

import (
	"errors"
	"testing"
)

func TestMessageBuilder_Build(t *testing.T) {
	msg, err := NewMessage().
		WithKey("res-1").
		WithValue(map[string]string{"status": "confirmed"}).
		WithEventType("reservation.status_changed").
		WithCorrelationID("req-42").
		WithSource("reservations").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Key != "res-1" {
		t.Errorf("Key = %q, want res-1", msg.Key)
	}
	if string(msg.Value) != `{"status":"confirmed"}` {
		t.Errorf("Value = %s", msg.Value)
	}
	if msg.GetEventID() == "" {
		t.Error("expected event id to be generated")
	}
	if msg.GetEventType() != "reservation.status_changed" {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if msg.GetCorrelationID() != "req-42" {
		t.Errorf("correlation id = %q", msg.GetCorrelationID())
	}
	if _, ok := msg.GetHeader(HeaderTimestamp); !ok {
		t.Error("expected timestamp header")
	}
}

func TestMessageBuilder_EmptyCorrelationIDSkipped(t *testing.T) {
	msg, err := NewMessage().WithKey("k").WithValue(1).WithCorrelationID("").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := msg.GetHeader(HeaderCorrelationID); ok {
		t.Error("empty correlation id should not be set")
	}
}

func TestMessageBuilder_UnencodableValue(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestMessage_RetryCount(t *testing.T) {
	msg := Message{}
	if got := msg.GetRetryCount(); got != 0 {
		t.Fatalf("GetRetryCount() = %d, want 0", got)
	}

	for i := 0; i < 12; i++ {
		msg.IncrementRetryCount()
	}
	if got := msg.GetRetryCount(); got != 12 {
		t.Errorf("GetRetryCount() = %d, want 12", got)
	}
	if msg.Headers[HeaderRetryCount] != "12" {
		t.Errorf("header = %q, want 12", msg.Headers[HeaderRetryCount])
	}

	msg.Headers[HeaderRetryCount] = "garbage"
	if got := msg.GetRetryCount(); got != 0 {
		t.Errorf("GetRetryCount() with garbage = %d, want 0", got)
	}
}

func TestMessage_DecodeValue(t *testing.T) {
	msg := Message{Value: []byte(`{"babysitter_id":"abc"}`)}
	var payload struct {
		BabysitterID string `json:"babysitter_id"`
	}
	if err := msg.DecodeValue(&payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.BabysitterID != "abc" {
		t.Errorf("BabysitterID = %q", payload.BabysitterID)
	}
}
