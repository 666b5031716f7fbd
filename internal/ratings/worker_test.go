package ratings

import (
	"errors"
	"testing"

	kafka_config "sitterhub/pkg/kafka/config"
	"sitterhub/pkg/logger"
)

func TestNewWorker_KafkaDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  *kafka_config.Config
	}{
		{"nil config", nil},
		{"disabled", &kafka_config.Config{Enabled: false, Brokers: []string{"localhost:9092"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWorker(tt.cfg, NewHandler(&mockRecomputer{}, logger.Discard()), logger.Discard())
			if !errors.Is(err, ErrKafkaDisabled) {
				t.Fatalf("err = %v, want ErrKafkaDisabled", err)
			}
			if w != nil {
				t.Error("expected no worker")
			}
		})
	}
}
