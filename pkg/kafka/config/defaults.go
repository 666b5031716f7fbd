package kafka_config

import "time"

const (
	DefaultKafkaEnabled = false

	// Default Kafka broker
	DefaultKafkaBrokers = "localhost:9092"

	// Topics
	DefaultReservationsTopic = "sitterhub.reservations"
	DefaultReviewsTopic      = "sitterhub.reviews"
	DefaultDLQTopic          = "sitterhub.dlq"
	DefaultRatingsGroupID    = "sitterhub-ratings-worker"

	// Producer defaults
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // Require all replicas
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false

	// Consumer defaults
	DefaultConsumerStartOffset       = -2 // Oldest, so a new worker heals every pending aggregate
	DefaultConsumerMinBytes          = 1
	DefaultConsumerMaxBytes          = 10 * 1024 * 1024 // 10MB
	DefaultConsumerMaxWait           = 500 * time.Millisecond
	DefaultConsumerCommitInterval    = 1 * time.Second
	DefaultConsumerHeartbeatInterval = 3 * time.Second
	DefaultConsumerSessionTimeout    = 10 * time.Second
	DefaultConsumerRebalanceTimeout  = 60 * time.Second
	DefaultConsumerMaxRetries        = 3
	DefaultConsumerRetryBackoff      = 500 * time.Millisecond

	// Middleware defaults
	DefaultEnableMiddleware = true
)
