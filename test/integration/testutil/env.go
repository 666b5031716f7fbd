package testutil

import (
	"os"
	"testing"
)

const EnvIntegration = "SITTERHUB_INTEGRATION"

type TestEnv struct {
	MongoURI        string
	DatabaseName    string
	AccountsURL     string
	ReservationsURL string
	ReviewsURL      string
}

// Services holds one client per running binary.
type Services struct {
	Accounts     *Client
	Reservations *Client
	Reviews      *Client
}

func NewTestEnv() *TestEnv {
	return &TestEnv{
		MongoURI:        getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName:    getEnv("TEST_DB_NAME", DefaultDatabaseName),
		AccountsURL:     getEnv("TEST_ACCOUNTS_URL", "http://localhost:8080"),
		ReservationsURL: getEnv("TEST_RESERVATIONS_URL", "http://localhost:8081"),
		ReviewsURL:      getEnv("TEST_REVIEWS_URL", "http://localhost:8082"),
	}
}

// Setup needs Mongo and the three HTTP binaries running. It skips unless
// SITTERHUB_INTEGRATION is set.
func (e *TestEnv) Setup(t *testing.T) (*MongoHelper, *Services) {
	t.Helper()

	if os.Getenv(EnvIntegration) == "" {
		t.Skipf("set %s to run integration tests", EnvIntegration)
	}

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanDatabase(t)

	services := &Services{
		Accounts:     NewClient(e.AccountsURL),
		Reservations: NewClient(e.ReservationsURL),
		Reviews:      NewClient(e.ReviewsURL),
	}
	for _, c := range []*Client{services.Accounts, services.Reservations, services.Reviews} {
		c.WaitForHealthy(t, DefaultHealthCheckTimeout)
	}

	return mongo, services
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanDatabase(t)
		mongo.Close(t)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

const (
	DefaultHealthCheckTimeout = 3 * ConnectionTimeout
)
