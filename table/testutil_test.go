package table

import (
	"fmt"
	"math/rand"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func makeTopic() string {
	return fmt.Sprintf("stringslice-%016x", rand.Int63())
}

// testBrokers returns the brokers from KAFKA_BROKERS or skips the test.
func testBrokers(t *testing.T) string {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		t.Skip("KAFKA_BROKERS not set")
	}
	return brokers
}

func testLogger() *log.Logger {
	logger := log.New()
	logger.SetLevel(log.TraceLevel)
	return logger
}

func newTestStore(t *testing.T) *Store {
	store, err := NewStore(&StoreConfig{
		StoragePath: t.TempDir(),
		Logger:      testLogger(),
	})
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}
