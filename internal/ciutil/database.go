package ciutil

import (
	"fmt"
	"log/slog"
	"time"
)

// GetTestMongoURI returns the MongoDB URI integration tests connect to,
// preferring SAFARI_TEST_MONGO_URI over SAFARI_DATABASE_URI. It returns ""
// when neither is set.
func GetTestMongoURI(logger *slog.Logger) string {
	return GetEnvWithFallbacks([]string{EnvTestMongoURI, EnvMongoURI}, "", logger)
}

// TestDatabaseName returns a unique database name for one test run so that
// concurrent runs against a shared server do not collide.
func TestDatabaseName(prefix string) string {
	return fmt.Sprintf("%s_test_%d", prefix, time.Now().UnixNano())
}
