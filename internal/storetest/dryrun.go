package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLRecorder is a gorm logger that keeps every statement it is shown.
type SQLRecorder struct {
	mu   sync.Mutex
	stmt []string
}

func (r *SQLRecorder) LogMode(logger.LogLevel) logger.Interface       { return r }
func (r *SQLRecorder) Info(context.Context, string, ...interface{})  {}
func (r *SQLRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *SQLRecorder) Error(context.Context, string, ...interface{}) {}

func (r *SQLRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.stmt = append(r.stmt, sql)
	r.mu.Unlock()
}

// Last returns the most recent statement, or "" when none ran.
func (r *SQLRecorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stmt) == 0 {
		return ""
	}
	return r.stmt[len(r.stmt)-1]
}

// DryRunPostgres opens a postgres gorm handle that renders SQL without ever
// connecting.
func DryRunPostgres(t *testing.T) (*gorm.DB, *SQLRecorder) {
	t.Helper()
	recorder := &SQLRecorder{}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=test password=test dbname=test port=5432 sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               recorder,
	})
	if err != nil {
		t.Fatalf("opening dry-run postgres: %v", err)
	}
	return db, recorder
}
