package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestPGHandler_OnlyErrors(t *testing.T) {
	db, _ := setupMockDB(t)
	h := NewPGHandler(db)
	t.Cleanup(h.Stop)

	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPGHandler_MapsAttributes(t *testing.T) {
	db, mock := setupMockDB(t)
	h := NewPGHandler(db)

	scoped := slog.New(h).With("request_id", "req-1")
	scoped.Error("checkout exploded",
		"session_id", "session_1_abc",
		"action", "cart_add",
		"error", errors.New("boom"),
		"latency_ms", 12.6,
		"path", "/api/cart",
	)

	h.sink.mu.Lock()
	require.Len(t, h.sink.buffer, 1)
	entry := h.sink.buffer[0]
	h.sink.mu.Unlock()

	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "session_1_abc", entry.SessionID)
	assert.Equal(t, "cart_add", entry.Action)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)
	assert.Nil(t, entry.UserID)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, "/api/cart", extra["path"])

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "system_logs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(entry.ID))
	mock.ExpectCommit()

	h.Stop()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMultiHandler_FansOut(t *testing.T) {
	var info, debug bytes.Buffer
	m := NewMultiHandler(NewJSONHandler(&info, false), NewJSONHandler(&debug, true))
	scoped := slog.New(m).With("request_id", "r")

	scoped.Debug("only development")
	scoped.Info("everyone")

	assert.NotContains(t, info.String(), "only development")
	assert.Contains(t, info.String(), "everyone")
	assert.Contains(t, debug.String(), "only development")
	assert.Contains(t, debug.String(), `"request_id":"r"`)
}

func TestPurgeBefore(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "system_logs" WHERE timestamp < $1`)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	assert.Equal(t, int64(4), PurgeBefore(db, time.Now().AddDate(0, 0, -30)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
