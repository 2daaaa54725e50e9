package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func query() (string, int64) {
	return "SELECT * FROM owners", 2
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("failed query is logged as error", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewGormLogger(zerolog.New(&buf).Level(zerolog.InfoLevel), 0)

		l.Trace(context.Background(), time.Now(), query, errors.New("boom"))

		assert.Contains(t, buf.String(), `"level":"error"`)
		assert.Contains(t, buf.String(), "SELECT * FROM owners")
		assert.Contains(t, buf.String(), "boom")
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewGormLogger(zerolog.New(&buf).Level(zerolog.InfoLevel), 0)

		l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)

		assert.Empty(t, buf.String())
	})

	t.Run("slow query is logged as warning", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewGormLogger(zerolog.New(&buf).Level(zerolog.InfoLevel), time.Millisecond)

		l.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)

		assert.Contains(t, buf.String(), `"level":"warn"`)
		assert.Contains(t, buf.String(), "slow query")
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewGormLogger(zerolog.New(&buf), 0).LogMode(gormlogger.Silent)

		l.Trace(context.Background(), time.Now(), query, errors.New("boom"))

		assert.Empty(t, buf.String())
	})

	t.Run("request logger from context is preferred", func(t *testing.T) {
		var base, request bytes.Buffer
		l := NewGormLogger(zerolog.New(&base), 0)

		reqLogger := zerolog.New(&request).With().Str("request_id", "abc").Logger()
		ctx := reqLogger.WithContext(context.Background())

		l.Trace(ctx, time.Now(), query, errors.New("boom"))

		assert.Empty(t, base.String())
		assert.Contains(t, request.String(), `"request_id":"abc"`)
	})
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, 5, GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, 4, GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, 2, GetPgxTraceLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, 1, GetPgxTraceLogLevel(zerolog.Disabled))
}
