// internal/chatbot/fallback/stats_test.go
package fallback

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-chatbot/internal/common/database"
	"hrms-chatbot/internal/common/logger"
)

func newTestStats(t *testing.T) (*StatsCache, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rds := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { rds.Close() })

	cache := NewStatsCache(database.NewMySQLFromDB(db), rds, logger.NewNoOpLogger(), time.Minute)
	return cache, mock, mr
}

func expectCollect(mock sqlmock.Sqlmock) {
	for _, table := range statsTables {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM `" + table + "`").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	}
	mock.ExpectQuery("SELECT DISTINCT company FROM personnel").
		WillReturnRows(sqlmock.NewRows([]string{"company"}).
			AddRow("1 Company").AddRow("2 Company"))
}

func TestStatsBlock_CollectsAndCaches(t *testing.T) {
	cache, mock, mr := newTestStats(t)
	expectCollect(mock)

	block := cache.Block(context.Background())

	assert.Contains(t, block, "Database statistics:")
	assert.Contains(t, block, "- personnel: 10 rows")
	assert.Contains(t, block, "- companies: 1 Company, 2 Company")
	assert.True(t, mr.Exists(statsKey))
	assert.NoError(t, mock.ExpectationsWereMet())

	// second call is served from the cache without touching the database
	again := cache.Block(context.Background())
	assert.Equal(t, block, again)
}

func TestStatsBlock_DatabaseFailureReturnsEmpty(t *testing.T) {
	cache, mock, _ := newTestStats(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM `personnel`").
		WillReturnError(assert.AnError)

	assert.Empty(t, cache.Block(context.Background()))
}

func TestStatsBlock_WorksWithoutRedis(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cache := NewStatsCache(database.NewMySQLFromDB(db), nil, logger.NewNoOpLogger(), time.Minute)
	expectCollect(mock)

	block := cache.Block(context.Background())
	assert.Contains(t, block, "- personnel: 10 rows")
}
