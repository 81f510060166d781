package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"hrms-chatbot/internal/common/database"
	"hrms-chatbot/internal/common/logger"
)

const statsKey = "chatbot:dbstats"

// statsTables are the tables whose row counts anchor the prompt so the model
// knows which tables actually hold data.
var statsTables = []string{
	"personnel", "users", "leave_status_info", "leave_details",
	"loans", "tasks", "courses", "family_members",
}

type dbStats struct {
	Counts    map[string]int64 `json:"counts"`
	Companies []string         `json:"companies"`
}

// StatsCache produces the database statistics block for the LLM prompt,
// cached in Redis. A missing or failing Redis never blocks the prompt; the
// stats are simply recomputed, and a failing database yields an empty block.
type StatsCache struct {
	db     *database.MySQLClient
	redis  *database.RedisClient
	logger logger.Logger
	ttl    time.Duration
}

func NewStatsCache(db *database.MySQLClient, rds *database.RedisClient, log logger.Logger, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StatsCache{db: db, redis: rds, logger: log, ttl: ttl}
}

// Block returns the rendered stats section, empty on total failure.
func (s *StatsCache) Block(ctx context.Context) string {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsKey); err == nil && cached != "" {
			var st dbStats
			if json.Unmarshal([]byte(cached), &st) == nil {
				return render(st)
			}
		}
	}

	st, err := s.collect(ctx)
	if err != nil {
		s.logger.Warn("stats collection failed, prompt will omit stats", map[string]interface{}{"error": err.Error()})
		return ""
	}

	if s.redis != nil {
		if payload, err := json.Marshal(st); err == nil {
			if err := s.redis.Set(ctx, statsKey, string(payload), s.ttl); err != nil {
				s.logger.Warn("stats cache write failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
	return render(st)
}

func (s *StatsCache) collect(ctx context.Context) (dbStats, error) {
	st := dbStats{Counts: make(map[string]int64)}
	for _, table := range statsTables {
		var n int64
		row := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM `"+table+"`")
		if err := row.Scan(&n); err != nil {
			return dbStats{}, fmt.Errorf("count %s: %w", table, err)
		}
		st.Counts[table] = n
	}

	rows, err := s.db.Query(ctx, "SELECT DISTINCT company FROM personnel WHERE company IS NOT NULL ORDER BY company")
	if err != nil {
		return dbStats{}, fmt.Errorf("company list: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return dbStats{}, err
		}
		st.Companies = append(st.Companies, c)
	}
	return st, rows.Err()
}

func render(st dbStats) string {
	var b strings.Builder
	b.WriteString("Database statistics:\n")
	tables := make([]string, 0, len(st.Counts))
	for t := range st.Counts {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	for _, t := range tables {
		b.WriteString(fmt.Sprintf("- %s: %d rows\n", t, st.Counts[t]))
	}
	if len(st.Companies) > 0 {
		b.WriteString("- companies: " + strings.Join(st.Companies, ", ") + "\n")
	}
	return b.String()
}
