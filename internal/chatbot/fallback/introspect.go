package fallback

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"hrms-chatbot/internal/chatbot/executor"
	"hrms-chatbot/internal/chatbot/format"
	"hrms-chatbot/internal/chatbot/safety"
	"hrms-chatbot/internal/chatbot/schema"
	"hrms-chatbot/internal/common/database"
	"hrms-chatbot/internal/common/logger"
	"hrms-chatbot/internal/models"
)

// domainBoosts nudges scoring toward the table a vocabulary word implies even
// when the word is not part of the table name.
var domainBoosts = map[string]string{
	"soldier":    "personnel",
	"soldiers":   "personnel",
	"jawan":      "personnel",
	"strength":   "personnel",
	"officer":    "users",
	"officers":   "users",
	"leave":      "leave_status_info",
	"loan":       "loans",
	"emi":        "loans",
	"task":       "tasks",
	"course":     "courses",
	"cadre":      "courses",
	"family":     "family_members",
	"kin":        "family_members",
	"child":      "children",
	"children":   "children",
	"weight":     "weight_info",
	"parade":     "parade_state_daily",
	"punishment": "punishments",
	"vehicle":    "vehicle_detail",
	"phone":      "mobile_phones",
	"mobile":     "mobile_phones",
	"sport":      "personnel_sports",
	"medical":    "monthly_medical_status",
	"store":      "stores",
}

// "how" alone is not a count cue ("how is the parade state"); "many" only
// appears in count phrasing.
var countWords = map[string]struct{}{
	"many": {}, "count": {}, "number": {}, "total": {}, "strength": {},
}

// Introspector is the last data-bearing fallback: it picks the table whose
// name and columns best overlap the question's tokens and runs either a
// count or a small sample against it. It never returns an error to the
// caller; anything unrecoverable becomes ok=false.
type Introspector struct {
	db       *database.MySQLClient
	executor *executor.Executor
	logger   logger.Logger
}

func NewIntrospector(db *database.MySQLClient, exec *executor.Executor, log logger.Logger) *Introspector {
	return &Introspector{db: db, executor: exec, logger: log}
}

// Answer scores every allow-listed live table against the normalized
// question and answers from the best match.
func (in *Introspector) Answer(ctx context.Context, normalized string) (string, bool) {
	columns, err := schema.FetchLiveColumns(ctx, in.db)
	if err != nil {
		in.logger.Warn("introspection schema fetch failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}

	tokens := tokenize(normalized)
	table := bestTable(columns, tokens)
	if table == "" {
		return "", false
	}

	wantCount := false
	for _, t := range tokens {
		if _, ok := countWords[t]; ok {
			wantCount = true
			break
		}
	}

	var q models.GeneratedQuery
	if wantCount {
		q = models.GeneratedQuery{SQL: "SELECT COUNT(*) AS count FROM `" + table + "`"}
	} else {
		q = models.GeneratedQuery{SQL: "SELECT * FROM `" + table + "` LIMIT 20"}
	}

	if ok, reason := safety.Validate(q.SQL); !ok {
		in.logger.Warn("introspection query rejected", map[string]interface{}{"reason": reason})
		return "", false
	}

	rs, err := in.executor.Run(ctx, q, models.IntentGeneral)
	if err != nil || rs == nil || len(rs.Rows) == 0 {
		return "", false
	}
	return format.Result(rs, models.IntentGeneral, "Closest match: "+table), true
}

// bestTable returns the highest-scoring table, or "" when nothing scores.
// Table-name token hits score 3, column hits 2, domain-boost hits 4. Ties
// break alphabetically so the answer is stable.
func bestTable(columns map[string][]string, tokens []string) string {
	scores := make(map[string]int)
	for _, tok := range tokens {
		if boosted, ok := domainBoosts[tok]; ok {
			if _, live := columns[boosted]; live {
				scores[boosted] += 4
			}
		}
		for table, cols := range columns {
			for _, part := range strings.Split(table, "_") {
				if part == tok || part == tok+"s" || part+"s" == tok {
					scores[table] += 3
				}
			}
			for _, col := range cols {
				for _, part := range strings.Split(strings.ToLower(col), "_") {
					if part == tok {
						scores[table] += 2
					}
				}
			}
		}
	}

	best, bestScore := "", 0
	names := make([]string, 0, len(scores))
	for t := range scores {
		names = append(names, t)
	}
	sort.Strings(names)
	for _, t := range names {
		if scores[t] > bestScore {
			best, bestScore = t, scores[t]
		}
	}
	return best
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
