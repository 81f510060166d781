// Package fallback answers the questions no SQL template covers. It tries
// the LLM first with a scoped schema and fresh statistics, then lexical
// table introspection, and finally a clarification prompt. Nothing in this
// package ever surfaces an LLM outage to the user.
package fallback

import (
	"context"
	"regexp"
	"strings"

	"hrms-chatbot/internal/chatbot/executor"
	"hrms-chatbot/internal/chatbot/format"
	"hrms-chatbot/internal/chatbot/safety"
	"hrms-chatbot/internal/chatbot/schema"
	apperrors "hrms-chatbot/internal/common/errors"
	"hrms-chatbot/internal/common/llm"
	"hrms-chatbot/internal/common/logger"
	"hrms-chatbot/internal/common/metrics"
	"hrms-chatbot/internal/models"
)

// sqlLineRe pulls the single statement the prompt contract asks the model to
// emit on its own "SQL:" line. Matching stops at the first blank line so
// trailing prose is never swept into the statement.
var sqlLineRe = regexp.MustCompile(`(?is)\bSQL:\s*(SELECT\s.+?)(?:\n\s*\n|\z)`)

const promptRules = `Rules:
1. Answer only from the schema above. Never invent tables or columns.
2. If data is needed, put exactly one MySQL SELECT statement on its own line starting with "SQL:".
3. SELECT statements only. Never modify data. Never select password columns.
4. Quote the rank column as ` + "`rank`" + `.
5. Company values are exactly '1 Company', '2 Company', '3 Company', 'HQ Company'.
6. Keep the rest of the reply short and conversational.`

// Result is one fallback outcome with the answer path taken, for metrics.
type Result struct {
	Reply string
	Path  string
}

// Orchestrator runs the LLM and introspection stages. The completer may be
// nil when no API key is configured, in which case the LLM stage is skipped.
type Orchestrator struct {
	completer    llm.Completer
	stats        *StatsCache
	introspector *Introspector
	executor     *executor.Executor
	logger       logger.Logger
	historyLimit int
}

func NewOrchestrator(completer llm.Completer, stats *StatsCache, in *Introspector, exec *executor.Executor, log logger.Logger, historyLimit int) *Orchestrator {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &Orchestrator{
		completer:    completer,
		stats:        stats,
		introspector: in,
		executor:     exec,
		logger:       log,
		historyLimit: historyLimit,
	}
}

// Answer resolves a question the template generator declined. It always
// returns a usable reply; the Path reports which stage produced it.
func (o *Orchestrator) Answer(ctx context.Context, normalized string, history []models.Turn) Result {
	if o.completer != nil {
		if reply, ok := o.tryLLM(ctx, normalized, history); ok {
			return Result{Reply: reply, Path: "llm"}
		}
	}
	if reply, ok := o.introspector.Answer(ctx, normalized); ok {
		return Result{Reply: reply, Path: "introspection"}
	}
	return Result{Reply: format.Clarification(), Path: "clarification"}
}

func (o *Orchestrator) tryLLM(ctx context.Context, normalized string, history []models.Turn) (string, bool) {
	system := o.buildSystemPrompt(ctx, normalized)

	if len(history) > o.historyLimit {
		history = history[len(history)-o.historyLimit:]
	}

	raw, err := o.completer.Complete(ctx, system, history, normalized)
	if err != nil {
		metrics.LLMRequests.WithLabelValues("error").Inc()
		if apperrors.IsUpstream(err) {
			o.logger.Warn("llm unavailable, falling back to introspection", map[string]interface{}{"error": err.Error()})
			return "", false
		}
		o.logger.Error("llm request failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}
	metrics.LLMRequests.WithLabelValues("ok").Inc()

	return o.resolveReply(ctx, raw)
}

// buildSystemPrompt assembles schema, statistics and the rule block. The
// schema is scoped by the question's vocabulary so the model sees only the
// tables it plausibly needs.
func (o *Orchestrator) buildSystemPrompt(ctx context.Context, normalized string) string {
	scoped := schema.SelectScoped(normalized)

	var b strings.Builder
	b.WriteString("You are the assistant for an HRMS unit database. Schema:\n")
	b.WriteString(scoped.PromptText())
	if stats := o.stats.Block(ctx); stats != "" {
		b.WriteString("\n")
		b.WriteString(stats)
	}
	b.WriteString("\n")
	b.WriteString(promptRules)
	return b.String()
}

// resolveReply extracts and runs the model's SQL if present, appending the
// formatted rows to the conversational part. A model reply whose SQL fails
// validation or execution is discarded so a later stage can answer instead.
func (o *Orchestrator) resolveReply(ctx context.Context, raw string) (string, bool) {
	m := sqlLineRe.FindStringSubmatch(raw)
	if m == nil {
		reply := strings.TrimSpace(raw)
		return reply, reply != ""
	}

	statement := strings.TrimSpace(m[1])
	prose := strings.TrimSpace(strings.Replace(raw, m[0], "", 1))

	if ok, reason := safety.Validate(statement); !ok {
		metrics.QueriesRejected.WithLabelValues("llm").Inc()
		o.logger.Warn("llm sql rejected", map[string]interface{}{
			"error": apperrors.NewUnsafeQueryError(reason).Error(),
		})
		return "", false
	}

	rs, err := o.executor.Run(ctx, models.GeneratedQuery{SQL: statement}, models.IntentGeneral)
	if err != nil {
		o.logger.Warn("llm sql execution failed", map[string]interface{}{"error": err.Error()})
		return "", false
	}

	rendered := format.Result(rs, models.IntentGeneral, "")
	if prose == "" {
		return rendered, true
	}
	return prose + "\n\n" + rendered, true
}
