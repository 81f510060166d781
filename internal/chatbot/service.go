// Package chatbot wires the question pipeline: normalize, extract, classify,
// generate, validate, execute, format, with the fallback orchestrator behind
// the template path.
package chatbot

import (
	"context"
	"strings"
	"sync"
	"time"

	"hrms-chatbot/internal/chatbot/executor"
	"hrms-chatbot/internal/chatbot/fallback"
	"hrms-chatbot/internal/chatbot/format"
	"hrms-chatbot/internal/chatbot/nlp"
	"hrms-chatbot/internal/chatbot/safety"
	"hrms-chatbot/internal/chatbot/schema"
	"hrms-chatbot/internal/chatbot/sqlgen"
	"hrms-chatbot/internal/common/config"
	"hrms-chatbot/internal/common/database"
	apperrors "hrms-chatbot/internal/common/errors"
	"hrms-chatbot/internal/common/llm"
	"hrms-chatbot/internal/common/logger"
	"hrms-chatbot/internal/common/metrics"
	"hrms-chatbot/internal/common/observability"
	"hrms-chatbot/internal/models"
)

// childrenQuery is the fact-sheet appendix for family lookups.
const childrenQuery = "SELECT name, date_of_birth, class, part_ii_order FROM children WHERE army_number = ? ORDER BY sr_no"

// titles maps template intents to the heading the formatter renders.
var titles = map[models.Intent]string{
	models.IntentPersonnelLookup:      "Personnel Record",
	models.IntentPersonnelListCompany: "Company Nominal Roll",
	models.IntentCompanyCount:         "Personnel Strength",
	models.IntentLeaveStatus:          "Leave Status",
	models.IntentLeaveBalance:         "Leave Balance",
	models.IntentWeightFitness:        "Weight Status",
	models.IntentLoanQuery:            "Loans",
	models.IntentTaskQuery:            "Tasks",
	models.IntentFamilyLookup:         "Family Members",
	models.IntentCoursesLookup:        "Courses",
	models.IntentParadeState:          "Parade State",
	models.IntentAnalytical:           "Analysis",
	models.IntentDashboardSummary:     "Unit Dashboard",
}

// Service is the chatbot entry point shared by the HTTP handler and tests.
type Service struct {
	cfg    *config.Config
	logger logger.Logger
	db     *database.MySQLClient
	exec   *executor.Executor
	obs    *observability.Observability

	fb *fallback.Orchestrator

	// The completer dials out, so it is built on first use rather than at
	// startup, and only when an API key is configured.
	completerOnce sync.Once
	completer     llm.Completer

	redis *database.RedisClient
	now   func() time.Time
}

func NewService(cfg *config.Config, log logger.Logger, db *database.MySQLClient, rds *database.RedisClient, obs *observability.Observability) *Service {
	exec := executor.New(db, log, cfg.Chatbot.MaxRows)
	return &Service{
		cfg:    cfg,
		logger: log,
		db:     db,
		exec:   exec,
		obs:    obs,
		redis:  rds,
		now:    time.Now,
	}
}

// orchestrator lazily builds the fallback chain, creating the LLM client on
// the first question that needs it.
func (s *Service) orchestrator(ctx context.Context) *fallback.Orchestrator {
	s.completerOnce.Do(func() {
		if !s.cfg.LLM.Enabled {
			s.logger.Info("llm fallback disabled", nil)
		} else {
			client, err := llm.NewGemini(ctx, s.cfg.LLM)
			if err != nil {
				s.logger.Warn("llm client unavailable", map[string]interface{}{"error": err.Error()})
			} else {
				s.completer = client
			}
		}
		stats := fallback.NewStatsCache(s.db, s.redis, s.logger,
			time.Duration(s.cfg.Chatbot.StatsTTLSeconds)*time.Second)
		intros := fallback.NewIntrospector(s.db, s.exec, s.logger)
		s.fb = fallback.NewOrchestrator(s.completer, stats, intros, s.exec, s.logger, s.cfg.LLM.HistoryLimit)
	})
	return s.fb
}

// Handle answers one chat request. It never returns a transport error; every
// failure becomes a reply with the Error field set.
func (s *Service) Handle(ctx context.Context, req models.ChatRequest, requester models.RequesterContext) models.ChatResponse {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		metrics.AnswersTotal.WithLabelValues("clarification").Inc()
		return reply(format.Usage())
	}

	start := s.now()
	q := models.Question{Raw: message}
	q.Normalized = nlp.Normalize(message)
	q.Entities = nlp.Extract(q.Normalized, s.now())
	q.Intent = nlp.Classify(q.Normalized, q.Entities)
	s.obs.RecordStage(ctx, "nlp", s.now().Sub(start))

	metrics.QuestionsTotal.WithLabelValues(string(q.Intent)).Inc()
	s.logger.Info("question classified", map[string]interface{}{
		"intent":     string(q.Intent),
		"identifier": q.Entities.Identifier,
		"company":    q.Entities.Company,
	})

	if q.Intent == models.IntentSchema {
		return s.answerSchema(ctx)
	}

	if gen, ok := s.generate(q, requester); ok {
		if resp, ok := s.answerTemplate(ctx, q, gen); ok {
			return resp
		}
		// fall through to the orchestrator on validator rejection
	}

	if q.Intent == models.IntentPersonnelLookup && q.Entities.Identifier == "" {
		metrics.AnswersTotal.WithLabelValues("clarification").Inc()
		return reply("Which person do you mean? Give me an army number, for example *details of 778G*.")
	}

	res := s.orchestrator(ctx).Answer(ctx, q.Normalized, req.History)
	metrics.AnswersTotal.WithLabelValues(res.Path).Inc()
	s.obs.RecordRequest(ctx, res.Path)
	return reply(res.Reply)
}

func (s *Service) generate(q models.Question, requester models.RequesterContext) (models.GeneratedQuery, bool) {
	if q.Intent == models.IntentAnalytical {
		return sqlgen.GenerateAnalytical(q.Normalized, q.Entities)
	}
	return sqlgen.Generate(q.Intent, q.Entities, requester)
}

// answerTemplate runs the deterministic path. ok=false sends the question to
// the fallback orchestrator; a data-store failure is surfaced as an error
// reply rather than demoted.
func (s *Service) answerTemplate(ctx context.Context, q models.Question, gen models.GeneratedQuery) (models.ChatResponse, bool) {
	if ok, reason := safety.Validate(gen.SQL); !ok {
		metrics.QueriesRejected.WithLabelValues("template").Inc()
		s.logger.Error("template query rejected", map[string]interface{}{
			"error": apperrors.NewUnsafeQueryError(reason).Error(),
		})
		return models.ChatResponse{}, false
	}

	rs, err := s.exec.Run(ctx, gen, q.Intent)
	if err != nil {
		s.logger.Error("template execution failed", map[string]interface{}{"error": err.Error()})
		return errorReply("I couldn't complete that.", "Try rephrasing or ask for a specific table."), true
	}

	out := format.Result(rs, q.Intent, titles[q.Intent])

	if q.Intent == models.IntentFamilyLookup && len(rs.Rows) > 0 {
		if appendix := s.childrenAppendix(ctx, q.Entities.Identifier); appendix != "" {
			out += "\n\n" + appendix
		}
	}

	metrics.AnswersTotal.WithLabelValues("template").Inc()
	s.obs.RecordRequest(ctx, "template")
	return reply(out), true
}

// childrenAppendix adds school-going children below the family table. Any
// failure drops the appendix rather than the answer.
func (s *Service) childrenAppendix(ctx context.Context, identifier string) string {
	rs, err := s.exec.Run(ctx, models.GeneratedQuery{
		SQL:    childrenQuery,
		Params: []interface{}{identifier},
	}, models.IntentFamilyLookup)
	if err != nil || len(rs.Rows) == 0 {
		return ""
	}
	return format.Result(rs, models.IntentGeneral, "Children")
}

func (s *Service) answerSchema(ctx context.Context) models.ChatResponse {
	text, err := schema.FetchLive(ctx, s.db)
	if err != nil {
		s.logger.Error("schema answer failed", map[string]interface{}{"error": err.Error()})
		return errorReply("I couldn't read the schema right now.", "Please try again.")
	}
	metrics.AnswersTotal.WithLabelValues("template").Inc()
	return reply("**Available data**\n"+text)
}

// Health reports readiness of the data stores. Redis is optional and does
// not fail the check.
func (s *Service) Health(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return apperrors.NewConnectionError(err)
	}
	if s.redis != nil {
		if err := s.redis.Ping(ctx); err != nil {
			s.logger.Warn("redis unreachable", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// Close releases the lazily built completer.
func (s *Service) Close() error {
	if c, ok := s.completer.(*llm.GeminiClient); ok {
		return c.Close()
	}
	return nil
}

func reply(text string) models.ChatResponse {
	return models.ChatResponse{Reply: text}
}

func errorReply(msg, suggestion string) models.ChatResponse {
	metrics.AnswersTotal.WithLabelValues("error").Inc()
	e := msg
	return models.ChatResponse{Reply: format.Error(msg, suggestion), Error: &e}
}
