// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the application.
package observability

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verita_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "verita_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// VotesCast counts votes by target kind and transition outcome
	// (created, removed, switched).
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verita_votes_cast_total",
		Help: "Total number of vote operations by target kind and outcome",
	}, []string{"target", "outcome"})

	// QuestionsCreated counts questions posted.
	QuestionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verita_questions_created_total",
		Help: "Total number of questions created",
	})

	// AnswersAccepted counts answer acceptance events.
	AnswersAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verita_answers_accepted_total",
		Help: "Total number of answers marked as accepted",
	})

	// NotificationsCreated counts notifications fanned out by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verita_notifications_created_total",
		Help: "Total number of notifications created by type",
	}, []string{"type"})

	// AdminActions counts moderation actions by action type.
	AdminActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verita_admin_actions_total",
		Help: "Total number of admin moderation actions by type",
	}, []string{"action"})
)

// ObserveSQL records latency for a completed statement, deriving the
// operation and table labels from the SQL text. Called from the GORM logger.
func ObserveSQL(sql string, elapsed time.Duration) {
	operation, table := parseSQL(sql)
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(elapsed.Seconds())
}

func parseSQL(sql string) (operation, table string) {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "other", "unknown"
	}
	operation = strings.ToLower(fields[0])
	table = "unknown"

	switch operation {
	case "update":
		if len(fields) > 1 {
			table = normalizeIdent(fields[1])
		}
	case "select", "delete", "insert":
		keyword := "from"
		if operation == "insert" {
			keyword = "into"
		}
		for i, f := range fields {
			if strings.EqualFold(f, keyword) && i+1 < len(fields) {
				table = normalizeIdent(fields[i+1])
				break
			}
		}
	}
	return operation, table
}

func normalizeIdent(s string) string {
	if i := strings.IndexAny(s, "(,;"); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(s, `"`)
}
