// Package metrics defines the custom Prometheus metrics of the CTF platform.
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ctf"

// Verdict label values for SubmissionsTotal.
const (
	VerdictCorrect       = "correct"
	VerdictIncorrect     = "incorrect"
	VerdictAlreadySolved = "already_solved"
	VerdictThrottled     = "throttled"
	VerdictError         = "error"
)

// ── Submission metrics ───────────────────────────────────────────────────────

// SubmissionsTotal counts flag submissions.
// Label:
//   - verdict: correct, incorrect, already_solved, throttled or error
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of flag submissions, by verdict.",
	},
	[]string{"verdict"},
)

// SolvesTotal counts first solves, i.e. submissions that awarded points.
var SolvesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "solves_total",
		Help:      "Total number of challenges solved for the first time.",
	},
)

// PointsAwardedTotal sums the points granted by solves.
var PointsAwardedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_awarded_total",
		Help:      "Total number of points awarded to players.",
	},
)

// SubmitDuration measures flag submission latency end to end.
var SubmitDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "submit_duration_seconds",
		Help:      "Duration of flag submission handling.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Leaderboard metrics ──────────────────────────────────────────────────────

// LeaderboardRequestsTotal counts leaderboard page reads.
var LeaderboardRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leaderboard_requests_total",
		Help:      "Total number of global leaderboard page requests.",
	},
)

// ── Admin metrics ────────────────────────────────────────────────────────────

// ChallengeChangesTotal counts admin mutations of the challenge catalogue.
// Label:
//   - op: create, update or delete
var ChallengeChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenge_changes_total",
		Help:      "Total number of challenge create/update/delete operations.",
	},
	[]string{"op"},
)
