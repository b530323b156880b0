package handler

import "time"

// errorResponse mirrors the envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

// ── Member ───────────────────────────────────────────────────────────────────

type challengeSummaryResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Hint        string `json:"hint,omitempty"`
	Category    string `json:"category"`
	Score       int    `json:"score"`
	Solved      bool   `json:"solved"`
}

type challengeListResponse struct {
	Challenges []challengeSummaryResponse `json:"challenges"`
	UserPoints int                        `json:"userPoints"`
}

type challengeDetailResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Hint        string     `json:"hint,omitempty"`
	Category    string     `json:"category"`
	Score       int        `json:"score"`
	Link        string     `json:"link,omitempty"`
	IsSolved    bool       `json:"isSolved"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
}

type submitFlagRequest struct {
	Flag string `json:"flag" validate:"required,max=500"`
}

type submitFlagResponse struct {
	Correct bool   `json:"correct"`
	Message string `json:"message"`
}

type solverResponse struct {
	UserID           string    `json:"userId"`
	UserName         string    `json:"userName"`
	SolveTimeSeconds int64     `json:"solveTimeSeconds"`
	SolvedAt         time.Time `json:"solvedAt"`
}

type solversResponse struct {
	Solvers []solverResponse `json:"solvers"`
}

type leaderboardQuery struct {
	Page    int `query:"page"`
	PerPage int `query:"perPage"`
}

// ── Admin ────────────────────────────────────────────────────────────────────

type createChallengeRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Hint        string `json:"hint"`
	Link        string `json:"link"        validate:"omitempty,url"`
	Category    string `json:"category"    validate:"required,max=100"`
	Flag        string `json:"flag"        validate:"required,max=500"`
	Score       int    `json:"score"       validate:"gte=0,lte=999999"`
}

type updateChallengeRequest struct {
	Title       *string `json:"title"       validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Hint        *string `json:"hint"`
	Link        *string `json:"link"        validate:"omitempty,url"`
	Category    *string `json:"category"    validate:"omitempty,max=100"`
	Flag        *string `json:"flag"        validate:"omitempty,max=500"`
	Score       *int    `json:"score"       validate:"omitempty,gte=0,lte=999999"`
}

type statsResponse struct {
	TotalChallenges int64 `json:"totalChallenges"`
	TotalUsers      int64 `json:"totalUsers"`
}

type promoteRequest struct {
	Email string `json:"email" validate:"required,email"`
}
