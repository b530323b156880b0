package ports

import (
	"context"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

// SubmissionRepository appends flag attempts to the audit log.
type SubmissionRepository interface {
	Insert(ctx context.Context, s *domain.Submission) error
}
