package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

type SubmissionRepository struct {
	col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{col: db.Collection(collectionSubmissions)}
}

type submissionDoc struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	ChallengeID string    `bson:"challenge_id"`
	Flag        string    `bson:"flag"`
	Correct     bool      `bson:"correct"`
	SubmittedAt time.Time `bson:"submitted_at"`
}

// Insert appends one attempt. Submissions are never updated or deleted.
func (r *SubmissionRepository) Insert(ctx context.Context, s *domain.Submission) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := submissionDoc{
		ID:          s.ID,
		UserID:      s.UserID,
		ChallengeID: s.ChallengeID,
		Flag:        s.Flag,
		Correct:     s.Correct,
		SubmittedAt: s.SubmittedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}
