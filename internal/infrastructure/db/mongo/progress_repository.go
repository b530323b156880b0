package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

type ProgressRepository struct {
	db         *mongo.Database
	col        *mongo.Collection
	users      *mongo.Collection
	challenges *mongo.Collection
}

func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{
		db:         db,
		col:        db.Collection(collectionProgress),
		users:      db.Collection(collectionUsers),
		challenges: db.Collection(collectionChallenges),
	}
}

type progressDoc struct {
	ID          string     `bson:"_id"`
	UserID      string     `bson:"user_id"`
	ChallengeID string     `bson:"challenge_id"`
	StartedAt   *time.Time `bson:"started_at"`
	SolvedAt    *time.Time `bson:"solved_at"`
}

func (d *progressDoc) toDomain() *domain.Progress {
	return &domain.Progress{
		ID:          d.ID,
		UserID:      d.UserID,
		ChallengeID: d.ChallengeID,
		StartedAt:   utcPtr(d.StartedAt),
		SolvedAt:    utcPtr(d.SolvedAt),
	}
}

func pairFilter(userID, challengeID string) bson.M {
	return bson.M{"user_id": userID, "challenge_id": challengeID}
}

// upsertStarted inserts the row for the pair unless it exists. Two callers
// racing on the upsert can both miss the row and one of them then hits the
// unique index; that row exists afterwards, which is all the caller needs.
func (r *ProgressRepository) upsertStarted(ctx context.Context, userID, challengeID string, at time.Time) error {
	update := bson.M{"$setOnInsert": bson.M{
		"_id":        uuid.NewString(),
		"started_at": at,
		"solved_at":  nil,
	}}
	_, err := r.col.UpdateOne(ctx, pairFilter(userID, challengeID), update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *ProgressRepository) EnsureStarted(ctx context.Context, userID, challengeID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.upsertStarted(ctx, userID, challengeID, at)
}

func (r *ProgressRepository) Find(ctx context.Context, userID, challengeID string) (*domain.Progress, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc progressDoc
	if err := r.col.FindOne(ctx, pairFilter(userID, challengeID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, fmt.Errorf("find progress: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProgressRepository) SolvedChallengeIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ids, err := r.col.Distinct(ctx, "challenge_id", bson.M{
		"user_id":   userID,
		"solved_at": bson.M{"$ne": nil},
	})
	if err != nil {
		return nil, fmt.Errorf("solved challenges: %w", err)
	}

	out := make(map[string]struct{}, len(ids))
	for _, v := range ids {
		if id, ok := v.(string); ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

type solveOutcome struct {
	awarded int
	solved  bool
}

// MarkSolved flips solved_at from null to at and increments the user's points
// by the challenge's current score in a single transaction. The conditional
// filter on solved_at means only one concurrent caller can match; the rest
// see MatchedCount == 0.
func (r *ProgressRepository) MarkSolved(ctx context.Context, userID, challengeID string, at time.Time) (int, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out, err := r.markSolved(ctx, userID, challengeID, at)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		// lost the upsert race inside the transaction; the row exists now
		out, err = r.markSolved(ctx, userID, challengeID, at)
	}
	if err != nil {
		return 0, false, err
	}
	return out.awarded, out.solved, nil
}

// markSolved bumps solve_count on the challenge inside the transaction. The
// write makes a concurrent edit or delete of the same challenge conflict with
// the solve, so one of them is retried against the other's committed state
// and the score read here is the one the user keeps.
func (r *ProgressRepository) markSolved(ctx context.Context, userID, challengeID string, at time.Time) (solveOutcome, error) {
	res, err := withTransaction(ctx, r.db, func(sc mongo.SessionContext) (interface{}, error) {
		var none solveOutcome
		if err := r.challenges.FindOne(sc, bson.M{"_id": challengeID}).Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return none, domain.ErrChallengeNotFound
			}
			return none, fmt.Errorf("find challenge: %w", err)
		}

		upsert := bson.M{"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"started_at": at,
			"solved_at":  nil,
		}}
		if _, err := r.col.UpdateOne(sc, pairFilter(userID, challengeID), upsert, options.Update().SetUpsert(true)); err != nil {
			return none, err
		}

		filter := pairFilter(userID, challengeID)
		filter["solved_at"] = nil
		solved, err := r.col.UpdateOne(sc, filter, bson.M{"$set": bson.M{"solved_at": at}})
		if err != nil {
			return none, fmt.Errorf("set solved_at: %w", err)
		}
		if solved.MatchedCount == 0 {
			return none, nil
		}

		var challenge challengeDoc
		err = r.challenges.FindOneAndUpdate(sc,
			bson.M{"_id": challengeID},
			bson.M{"$inc": bson.M{"solve_count": 1}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&challenge)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return none, domain.ErrChallengeNotFound
			}
			return none, fmt.Errorf("count solve: %w", err)
		}

		inc, err := r.users.UpdateOne(sc, bson.M{"_id": userID}, bson.M{"$inc": bson.M{"points": challenge.Score}})
		if err != nil {
			return none, fmt.Errorf("award points: %w", err)
		}
		if inc.MatchedCount == 0 {
			return none, domain.ErrUserNotFound
		}
		return solveOutcome{awarded: challenge.Score, solved: true}, nil
	})
	if err != nil {
		return solveOutcome{}, err
	}
	out, _ := res.(solveOutcome)
	return out, nil
}

func (r *ProgressRepository) ListSolvers(ctx context.Context, challengeID string) ([]domain.SolveRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{
		"challenge_id": challengeID,
		"solved_at":    bson.M{"$ne": nil},
	})
	if err != nil {
		return nil, fmt.Errorf("list solvers: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []progressDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode solvers: %w", err)
	}
	if len(docs) == 0 {
		return []domain.SolveRecord{}, nil
	}

	userIDs := make([]string, 0, len(docs))
	for _, d := range docs {
		userIDs = append(userIDs, d.UserID)
	}
	names, err := r.userNames(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SolveRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.SolveRecord{
			UserID:    d.UserID,
			UserName:  names[d.UserID],
			StartedAt: utcPtr(d.StartedAt),
			SolvedAt:  d.SolvedAt.UTC(),
		})
	}
	return out, nil
}

func (r *ProgressRepository) userNames(ctx context.Context, ids []string) (map[string]string, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1})
	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("load solver names: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID   string `bson:"_id"`
		Name string `bson:"name"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode solver names: %w", err)
	}

	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
