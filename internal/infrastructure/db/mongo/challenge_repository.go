package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

type ChallengeRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewChallengeRepository(db *mongo.Database) *ChallengeRepository {
	return &ChallengeRepository{db: db, col: db.Collection(collectionChallenges)}
}

type challengeDoc struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Hint        string    `bson:"hint,omitempty"`
	Category    string    `bson:"category"`
	Flag        string    `bson:"flag"`
	Score       int       `bson:"score"`
	Link        string    `bson:"link,omitempty"`
	SolveCount  int       `bson:"solve_count"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func newChallengeDoc(c *domain.Challenge) challengeDoc {
	return challengeDoc{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Hint:        c.Hint,
		Category:    c.Category,
		Flag:        c.Flag,
		Score:       c.Score,
		Link:        c.Link,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d *challengeDoc) toDomain() *domain.Challenge {
	return &domain.Challenge{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Hint:        d.Hint,
		Category:    d.Category,
		Flag:        d.Flag,
		Score:       d.Score,
		Link:        d.Link,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (r *ChallengeRepository) Create(ctx context.Context, c *domain.Challenge) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, newChallengeDoc(c)); err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}
	return nil
}

func (r *ChallengeRepository) FindByID(ctx context.Context, id string) (*domain.Challenge, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc challengeDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("find challenge: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ChallengeRepository) List(ctx context.Context, order ports.ChallengeOrder) ([]*domain.Challenge, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sort := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	if order == ports.OrderCategory {
		sort = bson.D{{Key: "category", Value: 1}, {Key: "score", Value: 1}, {Key: "title", Value: 1}}
	}

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []challengeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode challenges: %w", err)
	}

	out := make([]*domain.Challenge, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// Update reads the stored challenge, lets apply edit it and writes the
// editable fields back, shifting every solver's points by the score change in
// the same transaction. A solve committing in between touches the same
// document, so the driver retries the whole unit and apply may run again.
func (r *ChallengeRepository) Update(ctx context.Context, id string, apply func(c *domain.Challenge) error) (*domain.Challenge, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := withTransaction(ctx, r.db, func(sc mongo.SessionContext) (interface{}, error) {
		var doc challengeDoc
		if err := r.col.FindOne(sc, bson.M{"_id": id}).Decode(&doc); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrChallengeNotFound
			}
			return nil, fmt.Errorf("find challenge: %w", err)
		}

		c := doc.toDomain()
		if err := apply(c); err != nil {
			return nil, err
		}
		c.ID = doc.ID
		c.CreatedAt = doc.CreatedAt.UTC()

		set := bson.M{
			"title":       c.Title,
			"description": c.Description,
			"hint":        c.Hint,
			"category":    c.Category,
			"flag":        c.Flag,
			"score":       c.Score,
			"link":        c.Link,
			"updated_at":  c.UpdatedAt,
		}
		if _, err := r.col.UpdateOne(sc, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
			return nil, fmt.Errorf("update challenge: %w", err)
		}
		if delta := c.Score - doc.Score; delta != 0 {
			if err := r.adjustSolverPoints(sc, id, delta); err != nil {
				return nil, err
			}
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Challenge), nil
}

// Delete removes the challenge and its progress rows, deducting its score
// from every solver. Submissions stay as an audit trail.
func (r *ChallengeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := withTransaction(ctx, r.db, func(sc mongo.SessionContext) (interface{}, error) {
		var doc challengeDoc
		if err := r.col.FindOne(sc, bson.M{"_id": id}).Decode(&doc); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrChallengeNotFound
			}
			return nil, fmt.Errorf("find challenge: %w", err)
		}
		if err := r.adjustSolverPoints(sc, id, -doc.Score); err != nil {
			return nil, err
		}
		if _, err := r.db.Collection(collectionProgress).DeleteMany(sc, bson.M{"challenge_id": id}); err != nil {
			return nil, fmt.Errorf("delete progress: %w", err)
		}
		if _, err := r.col.DeleteOne(sc, bson.M{"_id": id}); err != nil {
			return nil, fmt.Errorf("delete challenge: %w", err)
		}
		return nil, nil
	})
	return err
}

func (r *ChallengeRepository) adjustSolverPoints(sc mongo.SessionContext, challengeID string, delta int) error {
	solverIDs, err := r.db.Collection(collectionProgress).Distinct(sc, "user_id", bson.M{
		"challenge_id": challengeID,
		"solved_at":    bson.M{"$ne": nil},
	})
	if err != nil {
		return fmt.Errorf("find solvers: %w", err)
	}
	if len(solverIDs) == 0 {
		return nil
	}
	_, err = r.db.Collection(collectionUsers).UpdateMany(sc,
		bson.M{"_id": bson.M{"$in": solverIDs}},
		bson.M{"$inc": bson.M{"points": delta}},
	)
	if err != nil {
		return fmt.Errorf("adjust solver points: %w", err)
	}
	return nil
}

func (r *ChallengeRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count challenges: %w", err)
	}
	return n, nil
}
