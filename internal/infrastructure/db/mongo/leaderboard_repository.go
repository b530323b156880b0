package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/owaspcebu/ctf-platform/internal/core/domain"
)

type LeaderboardRepository struct {
	users    *mongo.Collection
	progress *mongo.Collection
}

func NewLeaderboardRepository(db *mongo.Database) *LeaderboardRepository {
	return &LeaderboardRepository{
		users:    db.Collection(collectionUsers),
		progress: db.Collection(collectionProgress),
	}
}

// Page reads one page of users by points desc, name asc, then aggregates the
// solve count and latest solve time for just those users.
func (r *LeaderboardRepository) Page(ctx context.Context, offset, limit int) ([]domain.LeaderboardRow, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "points", Value: -1}, {Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"name": 1, "points": 1})

	cursor, err := r.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find leaderboard users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode leaderboard users: %w", err)
	}

	rows := make([]domain.LeaderboardRow, 0, len(docs))
	if len(docs) == 0 {
		return rows, total, nil
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	stats, err := r.solveStats(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	for _, d := range docs {
		row := domain.LeaderboardRow{UserID: d.ID, Name: d.Name, Points: d.Points}
		if st, ok := stats[d.ID]; ok {
			row.SolvedChallenges = st.Solved
			row.LastSolvedAt = st.LastSolvedAt
		}
		rows = append(rows, row)
	}
	return rows, total, nil
}

func (r *LeaderboardRepository) solveStats(ctx context.Context, userIDs []string) (map[string]domain.SolveStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id":   bson.M{"$in": userIDs},
			"solved_at": bson.M{"$ne": nil},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":  "$user_id",
			"n":    bson.M{"$sum": 1},
			"last": bson.M{"$max": "$solved_at"},
		}}},
	}

	cursor, err := r.progress.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate solve stats: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []struct {
		UserID string    `bson:"_id"`
		N      int       `bson:"n"`
		Last   time.Time `bson:"last"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("decode solve stats: %w", err)
	}

	out := make(map[string]domain.SolveStats, len(groups))
	for _, g := range groups {
		last := g.Last.UTC()
		out[g.UserID] = domain.SolveStats{Solved: g.N, LastSolvedAt: &last}
	}
	return out, nil
}
