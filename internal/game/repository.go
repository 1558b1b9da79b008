// AngelaMos | 2026
// repository.go

package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/courtkings/api/internal/core"
)

const collectionName = "games"

type gameDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	TournamentID   string             `bson:"tournament_id,omitempty"`
	TournamentName string             `bson:"tournament_name,omitempty"`
	Player1ID      string             `bson:"player1_id"`
	Player2ID      string             `bson:"player2_id"`
	Player1Name    string             `bson:"player1_name"`
	Player2Name    string             `bson:"player2_name"`
	Score1         int                `bson:"score1"`
	Score2         int                `bson:"score2"`
	Status         string             `bson:"status"`
	Venue          string             `bson:"venue,omitempty"`
	Date           time.Time          `bson:"date"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
	CreatedBy      string             `bson:"created_by,omitempty"`
	UpdatedBy      string             `bson:"updated_by,omitempty"`
}

type Repository struct {
	collection *mongo.Collection
}

var _ Store = (*Repository)(nil)

func NewRepository(db *core.Mongo) *Repository {
	return &Repository{collection: db.Collection(collectionName)}
}

// List returns games newest first, optionally filtered by status or
// tournament.
func (r *Repository) List(
	ctx context.Context,
	status Status,
	tournamentID string,
) ([]Game, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	if tournamentID != "" {
		filter["tournament_id"] = tournamentID
	}

	return r.find(ctx, filter)
}

// ListByPlayer returns every game a player appears in, newest first.
func (r *Repository) ListByPlayer(
	ctx context.Context,
	playerID string,
) ([]Game, error) {
	return r.find(ctx, bson.M{
		"$or": []bson.M{
			{"player1_id": playerID},
			{"player2_id": playerID},
		},
	})
}

func (r *Repository) find(ctx context.Context, filter bson.M) ([]Game, error) {
	cursor, err := r.collection.Find(
		ctx,
		filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []gameDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}

	games := make([]Game, 0, len(docs))
	for i := range docs {
		games = append(games, toGame(&docs[i]))
	}

	return games, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Game, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}

	var doc gameDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("find game: %w", err)
	}

	g := toGame(&doc)
	return &g, nil
}

func (r *Repository) Insert(ctx context.Context, g *Game) (string, error) {
	doc := gameDoc{
		TournamentID:   g.TournamentID,
		TournamentName: g.TournamentName,
		Player1ID:      g.Player1ID,
		Player2ID:      g.Player2ID,
		Player1Name:    g.Player1Name,
		Player2Name:    g.Player2Name,
		Score1:         g.Score1,
		Score2:         g.Score2,
		Status:         string(g.Status),
		Venue:          g.Venue,
		Date:           g.Date,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
		CreatedBy:      g.CreatedBy,
		UpdatedBy:      g.UpdatedBy,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert game: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	return oid.Hex(), nil
}

func (r *Repository) Update(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.ErrNotFound
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}

	if result.MatchedCount == 0 {
		return core.ErrNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}

	if result.DeletedCount == 0 {
		return core.ErrNotFound
	}

	return nil
}

func toGame(doc *gameDoc) Game {
	return Game{
		ID:             doc.ID.Hex(),
		TournamentID:   doc.TournamentID,
		TournamentName: doc.TournamentName,
		Player1ID:      doc.Player1ID,
		Player2ID:      doc.Player2ID,
		Player1Name:    doc.Player1Name,
		Player2Name:    doc.Player2Name,
		Score1:         doc.Score1,
		Score2:         doc.Score2,
		Status:         Status(doc.Status),
		Venue:          doc.Venue,
		Date:           doc.Date,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
		CreatedBy:      doc.CreatedBy,
		UpdatedBy:      doc.UpdatedBy,
	}
}
