// AngelaMos | 2026
// repository.go

package tournament

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

const collectionName = "tournaments"

type tournamentDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Location    string             `bson:"location,omitempty"`
	Status      string             `bson:"status"`
	StartDate   time.Time          `bson:"start_date"`
	EndDate     *time.Time         `bson:"end_date,omitempty"`
	Players     []string           `bson:"players,omitempty"`
	PlayerNames []string           `bson:"player_names,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
	CreatedBy   string             `bson:"created_by,omitempty"`
	UpdatedBy   string             `bson:"updated_by,omitempty"`
}

type Repository struct {
	collection *mongo.Collection
}

var _ Store = (*Repository)(nil)

func NewRepository(db *core.Mongo) *Repository {
	return &Repository{collection: db.Collection(collectionName)}
}

// List returns tournaments newest first by start date.
func (r *Repository) List(ctx context.Context) ([]Tournament, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []tournamentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tournaments: %w", err)
	}

	tournaments := make([]Tournament, 0, len(docs))
	for i := range docs {
		tournaments = append(tournaments, toTournament(&docs[i]))
	}

	return tournaments, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Tournament, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}

	var doc tournamentDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("find tournament: %w", err)
	}

	t := toTournament(&doc)
	return &t, nil
}

// GetByIDs returns the tournaments whose ids parse and exist, preserving
// the order of the input ids.
func (r *Repository) GetByIDs(
	ctx context.Context,
	ids []string,
) ([]Tournament, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}

	if len(oids) == 0 {
		return []Tournament{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find tournaments: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []tournamentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tournaments: %w", err)
	}

	byID := make(map[string]Tournament, len(docs))
	for i := range docs {
		t := toTournament(&docs[i])
		byID[t.ID] = t
	}

	ordered := make([]Tournament, 0, len(byID))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}

	return ordered, nil
}

// TournamentName resolves a tournament id to its display name, used to
// denormalize names onto game records at write time.
func (r *Repository) TournamentName(ctx context.Context, id string) (string, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return t.Name, nil
}

func (r *Repository) Insert(ctx context.Context, t *Tournament) (string, error) {
	doc := tournamentDoc{
		Name:        t.Name,
		Description: t.Description,
		Location:    t.Location,
		Status:      string(t.Status),
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Players:     t.Players,
		PlayerNames: t.PlayerNames,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		CreatedBy:   t.CreatedBy,
		UpdatedBy:   t.UpdatedBy,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert tournament: %w", err)
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
		return fmt.Errorf("update tournament: %w", err)
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
		return fmt.Errorf("delete tournament: %w", err)
	}

	if result.DeletedCount == 0 {
		return core.ErrNotFound
	}

	return nil
}

func toTournament(doc *tournamentDoc) Tournament {
	return Tournament{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Description: doc.Description,
		Location:    doc.Location,
		Status:      Status(doc.Status),
		StartDate:   doc.StartDate,
		EndDate:     doc.EndDate,
		Players:     doc.Players,
		PlayerNames: doc.PlayerNames,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		CreatedBy:   doc.CreatedBy,
		UpdatedBy:   doc.UpdatedBy,
	}
}
