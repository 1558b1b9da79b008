// AngelaMos | 2026
// repository.go

package player

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

const collectionName = "players"

type playerDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	PhotoURL  string             `bson:"photo_url,omitempty"`
	Age       int                `bson:"age,omitempty"`
	Height    string             `bson:"height,omitempty"`
	Weight    string             `bson:"weight,omitempty"`
	Position  string             `bson:"position,omitempty"`
	Phone     string             `bson:"phone,omitempty"`
	Email     string             `bson:"email,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
	CreatedBy string             `bson:"created_by,omitempty"`
	UpdatedBy string             `bson:"updated_by,omitempty"`
}

type Repository struct {
	collection *mongo.Collection
}

var _ Store = (*Repository)(nil)

func NewRepository(db *core.Mongo) *Repository {
	return &Repository{collection: db.Collection(collectionName)}
}

// List returns every player ordered by name, the fixed roster ordering.
func (r *Repository) List(ctx context.Context) ([]Player, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []playerDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}

	players := make([]Player, 0, len(docs))
	for i := range docs {
		players = append(players, toPlayer(&docs[i]))
	}

	return players, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Player, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.ErrNotFound
	}

	var doc playerDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("find player: %w", err)
	}

	p := toPlayer(&doc)
	return &p, nil
}

// PlayerName resolves a roster id to its display name, used to denormalize
// names onto game records at write time.
func (r *Repository) PlayerName(ctx context.Context, id string) (string, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

func (r *Repository) Insert(ctx context.Context, p *Player) (string, error) {
	doc := playerDoc{
		Name:      p.Name,
		PhotoURL:  p.PhotoURL,
		Age:       p.Age,
		Height:    p.Height,
		Weight:    p.Weight,
		Position:  p.Position,
		Phone:     p.Phone,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		CreatedBy: p.CreatedBy,
		UpdatedBy: p.UpdatedBy,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert player: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	return oid.Hex(), nil
}

func (r *Repository) Update(
	ctx context.Context,
	id string,
	fields bson.M,
) error {
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
		return fmt.Errorf("update player: %w", err)
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
		return fmt.Errorf("delete player: %w", err)
	}

	if result.DeletedCount == 0 {
		return core.ErrNotFound
	}

	return nil
}

func toPlayer(doc *playerDoc) Player {
	return Player{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		PhotoURL:  doc.PhotoURL,
		Age:       doc.Age,
		Height:    doc.Height,
		Weight:    doc.Weight,
		Position:  doc.Position,
		Phone:     doc.Phone,
		Email:     doc.Email,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		CreatedBy: doc.CreatedBy,
		UpdatedBy: doc.UpdatedBy,
	}
}
