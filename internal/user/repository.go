// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/courtkings/api/internal/auth"
	"github.com/courtkings/api/internal/core"
)

const collectionName = "users"

type credentialDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Username   string             `bson:"username"`
	SecretHash string             `bson:"secret_hash"`
	Role       string             `bson:"role"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

type Repository struct {
	collection *mongo.Collection
}

var _ auth.CredentialStore = (*Repository)(nil)

func NewRepository(db *core.Mongo) *Repository {
	return &Repository{collection: db.Collection(collectionName)}
}

// EnsureIndexes creates the unique username index. The index, not
// application code, is the final authority on username uniqueness.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

// FindByUsername matches exactly and case-sensitively.
func (r *Repository) FindByUsername(
	ctx context.Context,
	username string,
) (*auth.Credential, error) {
	var doc credentialDoc

	err := r.collection.
		FindOne(ctx, bson.M{"username": username}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}

	return toCredential(&doc), nil
}

func (r *Repository) Insert(
	ctx context.Context,
	cred *auth.Credential,
) (string, error) {
	now := time.Now().UTC()

	doc := credentialDoc{
		Username:   cred.Username,
		SecretHash: cred.SecretHash,
		Role:       string(cred.Role),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return "", core.ErrDuplicateKey
		}
		return "", fmt.Errorf("insert credential: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	return oid.Hex(), nil
}

func (r *Repository) ListAll(ctx context.Context) ([]auth.Credential, error) {
	cursor, err := r.collection.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "username", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []credentialDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}

	creds := make([]auth.Credential, 0, len(docs))
	for i := range docs {
		creds = append(creds, *toCredential(&docs[i]))
	}

	return creds, nil
}

func (r *Repository) UpdateSecretHash(
	ctx context.Context,
	id, secretHash string,
) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("parse credential id: %w", err)
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"secret_hash": secretHash,
			"updated_at":  time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update secret hash: %w", err)
	}

	if result.MatchedCount == 0 {
		return core.ErrNotFound
	}

	return nil
}

func toCredential(doc *credentialDoc) *auth.Credential {
	return &auth.Credential{
		ID:         doc.ID.Hex(),
		Username:   doc.Username,
		SecretHash: doc.SecretHash,
		Role:       auth.Role(doc.Role),
	}
}
