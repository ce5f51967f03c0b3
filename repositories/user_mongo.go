package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/project-registry/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UsersCollection is the collection holding user documents. Its email field
// carries a unique index (see database.EnsureMongoIndexes).
const UsersCollection = "users"

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d userDocument) model() *models.User {
	return &models.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoUserRepository stores user accounts in MongoDB
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a repository over the users collection of db
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(UsersCollection)}
}

// FindByEmail retrieves a user by email address
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

// Create inserts a new user document
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	user.CreatedAt = now
	user.UpdatedAt = now

	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Email:     user.Email,
		Password:  user.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	user.ID = doc.ID.Hex()
	return nil
}
