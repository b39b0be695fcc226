package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
)

type userDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"createdAt"`
}

type UserStore struct {
	collection *mongo.Collection
}

var _ ports.UserStore = (*UserStore)(nil)

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{collection: db.Collection(usersCollection)}
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var doc userDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user := doc.toDomain()
	return &user, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDoc
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	user := doc.toDomain()
	return &user, nil
}

func (s *UserStore) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	doc := userDoc{
		ID:        newID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.PasswordHash,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	user := doc.toDomain()
	return &user, nil
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
	}
}
