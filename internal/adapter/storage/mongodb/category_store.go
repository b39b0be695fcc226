package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
)

type categoryDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Color       string    `bson:"color"`
	Icon        string    `bson:"icon"`
	Description *string   `bson:"description,omitempty"`
	User        string    `bson:"user"`
	CreatedAt   time.Time `bson:"createdAt"`
}

type CategoryStore struct {
	collection *mongo.Collection
}

var _ ports.CategoryStore = (*CategoryStore)(nil)

func NewCategoryStore(db *mongo.Database) *CategoryStore {
	return &CategoryStore{collection: db.Collection(categoriesCollection)}
}

func (s *CategoryStore) Find(ctx context.Context, filter ports.CategoryFilter) ([]domain.Category, error) {
	query := bson.M{}
	if filter.OwnerID != "" {
		query["user"] = filter.OwnerID
	}
	if filter.Name != "" {
		query["name"] = filter.Name
	}

	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, doc.toDomain())
	}
	return categories, nil
}

func (s *CategoryStore) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	var doc categoryDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	category := doc.toDomain()
	return &category, nil
}

func (s *CategoryStore) Create(ctx context.Context, input domain.CreateCategoryInput) (*domain.Category, error) {
	color := input.Color
	if color == "" {
		color = domain.DefaultCategoryColor
	}
	icon := input.Icon
	if icon == "" {
		icon = domain.DefaultCategoryIcon
	}

	doc := categoryDoc{
		ID:          newID(),
		Name:        input.Name,
		Color:       color,
		Icon:        icon,
		Description: input.Description,
		User:        input.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	// The (name, user) unique index is authoritative for duplicates.
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCategoryNameTaken
		}
		return nil, err
	}

	category := doc.toDomain()
	return &category, nil
}

// Update touches only the patched fields; the (name, user) unique index
// still vetoes a rename onto a taken name.
func (s *CategoryStore) Update(ctx context.Context, id string, input domain.UpdateCategoryInput) (*domain.Category, error) {
	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Color != nil {
		set["color"] = *input.Color
	}
	if input.Icon != nil {
		set["icon"] = *input.Icon
	}
	if input.DescriptionSet {
		set["description"] = input.Description
	}

	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}

	var updated categoryDoc
	err := s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCategoryNameTaken
		}
		return nil, err
	}

	category := updated.toDomain()
	return &category, nil
}

func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (s *CategoryStore) Count(ctx context.Context, filter ports.CategoryFilter) (int, error) {
	categories, err := s.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(categories), nil
}

func (d categoryDoc) toDomain() domain.Category {
	return domain.Category{
		ID:          d.ID,
		Name:        d.Name,
		Color:       d.Color,
		Icon:        d.Icon,
		Description: d.Description,
		OwnerID:     d.User,
		CreatedAt:   d.CreatedAt,
	}
}
