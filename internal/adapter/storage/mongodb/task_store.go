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

type taskDoc struct {
	ID           string     `bson:"_id"`
	Title        string     `bson:"title"`
	Description  *string    `bson:"description,omitempty"`
	Status       string     `bson:"status"`
	Priority     string     `bson:"priority"`
	DueDate      *time.Time `bson:"dueDate,omitempty"`
	ReminderDate *time.Time `bson:"reminderDate,omitempty"`
	ReminderSent bool       `bson:"reminderSent"`
	Categories   []string   `bson:"categories"`
	Tags         []string   `bson:"tags"`
	CompletedAt  *time.Time `bson:"completedAt,omitempty"`
	User         string     `bson:"user"`
	CreatedAt    time.Time  `bson:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt"`
}

type TaskStore struct {
	collection *mongo.Collection
}

var _ ports.TaskStore = (*TaskStore)(nil)

func NewTaskStore(db *mongo.Database) *TaskStore {
	return &TaskStore{collection: db.Collection(tasksCollection)}
}

func (s *TaskStore) Find(ctx context.Context, filter ports.TaskFilter) ([]domain.Task, error) {
	query := bson.M{}
	if filter.OwnerID != "" {
		query["user"] = filter.OwnerID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Priority != "" {
		query["priority"] = string(filter.Priority)
	}
	if filter.CategoryID != "" {
		query["categories"] = filter.CategoryID
	}

	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []taskDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, nil
}

func (s *TaskStore) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var doc taskDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	task := doc.toDomain()
	return &task, nil
}

func (s *TaskStore) Create(ctx context.Context, input domain.CreateTaskInput) (*domain.Task, error) {
	now := time.Now().UTC()
	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}

	doc := taskDoc{
		ID:           newID(),
		Title:        input.Title,
		Description:  input.Description,
		Status:       string(status),
		Priority:     string(priority),
		DueDate:      input.DueDate,
		ReminderDate: input.ReminderDate,
		ReminderSent: false,
		Categories:   normalizeSlice(input.CategoryIDs),
		Tags:         normalizeSlice(input.Tags),
		CompletedAt:  domain.DeriveCompletedAt(status, nil, now),
		User:         input.OwnerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return nil, err
	}

	task := doc.toDomain()
	return &task, nil
}

// Update writes only the patched fields through a single $set so concurrent
// writers (the reminder sweep flipping reminderSent in particular) are never
// clobbered with stale values.
func (s *TaskStore) Update(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	var current taskDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&current)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	set := bson.M{"updatedAt": now}

	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.DescriptionSet {
		set["description"] = input.Description
	}
	status := domain.TaskStatus(current.Status)
	if input.Status != nil {
		status = *input.Status
		set["status"] = string(status)
	}
	if input.Priority != nil {
		set["priority"] = string(*input.Priority)
	}
	if input.DueDateSet {
		set["dueDate"] = input.DueDate
	}
	if input.ReminderDateSet {
		set["reminderDate"] = input.ReminderDate
	}
	if input.CategoryIDsSet {
		set["categories"] = normalizeSlice(input.CategoryIDs)
	}
	if input.TagsSet {
		set["tags"] = normalizeSlice(input.Tags)
	}
	set["completedAt"] = domain.DeriveCompletedAt(status, current.CompletedAt, now)

	var updated taskDoc
	err = s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	task := updated.toDomain()
	return &task, nil
}

func (s *TaskStore) Delete(ctx context.Context, id string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (s *TaskStore) Count(ctx context.Context, filter ports.TaskFilter) (int, error) {
	tasks, err := s.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(tasks), nil
}

func (s *TaskStore) FindDueReminders(ctx context.Context, window ports.ReminderWindow) ([]domain.Task, error) {
	query := bson.M{
		"reminderDate": bson.M{"$gte": window.From, "$lte": window.To},
		"reminderSent": false,
		"status":       bson.M{"$ne": string(domain.TaskStatusCompleted)},
	}

	cursor, err := s.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []taskDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, nil
}

func (s *TaskStore) MarkReminderSent(ctx context.Context, id string) error {
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"reminderSent": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (d taskDoc) toDomain() domain.Task {
	categories := d.Categories
	if categories == nil {
		categories = []string{}
	}
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}

	return domain.Task{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		Status:       domain.TaskStatus(d.Status),
		Priority:     domain.TaskPriority(d.Priority),
		DueDate:      d.DueDate,
		ReminderDate: d.ReminderDate,
		ReminderSent: d.ReminderSent,
		CategoryIDs:  categories,
		Tags:         tags,
		CompletedAt:  d.CompletedAt,
		OwnerID:      d.User,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
