package file

import (
	"context"
	"slices"
	"sync"
	"time"

	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
)

const categoriesFileName = "categories.json"

type categoryRecord struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Description *string   `json:"description,omitempty"`
	User        string    `json:"user"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CategoryStore struct {
	path string
	mu   sync.Mutex
}

var _ ports.CategoryStore = (*CategoryStore)(nil)

func NewCategoryStore(dataDir string) (*CategoryStore, error) {
	path, err := ensureDataFile(dataDir, categoriesFileName)
	if err != nil {
		return nil, err
	}
	return &CategoryStore{path: path}, nil
}

func (s *CategoryStore) Find(_ context.Context, filter ports.CategoryFilter) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(records))
	for _, record := range records {
		if matchCategory(record, filter) {
			categories = append(categories, record.toDomain())
		}
	}
	return categories, nil
}

func (s *CategoryStore) FindByID(_ context.Context, id string) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if record.ID == id {
			category := record.toDomain()
			return &category, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (s *CategoryStore) Create(_ context.Context, input domain.CreateCategoryInput) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	// Names are unique per owner, not globally.
	for _, record := range records {
		if record.Name == input.Name && record.User == input.OwnerID {
			return nil, domain.ErrCategoryNameTaken
		}
	}

	color := input.Color
	if color == "" {
		color = domain.DefaultCategoryColor
	}
	icon := input.Icon
	if icon == "" {
		icon = domain.DefaultCategoryIcon
	}

	record := categoryRecord{
		ID:          newID(),
		Name:        input.Name,
		Color:       color,
		Icon:        icon,
		Description: input.Description,
		User:        input.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	records = append(records, record)
	if err := writeCollection(s.path, records); err != nil {
		return nil, err
	}

	category := record.toDomain()
	return &category, nil
}

func (s *CategoryStore) Update(_ context.Context, id string, input domain.UpdateCategoryInput) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	index := slices.IndexFunc(records, func(r categoryRecord) bool { return r.ID == id })
	if index == -1 {
		return nil, domain.ErrCategoryNotFound
	}

	record := records[index]

	if input.Name != nil && *input.Name != record.Name {
		for _, other := range records {
			if other.ID != id && other.Name == *input.Name && other.User == record.User {
				return nil, domain.ErrCategoryNameTaken
			}
		}
		record.Name = *input.Name
	}
	if input.Color != nil {
		record.Color = *input.Color
	}
	if input.Icon != nil {
		record.Icon = *input.Icon
	}
	if input.DescriptionSet {
		record.Description = input.Description
	}

	records[index] = record
	if err := writeCollection(s.path, records); err != nil {
		return nil, err
	}

	category := record.toDomain()
	return &category, nil
}

func (s *CategoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}

	remaining := slices.DeleteFunc(records, func(r categoryRecord) bool { return r.ID == id })
	if len(remaining) == len(records) {
		return domain.ErrCategoryNotFound
	}

	return writeCollection(s.path, remaining)
}

func (s *CategoryStore) Count(ctx context.Context, filter ports.CategoryFilter) (int, error) {
	categories, err := s.Find(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(categories), nil
}

func (s *CategoryStore) load() ([]categoryRecord, error) {
	var records []categoryRecord
	if err := readCollection(s.path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func matchCategory(record categoryRecord, filter ports.CategoryFilter) bool {
	if filter.OwnerID != "" && record.User != filter.OwnerID {
		return false
	}
	if filter.Name != "" && record.Name != filter.Name {
		return false
	}
	return true
}

func (r categoryRecord) toDomain() domain.Category {
	return domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Color:       r.Color,
		Icon:        r.Icon,
		Description: r.Description,
		OwnerID:     r.User,
		CreatedAt:   r.CreatedAt,
	}
}
