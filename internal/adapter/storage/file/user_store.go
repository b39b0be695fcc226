package file

import (
	"context"
	"sync"
	"time"

	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
)

const usersFileName = "users.json"

type userRecord struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserStore struct {
	path string
	mu   sync.Mutex
}

var _ ports.UserStore = (*UserStore)(nil)

func NewUserStore(dataDir string) (*UserStore, error) {
	path, err := ensureDataFile(dataDir, usersFileName)
	if err != nil {
		return nil, err
	}
	return &UserStore{path: path}, nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if record.ID == id {
			user := record.toDomain()
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if record.Email == email {
			user := record.toDomain()
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStore) Create(_ context.Context, input domain.CreateUserInput) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if record.Email == input.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	record := userRecord{
		ID:        newID(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.PasswordHash,
		CreatedAt: time.Now().UTC(),
	}

	records = append(records, record)
	if err := writeCollection(s.path, records); err != nil {
		return nil, err
	}

	user := record.toDomain()
	return &user, nil
}

func (s *UserStore) load() ([]userRecord, error) {
	var records []userRecord
	if err := readCollection(s.path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r userRecord) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.Password,
		CreatedAt:    r.CreatedAt,
	}
}
