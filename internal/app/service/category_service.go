package service

import (
	"context"
	"sort"

	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
)

type CategoryService struct {
	categories ports.CategoryStore
}

var _ ports.CategoryService = (*CategoryService)(nil)

func NewCategoryService(categories ports.CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) ListCategories(ctx context.Context, ownerID string) ([]domain.Category, error) {
	categories, err := s.categories.Find(ctx, ports.CategoryFilter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	return s.ownedCategory(ctx, ownerID, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, input domain.CreateCategoryInput) (*domain.Category, error) {
	return s.categories.Create(ctx, input)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, ownerID, id string, input domain.UpdateCategoryInput) (*domain.Category, error) {
	if _, err := s.ownedCategory(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return s.categories.Update(ctx, id, input)
}

// DeleteCategory does not cascade: tasks keep the dangling category id until
// they are edited, and population drops it at read time.
func (s *CategoryService) DeleteCategory(ctx context.Context, ownerID, id string) error {
	if _, err := s.ownedCategory(ctx, ownerID, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}

func (s *CategoryService) ownedCategory(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.OwnerID != ownerID {
		return nil, domain.ErrNotOwner
	}
	return category, nil
}
