package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"taskvault/internal/adapter/storage/file"
	"taskvault/internal/app/service"
	"taskvault/internal/core/domain"
)

func newCategoryService(t *testing.T) (*service.CategoryService, *file.CategoryStore) {
	t.Helper()

	categories, err := file.NewCategoryStore(t.TempDir())
	require.NoError(t, err)
	return service.NewCategoryService(categories), categories
}

func TestListCategoriesSortedByName(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	for _, name := range []string{"Work", "Errands", "Personal"} {
		_, err := svc.CreateCategory(ctx, domain.CreateCategoryInput{Name: name, OwnerID: "u1"})
		require.NoError(t, err)
	}
	_, err := svc.CreateCategory(ctx, domain.CreateCategoryInput{Name: "Admin", OwnerID: "u2"})
	require.NoError(t, err)

	listed, err := svc.ListCategories(ctx, "u1")
	require.NoError(t, err)

	names := make([]string, 0, len(listed))
	for _, category := range listed {
		names = append(names, category.Name)
	}
	require.Equal(t, []string{"Errands", "Personal", "Work"}, names)
}

func TestCategoryOwnershipGuard(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	foreign, err := svc.CreateCategory(ctx, domain.CreateCategoryInput{Name: "Private", OwnerID: "u2"})
	require.NoError(t, err)

	_, err = svc.GetCategory(ctx, "u1", "missing")
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)

	_, err = svc.GetCategory(ctx, "u1", foreign.ID)
	require.ErrorIs(t, err, domain.ErrNotOwner)

	name := "stolen"
	_, err = svc.UpdateCategory(ctx, "u1", foreign.ID, domain.UpdateCategoryInput{Name: &name})
	require.ErrorIs(t, err, domain.ErrNotOwner)

	require.ErrorIs(t, svc.DeleteCategory(ctx, "u1", foreign.ID), domain.ErrNotOwner)
}

func TestUpdateCategoryPatch(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	created, err := svc.CreateCategory(ctx, domain.CreateCategoryInput{Name: "Work", OwnerID: "u1"})
	require.NoError(t, err)

	color := "#FF0000"
	updated, err := svc.UpdateCategory(ctx, "u1", created.ID, domain.UpdateCategoryInput{Color: &color})
	require.NoError(t, err)
	require.Equal(t, "Work", updated.Name)
	require.Equal(t, "#FF0000", updated.Color)
	require.Equal(t, domain.DefaultCategoryIcon, updated.Icon)
}
