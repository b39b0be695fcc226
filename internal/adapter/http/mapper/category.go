package mapper

import (
	"time"

	"taskvault/internal/adapter/http/dto"
	"taskvault/internal/core/domain"
)

func ToCategoryItems(categories []domain.Category) []dto.CategoryItem {
	items := make([]dto.CategoryItem, 0, len(categories))
	for _, category := range categories {
		items = append(items, ToCategoryItem(category))
	}
	return items
}

func ToCategoryItem(category domain.Category) dto.CategoryItem {
	item := dto.CategoryItem{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
	}

	if category.Description != nil {
		value := *category.Description
		item.Description = &value
	}

	return item
}

func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
