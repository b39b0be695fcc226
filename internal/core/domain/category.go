package domain

import "time"

const (
	DefaultCategoryColor = "#3B82F6"
	DefaultCategoryIcon  = "folder"
)

type Category struct {
	ID          string
	Name        string
	Color       string
	Icon        string
	Description *string
	OwnerID     string
	CreatedAt   time.Time
}

// CategorySummary is the denormalized shape embedded in populated tasks and
// reminder notifications.
type CategorySummary struct {
	ID    string
	Name  string
	Color string
	Icon  string
}

func (c Category) Summary() CategorySummary {
	return CategorySummary{ID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon}
}

type CreateCategoryInput struct {
	Name        string
	Color       string
	Icon        string
	Description *string
	OwnerID     string
}

type UpdateCategoryInput struct {
	Name           *string
	Color          *string
	Icon           *string
	Description    *string
	DescriptionSet bool
}
