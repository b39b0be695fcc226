package dto

// CategoryRef is the summary embedded in task payloads.
type CategoryRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type CategoryItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Icon        string  `json:"icon"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=50"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	Icon        *string `json:"icon" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
	Icon        *string `json:"icon" binding:"omitempty,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

type CategoryListResponse struct {
	Count int            `json:"count"`
	Data  []CategoryItem `json:"data"`
}
