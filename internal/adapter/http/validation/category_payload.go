package validation

import (
	"encoding/json"
	"errors"
	"strings"

	"taskvault/internal/adapter/http/dto"
	"taskvault/internal/core/domain"
)

var ErrInvalidCategoryPayload = errors.New("invalid category payload")

func BuildCreateCategoryInput(ownerID string, req dto.CreateCategoryRequest) (domain.CreateCategoryInput, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CreateCategoryInput{}, ErrInvalidCategoryPayload
	}

	input := domain.CreateCategoryInput{
		Name:        name,
		Description: req.Description,
		OwnerID:     ownerID,
	}
	if req.Color != nil {
		input.Color = *req.Color
	}
	if req.Icon != nil {
		input.Icon = strings.TrimSpace(*req.Icon)
	}

	return input, nil
}

func BuildUpdateCategoryInput(req dto.UpdateCategoryRequest, raw map[string]json.RawMessage) (domain.UpdateCategoryInput, error) {
	if len(raw) == 0 {
		return domain.UpdateCategoryInput{}, ErrInvalidCategoryPayload
	}

	var input domain.UpdateCategoryInput

	if hasJSONField(raw, "name") {
		if req.Name == nil {
			return domain.UpdateCategoryInput{}, ErrInvalidCategoryPayload
		}
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.UpdateCategoryInput{}, ErrInvalidCategoryPayload
		}
		input.Name = &name
	}

	if hasJSONField(raw, "color") {
		if req.Color == nil {
			return domain.UpdateCategoryInput{}, ErrInvalidCategoryPayload
		}
		input.Color = req.Color
	}

	if hasJSONField(raw, "icon") {
		if req.Icon == nil {
			return domain.UpdateCategoryInput{}, ErrInvalidCategoryPayload
		}
		icon := strings.TrimSpace(*req.Icon)
		input.Icon = &icon
	}

	if hasJSONField(raw, "description") {
		input.DescriptionSet = true
		input.Description = req.Description
	}

	return input, nil
}
