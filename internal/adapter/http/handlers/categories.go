package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"taskvault/internal/adapter/http/dto"
	"taskvault/internal/adapter/http/mapper"
	"taskvault/internal/adapter/http/middleware"
	"taskvault/internal/adapter/http/validation"
	"taskvault/internal/core/domain"
	"taskvault/internal/core/ports"
	"taskvault/pkg/apierrors"
)

type CategoryHandler struct {
	categoryService ports.CategoryService
}

func NewCategoryHandler(categoryService ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	lang := middleware.GetLang(c)

	categories, err := h.categoryService.ListCategories(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		zap.L().Error("failed to list categories", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListCategories, lang),
		)
		return
	}

	items := mapper.ToCategoryItems(categories)
	c.JSON(http.StatusOK, dto.CategoryListResponse{Count: len(items), Data: items})
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	lang := middleware.GetLang(c)

	category, err := h.categoryService.GetCategory(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		h.renderCategoryError(c, lang, err, apierrors.MsgFailGetCategory, "failed to get category")
		return
	}

	c.JSON(http.StatusOK, mapper.ToCategoryItem(*category))
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCategoryPayload, lang),
		)
		return
	}

	input, err := validation.BuildCreateCategoryInput(middleware.GetUserID(c), req)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCategoryPayload, lang),
		)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNameTaken) {
			c.JSON(
				http.StatusConflict,
				apierrors.CreateError(http.StatusConflict, apierrors.MsgCategoryNameTaken, lang),
			)
			return
		}
		zap.L().Error("failed to create category", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateCategory, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToCategoryItem(*category))
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	lang := middleware.GetLang(c)

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCategoryPayload, lang),
		)
		return
	}

	var req dto.UpdateCategoryRequest
	var raw map[string]json.RawMessage
	if json.Unmarshal(body, &req) != nil || json.Unmarshal(body, &raw) != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCategoryPayload, lang),
		)
		return
	}

	// GetRawData skips ShouldBindJSON, so the binding tags must run here.
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCategoryPayload, lang),
		)
		return
	}

	input, err := validation.BuildUpdateCategoryInput(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCategoryPayload, lang),
		)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNameTaken) {
			c.JSON(
				http.StatusConflict,
				apierrors.CreateError(http.StatusConflict, apierrors.MsgCategoryNameTaken, lang),
			)
			return
		}
		h.renderCategoryError(c, lang, err, apierrors.MsgFailUpdateCategory, "failed to update category")
		return
	}

	c.JSON(http.StatusOK, mapper.ToCategoryItem(*category))
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	lang := middleware.GetLang(c)

	if err := h.categoryService.DeleteCategory(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		h.renderCategoryError(c, lang, err, apierrors.MsgFailDeleteCategory, "failed to delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{}})
}

func (h *CategoryHandler) renderCategoryError(c *gin.Context, lang string, err error, failKey, logMessage string) {
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgCategoryNotFound, lang),
		)
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(
			http.StatusForbidden,
			apierrors.CreateError(http.StatusForbidden, apierrors.MsgCategoryForbidden, lang),
		)
	default:
		zap.L().Error(logMessage, zap.String("category_id", c.Param("id")), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failKey, lang),
		)
	}
}
