package category

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gcit-apps/be-suggestion-box/config"
	"github.com/gcit-apps/be-suggestion-box/pkg/apperrors"
	"github.com/gcit-apps/be-suggestion-box/pkg/logger"
)

// GetActiveCategoriesHandler lists the categories students can pick from.
func GetActiveCategoriesHandler(c echo.Context) error {
	log := logger.Get().WithComponent("category")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	categories := []Category{}
	err := config.DB.Select(&categories, `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
		WHERE is_active = TRUE
		ORDER BY name ASC
	`)
	if err != nil {
		log.Error("Failed to fetch active categories", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, categories)
}

// GetAllCategoriesHandler lists every category, active or not, for admins.
func GetAllCategoriesHandler(c echo.Context) error {
	log := logger.Get().WithComponent("category")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	categories := []Category{}
	err := config.DB.Select(&categories, `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		log.Error("Failed to fetch categories", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, categories)
}

// CreateCategoryHandler adds a new category. Names are unique.
func CreateCategoryHandler(c echo.Context) error {
	log := logger.Get().WithComponent("category")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	req := new(CreateCategoryRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid category request payload", logger.Err(err))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Name is required",
		))
	}

	var exists bool
	err := config.DB.Get(&exists, `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`, req.Name)
	if err != nil {
		log.Error("Failed to check existing category", err, logger.String("name", req.Name))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	if exists {
		return apperrors.RespondWithError(c, apperrors.NewConflict(
			apperrors.ErrCodeResourceExists,
			"Category already exists",
		))
	}

	var category Category
	err = config.DB.Get(&category, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, is_active, created_at, updated_at
	`, req.Name, req.Description)
	if err != nil {
		log.Error("Failed to create category", err, logger.String("name", req.Name))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Category created", logger.CategoryID(category.ID), logger.String("name", category.Name))

	return c.JSON(http.StatusCreated, category)
}

// UpdateCategoryHandler patches a category. Only provided fields change.
func UpdateCategoryHandler(c echo.Context) error {
	log := logger.Get().WithComponent("category")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeCategoryNotFound,
			"Category not found",
		))
	}

	req := new(UpdateCategoryRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid category update payload", logger.Err(err))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeValidationFailed,
				"Name cannot be empty",
			))
		}
		req.Name = &trimmed
	}

	var category Category
	err = config.DB.Get(&category, `
		UPDATE categories
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			is_active = COALESCE($3, is_active),
			updated_at = NOW()
		WHERE id = $4
		RETURNING id, name, description, is_active, created_at, updated_at
	`, req.Name, req.Description, req.IsActive, categoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeCategoryNotFound,
				"Category not found",
			))
		}
		log.Error("Failed to update category", err, logger.CategoryID(categoryID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Category updated", logger.CategoryID(category.ID))

	return c.JSON(http.StatusOK, category)
}

// DeleteCategoryHandler removes a category permanently. Feedback rows keep
// their category string, so history is unaffected.
func DeleteCategoryHandler(c echo.Context) error {
	log := logger.Get().WithComponent("category")
	requestID := logger.GetRequestIDFromContext(c)
	log = log.WithRequestID(requestID)

	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeCategoryNotFound,
			"Category not found",
		))
	}

	result, err := config.DB.Exec(`DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		log.Error("Failed to delete category", err, logger.CategoryID(categoryID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeCategoryNotFound,
			"Category not found",
		))
	}

	log.Info("Category deleted", logger.CategoryID(categoryID))

	return c.JSON(http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
