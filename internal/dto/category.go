package dto

import "github.com/fintrack-app/fintrack_backend/internal/core/domain"

// CategoryResponse is one entry of the category catalog.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Color      string `json:"color"`
}

// ToCategoryResponses converts the catalog for the presentation layer.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse(c))
	}
	return out
}
