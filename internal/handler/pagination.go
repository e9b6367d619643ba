package handler

import "gorm.io/gorm"

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// PaginatedResponse defines the structure for a paginated list of any type.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResponse creates a new PaginatedResponse.
func NewPaginatedResponse[T any](data []T, totalItems int64, page, limit int) PaginatedResponse[T] {
	if limit <= 0 {
		limit = 1
	}
	return PaginatedResponse[T]{
		Data: data,
		Meta: PaginationMeta{
			TotalItems:  totalItems,
			TotalPages:  (int(totalItems) + limit - 1) / limit,
			CurrentPage: page,
			PageSize:    limit,
		},
	}
}

// Paginate runs the count/offset/limit sequence over a filtered query and
// returns one page of rows plus the total match count. The caller maps the
// rows to response DTOs and wraps them with NewPaginatedResponse.
func Paginate[T any](query *gorm.DB, page, limit int) ([]T, int64, error) {
	var totalItems int64
	if err := query.Model(new(T)).Count(&totalItems).Error; err != nil {
		return nil, 0, err
	}

	var results []T
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, totalItems, nil
}
