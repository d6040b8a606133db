package models

// Category представляет категорию инвентаря.
// Идентификатор назначается сервером, клиент его уникальность не проверяет.
type Category struct {
	ID   int64  `db:"category_id" json:"category_id"`
	Name string `db:"category_name" json:"category_name"`
}

// CategoriesResponse - ответ GET category/.
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

// CategoryResponse - ответ GET/POST/PUT для одной категории.
type CategoryResponse struct {
	Category Category `json:"category"`
}

// CategoryRequest - тело POST category/ и PUT category/{categoryId}.
type CategoryRequest struct {
	Name string `json:"category_name"`
}
