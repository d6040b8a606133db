package models

// RentalItem представляет арендуемый предмет.
// CategoryID ссылается на родительскую категорию. В ответах сервера поле
// не передается, клиент заполняет его сам из параметров запроса.
type RentalItem struct {
	ID              int64  `db:"rental_item_id" json:"rental_item_id"`
	Name            string `db:"rental_item_name" json:"rental_item_name"`
	CategoryID      int64  `db:"category_id" json:"category_id,omitempty"`
	CreatedByUserID *int64 `db:"created_by_user_id" json:"-"`
}

// RentalItemsResponse - ответ GET category/{categoryId}/items/.
type RentalItemsResponse struct {
	Items []RentalItem `json:"items"`
}

// AddRentalItemRequest - тело POST category/{categoryId}/items/.
type AddRentalItemRequest struct {
	Name            string `json:"rental_item_name"`
	CreatedByUserID int64  `json:"created_by_user_id"`
}

// AddRentalItemResponse - ответ POST category/{categoryId}/items/.
type AddRentalItemResponse struct {
	RentalItem RentalItem `json:"rentalItem"`
}

// UpdateRentalItemRequest - тело PUT rentalitem/{rentalItemId}/.
type UpdateRentalItemRequest struct {
	Name string `json:"rental_item_name"`
}
