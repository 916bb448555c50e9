package domain

var (
	MessageFailedDownloadShoppingList = "failed to download shopping list"

	DefaultShoppingListFilename = "shopping_list.txt"
)

// ShoppingListItem is one aggregated line of a shopping list.
type ShoppingListItem struct {
	Name            string `db:"name" json:"name"`
	MeasurementUnit string `db:"measurement_unit" json:"measurement_unit"`
	TotalAmount     int64  `db:"total_amount" json:"total_amount"`
}
