package domain

// Order Statuses
const (
	OrderStatusPlaced = "Order Placed"
)

// Payment Types
const (
	PaymentTypeCOD    = "COD"
	PaymentTypeOnline = "Online"
)

// Product categories offered by the storefront.
var ProductCategories = []string{
	"Vegetables",
	"Fruits",
	"Drinks",
	"Instant",
	"Dairy",
	"Bakery",
	"Grains",
}

const ProductListCacheKey = "products:list"
