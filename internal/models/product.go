package models

// Product is a catalog entry. The storefront sells a fixed set of products;
// there is no catalog management, so the list lives in code.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

var Catalog = []Product{
	{
		ID:          1,
		Name:        "Wireless Bluetooth Headphones",
		Price:       99.99,
		Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=300&fit=crop",
		Category:    "Electronics",
		Description: "High-quality wireless headphones with noise cancellation",
	},
	{
		ID:          2,
		Name:        "Smart Watch",
		Price:       199.99,
		Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=300&h=300&fit=crop",
		Category:    "Electronics",
		Description: "Feature-rich smartwatch with health monitoring",
	},
	{
		ID:          3,
		Name:        "Laptop Backpack",
		Price:       49.99,
		Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=300&h=300&fit=crop",
		Category:    "Accessories",
		Description: "Durable laptop backpack with multiple compartments",
	},
	{
		ID:          4,
		Name:        "Wireless Mouse",
		Price:       29.99,
		Image:       "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=300&h=300&fit=crop",
		Category:    "Electronics",
		Description: "Ergonomic wireless mouse with precision tracking",
	},
	{
		ID:          5,
		Name:        "USB-C Hub",
		Price:       39.99,
		Image:       "https://images.unsplash.com/photo-1625842268584-8f3296236761?w=300&h=300&fit=crop",
		Category:    "Electronics",
		Description: "Multi-port USB-C hub with 4K HDMI output",
	},
	{
		ID:          6,
		Name:        "Phone Case",
		Price:       19.99,
		Image:       "https://images.unsplash.com/photo-1601593346740-925612772716?w=300&h=300&fit=crop",
		Category:    "Accessories",
		Description: "Protective phone case with shock absorption",
	},
}

// FindProduct returns the catalog entry with the given id, or false.
func FindProduct(id int) (Product, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
