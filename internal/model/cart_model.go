package model

// CartItem is one (product, quantity, variant) tuple in the cart.
// Uniqueness key is (product slug, variant id).
type CartItem struct {
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	VariantID string  `json:"variantid,omitempty"`
}

func (i CartItem) Matches(slug, variantID string) bool {
	return i.Product.Slug == slug && i.VariantID == variantID
}

type CartResponse struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemcount"`
	Subtotal  float64    `json:"subtotal"`
}
