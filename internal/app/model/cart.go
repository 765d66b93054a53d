package model

// CartRecord is the server-authoritative sparse cart entry. The backend
// may return records with Qty 0; the client tolerates them.
type CartRecord struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// CartItem is the display-ready cart line: product data merged with the
// record quantity. Never persisted; recomputed on every reconcile.
type CartItem struct {
	Product
	Qty int `json:"qty"`

	// Missing marks a record whose product was not found in the catalog.
	// The item keeps its product ID but has no price or name.
	Missing bool `json:"missing,omitempty"`
}

// Displayable reports whether the item should be rendered. Zero-quantity
// lines stay in the list but are hidden from view.
func (i CartItem) Displayable() bool {
	return i.Qty > 0
}
