package model

// Product is one catalog entry. Immutable once fetched; the catalog
// service owns the only copy for the session.
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     int     `json:"cost"`
	Rating   float64 `json:"rating"`
	Image    string  `json:"image"`
}
