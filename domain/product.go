package domain

// Product is one row of the catalog, keyed by Name. Revenue is derived from
// SoldQuantity and Price; it is recomputed on every sale and on catalog
// commit, never trusted as ground truth on its own.
type Product struct {
	Name              string `json:"name"`
	TotalQuantity     int64  `json:"total_quantity"`
	SoldQuantity      int64  `json:"sold_quantity"`
	RemainingQuantity int64  `json:"remaining_quantity"`
	Price             int64  `json:"price"`
	Revenue           int64  `json:"revenue"`
}
