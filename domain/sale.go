package domain

// SaleEvent is one row of the sales history. Events are append-only; the
// history never rewrites past rows.
type SaleEvent struct {
	Timestamp    string `json:"timestamp"`
	ProductName  string `json:"product_name"`
	QuantitySold int64  `json:"quantity_sold"`
	Revenue      int64  `json:"revenue"`
}

// CartLine is one (product, quantity) pair within a submitted cart.
type CartLine struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

// Per-line outcomes of a cart submission.
const (
	LineRecorded          = "recorded"
	LineInsufficientStock = "insufficient_stock"
	LineUnknownProduct    = "unknown_product"
	LineInvalidQuantity   = "invalid_quantity"
)

// LineResult reports what happened to a single cart line. Revenue is set
// only for recorded lines.
type LineResult struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	Status      string `json:"status"`
	Revenue     int64  `json:"revenue,omitempty"`
}

// BatchReport is the result of submitting a cart. Recorded stays true even
// when individual lines were skipped: a submission is a best-effort batch.
type BatchReport struct {
	ReceiptID string       `json:"receipt_id"`
	Recorded  bool         `json:"recorded"`
	Lines     []LineResult `json:"lines"`
}
