package sales

import "stalltrack/m/domain"

// TotalRevenue sums the stored revenue column across the whole catalog.
func TotalRevenue(rows []domain.Product) int64 {
	var total int64
	for i := range rows {
		total += rows[i].Revenue
	}
	return total
}

// LineItemRevenue prices a quantity at the product's current price. Callers
// use it to preview a cart before submission, so it must read the stored
// price, never a cached one.
func LineItemRevenue(p domain.Product, quantity int64) int64 {
	return p.Price * quantity
}

// PreviewCart totals a cart at current prices without touching any state.
// Lines that match no catalog row contribute nothing.
func PreviewCart(rows []domain.Product, cart []domain.CartLine) int64 {
	var total int64
	for _, line := range cart {
		if idx := findProduct(rows, line.ProductName); idx >= 0 {
			total += LineItemRevenue(rows[idx], line.Quantity)
		}
	}
	return total
}
