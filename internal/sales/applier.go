package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"stalltrack/m/domain"
	"stalltrack/m/internal/store"
)

const timestampLayout = "2006-01-02 15:04:05"

// Applier posts submitted carts against the catalog and the sales history.
type Applier struct {
	catalog *store.CatalogStore
	ledger  *store.LedgerStore
	now     func() time.Time
}

// NewApplier constructs an Applier over the given stores.
func NewApplier(catalog *store.CatalogStore, ledger *store.LedgerStore) *Applier {
	return &Applier{catalog: catalog, ledger: ledger, now: time.Now}
}

// Submit applies each cart line independently, in input order, against the
// working catalog. Recorded lines mutate the matching row (sold up,
// remaining down, revenue re-derived from the new sold quantity) and append
// one history event priced at the moment of posting. Lines that cannot be
// applied are skipped without blocking the rest of the batch. After the
// walk, both tables are persisted as whole-table overwrites; a storage
// failure is the only hard error.
func (a *Applier) Submit(catalog []domain.Product, history []domain.SaleEvent, cart []domain.CartLine) (domain.BatchReport, error) {
	report := domain.BatchReport{
		ReceiptID: uuid.NewString(),
		Recorded:  true,
		Lines:     make([]domain.LineResult, 0, len(cart)),
	}

	events := history
	for _, line := range cart {
		res := domain.LineResult{ProductName: line.ProductName, Quantity: line.Quantity}
		idx := findProduct(catalog, line.ProductName)
		switch {
		case idx < 0:
			res.Status = domain.LineUnknownProduct
		case line.Quantity < 1:
			res.Status = domain.LineInvalidQuantity
		case line.Quantity > catalog[idx].RemainingQuantity:
			res.Status = domain.LineInsufficientStock
		default:
			p := &catalog[idx]
			p.SoldQuantity += line.Quantity
			p.RemainingQuantity -= line.Quantity
			p.Revenue = p.SoldQuantity * p.Price
			res.Status = domain.LineRecorded
			res.Revenue = line.Quantity * p.Price
			events = append(events, domain.SaleEvent{
				Timestamp:    a.now().Format(timestampLayout),
				ProductName:  p.Name,
				QuantitySold: line.Quantity,
				Revenue:      res.Revenue,
			})
		}
		if res.Status != domain.LineRecorded {
			log.Warn().
				Str("product", line.ProductName).
				Int64("quantity", line.Quantity).
				Str("reason", res.Status).
				Msg("cart line skipped")
		}
		report.Lines = append(report.Lines, res)
	}

	if err := a.catalog.Save(catalog); err != nil {
		return domain.BatchReport{}, fmt.Errorf("persist catalog: %w", err)
	}
	if err := a.ledger.Save(events); err != nil {
		return domain.BatchReport{}, fmt.Errorf("persist sales history: %w", err)
	}
	return report, nil
}

func findProduct(rows []domain.Product, name string) int {
	for i := range rows {
		if rows[i].Name == name {
			return i
		}
	}
	return -1
}
