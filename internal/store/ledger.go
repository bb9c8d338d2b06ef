package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"stalltrack/m/domain"
)

var ledgerHeader = []string{"Timestamp", "Product Name", "Quantity Sold", "Revenue"}

// LedgerStore persists the sales history to a CSV file. The history is
// append-only semantically but persisted as a full rewrite each time.
type LedgerStore struct {
	path string
}

// NewLedger constructs a LedgerStore backed by the file at path.
func NewLedger(path string) *LedgerStore {
	return &LedgerStore{path: path}
}

// Load reads the persisted sales history. A missing file is an empty ledger.
func (s *LedgerStore) Load() ([]domain.SaleEvent, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.SaleEvent{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open sales history %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read sales history %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return []domain.SaleEvent{}, nil
	}

	events := make([]domain.SaleEvent, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < len(ledgerHeader) {
			return nil, fmt.Errorf("sales history %s row %d: expected %d columns, got %d", s.path, i+2, len(ledgerHeader), len(rec))
		}
		qty, err := strconv.ParseInt(rec[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sales history %s row %d: column %q: %w", s.path, i+2, ledgerHeader[2], err)
		}
		revenue, err := strconv.ParseInt(rec[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sales history %s row %d: column %q: %w", s.path, i+2, ledgerHeader[3], err)
		}
		events = append(events, domain.SaleEvent{
			Timestamp:    rec[0],
			ProductName:  rec[1],
			QuantitySold: qty,
			Revenue:      revenue,
		})
	}
	return events, nil
}

// Save overwrites the persisted history with the given events.
func (s *LedgerStore) Save(events []domain.SaleEvent) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create sales history directory: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write sales history %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	_ = w.Write(ledgerHeader)
	for _, ev := range events {
		_ = w.Write([]string{
			ev.Timestamp,
			ev.ProductName,
			strconv.FormatInt(ev.QuantitySold, 10),
			strconv.FormatInt(ev.Revenue, 10),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write sales history %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write sales history %s: %w", s.path, err)
	}
	return nil
}
