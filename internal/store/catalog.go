package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"

	"stalltrack/m/domain"
)

// CatalogHeader is the column set of the persisted catalog, in file order.
// Prior snapshots depend on the exact header text, so it must not change.
var CatalogHeader = []string{"Product Name", "Total Quantity", "Sold Quantity", "Remaining Quantity", "Price", "Revenue"}

// CatalogStore persists the product table to a CSV file. Every save is a
// whole-table overwrite; there is no incremental append or patch.
type CatalogStore struct {
	path string
	seed func() []domain.Product
}

// NewCatalog constructs a CatalogStore backed by the file at path. The seed
// function supplies the initial table when no file exists yet.
func NewCatalog(path string, seed func() []domain.Product) *CatalogStore {
	return &CatalogStore{path: path, seed: seed}
}

// Load reads the persisted catalog. On first use (no file yet) it builds the
// seed catalog, persists it immediately and returns it.
func (s *CatalogStore) Load() ([]domain.Product, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		rows := s.seed()
		if err := s.Save(rows); err != nil {
			return nil, err
		}
		log.Info().Str("path", s.path).Int("rows", len(rows)).Msg("seeded new catalog")
		return rows, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return []domain.Product{}, nil
	}

	rows := make([]domain.Product, 0, len(records)-1)
	for i, rec := range records[1:] {
		p, err := parseCatalogRow(rec)
		if err != nil {
			return nil, fmt.Errorf("catalog %s row %d: %w", s.path, i+2, err)
		}
		rows = append(rows, p)
	}
	return rows, nil
}

// Save overwrites the persisted catalog with the given table.
func (s *CatalogStore) Save(rows []domain.Product) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write catalog %s: %w", s.path, err)
	}

	w := csv.NewWriter(f)
	_ = w.Write(CatalogHeader)
	for _, p := range rows {
		_ = w.Write([]string{
			p.Name,
			strconv.FormatInt(p.TotalQuantity, 10),
			strconv.FormatInt(p.SoldQuantity, 10),
			strconv.FormatInt(p.RemainingQuantity, 10),
			strconv.FormatInt(p.Price, 10),
			strconv.FormatInt(p.Revenue, 10),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write catalog %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write catalog %s: %w", s.path, err)
	}
	return nil
}

func parseCatalogRow(rec []string) (domain.Product, error) {
	if len(rec) < len(CatalogHeader) {
		return domain.Product{}, fmt.Errorf("expected %d columns, got %d", len(CatalogHeader), len(rec))
	}
	nums := make([]int64, 5)
	for i, raw := range rec[1:6] {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.Product{}, fmt.Errorf("column %q: %w", CatalogHeader[i+1], err)
		}
		nums[i] = n
	}
	return domain.Product{
		Name:              rec[0],
		TotalQuantity:     nums[0],
		SoldQuantity:      nums[1],
		RemainingQuantity: nums[2],
		Price:             nums[3],
		Revenue:           nums[4],
	}, nil
}

// ApplyEdit overwrites a single cell, addressed by column header name. There
// is no cross-field validation: dependent fields are left exactly as they
// are, so a remaining quantity inconsistent with total minus sold stands.
func ApplyEdit(rows []domain.Product, index int, field, value string) error {
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("row index %d out of range", index)
	}
	p := &rows[index]
	if field == "Product Name" {
		p.Name = value
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("field %q needs an integer value: %w", field, err)
	}
	switch field {
	case "Total Quantity":
		p.TotalQuantity = n
	case "Sold Quantity":
		p.SoldQuantity = n
	case "Remaining Quantity":
		p.RemainingQuantity = n
	case "Price":
		p.Price = n
	case "Revenue":
		p.Revenue = n
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// AppendRow appends a new product with caller-supplied values. Revenue is
// computed once here and not re-derived until the next global recompute.
func AppendRow(rows []domain.Product, p domain.Product) []domain.Product {
	p.Revenue = p.SoldQuantity * p.Price
	return append(rows, p)
}

// RecomputeRevenue overwrites every row's revenue as sold quantity times
// price. This is the commit step for manual edits and is idempotent.
func RecomputeRevenue(rows []domain.Product) {
	for i := range rows {
		rows[i].Revenue = rows[i].SoldQuantity * rows[i].Price
	}
}
