package sales

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"stalltrack/m/domain"
	"stalltrack/m/internal/store"
)

func testSeed() []domain.Product {
	return []domain.Product{
		{Name: "4일반스티커", TotalQuantity: 55, RemainingQuantity: 55, Price: 3000},
		{Name: "10엽서", TotalQuantity: 848, RemainingQuantity: 848, Price: 1000},
	}
}

func newTestApplier(t *testing.T) (*Applier, *store.CatalogStore, *store.LedgerStore) {
	t.Helper()
	dir := t.TempDir()
	catalog := store.NewCatalog(filepath.Join(dir, "catalog.csv"), testSeed)
	ledger := store.NewLedger(filepath.Join(dir, "sales_history.csv"))
	a := NewApplier(catalog, ledger)
	a.now = func() time.Time { return time.Date(2025, 3, 1, 14, 5, 9, 0, time.Local) }
	return a, catalog, ledger
}

func TestSubmitRecordsSale(t *testing.T) {
	a, catalog, ledger := newTestApplier(t)
	rows := testSeed()

	report, err := a.Submit(rows, nil, []domain.CartLine{{ProductName: "4일반스티커", Quantity: 10}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !report.Recorded || report.ReceiptID == "" {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Lines) != 1 || report.Lines[0].Status != domain.LineRecorded || report.Lines[0].Revenue != 30000 {
		t.Fatalf("unexpected line result: %+v", report.Lines)
	}

	if rows[0].SoldQuantity != 10 || rows[0].RemainingQuantity != 45 || rows[0].Revenue != 30000 {
		t.Fatalf("row not applied: %+v", rows[0])
	}

	persisted, err := catalog.Load()
	if err != nil {
		t.Fatalf("reload catalog: %v", err)
	}
	if !reflect.DeepEqual(persisted, rows) {
		t.Fatalf("persisted catalog differs:\n got %+v\nwant %+v", persisted, rows)
	}

	events, err := ledger.Load()
	if err != nil {
		t.Fatalf("reload ledger: %v", err)
	}
	want := domain.SaleEvent{Timestamp: "2025-03-01 14:05:09", ProductName: "4일반스티커", QuantitySold: 10, Revenue: 30000}
	if len(events) != 1 || events[0] != want {
		t.Fatalf("unexpected ledger: %+v", events)
	}
}

func TestSubmitSoftRejectsOverStock(t *testing.T) {
	a, _, ledger := newTestApplier(t)
	rows := testSeed()

	report, err := a.Submit(rows, nil, []domain.CartLine{{ProductName: "4일반스티커", Quantity: 100}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !report.Recorded {
		t.Fatalf("batch must still report success: %+v", report)
	}
	if report.Lines[0].Status != domain.LineInsufficientStock {
		t.Fatalf("unexpected status: %+v", report.Lines[0])
	}
	if !reflect.DeepEqual(rows, testSeed()) {
		t.Fatalf("rows mutated on rejection: %+v", rows)
	}
	events, err := ledger.Load()
	if err != nil {
		t.Fatalf("reload ledger: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no ledger rows, got %+v", events)
	}
}

func TestSubmitUnknownProduct(t *testing.T) {
	a, _, _ := newTestApplier(t)
	rows := testSeed()

	report, err := a.Submit(rows, nil, []domain.CartLine{{ProductName: "없는상품", Quantity: 1}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if report.Lines[0].Status != domain.LineUnknownProduct {
		t.Fatalf("unexpected status: %+v", report.Lines[0])
	}
	if !reflect.DeepEqual(rows, testSeed()) {
		t.Fatalf("rows mutated for unknown product: %+v", rows)
	}
}

func TestSubmitInvalidQuantity(t *testing.T) {
	a, _, _ := newTestApplier(t)
	rows := testSeed()

	report, err := a.Submit(rows, nil, []domain.CartLine{{ProductName: "10엽서", Quantity: 0}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if report.Lines[0].Status != domain.LineInvalidQuantity {
		t.Fatalf("unexpected status: %+v", report.Lines[0])
	}
	if !reflect.DeepEqual(rows, testSeed()) {
		t.Fatalf("rows mutated for zero quantity: %+v", rows)
	}
}

func TestSubmitMixedCartCommitsValidLines(t *testing.T) {
	a, _, ledger := newTestApplier(t)
	rows := testSeed()

	report, err := a.Submit(rows, nil, []domain.CartLine{
		{ProductName: "4일반스티커", Quantity: 100}, // over stock, skipped
		{ProductName: "10엽서", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if report.Lines[0].Status != domain.LineInsufficientStock || report.Lines[1].Status != domain.LineRecorded {
		t.Fatalf("unexpected line results: %+v", report.Lines)
	}
	if rows[0].SoldQuantity != 0 || rows[0].RemainingQuantity != 55 {
		t.Fatalf("rejected line mutated its row: %+v", rows[0])
	}
	if rows[1].SoldQuantity != 2 || rows[1].RemainingQuantity != 846 || rows[1].Revenue != 2000 {
		t.Fatalf("valid line not applied: %+v", rows[1])
	}
	events, err := ledger.Load()
	if err != nil {
		t.Fatalf("reload ledger: %v", err)
	}
	if len(events) != 1 || events[0].ProductName != "10엽서" {
		t.Fatalf("unexpected ledger: %+v", events)
	}
}

func TestSubmitAppendsToExistingHistory(t *testing.T) {
	a, _, ledger := newTestApplier(t)
	rows := testSeed()
	history := []domain.SaleEvent{
		{Timestamp: "2025-02-28 10:00:00", ProductName: "10엽서", QuantitySold: 1, Revenue: 1000},
	}

	if _, err := a.Submit(rows, history, []domain.CartLine{{ProductName: "10엽서", Quantity: 3}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	events, err := ledger.Load()
	if err != nil {
		t.Fatalf("reload ledger: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected prior history preserved, got %+v", events)
	}
	if events[0].Timestamp != "2025-02-28 10:00:00" || events[1].QuantitySold != 3 {
		t.Fatalf("unexpected ledger order: %+v", events)
	}
}

func TestSubmitRevenueUsesCurrentPrice(t *testing.T) {
	a, _, _ := newTestApplier(t)
	rows := testSeed()
	// Price was hand-edited since the last sale; revenue must re-derive from
	// the stored sold quantity, not increment the stale revenue cell.
	rows[0].SoldQuantity = 5
	rows[0].RemainingQuantity = 50
	rows[0].Revenue = 999999
	rows[0].Price = 2000

	report, err := a.Submit(rows, nil, []domain.CartLine{{ProductName: "4일반스티커", Quantity: 5}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rows[0].Revenue != 20000 {
		t.Fatalf("expected revenue re-derived as 10*2000, got %d", rows[0].Revenue)
	}
	if report.Lines[0].Revenue != 10000 {
		t.Fatalf("expected line revenue 5*2000, got %d", report.Lines[0].Revenue)
	}
}
