package product

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/partsdepot/partsdepot-backend/pkg/db/models"
	"github.com/partsdepot/partsdepot-backend/pkg/enums"
	pkgerrors "github.com/partsdepot/partsdepot-backend/pkg/errors"
	"github.com/partsdepot/partsdepot-backend/pkg/pagination"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func newProductTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:products_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	productsTable := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL,
  brand TEXT,
  price NUMERIC NOT NULL,
  original_price NUMERIC,
  available_qty INTEGER NOT NULL DEFAULT 0,
  is_active BOOLEAN NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	if err := conn.Exec(productsTable).Error; err != nil {
		t.Fatalf("create products table: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := newProductTestDB(t)
	svc, err := NewService(NewRepository(conn), gormTxRunner{db: conn})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, conn
}

func seedProduct(t *testing.T, conn *gorm.DB, mutate func(*models.Product)) *models.Product {
	t.Helper()
	row := &models.Product{
		ID:           uuid.New(),
		SKU:          "SKU-" + uuid.NewString()[:8],
		Name:         "Front Brake Pad Set",
		Category:     enums.CategoryBrakes,
		Price:        decimal.NewFromFloat(54.90),
		AvailableQty: 12,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if mutate != nil {
		mutate(row)
	}
	if err := conn.Create(row).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return row
}

func TestCreateProduct(t *testing.T) {
	svc, conn := newTestService(t)

	brand := "Brembo"
	dto, err := svc.Create(context.Background(), CreateProductInput{
		SKU:          "BRK-1001",
		Name:         "  Ceramic Brake Pads ",
		Category:     enums.CategoryBrakes,
		Brand:        &brand,
		Price:        decimal.NewFromFloat(89.5),
		AvailableQty: 40,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Name != "Ceramic Brake Pads" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if dto.Price != "89.50" {
		t.Fatalf("expected price 89.50, got %q", dto.Price)
	}

	var stored models.Product
	if err := conn.First(&stored, "sku = ?", "BRK-1001").Error; err != nil {
		t.Fatalf("load stored product: %v", err)
	}
	if stored.AvailableQty != 40 {
		t.Fatalf("expected qty 40, got %d", stored.AvailableQty)
	}
}

func TestCreateProductStoresInactiveListing(t *testing.T) {
	svc, conn := newTestService(t)

	dto, err := svc.Create(context.Background(), CreateProductInput{
		SKU:          "BRK-2002",
		Name:         "Drilled Rotor Pair",
		Category:     enums.CategoryBrakes,
		Price:        decimal.NewFromFloat(129.99),
		AvailableQty: 8,
		IsActive:     false,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.IsActive {
		t.Fatal("expected draft listing in response")
	}

	// Read back through the driver so a column default cannot mask the
	// inserted value.
	var stored models.Product
	if err := conn.First(&stored, "sku = ?", "BRK-2002").Error; err != nil {
		t.Fatalf("load stored product: %v", err)
	}
	if stored.IsActive {
		t.Fatal("inactive product was stored active")
	}
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	svc, conn := newTestService(t)
	seedProduct(t, conn, func(p *models.Product) { p.SKU = "DUP-1" })

	_, err := svc.Create(context.Background(), CreateProductInput{
		SKU:      "DUP-1",
		Name:     "Second Listing",
		Category: enums.CategoryEngine,
		Price:    decimal.NewFromInt(10),
		IsActive: true,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateProductRejectsNonPositivePrice(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateProductInput{
		SKU:      "NEG-1",
		Name:     "Bad Price",
		Category: enums.CategoryEngine,
		Price:    decimal.Zero,
		IsActive: true,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateProductAppliesOnlyProvidedFields(t *testing.T) {
	svc, conn := newTestService(t)
	seeded := seedProduct(t, conn, func(p *models.Product) {
		p.Name = "Oil Filter"
		p.Category = enums.CategoryFilters
		p.Price = decimal.NewFromFloat(12.99)
	})

	newPrice := decimal.NewFromFloat(14.49)
	inactive := false
	dto, err := svc.Update(context.Background(), seeded.ID, UpdateProductInput{
		Price:    &newPrice,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Name != "Oil Filter" {
		t.Fatalf("name must be untouched, got %q", dto.Name)
	}
	if dto.Price != "14.49" {
		t.Fatalf("expected updated price, got %q", dto.Price)
	}
	if dto.IsActive {
		t.Fatal("expected product to be deactivated")
	}
	if dto.Category != string(enums.CategoryFilters) {
		t.Fatalf("category must be untouched, got %q", dto.Category)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	name := "Ghost"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateProductInput{Name: &name})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetDetailHidesInactiveProducts(t *testing.T) {
	svc, conn := newTestService(t)
	hidden := seedProduct(t, conn, func(p *models.Product) { p.IsActive = false })

	_, err := svc.GetDetail(context.Background(), hidden.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive product, got %v", err)
	}

	visible := seedProduct(t, conn, nil)
	dto, err := svc.GetDetail(context.Background(), visible.ID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if dto.ID != visible.ID {
		t.Fatalf("expected %s, got %s", visible.ID, dto.ID)
	}
}

func TestSetInventory(t *testing.T) {
	svc, conn := newTestService(t)
	seeded := seedProduct(t, conn, nil)

	dto, err := svc.SetInventory(context.Background(), seeded.ID, 3)
	if err != nil {
		t.Fatalf("set inventory: %v", err)
	}
	if dto.AvailableQty != 3 {
		t.Fatalf("expected qty 3, got %d", dto.AvailableQty)
	}

	if _, err := svc.SetInventory(context.Background(), seeded.ID, -1); pkgerrors.As(err) == nil {
		t.Fatalf("expected validation error for negative qty, got %v", err)
	}
	if _, err := svc.SetInventory(context.Background(), uuid.New(), 5); pkgerrors.As(err) == nil {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	svc, conn := newTestService(t)
	seeded := seedProduct(t, conn, nil)

	if err := svc.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err := svc.Delete(context.Background(), seeded.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on repeat delete, got %v", err)
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	svc, conn := newTestService(t)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		offset := time.Duration(i) * time.Minute
		seedProduct(t, conn, func(p *models.Product) {
			p.SKU = fmt.Sprintf("BRK-%03d", i)
			p.Name = fmt.Sprintf("Brake Disc %d", i)
			p.CreatedAt = base.Add(offset)
			p.UpdatedAt = base.Add(offset)
		})
	}
	seedProduct(t, conn, func(p *models.Product) {
		p.SKU = "ENG-001"
		p.Name = "Timing Belt"
		p.Category = enums.CategoryEngine
		p.CreatedAt = base.Add(time.Hour)
	})
	seedProduct(t, conn, func(p *models.Product) {
		p.SKU = "BRK-OFF"
		p.Name = "Retired Disc"
		p.IsActive = false
		p.CreatedAt = base.Add(2 * time.Hour)
	})

	category := enums.CategoryBrakes
	firstPage, err := svc.List(context.Background(), ListProductsInput{
		Filters:    ProductListFilters{Category: &category},
		Pagination: pagination.Params{Limit: 3},
	})
	if err != nil {
		t.Fatalf("list first page: %v", err)
	}
	if len(firstPage.Products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(firstPage.Products))
	}
	if firstPage.NextCursor == "" {
		t.Fatal("expected a continuation cursor")
	}
	for _, p := range firstPage.Products {
		if p.SKU == "BRK-OFF" {
			t.Fatal("inactive products must be hidden from the storefront list")
		}
	}
	// Newest first.
	if firstPage.Products[0].SKU != "BRK-004" {
		t.Fatalf("expected BRK-004 first, got %s", firstPage.Products[0].SKU)
	}

	secondPage, err := svc.List(context.Background(), ListProductsInput{
		Filters:    ProductListFilters{Category: &category},
		Pagination: pagination.Params{Limit: 3, Cursor: firstPage.NextCursor},
	})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(secondPage.Products) != 2 {
		t.Fatalf("expected 2 remaining products, got %d", len(secondPage.Products))
	}
	if secondPage.NextCursor != "" {
		t.Fatalf("expected no further cursor, got %q", secondPage.NextCursor)
	}
}

func TestListIncludesInactiveForBackOffice(t *testing.T) {
	svc, conn := newTestService(t)
	seedProduct(t, conn, nil)
	seedProduct(t, conn, func(p *models.Product) { p.IsActive = false })

	result, err := svc.List(context.Background(), ListProductsInput{IncludeInactive: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(result.Products))
	}
}

func TestListSearchMatchesNameAndSKU(t *testing.T) {
	svc, conn := newTestService(t)
	seedProduct(t, conn, func(p *models.Product) {
		p.SKU = "FLT-777"
		p.Name = "Cabin Air Filter"
		p.Category = enums.CategoryFilters
	})
	seedProduct(t, conn, func(p *models.Product) {
		p.SKU = "SUS-100"
		p.Name = "Coil Spring"
		p.Category = enums.CategorySuspension
	})

	result, err := svc.List(context.Background(), ListProductsInput{
		Filters: ProductListFilters{Query: "cabin"},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Products) != 1 || result.Products[0].SKU != "FLT-777" {
		t.Fatalf("expected cabin filter match, got %+v", result.Products)
	}

	result, err = svc.List(context.Background(), ListProductsInput{
		Filters: ProductListFilters{Query: "sus-100"},
	})
	if err != nil {
		t.Fatalf("list by sku: %v", err)
	}
	if len(result.Products) != 1 || result.Products[0].SKU != "SUS-100" {
		t.Fatalf("expected sku match, got %+v", result.Products)
	}
}
