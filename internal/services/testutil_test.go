package services_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/abner-serafim/2025-api-arq/internal/db"
	"github.com/abner-serafim/2025-api-arq/internal/models"
)

// Each test gets its own in-memory sqlite database. TranslateError makes the
// driver report unique violations as gorm.ErrDuplicatedKey, same as postgres.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.Migrate(testDB); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return testDB
}

func strPtr(s string) *string { return &s }

func seedCustomer(t *testing.T, testDB *gorm.DB) models.Customer {
	t.Helper()

	customer := models.Customer{
		Name:    "Maria Silva",
		TaxID:   "111",
		Phone:   strPtr("11999990000"),
		Address: strPtr("Rua A"),
		Email:   strPtr("maria@example.com"),
	}
	if err := testDB.Create(&customer).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return customer
}

func seedProduct(t *testing.T, testDB *gorm.DB, name, price string, ean *string) models.Product {
	t.Helper()

	product := models.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
		EAN:   ean,
	}
	if err := testDB.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}
