package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/threadcap/threadcap/internal/constants"
	"github.com/threadcap/threadcap/internal/models"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewGormProductRepository(db), db
}

func createCap(t *testing.T, repo *GormProductRepository, brand string, stock int, inclusionDate time.Time) *models.Product {
	t.Helper()
	product := &models.Product{
		Kind:            constants.ProductKindCap,
		MainColor:       "black",
		SecondaryColors: "white",
		Brand:           brand,
		InclusionDate:   inclusionDate,
		UnitPrice:       models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		InitialStock:    stock,
		CurrentStock:    stock,
		LogoColor:       "white",
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create cap failed: %v", err)
	}
	return product
}

func createTshirt(t *testing.T, repo *GormProductRepository, brand string, stock int, inclusionDate time.Time) *models.Product {
	t.Helper()
	product := &models.Product{
		Kind:            constants.ProductKindTshirt,
		MainColor:       "white",
		SecondaryColors: "green",
		Brand:           brand,
		InclusionDate:   inclusionDate,
		UnitPrice:       models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		InitialStock:    stock,
		CurrentStock:    stock,
		Size:            "M",
		Composition:     models.JSON{"cotton": 100.0},
		Gender:          constants.TshirtGenderUnisex,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create tshirt failed: %v", err)
	}
	return product
}

func TestReserveAndReleaseStock(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createCap(t, repo, "Northline", 5, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	ok, err := repo.ReserveStock(product.ID, 3)
	if err != nil {
		t.Fatalf("reserve stock failed: %v", err)
	}
	if !ok {
		t.Fatalf("reserve want ok")
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.CurrentStock != 2 {
		t.Fatalf("current stock want 2 got %d", got.CurrentStock)
	}

	// 超过剩余库存的扣减不生效
	ok, err = repo.ReserveStock(product.ID, 3)
	if err != nil {
		t.Fatalf("reserve over available failed: %v", err)
	}
	if ok {
		t.Fatalf("reserve over available want not ok")
	}

	if err := repo.ReleaseStock(product.ID, 2); err != nil {
		t.Fatalf("release stock failed: %v", err)
	}
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.CurrentStock != 4 {
		t.Fatalf("current stock want 4 got %d", got.CurrentStock)
	}
}

func TestListOrdersCapsFirstThenInclusionDateDesc(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	oldCap := createCap(t, repo, "OldCap", 5, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	newTshirt := createTshirt(t, repo, "NewShirt", 5, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	newCap := createCap(t, repo, "NewCap", 5, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	oldTshirt := createTshirt(t, repo, "OldShirt", 5, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))

	products, err := repo.List()
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(products) != 4 {
		t.Fatalf("list length want 4 got %d", len(products))
	}

	wantOrder := []uint{newCap.ID, oldCap.ID, newTshirt.ID, oldTshirt.ID}
	for i, want := range wantOrder {
		if products[i].ID != want {
			t.Fatalf("position %d want product %d got %d", i, want, products[i].ID)
		}
	}
}

func TestSoftDeleteHidesProductFromCatalog(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	product := createCap(t, repo, "Northline", 5, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	if err := repo.SoftDelete(product.ID, time.Now().UTC()); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	if _, err := repo.GetByID(product.ID); err == nil {
		t.Fatalf("deleted product should not be visible")
	}

	// 对账仍可读取已删除商品
	got, err := repo.GetAnyByID(product.ID)
	if err != nil {
		t.Fatalf("get any by id failed: %v", err)
	}
	if !got.IsDeleted {
		t.Fatalf("is_deleted want true")
	}

	// 重复删除返回未找到
	if err := repo.SoftDelete(product.ID, time.Now().UTC()); err == nil {
		t.Fatalf("second delete should fail")
	}

	products, err := repo.List()
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("list length want 0 got %d", len(products))
	}
}
