package service

import (
	"context"
	"testing"
	"time"

	"github.com/threadcap/threadcap/internal/models"
)

func TestRecomputeReleasesStaleCartHoldings(t *testing.T) {
	db, productRepo, cartRepo := setupServiceTest(t)
	clock := &fixedClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	cartSvc := NewCartService(db, productRepo, cartRepo, clock)

	product := seedCap(t, productRepo, "Northline", 10)

	// 第一天加购 4，购物车过期后未结算
	if _, err := cartSvc.AddOrUpdateItem(context.Background(), product.ID, 4); err != nil {
		t.Fatalf("day one add failed: %v", err)
	}

	// 第二天加购 1，此时同步库存为 5，但有效占用只有当日的 1
	clock.now = clock.now.AddDate(0, 0, 1)
	if _, err := cartSvc.AddOrUpdateItem(context.Background(), product.ID, 1); err != nil {
		t.Fatalf("day two add failed: %v", err)
	}

	reconciler := NewStockReconciler(productRepo, cartRepo, clock)
	adjusted, err := reconciler.Recompute(context.Background())
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if adjusted != 1 {
		t.Fatalf("adjusted want 1 got %d", adjusted)
	}

	got, _ := productRepo.GetByID(product.ID)
	if got.CurrentStock != 9 {
		t.Fatalf("current stock want 9 got %d", got.CurrentStock)
	}
}

func TestRecomputeKeepsPurchasedAndTodayReservations(t *testing.T) {
	db, productRepo, cartRepo := setupServiceTest(t)
	clock := &fixedClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	cartSvc := NewCartService(db, productRepo, cartRepo, clock)
	checkoutSvc := NewCheckoutService(cartRepo, clock, nil, &recordingNotifier{})

	product := seedCap(t, productRepo, "Northline", 10)

	// 第一天：加购 3 并结算
	if _, err := cartSvc.AddOrUpdateItem(context.Background(), product.ID, 3); err != nil {
		t.Fatalf("day one add failed: %v", err)
	}
	if _, err := checkoutSvc.SubmitOrder(context.Background(), validOrderForm()); err != nil {
		t.Fatalf("day one submit failed: %v", err)
	}

	// 第二天：当日购物车持有 2
	clock.now = clock.now.AddDate(0, 0, 1)
	if _, err := cartSvc.AddOrUpdateItem(context.Background(), product.ID, 2); err != nil {
		t.Fatalf("day two add failed: %v", err)
	}

	reconciler := NewStockReconciler(productRepo, cartRepo, clock)
	adjusted, err := reconciler.Recompute(context.Background())
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if adjusted != 0 {
		t.Fatalf("stock already consistent, adjusted want 0 got %d", adjusted)
	}

	got, _ := productRepo.GetByID(product.ID)
	if got.CurrentStock != 5 {
		t.Fatalf("current stock want 5 got %d", got.CurrentStock)
	}
}

func TestRecomputeFixesDriftedStock(t *testing.T) {
	db, productRepo, cartRepo := setupServiceTest(t)
	clock := &fixedClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	cartSvc := NewCartService(db, productRepo, cartRepo, clock)

	product := seedCap(t, productRepo, "Northline", 10)
	if _, err := cartSvc.AddOrUpdateItem(context.Background(), product.ID, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 手动制造偏差
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("current_stock", 1).Error; err != nil {
		t.Fatalf("drift stock failed: %v", err)
	}

	reconciler := NewStockReconciler(productRepo, cartRepo, clock)
	adjusted, err := reconciler.Recompute(context.Background())
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if adjusted != 1 {
		t.Fatalf("adjusted want 1 got %d", adjusted)
	}

	got, _ := productRepo.GetByID(product.ID)
	if got.CurrentStock != 7 {
		t.Fatalf("current stock want 7 got %d", got.CurrentStock)
	}
}

func TestRecomputeLeavesUntrackedProductsAlone(t *testing.T) {
	db, productRepo, cartRepo := setupServiceTest(t)
	clock := &fixedClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}

	product := seedCap(t, productRepo, "Northline", 10)

	// 没有任何占用记录的商品不参与对账
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("current_stock", 4).Error; err != nil {
		t.Fatalf("drift stock failed: %v", err)
	}

	reconciler := NewStockReconciler(productRepo, cartRepo, clock)
	adjusted, err := reconciler.Recompute(context.Background())
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if adjusted != 0 {
		t.Fatalf("adjusted want 0 got %d", adjusted)
	}

	got, _ := productRepo.GetByID(product.ID)
	if got.CurrentStock != 4 {
		t.Fatalf("current stock want 4 got %d", got.CurrentStock)
	}
}
