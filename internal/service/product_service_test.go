package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/threadcap/threadcap/internal/constants"
)

func capInput(brand string, stock int) ProductInput {
	return ProductInput{
		Kind:            constants.ProductKindCap,
		MainColor:       "black",
		SecondaryColors: "white",
		Brand:           brand,
		InclusionDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		UnitPrice:       decimal.NewFromFloat(19.90),
		InitialStock:    stock,
		LogoColor:       "white",
	}
}

func tshirtInput(brand string) ProductInput {
	hasSleeves := true
	return ProductInput{
		Kind:            constants.ProductKindTshirt,
		MainColor:       "white",
		SecondaryColors: "green",
		Brand:           brand,
		InclusionDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		UnitPrice:       decimal.NewFromFloat(32.00),
		InitialStock:    20,
		Size:            "M",
		Composition:     map[string]float64{"cotton": 80, "polyester": 20},
		Gender:          constants.TshirtGenderUnisex,
		HasSleeves:      &hasSleeves,
	}
}

func newProductServiceForTest(t *testing.T) *ProductService {
	t.Helper()
	_, productRepo, _ := setupServiceTest(t)
	clock := &fixedClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	return NewProductService(productRepo, clock)
}

func TestCreateCapAndTshirt(t *testing.T) {
	svc := newProductServiceForTest(t)

	capProduct, err := svc.Create(context.Background(), capInput("Northline", 40))
	if err != nil {
		t.Fatalf("create cap failed: %v", err)
	}
	if capProduct.CurrentStock != 40 {
		t.Fatalf("current stock want 40 got %d", capProduct.CurrentStock)
	}
	if capProduct.LogoColor != "white" {
		t.Fatalf("logo color missing")
	}

	tshirt, err := svc.Create(context.Background(), tshirtInput("Fieldhouse"))
	if err != nil {
		t.Fatalf("create tshirt failed: %v", err)
	}
	if tshirt.Gender != constants.TshirtGenderUnisex {
		t.Fatalf("gender missing")
	}
	if len(tshirt.Composition) != 2 {
		t.Fatalf("composition want 2 materials got %d", len(tshirt.Composition))
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := newProductServiceForTest(t)

	input := capInput("Northline", 10)
	input.Kind = "Scarf"
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("want ErrInvalidKind got %v", err)
	}

	input = tshirtInput("Fieldhouse")
	input.Gender = "Other"
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrInvalidGender) {
		t.Fatalf("want ErrInvalidGender got %v", err)
	}

	input = tshirtInput("Fieldhouse")
	input.Composition = map[string]float64{"leather": 100}
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrInvalidMaterial) {
		t.Fatalf("want ErrInvalidMaterial got %v", err)
	}

	input = tshirtInput("Fieldhouse")
	input.Composition = map[string]float64{"cotton": 60, "linen": 30}
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrCompositionSum) {
		t.Fatalf("want ErrCompositionSum got %v", err)
	}

	input = capInput("Northline", -1)
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrInvalidInitialStock) {
		t.Fatalf("want ErrInvalidInitialStock got %v", err)
	}
}

func TestCreateTshirtRequiresVariantFields(t *testing.T) {
	svc := newProductServiceForTest(t)

	input := tshirtInput("Fieldhouse")
	input.Gender = ""
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrInvalidGender) {
		t.Fatalf("missing gender want ErrInvalidGender got %v", err)
	}

	input = tshirtInput("Fieldhouse")
	input.Composition = nil
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrCompositionSum) {
		t.Fatalf("missing composition want ErrCompositionSum got %v", err)
	}

	input = tshirtInput("Fieldhouse")
	input.HasSleeves = nil
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrHasSleevesRequired) {
		t.Fatalf("missing has_sleeves want ErrHasSleevesRequired got %v", err)
	}
}

func TestUpdateKeepsKindAndInitialStock(t *testing.T) {
	svc := newProductServiceForTest(t)
	created, err := svc.Create(context.Background(), capInput("Northline", 40))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := capInput("Northline", 40)
	input.Kind = constants.ProductKindTshirt
	if _, err := svc.Update(context.Background(), created.ID, input); !errors.Is(err, ErrKindImmutable) {
		t.Fatalf("want ErrKindImmutable got %v", err)
	}

	input = capInput("Northline", 99)
	if _, err := svc.Update(context.Background(), created.ID, input); !errors.Is(err, ErrInitialStockImmutable) {
		t.Fatalf("want ErrInitialStockImmutable got %v", err)
	}

	input = capInput("Harborside", 40)
	updated, err := svc.Update(context.Background(), created.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Brand != "Harborside" {
		t.Fatalf("brand want Harborside got %s", updated.Brand)
	}
	if updated.InitialStock != 40 {
		t.Fatalf("initial stock want 40 got %d", updated.InitialStock)
	}
}

func TestDeleteRemovesFromList(t *testing.T) {
	svc := newProductServiceForTest(t)
	created, err := svc.Create(context.Background(), capInput("Northline", 40))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("list want empty got %d", len(views))
	}

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("second delete want ErrProductNotFound got %v", err)
	}
}

func TestListViewsCarryDescriptions(t *testing.T) {
	svc := newProductServiceForTest(t)
	if _, err := svc.Create(context.Background(), capInput("Northline", 40)); err != nil {
		t.Fatalf("create cap failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), tshirtInput("Fieldhouse")); err != nil {
		t.Fatalf("create tshirt failed: %v", err)
	}

	views, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("views length want 2 got %d", len(views))
	}
	// Cap 在前
	if views[0].Kind != constants.ProductKindCap {
		t.Fatalf("first view want Cap got %s", views[0].Kind)
	}
	for _, view := range views {
		if view.Description == "" {
			t.Fatalf("description missing for product %d", view.ID)
		}
	}
}
