package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingNotifier struct {
	calls []OrderForm
	err   error
}

func (n *recordingNotifier) SendOrderConfirmation(ctx context.Context, form OrderForm) error {
	n.calls = append(n.calls, form)
	return n.err
}

func validOrderForm() OrderForm {
	return OrderForm{
		Name:         "Jane",
		LastName:     "Doe",
		Address:      "12 Harbor Street",
		Email:        "jane@example.com",
		MobileNumber: "+34 600 000 000",
	}
}

func TestOrderFormValidation(t *testing.T) {
	form := OrderForm{}
	fieldErrors := form.Validate()
	for _, field := range []string{"name", "last_name", "address", "email", "mobile_number"} {
		if len(fieldErrors[field]) == 0 {
			t.Fatalf("field %s should have errors", field)
		}
	}

	form = validOrderForm()
	form.Email = "not-an-email"
	fieldErrors = form.Validate()
	if len(fieldErrors["email"]) == 0 {
		t.Fatalf("invalid email should be rejected")
	}

	form = validOrderForm()
	form.MobileNumber = "abc"
	fieldErrors = form.Validate()
	if len(fieldErrors["mobile_number"]) == 0 {
		t.Fatalf("invalid mobile number should be rejected")
	}

	if fieldErrors := validOrderForm().Validate(); fieldErrors.HasErrors() {
		t.Fatalf("valid form should pass, got %v", fieldErrors)
	}
}

func TestSubmitOrderWithoutCart(t *testing.T) {
	_, _, cartRepo := setupServiceTest(t)
	clock := &fixedClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	notifier := &recordingNotifier{}
	svc := NewCheckoutService(cartRepo, clock, nil, notifier)

	_, err := svc.SubmitOrder(context.Background(), validOrderForm())
	if !errors.Is(err, ErrNoActiveCart) {
		t.Fatalf("want ErrNoActiveCart got %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("notifier should not be called")
	}
}

func TestSubmitOrderValidationFailsBeforeCartLookup(t *testing.T) {
	_, _, cartRepo := setupServiceTest(t)
	clock := &fixedClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	svc := NewCheckoutService(cartRepo, clock, nil, &recordingNotifier{})

	form := validOrderForm()
	form.Email = ""
	_, err := svc.SubmitOrder(context.Background(), form)

	var fieldErrors FieldErrors
	if !errors.As(err, &fieldErrors) {
		t.Fatalf("want FieldErrors got %v", err)
	}
	if len(fieldErrors["email"]) == 0 {
		t.Fatalf("email error missing")
	}
}

func TestSubmitOrderMarksCartPurchasedAndNotifiesOnce(t *testing.T) {
	db, productRepo, cartRepo := setupServiceTest(t)
	clock := &fixedClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	cartSvc := NewCartService(db, productRepo, cartRepo, clock)
	product := seedCap(t, productRepo, "Northline", 10)
	if _, err := cartSvc.AddOrUpdateItem(context.Background(), product.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	notifier := &recordingNotifier{}
	svc := NewCheckoutService(cartRepo, clock, nil, notifier)

	form := validOrderForm()
	cartID, err := svc.SubmitOrder(context.Background(), form)
	if err != nil {
		t.Fatalf("submit order failed: %v", err)
	}
	if cartID == 0 {
		t.Fatalf("cart id missing")
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("notifier calls want 1 got %d", len(notifier.calls))
	}
	if notifier.calls[0].Email != form.Email {
		t.Fatalf("notifier email want %s got %s", form.Email, notifier.calls[0].Email)
	}

	// 结算后当日不再有活跃购物车
	if _, err := cartRepo.GetActiveCart(clock.Today()); err == nil {
		t.Fatalf("cart should no longer be active")
	}

	// 二次结算失败
	if _, err := svc.SubmitOrder(context.Background(), validOrderForm()); !errors.Is(err, ErrNoActiveCart) {
		t.Fatalf("second submit want ErrNoActiveCart got %v", err)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("notifier should not be called again")
	}
}

func TestSubmitOrderSucceedsWhenNotifierFails(t *testing.T) {
	db, productRepo, cartRepo := setupServiceTest(t)
	clock := &fixedClock{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)}
	cartSvc := NewCartService(db, productRepo, cartRepo, clock)
	product := seedCap(t, productRepo, "Northline", 10)
	if _, err := cartSvc.AddOrUpdateItem(context.Background(), product.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewCheckoutService(cartRepo, clock, nil, notifier)

	if _, err := svc.SubmitOrder(context.Background(), validOrderForm()); err != nil {
		t.Fatalf("submit should succeed despite notifier error, got %v", err)
	}
}
