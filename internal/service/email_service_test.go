package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/threadcap/threadcap/internal/config"
)

func TestSendOrderConfirmationDisabled(t *testing.T) {
	svc := NewEmailService(config.EmailConfig{Enabled: false})
	err := svc.SendOrderConfirmation(context.Background(), validOrderForm())
	if !errors.Is(err, ErrNotificationDisabled) {
		t.Fatalf("want ErrNotificationDisabled got %v", err)
	}
}

func TestSendOrderConfirmationMissingHost(t *testing.T) {
	svc := NewEmailService(config.EmailConfig{Enabled: true})
	err := svc.SendOrderConfirmation(context.Background(), validOrderForm())
	if !errors.Is(err, ErrEmailNotConfigured) {
		t.Fatalf("want ErrEmailNotConfigured got %v", err)
	}
}

func TestBuildEmailMessage(t *testing.T) {
	msg := buildEmailMessage("shop@example.com", "jane@example.com", "Your order has been send",
		"Hi Jane Doe, your order has been send to 12 Harbor Street. We will reach out to you at the number +34 600 000 000 in case of a delay.")

	if !strings.Contains(msg, "From: shop@example.com\r\n") {
		t.Fatalf("from header missing: %q", msg)
	}
	if !strings.Contains(msg, "To: jane@example.com\r\n") {
		t.Fatalf("to header missing: %q", msg)
	}
	if !strings.Contains(msg, "Subject: Your order has been send\r\n") {
		t.Fatalf("subject header missing: %q", msg)
	}
	if !strings.HasSuffix(msg, "in case of a delay.") {
		t.Fatalf("body missing: %q", msg)
	}
}
