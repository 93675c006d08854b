package service

import (
	"context"
	"errors"
	"net/mail"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/threadcap/threadcap/internal/logger"
	"github.com/threadcap/threadcap/internal/queue"
	"github.com/threadcap/threadcap/internal/repository"
)

var mobileNumberPattern = regexp.MustCompile(`^\+?[0-9\-()\s]{6,20}$`)

// OrderForm 下单表单
type OrderForm struct {
	Name         string `json:"name"`
	LastName     string `json:"last_name"`
	Address      string `json:"address"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
}

// Validate 校验下单表单，返回字段级错误
func (f OrderForm) Validate() FieldErrors {
	fieldErrors := make(FieldErrors)

	if strings.TrimSpace(f.Name) == "" {
		fieldErrors.Add("name", "This field is required.")
	}
	if strings.TrimSpace(f.LastName) == "" {
		fieldErrors.Add("last_name", "This field is required.")
	}
	if strings.TrimSpace(f.Address) == "" {
		fieldErrors.Add("address", "This field is required.")
	}

	email := strings.TrimSpace(f.Email)
	if email == "" {
		fieldErrors.Add("email", "This field is required.")
	} else if _, err := mail.ParseAddress(email); err != nil {
		fieldErrors.Add("email", "Enter a valid email address.")
	}

	mobile := strings.TrimSpace(f.MobileNumber)
	if mobile == "" {
		fieldErrors.Add("mobile_number", "This field is required.")
	} else if !mobileNumberPattern.MatchString(mobile) {
		fieldErrors.Add("mobile_number", "Enter a valid mobile number.")
	}

	return fieldErrors
}

// Notifier 订单确认通知接口
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, form OrderForm) error
}

// CheckoutService 结算服务，负责购物车结算与通知派发
type CheckoutService struct {
	carts       repository.CartRepository
	clock       Clock
	queueClient *queue.Client
	notifier    Notifier
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(carts repository.CartRepository, clock Clock, queueClient *queue.Client, notifier Notifier) *CheckoutService {
	if clock == nil {
		clock = SystemClock()
	}
	return &CheckoutService{
		carts:       carts,
		clock:       clock,
		queueClient: queueClient,
		notifier:    notifier,
	}
}

// SubmitOrder 结算当日购物车。表单校验失败返回 FieldErrors，
// 无可结算购物车返回 ErrNoActiveCart。通知在事务提交后派发，
// 失败只记录日志，不影响订单结果。
func (s *CheckoutService) SubmitOrder(ctx context.Context, form OrderForm) (uint, error) {
	if fieldErrors := form.Validate(); fieldErrors.HasErrors() {
		return 0, fieldErrors
	}

	var cartID uint
	err := s.carts.Transaction(func(txRepo repository.CartRepository) error {
		cart, err := txRepo.GetActiveCartForUpdate(s.clock.Today())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveCart
			}
			return err
		}
		if err := txRepo.MarkPurchased(cart.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveCart
			}
			return err
		}
		cartID = cart.ID
		return nil
	})
	if err != nil {
		if isLockConflict(err) {
			logger.Warnw("checkout_lock_conflict", "error", err)
			return 0, ErrConcurrencyConflict
		}
		return 0, err
	}

	logger.Infow("order_submitted", "cart_id", cartID, "email", form.Email)
	s.dispatchConfirmation(ctx, form)
	return cartID, nil
}

// dispatchConfirmation 派发订单确认通知：队列可用时入队，否则直接发送
func (s *CheckoutService) dispatchConfirmation(ctx context.Context, form OrderForm) {
	if s.queueClient != nil && s.queueClient.Enabled() {
		payload := queue.OrderConfirmationEmailPayload{
			Name:         form.Name,
			LastName:     form.LastName,
			Address:      form.Address,
			Email:        form.Email,
			MobileNumber: form.MobileNumber,
		}
		if err := s.queueClient.EnqueueOrderConfirmationEmail(payload); err != nil {
			logger.Errorw("order_confirmation_enqueue_failed", "email", form.Email, "error", err)
		}
		return
	}

	if s.notifier == nil {
		logger.Warnw("order_confirmation_skipped", "email", form.Email)
		return
	}
	if err := s.notifier.SendOrderConfirmation(ctx, form); err != nil {
		logger.Errorw("order_confirmation_send_failed", "email", form.Email, "error", err)
	}
}
