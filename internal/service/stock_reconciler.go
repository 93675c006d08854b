package service

import (
	"context"

	"github.com/threadcap/threadcap/internal/logger"
	"github.com/threadcap/threadcap/internal/repository"
)

// StockReconciler 库存对账器：按占用量重算商品的当前库存
type StockReconciler struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	clock    Clock
}

// NewStockReconciler 创建库存对账器
func NewStockReconciler(products repository.ProductRepository, carts repository.CartRepository, clock Clock) *StockReconciler {
	if clock == nil {
		clock = SystemClock()
	}
	return &StockReconciler{products: products, carts: carts, clock: clock}
}

// Recompute 重算库存：对每个有占用记录的商品，当前库存 = 初始库存 - 累计占用。
// 累计占用 = 所有已结算购物车中的数量 + 当日未结算购物车中的数量；
// 没有任何占用记录的商品保持原值不变。
func (s *StockReconciler) Recompute(ctx context.Context) (int, error) {
	reserved, err := s.carts.SumReservedByProduct(s.clock.Today())
	if err != nil {
		return 0, err
	}

	adjusted := 0
	for _, row := range reserved {
		product, err := s.products.GetAnyByID(row.ProductID)
		if err != nil {
			logger.Warnw("stock_reconcile_product_missing", "product_id", row.ProductID, "error", err)
			continue
		}

		expected := product.InitialStock - row.Total
		if expected < 0 {
			logger.Warnw("stock_reconcile_negative",
				"product_id", product.ID,
				"initial_stock", product.InitialStock,
				"reserved", row.Total,
			)
			expected = 0
		}
		if expected == product.CurrentStock {
			continue
		}
		if err := s.products.SetCurrentStock(product.ID, expected); err != nil {
			return adjusted, err
		}
		logger.Infow("stock_reconciled",
			"product_id", product.ID,
			"previous_stock", product.CurrentStock,
			"current_stock", expected,
		)
		adjusted++
	}
	return adjusted, nil
}
