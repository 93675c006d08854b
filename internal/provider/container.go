package provider

import (
	"github.com/threadcap/threadcap/internal/cache"
	"github.com/threadcap/threadcap/internal/config"
	"github.com/threadcap/threadcap/internal/logger"
	"github.com/threadcap/threadcap/internal/models"
	"github.com/threadcap/threadcap/internal/queue"
	"github.com/threadcap/threadcap/internal/repository"
	"github.com/threadcap/threadcap/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository

	// Services
	ProductService  *service.ProductService
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	EmailService    *service.EmailService
	StockReconciler *service.StockReconciler
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queue.NewClient(cfg.Queue, cfg.Redis),
	}

	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewGormProductRepository(db)
	c.CartRepo = repository.NewGormCartRepository(db)
}

func (c *Container) initServices() {
	clock := service.SystemClock()
	c.EmailService = service.NewEmailService(c.Config.Email)
	c.ProductService = service.NewProductService(c.ProductRepo, clock)
	c.CartService = service.NewCartService(models.DB, c.ProductRepo, c.CartRepo, clock)
	c.CheckoutService = service.NewCheckoutService(c.CartRepo, clock, c.QueueClient, c.EmailService)
	c.StockReconciler = service.NewStockReconciler(c.ProductRepo, c.CartRepo, clock)
}
