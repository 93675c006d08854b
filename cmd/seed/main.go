package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/threadcap/threadcap/internal/config"
	"github.com/threadcap/threadcap/internal/constants"
	"github.com/threadcap/threadcap/internal/logger"
	"github.com/threadcap/threadcap/internal/models"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "配置文件路径")
	flag.Parse()

	// 连接数据库
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.S().Fatalf("配置加载失败: %v", err)
	}
	logger.Init(cfg.Server.Mode, logger.Options{
		Dir:      cfg.Log.Dir,
		Filename: cfg.Log.Filename,
	})
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns: cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns: cfg.Database.Pool.MaxIdleConns,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	boolPtr := func(v bool) *bool { return &v }
	date := func(value string) time.Time {
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			stdLog.Fatalf("Invalid date %q: %v", value, err)
		}
		return t
	}

	products := []models.Product{
		{
			Kind:            constants.ProductKindCap,
			MainColor:       "black",
			SecondaryColors: "white, red",
			Brand:           "Northline",
			InclusionDate:   date("2024-03-12"),
			PhotoURL:        "https://cdn.threadcap.example/caps/northline-black.jpg",
			UnitPrice:       models.NewMoneyFromDecimal(decimal.NewFromFloat(19.90)),
			InitialStock:    40,
			CurrentStock:    40,
			LogoColor:       "white",
		},
		{
			Kind:            constants.ProductKindCap,
			MainColor:       "navy",
			SecondaryColors: "yellow",
			Brand:           "Harborside",
			InclusionDate:   date("2023-11-02"),
			PhotoURL:        "https://cdn.threadcap.example/caps/harborside-navy.jpg",
			UnitPrice:       models.NewMoneyFromDecimal(decimal.NewFromFloat(24.50)),
			InitialStock:    25,
			CurrentStock:    25,
			LogoColor:       "yellow",
		},
		{
			Kind:            constants.ProductKindTshirt,
			MainColor:       "white",
			SecondaryColors: "green",
			Brand:           "Fieldhouse",
			InclusionDate:   date("2024-05-30"),
			PhotoURL:        "https://cdn.threadcap.example/tshirts/fieldhouse-white.jpg",
			UnitPrice:       models.NewMoneyFromDecimal(decimal.NewFromFloat(32.00)),
			InitialStock:    60,
			CurrentStock:    60,
			Size:            "M",
			Composition:     models.JSON{"cotton": 80.0, "polyester": 20.0},
			Gender:          constants.TshirtGenderUnisex,
			HasSleeves:      boolPtr(true),
		},
		{
			Kind:            constants.ProductKindTshirt,
			MainColor:       "grey",
			SecondaryColors: "black",
			Brand:           "Westward",
			InclusionDate:   date("2024-01-18"),
			PhotoURL:        "https://cdn.threadcap.example/tshirts/westward-grey.jpg",
			UnitPrice:       models.NewMoneyFromDecimal(decimal.NewFromFloat(27.90)),
			InitialStock:    35,
			CurrentStock:    35,
			Size:            "L",
			Composition:     models.JSON{"cotton": 50.0, "linen": 50.0},
			Gender:          constants.TshirtGenderWoman,
			HasSleeves:      boolPtr(false),
		},
	}

	created := 0
	for i := range products {
		product := &products[i]
		var count int64
		models.DB.Model(&models.Product{}).
			Where("brand = ? AND main_color = ? AND kind = ?", product.Brand, product.MainColor, product.Kind).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := models.DB.Create(product).Error; err != nil {
			stdLog.Fatalf("Failed to seed product %s: %v", product.Brand, err)
		}
		created++
	}

	fmt.Printf("seed completed, %d products created\n", created)
}
