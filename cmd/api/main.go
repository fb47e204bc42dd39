package main

import (
	"app/internal/cart"
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/whatsapp"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .envは無くても環境変数があれば動く
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if cfg.GoEnv == "dev" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		logger.Fatal("db migrate failed", zap.Error(err))
	}

	// Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// セッションカートはメモリ上
	cartStore := cart.NewStore()

	// Usecase生成
	cartUC := usecase.NewCartUsecase(cartStore, productRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	homeUC := usecase.NewHomeUsecase(productRepo, categoryRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, usecase.CheckoutConfig{
		StoreName:       cfg.StoreName,
		Currency:        cfg.Currency,
		WhatsAppNumber:  cfg.WhatsAppNumber,
		WhatsAppBaseURL: firstNonEmpty(cfg.WhatsAppBaseURL, whatsapp.DefaultBaseURL),
	}, logger)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, logger)

	// Handler生成
	handlers := server.Handlers{
		Product:      handler.NewProductHandler(productUC),
		Home:         handler.NewHomeHandler(homeUC),
		Cart:         handler.NewCartHandler(cartUC),
		Checkout:     handler.NewCheckoutHandler(checkoutUC, cartStore),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC, checkoutUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
	}

	e := server.New(cfg, handlers)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	logger.Info("server starting", zap.String("addr", addr))
	if err := server.Start(e, addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
