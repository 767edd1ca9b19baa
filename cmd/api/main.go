package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"greencart/config"
	"greencart/internal/delivery/http/middleware"
	v1 "greencart/internal/delivery/http/v1"
	"greencart/internal/domain"
	"greencart/internal/infrastructure/cache"
	"greencart/internal/infrastructure/payment"
	mongorepo "greencart/internal/repository/mongodb"
	"greencart/internal/usecase"
	cachesvc "greencart/pkg/cache"
	"greencart/pkg/logger"
	"greencart/pkg/storage"
	"greencart/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := mongorepo.Connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}
	cancel()
	log.Info().Str("database", cfg.MongoDatabase).Msg("Successfully connected to MongoDB")

	// Initialize Repositories
	userRepo := mongorepo.NewUserRepository(db)
	productRepo := mongorepo.NewProductRepository(db)
	addressRepo := mongorepo.NewAddressRepository(db)
	orderRepo := mongorepo.NewOrderRepository(db)

	productCache := newCache(cfg)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenExpiry)

	// --- Storage Module (R2) ---
	var productImages, avatarImages domain.ImageStore
	if cfg.R2AccountID != "" && cfg.R2BucketName != "" {
		r2Storage, err := storage.NewR2Storage(context.Background(), storage.R2Options{
			AccountID:     cfg.R2AccountID,
			AccessKey:     cfg.R2AccessKeyID,
			SecretKey:     cfg.R2AccessKeySecret,
			BucketName:    cfg.R2BucketName,
			PublicURL:     cfg.R2PublicURL,
			UploadTimeout: cfg.R2UploadTimeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		productImages = r2Storage.InFolder("products")
		avatarImages = r2Storage.InFolder("avatars")
	} else {
		log.Warn().Msg("R2 storage not configured, image uploads are disabled")
	}

	// --- Payments ---
	var payments domain.PaymentGateway
	if cfg.StripeSecretKey != "" {
		payments = payment.NewStripeGateway(payment.StripeOptions{
			SecretKey:     cfg.StripeSecretKey,
			WebhookSecret: cfg.StripeWebhookSecret,
			Currency:      cfg.Currency,
			FrontendURL:   cfg.FrontendURL,
		})
	}

	// --- Modules Initialization ---
	authUC := usecase.NewAuthUsecase(userRepo, avatarImages, tokens)
	sellerUC := usecase.NewSellerUsecase(cfg.SellerEmail, cfg.SellerPassword, tokens)
	productUC := usecase.NewProductUsecase(productRepo, productImages, productCache, cfg.CacheProductTTL)
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, addressRepo, userRepo, payments, usecase.OrderOptions{
		TaxRate:     cfg.TaxRate,
		MaxQuantity: cfg.MaxCartQuantity,
	})

	handlers := v1.Handlers{
		Auth:     v1.NewAuthHandler(authUC, tokens, cfg.SecureCookies, cfg.MaxUploadSizeMB),
		Wishlist: v1.NewWishlistHandler(usecase.NewWishlistUsecase(userRepo, productRepo)),
		Cart:     v1.NewCartHandler(usecase.NewCartUsecase(userRepo, cfg.MaxCartQuantity)),
		Address:  v1.NewAddressHandler(usecase.NewAddressUsecase(addressRepo)),
		Seller:   v1.NewSellerHandler(sellerUC, tokens, cfg.SecureCookies),
		Product:  v1.NewProductHandler(productUC, cfg.MaxUploadSizeMB),
		Order:    v1.NewOrderHandler(orderUC),
	}

	// Set up Router
	mux := http.NewServeMux()
	v1.RegisterRoutes(mux, handlers, middleware.NewAuthenticator(tokens))

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Rate limiter: cleanup every minute, forget clients after 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,
		3*time.Minute,
	).Exempt("/stripe")

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid TRUSTED_PROXIES")
	}

	// Apply CORS, Request Logger, Rate Limit, Real IP, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = middleware.RealIP(trustedProxies)(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart("greencart", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	rateLimiter.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := db.Client().Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
	}

	logger.ServiceStop("greencart")
}

// newCache picks the product list cache backend, falling back to memory
// when Redis is unreachable.
func newCache(cfg *config.Config) cachesvc.CacheService {
	if cfg.RedisEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err == nil {
			logger.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis cache")
			return cache.NewRedisCache(client, cfg.CacheProductTTL)
		}
		logger.Warn().Err(err).Msg("Redis unavailable, falling back to memory cache")
	}
	return cache.NewMemoryCache(cfg.CacheProductTTL, 2*cfg.CacheProductTTL)
}
