package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jason-li-codes/capstone-api-starter/internal/cache"
	apihttp "github.com/jason-li-codes/capstone-api-starter/internal/http"
	"github.com/jason-li-codes/capstone-api-starter/internal/identity"
	"github.com/jason-li-codes/capstone-api-starter/internal/publisher"
	"github.com/jason-li-codes/capstone-api-starter/internal/repository"
	"github.com/jason-li-codes/capstone-api-starter/internal/service"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    []string
	DB              repository.Credentials
}

func loadConfig() *Config {
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("invalid DB_PORT: %v", err)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:    []string{getEnv("KAFKA_BROKER", "localhost:9092")},
		DB: repository.Credentials{
			Host:              getEnv("DB_HOST", "localhost"),
			Port:              dbPort,
			User:              getEnv("DB_USER", "postgres"),
			Password:          getEnv("DB_PASSWORD", "postgres"),
			DBName:            getEnv("DB_NAME", "easyshop"),
			MigrationsDirPath: getEnv("MIGRATIONS_DIR", "./migrations"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	db, err := repository.NewPostgres(&cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer db.Close()
	log.Printf("Connected to postgres at %s:%d", cfg.DB.Host, cfg.DB.Port)

	if err := repository.RunMigrations(db, &cfg.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	products := repository.NewProductRepository(db)
	categories := repository.NewCategoryRepository(db)
	carts := repository.NewCartRepository(db)
	orders := repository.NewOrderRepository(db)

	cartCache := cache.NewRedisCache(redisClient)
	locks := service.NewUserLocks()
	cartService := service.NewCartService(carts, products, cartCache, locks)
	checkoutService := service.NewCheckoutService(profiles, carts, orders, cartCache, locks)

	resolver := identity.NewStoreResolver(users)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cart:       apihttp.NewCartHandler(cartService, cfg.RequestTimeout),
		Orders:     apihttp.NewOrdersHandler(checkoutService, orders, cfg.RequestTimeout),
		Products:   apihttp.NewProductHandler(products, cfg.RequestTimeout),
		Categories: apihttp.NewCategoryHandler(categories, products, cfg.RequestTimeout),
		Profile:    apihttp.NewProfileHandler(profiles, cfg.RequestTimeout),
		Verifier:   apihttp.PlainTokenVerifier{},
		Resolver:   resolver,
		Timeout:    cfg.RequestTimeout,
	})

	pollerCtx, stopPoller := context.WithCancel(ctx)
	poller := publisher.NewOutboxPoller(orders, cfg.KafkaBrokers...)
	go poller.Run(pollerCtx)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	stopPoller()

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
