package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"services/backtest-service/internal/config"
	"services/backtest-service/internal/handler"
	"services/backtest-service/internal/middleware"
	"services/backtest-service/internal/repository"
	"services/backtest-service/internal/service"
	"services/backtest-service/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	candleRepo := repository.NewCandleRepository(db, logger)

	// Initialize the series store over the candle repository
	seriesStore := store.NewSeriesStore(candleRepo, logger)

	// Initialize services
	offset := cfg.MarketData.DisplayOffsetSeconds
	backtestService := service.NewBacktestService(
		seriesStore,
		offset,
		cfg.MarketData.EquityCurveMaxPoints,
		logger,
	)
	tradeService := service.NewTradeService(seriesStore, offset, logger)
	marketDataService := service.NewMarketDataService(
		seriesStore,
		seriesStore,
		candleRepo,
		offset,
		logger,
	)

	// Initialize handlers
	backtestHandler := handler.NewBacktestHandler(backtestService, logger)
	tradeHandler := handler.NewTradeHandler(tradeService, logger)
	marketDataHandler := handler.NewMarketDataHandler(marketDataService, logger)
	symbolHandler := handler.NewSymbolHandler(marketDataService, logger)
	timeframeHandler := handler.NewTimeframeHandler(logger)

	// Set up HTTP server with Gin
	router := setupRouter(
		backtestHandler,
		tradeHandler,
		marketDataHandler,
		symbolHandler,
		timeframeHandler,
		logger,
		cfg,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// Create logger config
	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName,
		dbConfig.SSLMode,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

func setupRouter(
	backtestHandler *handler.BacktestHandler,
	tradeHandler *handler.TradeHandler,
	marketDataHandler *handler.MarketDataHandler,
	symbolHandler *handler.SymbolHandler,
	timeframeHandler *handler.TimeframeHandler,
	logger *zap.Logger,
	cfg *config.Config,
) *gin.Engine {
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Simulation routes
		v1.POST("/backtest", backtestHandler.RunBacktest)
		v1.POST("/manual-trade", tradeHandler.ReplayTrade)

		// Market data routes
		v1.GET("/ohlcv", marketDataHandler.GetOHLCV)
		v1.POST("/market-data/candles/batch", marketDataHandler.BatchImportCandles)

		// Symbol routes
		symbols := v1.Group("/symbols")
		{
			symbols.GET("", symbolHandler.GetAllSymbols)
			symbols.GET("/:symbol/range", symbolHandler.GetDataRange)
		}

		// Timeframes routes
		timeframes := v1.Group("/timeframes")
		{
			timeframes.GET("", timeframeHandler.GetAllTimeframes)
			timeframes.GET("/validate/:timeframe", timeframeHandler.ValidateTimeframe)
		}
	}
	return router
}
