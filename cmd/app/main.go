package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"freight/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := gorm.Open(postgres.Open(postgresDSN(configs)), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := app.CreateSignWorkerPool()
	if err != nil {
		log.Fatalf("Error building sign worker pool: %v", err)
	}
	pool.Start(ctx)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	server, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting web server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.Any("error", err))
	}
	pool.Wait()
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}
	config := cmd.Config{
		HTTPPort:      os.Getenv("HTTP_PORT"),
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		Production:    os.Getenv("ENVIRONMENT") == "production",

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),

		TokenSecret: os.Getenv("TOKEN_SECRET"),

		BarocertBaseURL:         os.Getenv("BAROCERT_BASE_URL"),
		BarocertLinkID:          os.Getenv("BAROCERT_LINK_ID"),
		BarocertSecretKey:       os.Getenv("BAROCERT_SECRET_KEY"),
		BarocertKakaoClientCode: os.Getenv("BAROCERT_KAKAO_CLIENT_CODE"),
		BarocertNaverClientCode: os.Getenv("BAROCERT_NAVER_CLIENT_CODE"),
		BarocertPassClientCode:  os.Getenv("BAROCERT_PASS_CLIENT_CODE"),
		CallCenterNumber:        os.Getenv("CALL_CENTER_NUMBER"),

		SignQueueBackend: os.Getenv("SIGN_QUEUE"),
		SignWorkers:      envInt("SIGN_WORKERS"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB"),
	}
	return config
}

func envInt(key string) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return value
}

func postgresDSN(configs cmd.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)
}
