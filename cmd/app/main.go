package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"quickdrop/cmd"
	httpapi "quickdrop/internal/adapters/in/http"
	"quickdrop/internal/adapters/in/ws"
	"quickdrop/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	createDbIfNotExists(configs)
	gormDB := mustConnectDb(configs)
	mustMigrateDb(gormDB)

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := root.CreateJobManager(configs.StatsCronSpec)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		StatsCronSpec: goDotEnvVariable("STATS_CRON_SPEC"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// createDbIfNotExists connects to the maintenance database and creates the
// application database when it is missing. First run on a fresh cluster.
func createDbIfNotExists(configs cmd.Config) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBSslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)",
		configs.DBName).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check database existence: %v", err)
	}

	if !exists {
		if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", configs.DBName)); err != nil {
			log.Fatalf("Failed to create database %s: %v", configs.DBName, err)
		}
	}
}

func mustConnectDb(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDb(gormDB *gorm.DB) {
	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(root *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpapi.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateClaimOrderCommandHandler(),
		root.CreateAdvanceOrderCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateReportLocationCommandHandler(),
		root.CreateGetClaimableOrdersQueryHandler(),
		root.CreateGetPartnerOrdersQueryHandler(),
		root.CreateGetOrderSummaryQueryHandler(),
		root.CreateGetDashboardStatsQueryHandler(),
		root.LiveStatusService(),
	)
	server.RegisterRoutes(e)

	gateway := ws.NewGateway(root.EventBus(), root.LiveStatusService(), logger)
	gateway.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
