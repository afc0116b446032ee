package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"pharmacy/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pharmacy/internal/adapters/out/postgres/inventoryrepo"
	"pharmacy/internal/adapters/out/postgres/orderrepo"
	"pharmacy/internal/adapters/out/postgres/requestrepo"
)

const defaultStaleRequestAfter = 48 * time.Hour

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	staleAfter := defaultStaleRequestAfter
	if configs.StaleRequestAfter != "" {
		parsed, err := time.ParseDuration(configs.StaleRequestAfter)
		if err != nil {
			log.Fatalf("invalid STALE_REQUEST_AFTER value %q: %v", configs.StaleRequestAfter, err)
		}
		staleAfter = parsed
	}

	gormDB := mustConnectDB(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, staleAfter, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start scheduled jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		PaymentGatewayURL:   goDotEnvVariable("PAYMENT_GATEWAY_URL"),
		PaymentGatewayKey:   goDotEnvVariable("PAYMENT_GATEWAY_KEY"),
		PatientDirectoryURL: goDotEnvVariable("PATIENT_DIRECTORY_URL"),
		EmailServiceURL:     goDotEnvVariable("NOTIFY_EMAIL_URL"),
		EmailAPIKey:         goDotEnvVariable("NOTIFY_EMAIL_KEY"),
		EmailSender:         goDotEnvVariable("NOTIFY_EMAIL_SENDER"),
		SMSServiceURL:       goDotEnvVariable("NOTIFY_SMS_URL"),
		SMSAPIKey:           goDotEnvVariable("NOTIFY_SMS_KEY"),
		SMSSender:           goDotEnvVariable("NOTIFY_SMS_SENDER"),
		WebhookURL:          goDotEnvVariable("NOTIFY_WEBHOOK_URL"),
		WebhookToken:        goDotEnvVariable("NOTIFY_WEBHOOK_TOKEN"),
		OpsContactName:      goDotEnvVariable("OPS_CONTACT_NAME"),
		OpsContactEmail:     goDotEnvVariable("OPS_CONTACT_EMAIL"),
		StaleRequestAfter:   goDotEnvVariable("STALE_REQUEST_AFTER"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// The database container may still be starting up.
	for attempt := 0; attempt < 10; attempt++ {
		if err = sqlDB.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		log.Fatalf("database is not reachable: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to initialize gorm: %v", err)
	}

	err = gormDB.AutoMigrate(&requestrepo.RequestDTO{}, &orderrepo.OrderDTO{}, &inventoryrepo.ItemDTO{})
	if err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := app.CreateHTTPServer()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
