package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"estoque/internal/handlers"
	"estoque/internal/models"
	"estoque/internal/repositories"
	"estoque/internal/services"
	"estoque/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":3333")
	viper.SetDefault("SQLITE_PATH", "estoque.db")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	// The store handle is created once here and injected everywhere; no
	// package holds a database global.
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Produto{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		log.Println("Starting RabbitMQ consumer for product events...")
		if consumerErr := mqClient.ConsumeProdutoEvents(rabbitmq.LogProdutoEvent); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	} else {
		log.Println("RABBITMQ_URL not set, product events disabled.")
	}

	// --- Wiring ---
	produtoRepo := repositories.NewGORMProdutoRepository(db)
	produtoService := services.NewProdutoService(produtoRepo, publisher)
	produtoHandler := handlers.NewProdutoHandler(produtoService)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// --- Routes ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "OK",
		})
	})
	produtoHandler.RegisterRoutes(app)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase opens PostgreSQL when DATABASE_URL is set, falling back to a
// local SQLite file for development runs.
func openDatabase() (*gorm.DB, error) {
	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), &gorm.Config{})
}
