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

	"rooms-api/config"
	"rooms-api/consumers"
	"rooms-api/controllers"
	"rooms-api/domain"
	"rooms-api/middleware"
	"rooms-api/publishers"
	"rooms-api/repositories"
	"rooms-api/services"

	"github.com/gin-gonic/gin"
	gomongo "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// ============================================
	// 1. CONFIGURACIÓN
	// ============================================
	cfg := config.LoadConfig()
	log.Println("🔧 Configuración cargada:")
	log.Printf("   - Mongo: %s (%s)", cfg.MongoURI, cfg.MongoDatabase)
	log.Printf("   - MySQL: %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	log.Printf("   - Memcached: %s", cfg.MemcachedHost)

	// ============================================
	// 2. CONECTAR A MONGODB (publicaciones)
	// ============================================
	log.Println("📡 Conectando a MongoDB...")
	mongoCtx, mongoCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer mongoCancel()

	mongoClient, err := gomongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("❌ Mongo connect error: %v", err)
	}
	if err := mongoClient.Ping(mongoCtx, nil); err != nil {
		log.Fatalf("❌ Mongo ping failed: %v", err)
	}
	log.Println("✅ Conexión a MongoDB exitosa")

	// ============================================
	// 3. CONECTAR A MYSQL (usuarios)
	// ============================================
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	log.Println("📡 Conectando a MySQL...")
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	// GORM crea automáticamente la tabla "users" si no existe
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		log.Fatal("❌ Failed to migrate database:", err)
	}
	log.Println("✅ Conexión a MySQL exitosa")

	// ============================================
	// 4. INICIALIZAR CAPAS (Patrón MVC)
	// ============================================
	log.Println("🏗️  Inicializando capas...")

	// Repositories: acceso a datos
	roomRepo := repositories.NewRoomRepository(mongoClient.Database(cfg.MongoDatabase))
	userRepo := repositories.NewUserRepository(db)
	cacheRepo := repositories.NewCacheRepository(cfg.MemcachedHost)

	// Publisher: eventos de publicaciones hacia RabbitMQ
	publisher, err := publishers.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RoomsQueue)
	if err != nil {
		log.Fatalf("❌ Failed to create RabbitMQ publisher: %v", err)
	}

	// Services: lógica de negocio
	roomService := services.NewRoomService(roomRepo, publisher)
	searchService := services.NewSearchService(roomRepo, cacheRepo)
	moderationService := services.NewModerationService(roomRepo, publisher)
	userService := services.NewUserService(userRepo)

	// Controllers: manejan HTTP
	roomController := controllers.NewRoomController(roomService)
	searchController := controllers.NewSearchController(searchService)
	moderationController := controllers.NewModerationController(moderationService)
	userController := controllers.NewUserController(userService)

	log.Println("✅ Capas inicializadas")

	// ============================================
	// 5. CONSUMIDOR DE RABBITMQ (invalidación de caché)
	// ============================================
	consumer, err := consumers.NewRabbitMQConsumer(cfg.RabbitMQURL, cfg.RoomsQueue, cacheRepo)
	if err != nil {
		log.Fatalf("❌ Failed to create RabbitMQ consumer: %v", err)
	}

	go func() {
		if err := consumer.Start(); err != nil {
			log.Printf("Error starting RabbitMQ consumer: %v", err)
		}
	}()

	// ============================================
	// 6. CONFIGURAR GIN (Framework web)
	// ============================================
	router := gin.Default()

	// CORS - Permitir requests desde el frontend
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// ============================================
	// 7. DEFINIR RUTAS (Endpoints)
	// ============================================
	log.Println("🛣️  Configurando rutas...")

	router.GET("/health", userController.HealthCheck)

	api := router.Group("/api")

	// Usuarios (registro y login son públicos)
	api.POST("/users", userController.Register)
	api.POST("/users/login", userController.Login)

	// Publicaciones
	rooms := api.Group("/rooms")
	{
		// Rutas PÚBLICAS: solo devuelven publicaciones aprobadas
		rooms.GET("", roomController.GetRooms)
		rooms.GET("/search", searchController.Search)
		rooms.GET("/search/nearby", roomController.GetNearby)
		rooms.GET("/location/:location", roomController.GetRoomsByLocation)
		rooms.GET("/:id", roomController.GetRoomByID)

		// Rutas PROTEGIDAS (requieren JWT)
		rooms.POST("", middleware.AuthMiddleware(), roomController.CreateRoom)
		rooms.PUT("/:id", middleware.AuthMiddleware(), roomController.UpdateRoom)
	}

	// Rutas de MODERACIÓN (requieren JWT con rol agent)
	agent := api.Group("/agent")
	agent.Use(middleware.AuthMiddleware(), middleware.AgentMiddleware())
	{
		agent.GET("/rooms", moderationController.ListRooms)
		agent.PUT("/rooms/:id/approve", moderationController.Approve)
		agent.PUT("/rooms/:id/reject", moderationController.Reject)
		agent.DELETE("/rooms/:id", moderationController.Delete)
	}

	log.Println("✅ Rutas configuradas")

	// ============================================
	// 8. ARRANCAR EL SERVIDOR con graceful shutdown
	// ============================================
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Println("🚀 =======================================")
		log.Printf("🚀 Rooms API corriendo en puerto %s", cfg.Port)
		log.Println("🚀 =======================================")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	// Esperar señal de apagado
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Rooms API...")

	// Contexto con timeout para el shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}

	if err := consumer.Close(); err != nil {
		log.Printf("Error closing RabbitMQ consumer: %v", err)
	}
	if err := publisher.Close(); err != nil {
		log.Printf("Error closing RabbitMQ publisher: %v", err)
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from MongoDB: %v", err)
	}

	log.Println("Rooms API shut down complete")
}
