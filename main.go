package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"jerseyorders/internal/config"
	"jerseyorders/internal/database"
	"jerseyorders/internal/demo"
	"jerseyorders/internal/handlers"
	"jerseyorders/internal/lifecycle"
	"jerseyorders/internal/links"
	"jerseyorders/internal/middleware"
	"jerseyorders/internal/store"
)

func main() {
	config.Load()

	var orderStore store.Store
	if config.AppEnv.MongoURI != "" {
		client, err := database.Connect(config.AppEnv.MongoURI)
		if err != nil {
			log.Fatal(err)
		}

		db := client.Database(config.AppEnv.DBName)
		log.Println("MongoDB connected to:", db.Name())

		if err := database.EnsureOrderIndexes(db); err != nil {
			log.Printf("order index warning: %v", err)
		}
		orderStore = store.NewMongo(db)
	} else {
		log.Println("MONGO_URI not set, using in-memory order store")
		orderStore = store.NewMemory()
	}

	shortener := links.NewShortener(nil)
	engine := lifecycle.NewEngine(orderStore, shortener)
	generator := demo.NewGenerator(nil)

	r := gin.Default()

	r.POST("/auth/login", handlers.StaffLogin(
		config.AppEnv.StaffUsername,
		config.AppEnv.StaffPassword,
		config.AppEnv.StaffPasswordHash,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
	))

	r.GET("/customer/order", handlers.ResolveOrder(orderStore, generator))
	r.POST("/customer/order/:id/details", handlers.SubmitDetails(engine, orderStore))

	api := r.Group("/api")
	api.Use(middleware.StaffAuth(config.AppEnv.JWTSecret))
	{
		api.POST("/orders", handlers.CreateOrder(engine))
		api.GET("/orders", handlers.ListOrders(orderStore))
		api.GET("/orders/:id", handlers.GetOrder(orderStore))
		api.DELETE("/orders/:id", handlers.DeleteOrder(orderStore))

		api.POST("/orders/:id/approve", handlers.ApproveOrder(engine))
		api.POST("/orders/:id/reject", handlers.RejectOrder(engine))
		api.POST("/orders/:id/link", handlers.GenerateLink(engine, config.AppEnv.BaseURL))
		api.POST("/orders/:id/notifications", handlers.SendNotification(engine))

		api.GET("/stats", handlers.Stats(orderStore))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
