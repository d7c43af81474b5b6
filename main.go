package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"rastha-be/classifier"
	"rastha-be/config"
	"rastha-be/controllers"
	"rastha-be/routes"
	"rastha-be/store"
	"rastha-be/workflow"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("Invalid %s, using default %v", key, fallback)
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	log.Println("MongoDB connection established successfully!")

	config.ConnectRedis()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.NewMongoPersister(db))
	if err != nil {
		log.Fatalf("Failed to open entity store: %v", err)
	}

	classifierURL := os.Getenv("CLASSIFIER_URL")
	if classifierURL == "" {
		classifierURL = "http://localhost:8000"
	}

	engine := workflow.NewEngine(st, classifier.NewHTTPClient(classifierURL), workflow.Config{
		DefaultLat: envFloat("DEFAULT_LAT", 17.3850),
		DefaultLng: envFloat("DEFAULT_LNG", 78.4867),
		MediaDir:   os.Getenv("MEDIA_DIR"),
	})

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("FRONTEND_URL"), "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Setup-Code"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.AuthRoutes(r, &controllers.AuthController{Engine: engine})
	routes.ComplaintRoutes(r, &controllers.ComplaintController{Engine: engine})
	routes.AdminRoutes(r, &controllers.AdminController{Engine: engine})

	if mediaDir := os.Getenv("MEDIA_DIR"); mediaDir != "" {
		r.Static("/media", mediaDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
