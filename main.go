package main

import (
	"log"
	"net/http"
	"os"

	"civicconnect-be/config"
	"civicconnect-be/controllers"
	"civicconnect-be/routes"
	"civicconnect-be/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	snap := config.NewSnapshotter()

	issues, err := store.NewIssueStore(snap)
	if err != nil {
		log.Fatalf("Failed to load issue store: %v", err)
	}
	communities, err := store.NewCommunityStore(snap)
	if err != nil {
		log.Fatalf("Failed to load community store: %v", err)
	}
	users := store.NewUserRegistry()

	rateLimited := os.Getenv("SNAPSHOT_BACKEND") == "redis"

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.AuthRoutes(r, controllers.NewAuthController(users))
	routes.IssueRoutes(r, controllers.NewIssueController(issues, users), rateLimited)
	routes.CommunityRoutes(r, controllers.NewCommunityController(communities, users))

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
