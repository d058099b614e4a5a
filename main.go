package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/MArjun666/ProjectFlow-fullstack-app/handlers"
	"github.com/MArjun666/ProjectFlow-fullstack-app/logging"
	"github.com/MArjun666/ProjectFlow-fullstack-app/middleware"
	"github.com/MArjun666/ProjectFlow-fullstack-app/models"
	"github.com/MArjun666/ProjectFlow-fullstack-app/repositories"
	"github.com/MArjun666/ProjectFlow-fullstack-app/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createUserEmailIndex(collection *mongo.Collection) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := collection.Indexes().CreateOne(context.TODO(), indexModel)
	if err != nil {
		return fmt.Errorf("failed to create unique index on user email: %v", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	logging.InitLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(getEnv("MONGO_URI", "mongodb://localhost:27017")))
	if err != nil {
		log.Fatal("Database connection failed:", err)
	}
	defer client.Disconnect(context.TODO())

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}
	fmt.Println("Connected to MongoDB!")

	db := client.Database(getEnv("MONGO_DB", "projectflow"))

	usersCollection := db.Collection("users")
	if err := createUserEmailIndex(usersCollection); err != nil {
		log.Fatal(err)
	}

	userRepo := repositories.NewMongoUserRepository(usersCollection)
	projectRepo := repositories.NewMongoProjectRepository(db.Collection("projects"))
	notificationRepo := repositories.NewMongoNotificationRepository(db.Collection("notifications"))

	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, notificationRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)

	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(projectService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")

	// Project manager / admin routes. Registered before the general
	// authenticated routes so /projects/users wins over /projects/{projectId}.
	managers := api.NewRoute().Subrouter()
	managers.Use(middleware.Authenticate(userRepo), middleware.RequireRoles(models.RoleProjectManager, models.RoleAdmin))
	managers.HandleFunc("/projects", projectHandler.CreateProject).Methods("POST")
	managers.HandleFunc("/projects/users", projectHandler.GetAssignableUsers).Methods("GET")
	managers.HandleFunc("/projects/{projectId}", projectHandler.UpdateProject).Methods("PUT")
	managers.HandleFunc("/projects/{projectId}/members", projectHandler.AddMember).Methods("POST")
	managers.HandleFunc("/projects/{projectId}/members/{userId}", projectHandler.RemoveMember).Methods("DELETE")
	managers.HandleFunc("/projects/{projectId}/tasks", taskHandler.CreateTask).Methods("POST")
	managers.HandleFunc("/projects/{projectId}/tasks/{taskId}", taskHandler.DeleteTask).Methods("DELETE")

	// Admin-only routes
	admins := api.NewRoute().Subrouter()
	admins.Use(middleware.Authenticate(userRepo), middleware.RequireRoles(models.RoleAdmin))
	admins.HandleFunc("/projects/{projectId}", projectHandler.DeleteProject).Methods("DELETE")

	// Authenticated routes; fine-grained checks happen in the services
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.Authenticate(userRepo))
	authed.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	authed.HandleFunc("/auth/check", authHandler.Check).Methods("GET")
	authed.HandleFunc("/projects", projectHandler.ListProjects).Methods("GET")
	authed.HandleFunc("/projects/{projectId}", projectHandler.GetProjectByID).Methods("GET")
	authed.HandleFunc("/projects/{projectId}/tasks/{taskId}", taskHandler.UpdateTask).Methods("PUT")
	authed.HandleFunc("/projects/{projectId}/tasks/{taskId}/accept", taskHandler.UpdateTaskAcceptance).Methods("PUT")
	authed.HandleFunc("/tasks/mytasks", taskHandler.GetMyTasks).Methods("GET")
	authed.HandleFunc("/notifications", notificationHandler.GetNotifications).Methods("GET")
	authed.HandleFunc("/notifications/readall", notificationHandler.MarkAllAsRead).Methods("PUT")
	authed.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("PUT")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ProjectFlow backend is running"))
	}).Methods("GET")

	corsRouter := enableCORS(r)

	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      corsRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	fmt.Println("ProjectFlow backend running on http://localhost:" + port)
	logging.Logger.Infof("Server is running on port %s", port)
	log.Fatal(srv.ListenAndServe())
}

// enableCORS allows the frontend dev server to talk to the API
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", getEnv("CORS_ORIGIN", "*"))
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
