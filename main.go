package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beka-birhanu/gridpath-api/api"
	api_i "github.com/beka-birhanu/gridpath-api/api/i"
	mazeapi "github.com/beka-birhanu/gridpath-api/api/maze"
	searchapi "github.com/beka-birhanu/gridpath-api/api/search"
	"github.com/beka-birhanu/gridpath-api/config"
	"github.com/beka-birhanu/gridpath-api/infrastruture/repo"
	"github.com/beka-birhanu/gridpath-api/infrastruture/sortedstorage"
	"github.com/beka-birhanu/gridpath-api/service"
	"github.com/beka-birhanu/gridpath-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient      *mongo.Client
	redisClient      *redis.Client
	mazeRepo         i.MazeRepo
	leaderboard      i.SortedQueue
	sessionManager   i.SearchSessionManager
	searchController api_i.Controller
	mazeController   api_i.Controller
	router           *api.Router
	appLogger        *log.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Fatalf("MongoDB ping failed: %v", err)
	}
	appLogger.Println("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Fatalf("Redis ping failed: %v", err)
	}
	appLogger.Println("Connected to Redis")
}

func initMazeRepo(client *mongo.Client) {
	mazeRepo = repo.NewMazeRepo(client, config.Envs.DBName, "mazes")
	appLogger.Println("Maze repository initialized")
}

func initLeaderboard() {
	var err error
	leaderboard, err = sortedstorage.NewRedisSortedQueue(redisClient, config.Envs.LeaderboardTTL, config.Envs.LeaderboardCapacity)
	if err != nil {
		appLogger.Fatalf("Creating leaderboard storage: %v", err)
	}
	appLogger.Println("Leaderboard storage initialized")
}

func initSessionManager() {
	sessionLogger := log.New(os.Stdout, config.ColorCyan+"[SESSION-MANAGER] "+config.ColorReset, log.LstdFlags)

	var err error
	sessionManager, err = service.NewSearchSessionManager(&service.Config{
		Leaderboard: leaderboard,
		Logger:      sessionLogger,
	})
	if err != nil {
		appLogger.Fatalf("Creating session manager: %v", err)
	}
	appLogger.Println("Session manager initialized")
}

func initSearchController() {
	var err error
	searchController, err = searchapi.NewSearchController(sessionManager, mazeRepo)
	if err != nil {
		appLogger.Fatalf("Creating search controller: %v", err)
	}
	appLogger.Println("Search controller initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeRepo)
	if err != nil {
		appLogger.Fatalf("Creating maze controller: %v", err)
	}
	appLogger.Println("Maze controller initialized")
}

func initRouter() {
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{searchController, mazeController},
	})
	appLogger.Println("Router initialized")
}

func main() {
	config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	gin.SetMode(config.Envs.GinMode)

	// Initialize dependencies
	appLogger = log.New(os.Stdout, config.ColorGreen+"[APP] "+config.ColorReset, log.LstdFlags)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initMazeRepo(mongoClient)
	initLeaderboard()
	initSessionManager()
	initSearchController()
	initMazeController()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Fatalf("Starting server: %v", err)
	}
}
