package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/DeadlyParkour777/solution-share/internal/cache"
	"github.com/DeadlyParkour777/solution-share/internal/complexity"
	"github.com/DeadlyParkour777/solution-share/internal/config"
	"github.com/DeadlyParkour777/solution-share/internal/handler"
	"github.com/DeadlyParkour777/solution-share/internal/judge"
	"github.com/DeadlyParkour777/solution-share/internal/service"
	"github.com/DeadlyParkour777/solution-share/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type App struct {
	cfg config.Config

	httpServer  *http.Server
	grpcServer  *grpc.Server
	db          *sql.DB
	redisClient *redis.Client
	kafkaWriter *kafka.Writer
}

func New(cfg config.Config) (*App, error) {
	log.Println("Initializing solution share...")

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	log.Println("Successfully connected to PostgreSQL")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	sessions := cache.NewRedisSessionCache(redisClient, cfg.SessionTimeout)
	difficulties := cache.NewRedisDifficultyCache(redisClient, cfg.DifficultyCacheTTL)
	log.Println("Redis cache initialized")

	// Messages carry their own topic, so the writer is built without one.
	var kafkaProducer *kafka.Writer
	var events service.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		kafkaProducer = kafka.NewWriter(kafka.WriterConfig{
			Brokers:      cfg.KafkaBrokers,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: int(kafka.RequireOne),
		})
		events = kafkaProducer
		log.Println("Kafka producer initialized")
	} else {
		log.Println("KAFKA_BROKERS not set, solution events are disabled")
	}

	var completer complexity.Completer
	if cfg.AIAPIKey != "" {
		baseURL := cfg.AIBaseURL
		if baseURL == "" {
			baseURL = complexity.DefaultBaseURL
		}
		completer = complexity.NewOpenAICompleter(cfg.AIAPIKey, baseURL, cfg.AIModel, cfg.AITimeout)
		log.Println("Complexity analyzer initialized")
	} else {
		log.Println("AI_API_KEY not set, complexity analysis is disabled")
	}

	appStore := store.NewStore(db)
	judgeClient := judge.NewClient(cfg.LCServerURL, cfg.JudgeTimeout)
	appService := service.NewService(
		appStore,
		judgeClient,
		sessions,
		difficulties,
		complexity.NewAnalyzer(completer, cfg.AITimeout),
		cfg.SolutionEventsTopic,
		events,
	)

	for _, id := range cfg.AdminIDs {
		if err := appService.RegisterAdmin(id); err != nil {
			log.Printf("Failed to seed admin %s: %v", id, err)
		}
	}

	httpHandler := handler.NewHandler(appService, cfg.JWTSecretKey)
	log.Println("HTTP handler initialized")

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	return &App{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
			Handler: httpHandler.Routes(),
		},
		grpcServer:  grpcServer,
		db:          db,
		redisClient: redisClient,
		kafkaWriter: kafkaProducer,
	}, nil
}

func (a *App) Run() error {
	defer a.db.Close()
	defer a.redisClient.Close()
	if a.kafkaWriter != nil {
		defer a.kafkaWriter.Close()
	}

	listenAddr := fmt.Sprintf(":%s", a.cfg.GRPCPort)
	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	go func() {
		log.Printf("gRPC health server started on %s", listenAddr)
		if err := a.grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server stopped: %v", err)
		}
	}()
	defer a.grpcServer.GracefulStop()

	log.Printf("HTTP server started on %s", a.httpServer.Addr)
	return a.httpServer.ListenAndServe()
}
