package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"kitaconnect/internal/adapter/api"
	"kitaconnect/internal/adapter/api/handler"
	apimiddleware "kitaconnect/internal/adapter/api/middleware"
	"kitaconnect/internal/adapter/api/router"
	"kitaconnect/internal/adapter/repository"
	cacheadapter "kitaconnect/internal/infrastructure/cache/adapter"
	cacheport "kitaconnect/internal/infrastructure/cache/port"
	"kitaconnect/internal/infrastructure/firebase"
	"kitaconnect/internal/infrastructure/storage"
	"kitaconnect/internal/usecase"
	"kitaconnect/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")

	// Credentials come from an env-provided JSON blob in production and
	// from a local file in development.
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
		serviceAccountPath = ""
	} else {
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	var groupCache cacheport.Cache
	if cfg.RedisURL != "" {
		groupCache, err = cacheadapter.NewRedisAdapter(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
	} else {
		log.Printf("REDIS_URL not set, care-group cache runs in-process")
		groupCache = cacheadapter.NewMemoryAdapter()
	}
	defer groupCache.Close()

	profileRepo := repository.NewFirestoreProfileRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	careGroupRepo := repository.NewFirestoreCareGroupRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	messagingUseCase := usecase.NewMessagingUseCase(conversationRepo, profileRepo, storageClient)
	careGroupUseCase := usecase.NewCareGroupUseCase(
		careGroupRepo,
		profileRepo,
		groupCache,
		storageClient,
		time.Duration(cfg.CacheTTLSeconds)*time.Second,
	)
	profileUseCase := usecase.NewProfileUseCase(profileRepo)

	messageHandler := handler.NewMessageHandler(messagingUseCase)
	careGroupHandler := handler.NewCareGroupHandler(careGroupUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	healthHandler := handler.NewHealthHandler()
	devTokenHandler := handler.NewDevTokenHandler(firebaseAuthClient, profileUseCase)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	router.Setup(e, authMiddleware, messageHandler, careGroupHandler, profileHandler, healthHandler)
	router.SetupDevRouter(e, cfg.Environment, devTokenHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
