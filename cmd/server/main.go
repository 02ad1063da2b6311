package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mint-market.backend/internal/config"
	"mint-market.backend/internal/infrastructure/notify"
	"mint-market.backend/internal/infrastructure/offchain"
	"mint-market.backend/internal/infrastructure/repositories"
	"mint-market.backend/internal/infrastructure/solana"
	"mint-market.backend/internal/infrastructure/storage"
	"mint-market.backend/internal/interfaces/http/handlers"
	"mint-market.backend/internal/usecases"
	"mint-market.backend/pkg/jwt"
	"mint-market.backend/pkg/logger"
	"mint-market.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newBlobStore = func(ctx context.Context, cfg storage.S3Config) (usecases.BlobStore, error) {
		return storage.NewS3Store(ctx, cfg)
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Connected to PostgreSQL")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewWalletLinkRepository(db)
	draftRepo := repositories.NewDraftNFTRepository(db)
	nftRepo := repositories.NewNFTListingRepository(db)
	purchaseRepo := repositories.NewPurchaseRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Chain access
	rpcClient := solana.NewJSONRPCClient(cfg.Solana.RPCURL, cfg.Solana.Commitment, cfg.Solana.RequestTimeout)
	chainReader := solana.NewReader(rpcClient)
	fetcher := offchain.NewHTTPFetcher(cfg.Solana.RequestTimeout)

	// Object storage
	blobStore, err := newBlobStore(context.Background(), storage.S3Config{
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	// Usecases
	verifier := usecases.NewVerifierUsecase(chainReader, cfg.Solana.VerifyAttempts, cfg.Solana.VerifyDelay)
	metadata := usecases.NewMetadataUsecase(chainReader, fetcher)
	codeStore := redis.NewCodeStore(cfg.SMS.CodeTTL)
	smsSender := notify.NewLogSMSSender()
	authUsecase := usecases.NewAuthUsecase(uow, userRepo, walletRepo, jwtService, chainReader, codeStore, smsSender)
	userUsecase := usecases.NewUserUsecase(userRepo, walletRepo, blobStore)
	walletUsecase := usecases.NewWalletUsecase(uow, walletRepo, userRepo, chainReader)
	nftUsecase := usecases.NewNFTUsecase(uow, nftRepo, draftRepo, purchaseRepo, walletRepo, userRepo, verifier, metadata, blobStore)

	// Handlers
	deps := routeDeps{
		authHandler:   handlers.NewAuthHandler(authUsecase),
		userHandler:   handlers.NewUserHandler(userUsecase),
		walletHandler: handlers.NewWalletHandler(walletUsecase),
		nftHandler:    handlers.NewNFTHandler(nftUsecase, verifier),
		jwtService:    jwtService,
	}

	r := newRouter(deps)

	logger.Info(context.Background(), "Server starting", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}
