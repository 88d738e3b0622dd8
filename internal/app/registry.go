package app

import (
	"database/sql"
	"os"

	"go-careflow/internal/auth"
	"go-careflow/internal/casenote"
	"go-careflow/internal/client"
	"go-careflow/internal/clientservice"
	"go-careflow/internal/company"
	"go-careflow/internal/document"
	"go-careflow/internal/masterdata"
	"go-careflow/internal/messaging/kafka"
	"go-careflow/internal/middleware"
	"go-careflow/internal/rbac"
	"go-careflow/internal/rbac/infra"
	"go-careflow/internal/segment"
	"go-careflow/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	segmentRepo := segment.NewRepository(gormDB)
	masterDataRepo := masterdata.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	clientServiceRepo := clientservice.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	caseNoteRepo := casenote.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	tokens := auth.NewTokenManagerFromEnv()
	authService := auth.NewService(userRepo, tokens)
	userService := user.NewService(userRepo)
	companyService := company.NewService(companyRepo)
	segmentService := segment.NewService(segmentRepo, rdb)
	masterDataService := masterdata.NewService(db, masterDataRepo)
	clientService := client.NewService(clientRepo)
	clientServiceService := clientservice.NewService(db, clientServiceRepo, masterDataService, outboxRepo)

	storageRoot := os.Getenv("DOCUMENT_STORAGE_DIR")
	if storageRoot == "" {
		storageRoot = "./data/documents"
	}
	documentService := document.NewService(db, documentRepo, document.NewDiskStorage(storageRoot), outboxRepo)
	caseNoteService := casenote.NewService(caseNoteRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	companyHandler := company.NewHandler(companyService)
	segmentHandler := segment.NewHandler(segmentService)
	masterDataHandler := masterdata.NewHandler(masterDataService)
	clientHandler := client.NewHandler(clientService)
	clientServiceHandler := clientservice.NewHandler(clientServiceService)
	documentHandler := document.NewHandler(documentService)
	caseNoteHandler := casenote.NewHandler(caseNoteService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, tokens)
		user.RegisterRoutes(api, userHandler, tokens, rbacService)
		company.RegisterRoutes(api, companyHandler, tokens, rbacService)
		segment.RegisterRoutes(api, segmentHandler, tokens, rbacService)
		masterdata.RegisterRoutes(api, masterDataHandler, tokens, rbacService, segmentService)
		client.RegisterRoutes(api, clientHandler, tokens, rbacService, segmentService)
		clientservice.RegisterRoutes(api, clientServiceHandler, tokens, rbacService, segmentService, rdb)
		document.RegisterRoutes(api, documentHandler, tokens, rbacService, segmentService)
		casenote.RegisterRoutes(api, caseNoteHandler, tokens, rbacService, segmentService)
	}

	return nil
}
