package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/config"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/handler"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/knowledge"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/middleware"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/model"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/pipeline"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/repository"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/service"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/database"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/es"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/kafka"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/llm"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/log"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/storage"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/tika"
)

func main() {
	config.Init("./configs/config.yaml")
	log.Init(config.Conf.Log.Level, config.Conf.Log.Format, config.Conf.Log.OutputPath)
	defer log.Sync()

	database.InitMySQL(config.Conf.Database.MySQL.DSN)
	if err := database.DB.AutoMigrate(
		&model.FAQ{},
		&model.Document{},
		&model.ChatSession{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	database.InitRedis(
		config.Conf.Database.Redis.Addr,
		config.Conf.Database.Redis.Password,
		config.Conf.Database.Redis.DB,
	)
	storage.InitMinIO(config.Conf.MinIO)
	if err := es.InitES(config.Conf.Elasticsearch); err != nil {
		log.Fatalf("failed to initialize Elasticsearch: %v", err)
	}
	kafka.InitProducer(config.Conf.Kafka)

	faqRepo := repository.NewFAQRepository(database.DB)
	docRepo := repository.NewDocumentRepository(database.DB)
	chatRepo := repository.NewChatRepository(database.DB, database.RDB)

	fallbackCfg := config.Conf.AI.Fallback
	fallback := knowledge.NewFallbackResponder(
		knowledge.NewKeywordSelector(),
		rand.New(rand.NewSource(time.Now().UnixNano())).Intn,
		time.Duration(fallbackCfg.MinDelayMs)*time.Millisecond,
		time.Duration(fallbackCfg.MaxDelayMs)*time.Millisecond,
	)

	aiService := service.NewAIService(config.Conf.AI, llm.NewClient(config.Conf.AI), fallback)
	searchService := service.NewSearchService(config.Conf.Elasticsearch)
	chatService := service.NewChatService(chatRepo, faqRepo, docRepo, aiService)
	adminService := service.NewAdminService(faqRepo, docRepo, chatRepo, searchService)
	uploadService := service.NewUploadService(docRepo, config.Conf.MinIO, config.Conf.Upload)

	processor := pipeline.NewProcessor(
		tika.NewClient(config.Conf.Tika),
		config.Conf.Elasticsearch,
		config.Conf.MinIO,
		docRepo,
	)
	go kafka.StartConsumer(config.Conf.Kafka, processor)

	chatHandler := handler.NewChatHandler(chatService)
	adminHandler := handler.NewAdminHandler(adminService, searchService)
	aiHandler := handler.NewAIHandler(aiService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	gin.SetMode(config.Conf.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	api := r.Group("/api/v1")
	{
		chat := api.Group("/chat")
		{
			chat.GET("", chatHandler.ListSessions)
			chat.GET("/:sessionId", chatHandler.GetSession)
			chat.POST("/:sessionId/message", chatHandler.SendMessage)
			chat.DELETE("/:sessionId", chatHandler.EndSession)
		}

		admin := api.Group("/admin")
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/search", adminHandler.Search)

			admin.POST("/faqs", adminHandler.CreateFAQ)
			admin.GET("/faqs", adminHandler.ListFAQs)
			admin.GET("/faqs/:id", adminHandler.GetFAQ)
			admin.PUT("/faqs/:id", adminHandler.UpdateFAQ)
			admin.DELETE("/faqs/:id", adminHandler.DeleteFAQ)

			admin.POST("/documents", adminHandler.CreateDocument)
			admin.GET("/documents", adminHandler.ListDocuments)
			admin.GET("/documents/:id", adminHandler.GetDocument)
			admin.PUT("/documents/:id", adminHandler.UpdateDocument)
			admin.DELETE("/documents/:id", adminHandler.DeleteDocument)
		}

		ai := api.Group("/ai")
		{
			ai.POST("/test", aiHandler.Test)
			ai.GET("/health", aiHandler.Health)
			ai.GET("/provider", aiHandler.Provider)
		}

		api.POST("/upload/file", uploadHandler.UploadFile)
	}

	srv := &http.Server{
		Addr:    ":" + config.Conf.Server.Port,
		Handler: r,
	}

	go func() {
		log.Infof("server listening on port %s", config.Conf.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Info("server exited")
}
