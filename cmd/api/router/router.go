package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"devpress/cmd/api/handlers"
	"devpress/cmd/api/middleware"
	"devpress/cmd/api/services"
	"devpress/config"
	_ "devpress/docs"
)

func New(gdb *gorm.DB, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestTrace())

	// 허용되지 않은 메서드는 404 로 뭉개지 않고 405 로 답한다.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := gdb.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 업로드 이미지는 저장 디렉터리를 그대로 서빙한다.
	r.Static("/images", cfg.Uploads.Dir)

	feedSvc := services.NewFeedService(gdb, cfg.Site)
	r.GET("/api/sitemap", handlers.SitemapHandler(feedSvc))
	r.GET("/api/rss", handlers.RSSHandler(feedSvc))
	r.GET("/sitemap.xml", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/api/sitemap")
	})

	// v1 public routes
	api := r.Group("/api/v1")
	{
		postsSvc := services.NewPostService(gdb, cfg.RelatedPosts)
		api.GET("/posts", handlers.ListPostsHandler(postsSvc))
		api.GET("/posts/:slug", handlers.GetPostHandler(postsSvc))
		api.GET("/categories", handlers.ListCategoriesHandler(postsSvc))
		api.GET("/tags", handlers.ListTagsHandler(postsSvc))

		learnSvc := services.NewLearnService(gdb)
		api.GET("/learn/topics", handlers.ListTopicsHandler(learnSvc))
		api.GET("/learn/topics/:slug", handlers.GetTopicHandler(learnSvc))
		api.GET("/learn/topics/:slug/lessons/:lesson", handlers.GetLessonHandler(learnSvc))
	}

	// admin routes (shared API key)
	admin := r.Group("/api/admin")
	admin.Use(middleware.APIKeyAuth(config.UploadAPIKey()))
	{
		adminSvc := services.NewAdminPostService(gdb)
		admin.POST("/posts/create", handlers.BulkCreatePostsHandler(adminSvc))
		admin.GET("/posts/create", handlers.AdminListPostsHandler(adminSvc))
		admin.GET("/posts/:slug", handlers.GetAdminPostHandler(adminSvc))
		admin.PUT("/posts/:slug", handlers.UpdatePostHandler(adminSvc))
		admin.DELETE("/posts/:slug", handlers.DeletePostHandler(adminSvc))

		learnSvc := services.NewLearnService(gdb)
		admin.PUT("/learn/topics/:slug", handlers.UpsertTopicHandler(learnSvc))

		imageSvc := services.NewImageService(cfg.Uploads.Dir, cfg.Uploads.MaxSizeBytes)
		admin.POST("/image/upload", handlers.UploadImageHandler(imageSvc))
	}

	return r
}
