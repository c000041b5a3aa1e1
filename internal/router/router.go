package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dahun428-fx/bizcare-dummy-server/internal/config"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/handler"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/metrics"
	"github.com/dahun428-fx/bizcare-dummy-server/internal/middleware"
)

// Handlers bundles everything the route table wires up
type Handlers struct {
	Auth    *handler.AuthHandler
	Board   *handler.BoardHandler
	Admin   *handler.AdminHandler
	Comment *handler.CommentHandler
	Policy  *handler.PolicyHandler
	File    *handler.FileHandler
}

// New builds the gin engine with the full route table
func New(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics, h Handlers) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS())
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "bizcare-dummy-server",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 로컬 백엔드일 때만 업로드 파일을 정적 서빙한다
	if cfg.Uploads.Backend == "local" {
		r.Static("/uploads", cfg.Uploads.Dir)
	}

	api := r.Group("/api")
	{
		api.GET("/auth/current-user", h.Auth.CurrentUser)

		board := api.Group("/board")
		{
			board.GET("", h.Board.ListPosts)
			board.POST("", h.Board.CreatePost)
			board.GET("/health-programs/check", h.Board.CheckPrograms)
			board.GET("/:id", h.Board.GetPost)
			board.PUT("/:id", h.Board.UpdatePost)
			board.DELETE("/:id", h.Board.DeletePost)
			board.POST("/:id/like", h.Board.LikePost)
			board.DELETE("/:id/like", h.Board.UnlikePost)

			board.POST("/comments", h.Comment.CreateComment)
			board.PUT("/comments/:commentId", h.Comment.UpdateComment)
			board.DELETE("/comments/:commentId", h.Comment.DeleteComment)
			board.PATCH("/comments/:commentId/deleted", h.Comment.SetCommentDeleted)
		}

		admin := api.Group("/admin")
		if cfg.Auth.JWTSecret != "" {
			admin.Use(middleware.Auth(cfg.Auth.JWTSecret))
		}
		{
			admin.GET("/board", h.Admin.ListPosts)
			admin.POST("/board", h.Admin.CreatePost)
			admin.GET("/board/:id", h.Admin.GetPost)
			admin.PUT("/board/:id", h.Admin.UpdatePost)
			admin.DELETE("/board/:id", h.Admin.DeletePost)
			admin.PATCH("/board/:id/:action", h.Admin.SetVisibility)
		}

		policy := api.Group("/health/policy")
		{
			policy.GET("", h.Policy.ListPolicies)
			policy.POST("", h.Policy.CreatePolicy)
			policy.GET("/:id", h.Policy.GetPolicy)
			policy.PUT("/:id", h.Policy.UpdatePolicy)
			policy.DELETE("/:id", h.Policy.DeletePolicy)
			policy.PATCH("/:id/:action", h.Policy.SetPolicyVisibility)
			policy.POST("/:id/like", h.Policy.LikePolicy)
			policy.DELETE("/:id/like", h.Policy.UnlikePolicy)
			policy.POST("/:id/comments", h.Policy.CreatePolicyComment)
			policy.PUT("/:id/comments/:commentId", h.Policy.UpdatePolicyComment)
			policy.DELETE("/:id/comments/:commentId", h.Policy.DeletePolicyComment)
		}

		api.POST("/upload", h.File.Upload)
		api.POST("/upload-multiple", h.File.UploadMultiple)
		api.GET("/download/:fileName", h.File.Download)
		api.DELETE("/files/:fileName", h.File.DeleteFile)
	}

	return r
}
