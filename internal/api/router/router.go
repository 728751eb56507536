package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"issuehub/internal/api/handler"
	"issuehub/internal/api/middleware"
	"issuehub/internal/pkg/config"
	"issuehub/internal/repository"
	"issuehub/internal/service"
	pkgErrors "issuehub/pkg/errors"
	"issuehub/pkg/responses"
)

// Setup 设置路由
func Setup(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORSMiddleware(&cfg.CORS))
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		responses.Error(c, pkgErrors.ErrNotFound)
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger API 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 初始化Repository
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// 初始化Service
	authz := service.NewAuthorizationService(memberRepo, logger)
	authService := service.NewAuthService(userRepo, logger)
	projectService := service.NewProjectService(db, projectRepo, memberRepo, authz, logger)
	memberService := service.NewMemberService(db, projectRepo, memberRepo, userRepo, authz, logger)
	issueService := service.NewIssueService(db, issueRepo, projectRepo, memberRepo, authz, logger)
	commentService := service.NewCommentService(commentRepo, issueRepo, authz, logger)

	// 初始化Handler
	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	memberHandler := handler.NewMemberHandler(memberService)
	issueHandler := handler.NewIssueHandler(issueService)
	commentHandler := handler.NewCommentHandler(commentService)

	api := r.Group("/api")
	{
		// 认证相关(无需token)
		authGroup := api.Group("/auth")
		authGroup.Use(middleware.RateLimitMiddleware(&cfg.Auth.RateLimit))
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
		}

		// 需要认证的路由
		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(authService))
		{
			authed.GET("/me", authHandler.Me)

			// 项目
			projects := authed.Group("/projects")
			{
				projects.POST("", projectHandler.Create)                   // 创建项目
				projects.GET("", projectHandler.List)                      // 我参与的项目
				projects.GET("/maintained", projectHandler.ListMaintained) // 我维护的项目
				projects.GET("/:id", projectHandler.Get)                   // 项目详情
				projects.DELETE("/:id", projectHandler.Delete)             // 删除项目（级联）

				// 成员
				projects.POST("/:id/members", memberHandler.Add)                  // 按邮箱添加
				projects.POST("/:id/members/onboard", memberHandler.Onboard)      // 创建用户并加入
				projects.GET("/:id/members", memberHandler.List)                  // 成员列表
				projects.PATCH("/:id/members/:user_id", memberHandler.UpdateRole) // 修改角色
				projects.DELETE("/:id/members/:user_id", memberHandler.Remove)    // 移除成员

				// issue
				projects.GET("/:id/issues", issueHandler.List)    // 过滤/排序/分页
				projects.POST("/:id/issues", issueHandler.Create) // 创建issue
			}

			issues := authed.Group("/issues")
			{
				issues.GET("/:id", issueHandler.Get)
				issues.PATCH("/:id", issueHandler.Update)
				issues.DELETE("/:id", issueHandler.Delete)

				// 评论
				issues.GET("/:id/comments", commentHandler.List)
				issues.POST("/:id/comments", commentHandler.Add)
			}
		}
	}

	return r
}
