package app

import (
	"code_quest_backend/docs"
	"code_quest_backend/internal/config"
	"code_quest_backend/internal/middleware"
	"code_quest_backend/internal/model"
	"code_quest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由（无需登录）
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 3. 管理员路由
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
		}

		// 全局排行榜对游客开放
		public.GET("/ranking/global", c.ranking.GetGlobalRanking)

		// 课程目录：游客只能看到已发布课程，管理员可见全部
		public.GET("/courses", middleware.TryAuthMiddleware(cfg), c.course.ListCourses)
		public.GET("/courses/:id", middleware.TryAuthMiddleware(cfg), c.course.GetCourse)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.user.GetProfile)
	rg.POST("/user/consume-heart", c.user.ConsumeHeart)
	rg.POST("/user/buy-heart", c.user.BuyHeart)

	rg.GET("/lessons/:id", c.lesson.GetLesson)
	rg.GET("/enemies", c.enemy.ListEnemies)

	progress := rg.Group("/progress")
	{
		progress.GET("", c.progress.GetProgressOverview)
		progress.PUT("/update", c.progress.UpdateCourseProgress)
		progress.GET("/course/:courseId", c.progress.GetCompletedLessons)
		progress.GET("/course/:courseId/lessons", c.progress.GetLessonProgressForCourse)
	}
	rg.PUT("/lesson-progress/record", c.progress.RecordLessonProgress)

	rg.GET("/ranking/me", c.ranking.GetMyRanking)

	shop := rg.Group("/shop")
	{
		shop.GET("/catalog", c.shop.GetCatalog)
		shop.POST("/buy/:equipmentId", c.shop.BuyEquipment)
	}
	equipment := rg.Group("/equipment")
	{
		equipment.GET("", c.shop.GetUserEquipment)
		equipment.PUT("/equip", c.shop.Equip)
		equipment.PUT("/unequip", c.shop.Unequip)
	}

	forum := rg.Group("/forum")
	{
		forum.GET("/posts", c.forum.ListPosts)
		forum.POST("/posts", c.forum.CreatePost)
		forum.GET("/posts/:id", c.forum.GetPost)
		forum.PUT("/posts/:id", c.forum.UpdatePost)
		forum.DELETE("/posts/:id", c.forum.DeletePost)
		forum.POST("/posts/:id/comments", c.forum.CreateComment)
		forum.PUT("/comments/:id", c.forum.UpdateComment)
		forum.DELETE("/comments/:id", c.forum.DeleteComment)
	}

	reports := rg.Group("/reports")
	{
		reports.POST("", c.report.CreateReport)
		reports.GET("/my", c.report.ListOwnReports)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		users := admin.Group("/users")
		{
			users.GET("", c.user.ListUsers)
			users.PUT("/:id/block", c.user.BlockUser)
			users.PUT("/:id/unblock", c.user.UnblockUser)
		}

		courses := admin.Group("/courses")
		{
			courses.POST("", c.course.CreateCourse)
			courses.PUT("/:id", c.course.UpdateCourse)
			courses.DELETE("/:id", c.course.DeleteCourse)
			courses.POST("/:id/trophy", c.course.UploadTrophyImage)
			courses.POST("/:courseId/lessons", c.lesson.CreateLesson)
		}

		lessons := admin.Group("/lessons")
		{
			lessons.PUT("/:id", c.lesson.UpdateLesson)
			lessons.DELETE("/:id", c.lesson.DeleteLesson)
		}

		enemies := admin.Group("/enemies")
		{
			enemies.POST("", c.enemy.CreateEnemy)
			enemies.PUT("/:id", c.enemy.UpdateEnemy)
			enemies.DELETE("/:id", c.enemy.DeleteEnemy)
			enemies.POST("/:id/sprite", c.enemy.UploadSpriteImage)
		}

		equipments := admin.Group("/equipments")
		{
			equipments.POST("", c.shop.CreateEquipment)
			equipments.PUT("/:id", c.shop.UpdateEquipment)
			equipments.DELETE("/:id", c.shop.DeleteEquipment)
		}

		reports := admin.Group("/reports")
		{
			reports.GET("", c.report.ListReports)
			reports.PUT("/:id/close", c.report.CloseReport)
		}
	}
}
