package app

import (
	"code_quest_backend/internal/config"
	"code_quest_backend/internal/controller"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/service"
	"code_quest_backend/internal/util"
	"code_quest_backend/pkg/configwatcher"
	"code_quest_backend/pkg/database"
	"code_quest_backend/pkg/logger"
	"code_quest_backend/pkg/monitoring"
	"code_quest_backend/pkg/security"
	"code_quest_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
	stopJobs chan struct{}
}

type repositories struct {
	user      *repository.UserRepository
	course    *repository.CourseRepository
	lesson    *repository.LessonRepository
	enemy     *repository.EnemyRepository
	progress  *repository.ProgressRepository
	equipment *repository.EquipmentRepository
	post      *repository.PostRepository
	comment   *repository.CommentRepository
	report    *repository.ReportRepository
}

type services struct {
	storage  *service.StorageService
	auth     *service.AuthService
	user     *service.UserService
	economy  *service.EconomyService
	course   *service.CourseService
	lesson   *service.LessonService
	enemy    *service.EnemyService
	progress *service.ProgressService
	ranking  *service.RankingService
	shop     *service.ShopService
	forum    *service.ForumService
	report   *service.ReportService
}

type controllers struct {
	auth     *controller.AuthController
	user     *controller.UserController
	course   *controller.CourseController
	lesson   *controller.LessonController
	enemy    *controller.EnemyController
	progress *controller.ProgressController
	ranking  *controller.RankingController
	shop     *controller.ShopController
	forum    *controller.ForumController
	report   *controller.ReportController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		course:    repository.NewCourseRepository(db),
		lesson:    repository.NewLessonRepository(db),
		enemy:     repository.NewEnemyRepository(db),
		progress:  repository.NewProgressRepository(db),
		equipment: repository.NewEquipmentRepository(db),
		post:      repository.NewPostRepository(db),
		comment:   repository.NewCommentRepository(db),
		report:    repository.NewReportRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.equipment)
	s.economy = service.NewEconomyService(repos.user, cfg, db)
	s.course = service.NewCourseService(repos.course, repos.lesson, s.storage, cfg, db)
	s.lesson = service.NewLessonService(repos.lesson, repos.course, repos.enemy, db)
	s.enemy = service.NewEnemyService(repos.enemy, s.storage)
	s.progress = service.NewProgressService(repos.progress, repos.lesson, repos.course, s.economy, db)
	s.ranking = service.NewRankingService(repos.user, rdb)
	s.shop = service.NewShopService(repos.equipment, rdb, db)
	s.forum = service.NewForumService(repos.post, repos.comment)
	s.report = service.NewReportService(repos.report)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		user:     controller.NewUserController(s.user, s.economy),
		course:   controller.NewCourseController(s.course, s.lesson),
		lesson:   controller.NewLessonController(s.lesson),
		enemy:    controller.NewEnemyController(s.enemy),
		progress: controller.NewProgressController(s.progress),
		ranking:  controller.NewRankingController(s.ranking),
		shop:     controller.NewShopController(s.shop),
		forum:    controller.NewForumController(s.forum),
		report:   controller.NewReportController(s.report),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 两个周期任务：红心恢复和排名重算
func (a *App) startBackgroundTasks(s *services) {
	a.stopJobs = make(chan struct{})

	go func() {
		ticker := time.NewTicker(time.Duration(a.Config.Game.HeartRegenIntervalSecond) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := monitoring.ObserveJob("heart_regen", s.economy.RegenerateHearts); err != nil {
					logger.Log.Error("heart regeneration job failed", zap.Error(err))
				}
			case <-a.stopJobs:
				return
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(time.Duration(a.Config.Game.RankingIntervalSecond) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := monitoring.ObserveJob("ranking", s.ranking.RecalculateRanks); err != nil {
					logger.Log.Error("ranking recalculation job failed", zap.Error(err))
				}
			case <-a.stopJobs:
				return
			}
		}
	}()
}

// watchConfig 热加载游戏经济参数，其余配置项需要重启生效
func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		a.Config.Game = newCfg.Game
		logger.Log.Info("Game config reloaded",
			zap.Int("maxHearts", newCfg.Game.MaxHearts),
			zap.Int("minutesPerHeart", newCfg.Game.MinutesPerHeart),
			zap.Int("heartPrice", newCfg.Game.HeartPrice),
		)
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("code-quest-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)
	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.stopJobs != nil {
		close(a.stopJobs)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
