package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stardust-edu/career-advisor-backend/api"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/config"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/database"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/health"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/shutdown"
	"github.com/stardust-edu/career-advisor-backend/internal/platform/startup"
	"github.com/stardust-edu/career-advisor-backend/internal/usage"
	"github.com/stardust-edu/career-advisor-backend/pkg/lifecycle"
)

func main() {
	// 1. 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("无法加载配置: %v", err))
	}
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. 初始化数据库与Redis
	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Database.Redis)

	// 3. 阻塞式获取初始Run ID
	health.InitializeRunID()

	// 4. 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(cfg); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 5. 阻塞式执行一次启动后健康检查
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck()

	// 6. 创建生命周期管理器并启动后台服务
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	healthHandle, err := gracefulMgr.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(err)
	}
	go health.StartRedisHealthCheck(healthHandle)

	flushHandle, err := gracefulMgr.NewServiceHandle("usage-flusher")
	if err != nil {
		panic(err)
	}
	go usage.StartFlushScheduler(flushHandle)

	// 7. 组装HTTP服务
	r := gin.Default()

	allowedOrigins := cfg.Server.Cors.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	// 8. 异步启动服务器，主Goroutine负责停机编排
	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic("Failed to start server: " + err.Error())
		}
	}()

	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
