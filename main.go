package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/swaggo/swag" // 导入 swag

	"travel_planner/config"
	"travel_planner/db"
	_ "travel_planner/docs" // 导入 swagger 文档
	"travel_planner/handlers"
	"travel_planner/logger"
	"travel_planner/scheduler"
)

func main() {
	cfg := config.Load()

	// 初始化日志系统
	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("日志系统初始化成功", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	// 分析缓存是可选能力，数据库不可用时服务仍可正常运行
	if cfg.Cache.Enabled {
		if err := db.InitMySQLWithConfig(cfg); err != nil {
			logger.Warn("初始化MySQL失败，分析缓存已禁用", "error", err)
			cfg.Cache.Enabled = false
		} else {
			logger.Info("MySQL连接成功",
				"max_open_conns", cfg.DB.MaxOpenConns,
				"max_idle_conns", cfg.DB.MaxIdleConns,
				"conn_max_lifetime", cfg.DB.ConnMaxLifetime)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	handlers.RegisterRoutes(r, cfg)

	// 启动缓存清理调度
	scheduler.Start(cfg)

	logger.Info("服务器启动", "address", cfg.Server.Addr)
	logger.Info("Swagger文档可访问", "url", "http://"+cfg.Server.Addr+"/swagger/index.html")
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, r))
}
