package main

import (
	"context"
	"fmt"
	"log"

	"ShowroomSync/internal/adapter/showroom"
	"ShowroomSync/internal/api"
	"ShowroomSync/internal/config"
	"ShowroomSync/internal/scheduler"
	"ShowroomSync/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.Info("配置文件加载成功")

	// 3. 初始化上游适配器（超时、代理、标识头统一走共享HTTP客户端）
	upstream := showroom.NewClient(&cfg.Upstream, logger)

	// 4. 组装核心服务。缓存都是各服务内部的可注入实例，不是进程级单例
	catalogSvc := service.NewCatalogService(upstream, cfg.Refresh.CatalogTTL(), cfg.Upstream.EventPageBudget, logger)
	roomMapSvc := service.NewRoomMapService(upstream, cfg.Refresh.RoomMapTTL(), cfg.Upstream.RankingMaxPages, logger)
	refreshSvc := service.NewRefreshService(upstream, cfg.Refresh.LiveTTL(), logger)
	giftSvc := service.NewGiftService(upstream, cfg.Refresh.GiftCatalogTTL(), logger)
	sessions := service.NewSessionStore()

	// 5. 配置Gin运行模式（从配置读取：debug/release）
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	// 注册pprof 方便调试和监测性能问题
	pprof.Register(r)
	logger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 6. 注册API路由
	catalogHandler := api.NewCatalogHandler(catalogSvc, roomMapSvc, refreshSvc, logger)
	r.GET("/api/events", catalogHandler.ListEvents)
	r.GET("/api/events/:event_id/rooms", catalogHandler.ListEventRooms)
	r.GET("/api/live", catalogHandler.ListLive)

	sessionHandler := api.NewSessionHandler(catalogSvc, roomMapSvc, refreshSvc, giftSvc, sessions, logger)
	r.POST("/api/sessions", sessionHandler.CreateSession)
	r.GET("/api/sessions/:session_id/board", sessionHandler.GetBoard)
	r.POST("/api/sessions/:session_id/refresh", sessionHandler.ForceRefresh)
	r.GET("/api/sessions/:session_id/gifts/:room_id", sessionHandler.GetGifts)
	r.DELETE("/api/sessions/:session_id", sessionHandler.DeleteSession)

	// 7. 启动定时任务：会话看板按刷新间隔滚动更新，活动目录按TTL节奏预热
	ctx := context.Background()
	boardTask := scheduler.New("board-refresh", cfg.Refresh.Interval(), func(ctx context.Context) {
		refreshSvc.RefreshAll(ctx, sessions)
	}, logger)
	go boardTask.Start(ctx)

	catalogTask := scheduler.New("catalog-warm", cfg.Refresh.CatalogTTL(), func(ctx context.Context) {
		if _, err := catalogSvc.ListEvents(ctx); err != nil {
			logger.WithError(err).Warn("活动目录预热失败")
		}
	}, logger)
	go catalogTask.Start(ctx)

	// 8. 启动服务（从配置读取端口）
	port := cfg.Server.Port
	logger.Infof("服务启动成功，端口：%d", port)
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		logger.Fatalf("启动服务失败: %v", err)
	}
}
