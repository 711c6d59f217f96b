package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/palemoky/tichu/internal/config"
	"github.com/palemoky/tichu/internal/logger"
	"github.com/palemoky/tichu/internal/server"
	"github.com/palemoky/tichu/internal/server/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, loadErr := config.Load(*configPath)
	if loadErr != nil {
		cfg = config.Default()
	}
	if err := logger.Init(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("初始化日志失败")
	}
	defer logger.Close()
	if loadErr != nil {
		log.Warn().Err(loadErr).Str("path", *configPath).Msg("加载配置文件失败，使用默认配置")
	}

	var deps server.Deps
	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
		store, err := storage.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("连接 Redis 失败")
		}
		defer store.Close()
		deps.Store = store
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis persistence enabled")
	}

	srv := server.New(cfg, deps)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("服务器启动失败")
	}
	log.Info().Msg("🎮 Tichu 服务器已启动")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("服务器关闭超时")
	}
}
