// Package main 故事生成服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/moayyadfaris/jiraiya/internal/application/story"
	"github.com/moayyadfaris/jiraiya/internal/application/story/prompt"
	"github.com/moayyadfaris/jiraiya/internal/config"
	"github.com/moayyadfaris/jiraiya/internal/infrastructure/llm"
	"github.com/moayyadfaris/jiraiya/internal/infrastructure/persistence/redis"
	"github.com/moayyadfaris/jiraiya/internal/interfaces/http/handler"
	"github.com/moayyadfaris/jiraiya/internal/interfaces/http/middleware"
	"github.com/moayyadfaris/jiraiya/internal/interfaces/http/router"
	"github.com/moayyadfaris/jiraiya/pkg/logger"
	"github.com/moayyadfaris/jiraiya/pkg/retry"
	"github.com/moayyadfaris/jiraiya/pkg/tracer"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx := context.Background()
	log := logger.FromContext(ctx)
	log.Info("starting api-server",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	// 初始化追踪
	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		log.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 选择故事后端：配置了 LLM 密钥时使用 AI，否则回退到 Mock
	var backend story.Backend
	var llmProber handler.Prober

	if cfg.LLM.AIConfigured() {
		factory := llm.NewFactory(cfg)
		chatModel, err := factory.Default(ctx)
		if err != nil {
			logger.Fatal(ctx, "failed to create chat model", err)
		}

		providerCfg, _ := cfg.LLM.DefaultProviderConfig()
		backend = story.NewAIBackend(
			chatModel,
			prompt.NewRegistry(),
			retry.Policy{
				MaxAttempts: cfg.Retry.MaxAttempts,
				Multiplier:  cfg.Retry.Multiplier,
				MinWait:     cfg.Retry.MinWait,
				MaxWait:     cfg.Retry.MaxWait,
			},
			cfg.LLM.DefaultProvider,
			providerCfg.Model,
		)
		llmProber = factory
		log.Info("using ai story backend",
			"provider", cfg.LLM.DefaultProvider,
			"model", providerCfg.Model,
		)
	} else {
		backend = story.NewMockBackend()
		log.Warn("llm api key not configured, using mock story backend")
	}

	generator := story.NewGenerator(backend)

	// Redis 限流（可选）
	var rateLimiter middleware.RateLimiter
	var redisProber handler.Prober

	if cfg.Security.RateLimit.Enabled {
		redisClient, err := redis.NewClient(&cfg.Cache.Redis)
		if err != nil {
			logger.Fatal(ctx, "failed to connect redis", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("failed to close redis", "error", err)
			}
		}()
		rateLimiter = redis.NewRateLimiter(redisClient)
		redisProber = redisClient
	}

	// 组装路由
	handlers := router.Handlers{
		Story:  handler.NewStoryHandler(generator),
		Health: handler.NewHealthHandler(cfg.App.Version, llmProber, redisProber),
	}
	r := router.New(cfg, handlers, rateLimiter)

	// 创建 HTTP 服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	// 启动服务器
	go func() {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exited")
}
