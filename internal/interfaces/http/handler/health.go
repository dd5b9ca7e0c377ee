package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Prober 依赖健康探测接口
type Prober interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	version string
	llm     Prober // nil 表示使用 Mock 后端，无上游依赖
	redis   Prober // nil 表示未启用 Redis
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(version string, llm Prober, redis Prober) *HealthHandler {
	return &HealthHandler{
		version: version,
		llm:     llm,
		redis:   redis,
	}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Health 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Live 存活检查接口
// @Summary 存活检查
// @Description 检查服务是否存活
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}

// Ready 就绪检查接口。LLM 上游不可达时服务不就绪；
// Redis 仅用于限流，故障只降级不影响就绪态。
// @Summary 就绪检查
// @Description 检查服务是否可以接收流量
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"llm":   {Status: "disabled"},
		"redis": {Status: "disabled"},
	}

	// 并行探测各依赖，探测失败不取消其他探测
	var g errgroup.Group

	if h.llm != nil {
		g.Go(func() error {
			probeInto(ctx, h.llm, checks["llm"])
			return nil
		})
	}
	if h.redis != nil {
		g.Go(func() error {
			probeInto(ctx, h.redis, checks["redis"])
			return nil
		})
	}
	_ = g.Wait()

	// Redis 故障只降级
	if checks["redis"].Status == "error" {
		checks["redis"].Status = "degraded"
	}

	resp := readinessResponse{
		Status: "ok",
		Checks: checks,
	}
	if checks["llm"].Status == "error" {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// probeInto 执行单个依赖探测并写入结果
func probeInto(ctx context.Context, p Prober, check *readinessCheck) {
	start := time.Now()
	err := p.HealthCheck(ctx)
	check.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		check.Status = "error"
		check.Error = err.Error()
		return
	}
	check.Status = "ok"
}
