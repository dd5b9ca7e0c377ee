// Package retry 提供带指数退避的重试装饰器
package retry

import (
	"context"
	"math"
	"time"
)

// 默认策略：总共 3 次尝试，等待 clamp(2^attempt, 4s, 10s)
const (
	DefaultMaxAttempts = 3
	DefaultMultiplier  = 1.0
	DefaultMinWait     = 4 * time.Second
	DefaultMaxWait     = 10 * time.Second
)

// Policy 重试策略
type Policy struct {
	// MaxAttempts 最大尝试次数（含首次调用）
	MaxAttempts int
	// Multiplier 指数退避乘数
	Multiplier float64
	// MinWait 两次尝试之间的最小等待
	MinWait time.Duration
	// MaxWait 两次尝试之间的最大等待
	MaxWait time.Duration

	// RetryIf 判断错误是否可重试；为 nil 时重试所有错误
	RetryIf func(error) bool
	// OnRetry 每次重试前的回调（日志/指标），attempt 为已失败的尝试序号
	OnRetry func(ctx context.Context, attempt int, wait time.Duration, err error)
	// Sleep 等待实现；为 nil 时使用真实计时器。测试中可注入
	Sleep func(ctx context.Context, d time.Duration) error
}

// normalized 填充策略默认值
func (p Policy) normalized() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Multiplier <= 0 {
		p.Multiplier = DefaultMultiplier
	}
	if p.MinWait <= 0 {
		p.MinWait = DefaultMinWait
	}
	if p.MaxWait <= 0 {
		p.MaxWait = DefaultMaxWait
	}
	if p.MaxWait < p.MinWait {
		p.MaxWait = p.MinWait
	}
	if p.RetryIf == nil {
		p.RetryIf = func(error) bool { return true }
	}
	if p.Sleep == nil {
		p.Sleep = sleepContext
	}
	return p
}

// Wait 计算第 attempt 次失败后的等待时长：clamp(multiplier·2^attempt, min, max)
func (p Policy) Wait(attempt int) time.Duration {
	p = p.normalized()
	wait := time.Duration(p.Multiplier * math.Pow(2, float64(attempt)) * float64(time.Second))
	if wait < p.MinWait {
		return p.MinWait
	}
	if wait > p.MaxWait {
		return p.MaxWait
	}
	return wait
}

// Do 按策略执行操作。不可重试的错误与重试耗尽后的最后一次错误原样返回。
func Do[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	p = p.normalized()

	var zero T
	for attempt := 1; ; attempt++ {
		out, err := op(ctx)
		if err == nil {
			return out, nil
		}
		if !p.RetryIf(err) || attempt >= p.MaxAttempts {
			return zero, err
		}

		wait := p.Wait(attempt)
		if p.OnRetry != nil {
			p.OnRetry(ctx, attempt, wait, err)
		}
		if sleepErr := p.Sleep(ctx, wait); sleepErr != nil {
			return zero, sleepErr
		}
	}
}

// sleepContext 可被 context 取消的等待
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
