package middleware

import (
	"errors"
	"strconv"

	"assetline/config"
	"assetline/internal/core"
	"assetline/internal/database/redis/repository"
	cErr "assetline/internal/pkg/error"
	"assetline/internal/pkg/response"
	"assetline/internal/telemetry"

	"github.com/gin-gonic/gin"
)

// RateLimit 限制單一 requester 在視窗內的請求提交次數。
// 掛在 POST /requests 前、Auth 之後；額度記在 Redis，固定視窗倒數。
type RateLimit struct {
	trace                 *telemetry.Trace
	metric                *telemetry.Metric
	config                *config.Configuration
	rateLimiterRepository *repository.RateLimiterRepository
}

func NewRateLimit(
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	rateLimiterRepository *repository.RateLimiterRepository,
) *RateLimit {
	return &RateLimit{
		trace:                 trace,
		metric:                metric,
		config:                config,
		rateLimiterRepository: rateLimiterRepository,
	}
}

func (middleware *RateLimit) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !middleware.config.RateLimit.Enabled {
			c.Next()
			return
		}

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRateLimitMiddleware))

		requesterMail := c.GetString(core.ContextEmailKey)
		if requesterMail == "" {
			err := cErr.Unauthorized("missing auth context")
			response.AbortWithError(c, err)
			end(err)
			return
		}

		remaining, ttlSec, consumeError := middleware.rateLimiterRepository.Consume(
			ctx,
			requesterMail,
			middleware.config.RateLimit.WindowSeconds,
			middleware.config.RateLimit.Limit,
		)
		if consumeError != nil && !errors.Is(consumeError, repository.ErrRateLimitExceeded) {
			// Redis 掛掉不阻斷提交，但要留下紀錄
			middleware.trace.ApplyTraceAttributes(span, core.TraceRateLimitMeta{
				RequesterMail: requesterMail,
				Op:            "consume",
			})
			end(nil)
			c.Next()
			return
		}

		// 寫入回應標頭，方便呼叫端與排錯
		c.Header("X-RateLimit-Limit", strconv.Itoa(middleware.config.RateLimit.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ttlSec > 0 {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(ttlSec, 10))
		}

		middleware.trace.ApplyTraceAttributes(span, core.TraceRateLimitMeta{
			RequesterMail: requesterMail,
			Limit:         middleware.config.RateLimit.Limit,
			WindowSec:     middleware.config.RateLimit.WindowSeconds,
			Remaining:     remaining,
			TTL:           ttlSec,
			Op:            "consume",
		})

		if errors.Is(consumeError, repository.ErrRateLimitExceeded) {
			if ttlSec > 0 {
				c.Header("Retry-After", strconv.FormatInt(ttlSec, 10))
			}
			if middleware.metric.RateLimitTotal != nil {
				middleware.metric.RateLimitTotal.WithLabelValues(c.FullPath()).Inc()
			}
			err := cErr.RateLimitExceeded("submission limit exceeded, retry later")
			response.AbortWithError(c, err)
			end(err)
			return
		}
		end(nil)
		c.Next()
	}
}

// Quota 查詢目前視窗的剩餘提交額度，不消耗次數。
// 前端靠它決定要不要把送出鈕反灰。
// @Summary 查詢請求提交額度（不消耗次數）
// @Tags Request
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]string
// @Router /requests/quota [get]
func (middleware *RateLimit) Quota(c *gin.Context) {
	if !middleware.config.RateLimit.Enabled {
		response.Success(c, gin.H{"enabled": false})
		return
	}

	ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRateLimitMiddleware))
	defer end(nil)

	requesterMail := c.GetString(core.ContextEmailKey)
	if requesterMail == "" {
		response.AbortWithError(c, cErr.Unauthorized("missing auth context"))
		return
	}

	remaining, ttlSec, getError := middleware.rateLimiterRepository.GetCurrent(
		ctx, requesterMail, middleware.config.RateLimit.Limit,
	)
	if getError != nil {
		response.AbortWithError(c, cErr.RateLimiterUnavailable("quota lookup failed"))
		return
	}

	middleware.trace.ApplyTraceAttributes(span, core.TraceRateLimitMeta{
		RequesterMail: requesterMail,
		Limit:         middleware.config.RateLimit.Limit,
		WindowSec:     middleware.config.RateLimit.WindowSeconds,
		Remaining:     remaining,
		TTL:           ttlSec,
		Op:            "get",
	})
	response.Success(c, gin.H{
		"enabled":      true,
		"limit":        middleware.config.RateLimit.Limit,
		"remaining":    remaining,
		"resetSeconds": ttlSec,
	})
}
