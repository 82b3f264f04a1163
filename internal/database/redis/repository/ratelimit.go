package repository

import (
	"context"
	"errors"
	"time"

	"assetline/internal/core"
	client "assetline/internal/database/client"
	"assetline/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

type RateLimiterRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
}

func NewRateLimiterRepository(trace *telemetry.Trace, client *client.RedisClient) *RateLimiterRepository {
	return &RateLimiterRepository{trace: trace, client: client.Client()}
}

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// Consume 消耗一次請求提交配額；自動處理新週期初始化與剩餘 TTL。
// 回傳：remaining（剩餘次數）、ttlSec（剩餘秒數）、err（若超限為 ErrRateLimitExceeded）
func (repository *RateLimiterRepository) Consume(
	contextValue context.Context,
	requesterMail string,
	windowSeconds int64,
	limitCount int,
) (remainingCount int, timeToLiveSeconds int64, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() {
		endSpan(returnedError)
	}()

	traceMetadata := core.TraceRateLimitMeta{
		RequesterMail: requesterMail,
		Limit:         limitCount,
		WindowSec:     windowSeconds,
		Op:            "consume",
	}
	repository.trace.ApplyTraceAttributes(span, traceMetadata)

	redisKey := repository.buildKey(requesterMail)
	expirationDuration := time.Duration(windowSeconds) * time.Second

	// 嘗試初始化：SETNX key value EX expiration
	wasSet, setError := repository.client.SetNX(
		contextValue,
		redisKey,
		limitCount-1, // 本次消耗一次，所以初始值 = 總額-1
		expirationDuration,
	).Result()
	if setError != nil {
		returnedError = setError
		return 0, 0, returnedError
	}
	if wasSet {
		// 初始化成功，代表這是第一次消耗
		remainingCount = limitCount - 1
		if remainingCount < 0 {
			remainingCount = 0
			returnedError = ErrRateLimitExceeded
		}
		timeToLiveSeconds = windowSeconds
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		return remainingCount, timeToLiveSeconds, returnedError
	}

	// Key 已存在 → 執行 DECR 扣一次
	newValue, decrError := repository.client.Decr(contextValue, redisKey).Result()
	if decrError != nil {
		returnedError = decrError
		return 0, 0, returnedError
	}

	// 查 TTL
	ttlDuration, _ := repository.client.TTL(contextValue, redisKey).Result()
	if ttlDuration > 0 {
		timeToLiveSeconds = int64(ttlDuration.Seconds())
	}

	if newValue < 0 {
		remainingCount = 0
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		returnedError = ErrRateLimitExceeded
		return remainingCount, timeToLiveSeconds, returnedError
	}

	remainingCount = int(newValue)
	traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
	repository.trace.ApplyTraceAttributes(span, traceMetadata)
	return remainingCount, timeToLiveSeconds, nil
}

// GetCurrent 查詢目前「剩餘次數」與剩餘 TTL（秒）。若無紀錄回傳 limitCount,0。
func (repository *RateLimiterRepository) GetCurrent(
	contextValue context.Context,
	requesterMail string,
	limitCount int,
) (remainingCount int, timeToLiveSeconds int64, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	traceMetadata := core.TraceRateLimitMeta{
		RequesterMail: requesterMail,
		Op:            "get",
	}
	repository.trace.ApplyTraceAttributes(span, traceMetadata)

	redisKey := repository.buildKey(requesterMail)

	// 用 pipeline 併發 GET + TTL 減少往返
	pipeline := repository.client.Pipeline()
	getCommand := pipeline.Get(contextValue, redisKey)
	ttlCommand := pipeline.TTL(contextValue, redisKey)
	if _, execError := pipeline.Exec(contextValue); execError != nil && execError != redis.Nil {
		returnedError = execError
		return 0, 0, returnedError
	}

	value, getError := getCommand.Int()
	if getError == redis.Nil {
		// 尚未初始化：remaining = limitCount, ttl = 0
		remainingCount = limitCount
		timeToLiveSeconds = 0
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		return remainingCount, timeToLiveSeconds, nil
	}
	if getError != nil {
		returnedError = getError
		return 0, 0, returnedError
	}

	ttlDuration := ttlCommand.Val()
	if ttlDuration > 0 {
		timeToLiveSeconds = int64(ttlDuration.Seconds())
	} else {
		timeToLiveSeconds = 0
	}

	remainingCount = value // value 就是剩餘（倒數語意）
	if remainingCount < 0 {
		remainingCount = 0
	}

	traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
	repository.trace.ApplyTraceAttributes(span, traceMetadata)
	return remainingCount, timeToLiveSeconds, nil
}

func (repository *RateLimiterRepository) buildKey(requesterMail string) string {
	return string(core.RedisKeyServerName) + ":" + string(core.RedisKeySubmitLimit) + ":" + requesterMail
}
