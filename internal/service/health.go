package service

import "sync/atomic"

// HealthService liveness 與 readiness 分開：
// live 代表行程還活著，ready 代表 Mongo / Redis 連線都就緒、可以收流量。
type HealthService struct {
	live  atomic.Bool
	ready atomic.Bool
}

func NewHealthService() *HealthService {
	s := &HealthService{}
	s.live.Store(true)
	s.ready.Store(false) // 啟動完成後再打開
	return s
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}
