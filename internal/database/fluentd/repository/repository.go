package repository

import (
	"github.com/google/wire"
)

// FluentdRepository 彙整所有稽核日誌的出口
type FluentdRepository struct {
	logRepository *LogRepository
}

func NewFluentdRepository(
	logRepository *LogRepository,
) *FluentdRepository {
	return &FluentdRepository{
		logRepository: logRepository,
	}
}

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewLogRepository,
	NewFluentdRepository)
