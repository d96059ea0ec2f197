package service

import (
	"github.com/Gaaaybe/Aetherium/internal/events"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"

	"go.uber.org/zap"
)

// Repositories - хранилища, из которых собираются сервисы.
type Repositories struct {
	Effects       interfaces.EffectRepository
	Modifications interfaces.ModificationRepository
	Powers        interfaces.PowerRepository
	PowerArrays   interfaces.PowerArrayRepository
	Peculiarities interfaces.PeculiarityRepository
}

// Services - набор сценариев приложения поверх одной шины событий.
type Services struct {
	Calculator    PowerCostCalculator
	Cost          CostService
	Catalog       CatalogService
	Powers        PowerService
	PowerArrays   PowerArrayService
	Peculiarities PeculiarityService
}

// NewServices собирает сервисы и подписывает каскад видимости на bus.
// Прочие обработчики (например, пересылку в брокер) нужно регистрировать после.
func NewServices(repos Repositories, bus *events.Bus, logger *zap.Logger) *Services {
	NewVisibilitySubscribers(repos.Powers, repos.Peculiarities, bus, logger).Register()

	calculator := NewPowerCostCalculator(repos.Effects, repos.Modifications, logger)
	return &Services{
		Calculator:    calculator,
		Cost:          NewCostService(calculator),
		Catalog:       NewCatalogService(repos.Effects, repos.Modifications, logger),
		Powers:        NewPowerService(repos.Powers, repos.Peculiarities, calculator, bus, logger),
		PowerArrays:   NewPowerArrayService(repos.PowerArrays, repos.Powers, repos.Peculiarities, bus, logger),
		Peculiarities: NewPeculiarityService(repos.Peculiarities, logger),
	}
}
