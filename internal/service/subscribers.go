package service

import (
	"context"
	"fmt"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/events"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"
	"github.com/Gaaaybe/Aetherium/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VisibilitySubscribers распространяет публикацию вниз по ссылкам:
// acervo -> его приватные силы -> peculiaridade каждой силы.
type VisibilitySubscribers struct {
	powerRepo       interfaces.PowerRepository
	peculiarityRepo interfaces.PeculiarityRepository
	bus             *events.Bus
	logger          *zap.Logger
}

func NewVisibilitySubscribers(
	powerRepo interfaces.PowerRepository,
	peculiarityRepo interfaces.PeculiarityRepository,
	bus *events.Bus,
	logger *zap.Logger,
) *VisibilitySubscribers {
	return &VisibilitySubscribers{
		powerRepo:       powerRepo,
		peculiarityRepo: peculiarityRepo,
		bus:             bus,
		logger:          logger.Named("VisibilitySubscribers"),
	}
}

// Register подписывает обработчики на шину. Вызывается один раз при старте.
func (s *VisibilitySubscribers) Register() {
	s.bus.Register(domain.EventPowerMadePublic, "OnPowerMadePublic", s.OnPowerMadePublic)
	s.bus.Register(domain.EventPowerArrayMadePublic, "OnPowerArrayMadePublic", s.OnPowerArrayMadePublic)
}

// OnPowerMadePublic публикует приватную peculiaridade, на которую ссылается домен силы.
// У peculiaridade нет собственных событий, поэтому шина дальше не вызывается.
func (s *VisibilitySubscribers) OnPowerMadePublic(ctx context.Context, event domain.Event) error {
	e, ok := event.(domain.PowerMadePublicEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	if e.PeculiarityID == uuid.Nil {
		return nil
	}
	logFields := []zap.Field{
		zap.String("powerID", e.AggregateID().String()),
		zap.String("peculiarityID", e.PeculiarityID.String()),
	}

	peculiarity, err := s.peculiarityRepo.FindByID(ctx, e.PeculiarityID)
	if err != nil {
		s.logger.Error("Failed to load referenced peculiarity", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to load peculiarity: %w", err)
	}
	if peculiarity == nil || peculiarity.IsPublic() {
		s.logger.Debug("Peculiarity missing or already public, nothing to publish", logFields...)
		return nil
	}

	published, err := peculiarity.MakePublic()
	if err != nil {
		return err
	}
	if err := s.peculiarityRepo.Update(ctx, published); err != nil {
		s.logger.Error("Failed to persist published peculiarity", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to update peculiarity: %w", err)
	}
	metrics.VisibilityCascadeTotal.WithLabelValues("peculiarity").Inc()
	s.logger.Info("Peculiarity published by cascade", logFields...)
	return nil
}

// OnPowerArrayMadePublic публикует каждую все еще приватную силу acervo
// и сразу отправляет ее события, что доводит каскад до peculiaridade.
func (s *VisibilitySubscribers) OnPowerArrayMadePublic(ctx context.Context, event domain.Event) error {
	e, ok := event.(domain.PowerArrayMadePublicEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	log := s.logger.With(zap.String("powerArrayID", e.AggregateID().String()))

	for _, powerID := range e.PrivatePowerIDs {
		power, err := s.powerRepo.FindByID(ctx, powerID)
		if err != nil {
			log.Error("Failed to load power", zap.String("powerID", powerID.String()), zap.Error(err))
			return fmt.Errorf("failed to load power %s: %w", powerID, err)
		}
		if power == nil || power.IsPublic() {
			continue
		}

		published, err := power.MakePublic()
		if err != nil {
			return err
		}
		if err := s.powerRepo.Update(ctx, published); err != nil {
			log.Error("Failed to persist published power", zap.String("powerID", powerID.String()), zap.Error(err))
			return fmt.Errorf("failed to update power %s: %w", powerID, err)
		}
		metrics.VisibilityCascadeTotal.WithLabelValues("power").Inc()
		log.Info("Power published by cascade", zap.String("powerID", powerID.String()))

		if err := s.bus.Dispatch(ctx, published); err != nil {
			return err
		}
	}
	return nil
}
