package events

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Aggregate - агрегат с очередью доменных событий.
type Aggregate interface {
	ID() uuid.UUID
	PendingEvents() []domain.Event
	ClearEvents()
}

// Handler обрабатывает одно событие. Ошибка прерывает отправку оставшихся событий.
type Handler func(ctx context.Context, event domain.Event) error

type registration struct {
	name    string
	handler Handler
}

// Bus - синхронная шина доменных событий.
// Обработчики вызываются в порядке регистрации, по одному.
type Bus struct {
	mu       sync.Mutex
	handlers map[domain.EventKind][]registration
	marked   []Aggregate
	logger   *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[domain.EventKind][]registration),
		logger:   logger.Named("EventBus"),
	}
}

// Register добавляет обработчик для типа события. name используется в логах.
func (b *Bus) Register(kind domain.EventKind, name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], registration{name: name, handler: handler})
	b.logger.Debug("Handler registered", zap.Stringer("kind", kind), zap.String("handler", name))
}

// Mark ставит агрегат в очередь на отправку. Повторная отметка того же id
// заменяет экземпляр на более свежий.
func (b *Bus) Mark(aggregate Aggregate) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := slices.IndexFunc(b.marked, func(a Aggregate) bool { return a.ID() == aggregate.ID() })
	if idx >= 0 {
		b.marked[idx] = aggregate
		return
	}
	b.marked = append(b.marked, aggregate)
}

// IsMarked сообщает, ожидает ли агрегат отправки.
func (b *Bus) IsMarked(id uuid.UUID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.ContainsFunc(b.marked, func(a Aggregate) bool { return a.ID() == id })
}

// DispatchForAggregate отправляет события отмеченного агрегата всем обработчикам.
// После успешной отправки события очищаются, а отметка снимается.
// При ошибке обработчика агрегат остается отмеченным.
func (b *Bus) DispatchForAggregate(ctx context.Context, id uuid.UUID) error {
	b.mu.Lock()
	idx := slices.IndexFunc(b.marked, func(a Aggregate) bool { return a.ID() == id })
	if idx < 0 {
		b.mu.Unlock()
		return nil
	}
	aggregate := b.marked[idx]
	b.mu.Unlock()

	// Обработчики могут рекурсивно вызывать шину, поэтому мьютекс здесь не держим
	for _, event := range aggregate.PendingEvents() {
		if err := b.dispatch(ctx, event); err != nil {
			return err
		}
	}

	aggregate.ClearEvents()
	b.unmark(id)
	return nil
}

// Dispatch отмечает агрегат и сразу отправляет его события.
func (b *Bus) Dispatch(ctx context.Context, aggregate Aggregate) error {
	if len(aggregate.PendingEvents()) == 0 {
		return nil
	}
	b.Mark(aggregate)
	return b.DispatchForAggregate(ctx, aggregate.ID())
}

func (b *Bus) dispatch(ctx context.Context, event domain.Event) error {
	b.mu.Lock()
	regs := slices.Clone(b.handlers[event.Kind()])
	b.mu.Unlock()

	logFields := []zap.Field{
		zap.Stringer("kind", event.Kind()),
		zap.String("aggregateID", event.AggregateID().String()),
	}
	for _, reg := range regs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := reg.handler(ctx, event); err != nil {
			metrics.DomainEventsDispatchedTotal.WithLabelValues(event.Kind().String(), metrics.StatusFailure).Inc()
			b.logger.Error("Event handler failed", append(logFields, zap.String("handler", reg.name), zap.Error(err))...)
			return fmt.Errorf("handler %s for %s: %w", reg.name, event.Kind(), err)
		}
	}
	metrics.DomainEventsDispatchedTotal.WithLabelValues(event.Kind().String(), metrics.StatusSuccess).Inc()
	b.logger.Debug("Event dispatched", append(logFields, zap.Int("handlers", len(regs)))...)
	return nil
}

func (b *Bus) unmark(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.marked = slices.DeleteFunc(b.marked, func(a Aggregate) bool { return a.ID() == id })
}

// Reset удаляет все обработчики и отметки. Нужен тестам между сценариями.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[domain.EventKind][]registration)
	b.marked = nil
}

// ClearMarked снимает все отметки, оставляя обработчики.
func (b *Bus) ClearMarked() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.marked = nil
}
