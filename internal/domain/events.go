package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// EventKind - тип доменного события, по нему шина выбирает обработчики.
type EventKind int

const (
	EventPowerMadePublic EventKind = iota + 1
	EventPowerArrayMadePublic
)

func (k EventKind) String() string {
	switch k {
	case EventPowerMadePublic:
		return "power_made_public"
	case EventPowerArrayMadePublic:
		return "power_array_made_public"
	default:
		return "unknown"
	}
}

// Event - доменное событие, привязанное к агрегату.
type Event interface {
	Kind() EventKind
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}

// PowerMadePublicEvent возникает при Power.MakePublic.
type PowerMadePublicEvent struct {
	Power         *Power
	PeculiarityID uuid.UUID // uuid.Nil, если домен не peculiar
	occurredAt    time.Time
}

func (e PowerMadePublicEvent) Kind() EventKind        { return EventPowerMadePublic }
func (e PowerMadePublicEvent) AggregateID() uuid.UUID { return e.Power.ID() }
func (e PowerMadePublicEvent) OccurredAt() time.Time  { return e.occurredAt }

// PowerArrayMadePublicEvent возникает при PowerArray.MakePublic.
// PrivatePowerIDs - неофициальные приватные силы внутри acervo на момент публикации.
type PowerArrayMadePublicEvent struct {
	PowerArray      *PowerArray
	PrivatePowerIDs []uuid.UUID
	occurredAt      time.Time
}

func (e PowerArrayMadePublicEvent) Kind() EventKind        { return EventPowerArrayMadePublic }
func (e PowerArrayMadePublicEvent) AggregateID() uuid.UUID { return e.PowerArray.ID() }
func (e PowerArrayMadePublicEvent) OccurredAt() time.Time  { return e.occurredAt }

// pendingEvents встраивается в агрегаты, которые порождают события.
type pendingEvents struct {
	events []Event
}

func (p *pendingEvents) record(e Event) {
	p.events = append(p.events, e)
}

// PendingEvents возвращает еще не отправленные события.
func (p *pendingEvents) PendingEvents() []Event {
	return slices.Clone(p.events)
}

// ClearEvents вызывается шиной после успешной отправки.
func (p *pendingEvents) ClearEvents() {
	p.events = nil
}
