package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxPowerEffects             = 20
	MaxPowerGlobalModifications = 50
)

// PowerProps - данные для создания или восстановления силы.
// Пустой UserID означает официальную силу.
type PowerProps struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Nome                string
	Descricao           string
	Dominio             Domain
	Parametros          PowerParameters
	Effects             []AppliedEffect
	GlobalModifications []AppliedModification
	CustoTotal          PowerCost
	CustoAlternativo    *AlternativeCost
	IsPublic            bool
	Notas               string
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

// Power - агрегат силы, собранной из эффектов каталога.
type Power struct {
	ownership
	pendingEvents
	id                  uuid.UUID
	nome                string
	descricao           string
	dominio             Domain
	parametros          PowerParameters
	effects             *WatchedList[AppliedEffect]
	globalModifications *WatchedList[AppliedModification]
	custoTotal          PowerCost
	custoAlternativo    *AlternativeCost
	notas               string
	createdAt           time.Time
	updatedAt           *time.Time
}

var _ Ownable = (*Power)(nil)

func effectIdentity(a, b AppliedEffect) bool             { return a.SameIdentity(b) }
func modificationEquality(a, b AppliedModification) bool { return a.Equals(b) }

// NewPower создает новую силу. Все эффекты и модификации считаются добавленными.
func NewPower(props PowerProps) (*Power, error) {
	effects := NewWatchedList(effectIdentity)
	effects.Update(props.Effects)
	mods := NewWatchedList(modificationEquality)
	mods.Update(props.GlobalModifications)
	return buildPower(props, effects, mods)
}

// RestorePower восстанавливает сохраненную силу: текущие списки становятся снимком.
func RestorePower(props PowerProps) (*Power, error) {
	return buildPower(props,
		NewWatchedList(effectIdentity, props.Effects...),
		NewWatchedList(modificationEquality, props.GlobalModifications...),
	)
}

// NewOfficialPower создает системную силу без владельца. Она всегда приватна.
func NewOfficialPower(props PowerProps) (*Power, error) {
	props.UserID = uuid.Nil
	props.IsPublic = false
	return NewPower(props)
}

func buildPower(props PowerProps, effects *WatchedList[AppliedEffect], mods *WatchedList[AppliedModification]) (*Power, error) {
	p := &Power{
		ownership:           ownership{userID: props.UserID, isPublic: props.IsPublic},
		id:                  props.ID,
		nome:                props.Nome,
		descricao:           props.Descricao,
		dominio:             props.Dominio,
		parametros:          props.Parametros,
		effects:             effects,
		globalModifications: mods,
		custoTotal:          props.CustoTotal,
		custoAlternativo:    props.CustoAlternativo,
		notas:               props.Notas,
		createdAt:           props.CreatedAt,
		updatedAt:           props.UpdatedAt,
	}
	if p.id == uuid.Nil {
		p.id = uuid.New()
	}
	if p.createdAt.IsZero() {
		p.createdAt = now()
	}
	if p.dominio == (Domain{}) {
		p.dominio = NaturalDomain()
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Power) validate() error {
	if strings.TrimSpace(p.nome) == "" {
		return newValidationError("nome", "power name is required")
	}
	if utf8.RuneCountInString(p.nome) > 100 {
		return newValidationError("nome", "power name cannot exceed 100 characters")
	}
	if strings.TrimSpace(p.descricao) == "" {
		return newValidationError("descricao", "power description is required")
	}
	if p.effects.Len() == 0 {
		return newValidationError("effects", "a power must have at least one effect")
	}
	if p.effects.Len() > MaxPowerEffects {
		return newValidationError("effects", "a power cannot have more than 20 effects")
	}
	if p.globalModifications.Len() > MaxPowerGlobalModifications {
		return newValidationError("globalModifications", "a power cannot have more than 50 global modifications")
	}
	return nil
}

func (p *Power) ID() uuid.UUID                      { return p.id }
func (p *Power) Nome() string                       { return p.nome }
func (p *Power) Descricao() string                  { return p.descricao }
func (p *Power) Dominio() Domain                    { return p.dominio }
func (p *Power) Parametros() PowerParameters        { return p.parametros }
func (p *Power) CustoTotal() PowerCost              { return p.custoTotal }
func (p *Power) CustoAlternativo() *AlternativeCost { return p.custoAlternativo }
func (p *Power) Notas() string                      { return p.notas }
func (p *Power) CreatedAt() time.Time               { return p.createdAt }
func (p *Power) UpdatedAt() *time.Time              { return p.updatedAt }
func (p *Power) Effects() []AppliedEffect           { return p.effects.Items() }
func (p *Power) GlobalModifications() []AppliedModification {
	return p.globalModifications.Items()
}

// EffectList возвращает копию списка эффектов вместе со снимком для диффа.
func (p *Power) EffectList() *WatchedList[AppliedEffect] {
	return p.effects.Clone()
}

func (p *Power) GlobalModificationList() *WatchedList[AppliedModification] {
	return p.globalModifications.Clone()
}

func (p *Power) HasGlobalModifications() bool {
	return p.globalModifications.Len() > 0
}

// ReferencedPeculiarityID возвращает id Peculiarity из домена, если он peculiar.
func (p *Power) ReferencedPeculiarityID() (uuid.UUID, bool) {
	return p.dominio.PeculiarID()
}

// PowerUpdate - частичное изменение силы; nil поля не меняются.
// Пустой, но не nil срез GlobalModifications очищает глобальные модификации.
type PowerUpdate struct {
	Nome                *string
	Descricao           *string
	Dominio             *Domain
	Parametros          *PowerParameters
	Effects             []AppliedEffect
	GlobalModifications []AppliedModification
	CustoTotal          *PowerCost
	CustoAlternativo    *AlternativeCost
	Notas               *string
}

// Update возвращает новую проверенную силу с тем же id и видимостью.
func (p *Power) Update(u PowerUpdate) (*Power, error) {
	props := p.props()
	if u.Nome != nil {
		props.Nome = *u.Nome
	}
	if u.Descricao != nil {
		props.Descricao = *u.Descricao
	}
	if u.Dominio != nil {
		props.Dominio = *u.Dominio
	}
	if u.Parametros != nil {
		props.Parametros = *u.Parametros
	}
	if u.CustoTotal != nil {
		props.CustoTotal = *u.CustoTotal
	}
	if u.CustoAlternativo != nil {
		props.CustoAlternativo = u.CustoAlternativo
	}
	if u.Notas != nil {
		props.Notas = *u.Notas
	}
	props.UpdatedAt = timePtr(now())

	effects := p.effects.Clone()
	if u.Effects != nil {
		effects = NewWatchedList(effectIdentity)
		effects.Update(u.Effects)
	}
	mods := p.globalModifications.Clone()
	if u.GlobalModifications != nil {
		mods = NewWatchedList(modificationEquality)
		mods.Update(u.GlobalModifications)
	}
	return buildPower(props, effects, mods)
}

// MakePublic возвращает публичную копию и записывает в нее PowerMadePublicEvent.
func (p *Power) MakePublic() (*Power, error) {
	if p.IsOfficial() {
		return nil, newValidationError("isPublic", "official powers cannot be made public")
	}
	cp := p.copyWithVisibility(true)
	peculiarID, _ := cp.dominio.PeculiarID()
	cp.record(PowerMadePublicEvent{Power: cp, PeculiarityID: peculiarID, occurredAt: now()})
	return cp, nil
}

func (p *Power) MakePrivate() (*Power, error) {
	if p.IsOfficial() {
		return nil, newValidationError("isPublic", "official powers cannot be made private")
	}
	return p.copyWithVisibility(false), nil
}

func (p *Power) copyWithVisibility(public bool) *Power {
	cp := *p
	cp.pendingEvents = pendingEvents{}
	cp.effects = p.effects.Clone()
	cp.globalModifications = p.globalModifications.Clone()
	cp.isPublic = public
	cp.updatedAt = timePtr(now())
	return &cp
}

// Props возвращает данные силы для сохранения или копирования.
func (p *Power) Props() PowerProps {
	return p.props()
}

func (p *Power) props() PowerProps {
	return PowerProps{
		ID:                  p.id,
		UserID:              p.userID,
		Nome:                p.nome,
		Descricao:           p.descricao,
		Dominio:             p.dominio,
		Parametros:          p.parametros,
		Effects:             p.effects.Items(),
		GlobalModifications: p.globalModifications.Items(),
		CustoTotal:          p.custoTotal,
		CustoAlternativo:    p.custoAlternativo,
		IsPublic:            p.isPublic,
		Notas:               p.notas,
		CreatedAt:           p.createdAt,
		UpdatedAt:           p.updatedAt,
	}
}
