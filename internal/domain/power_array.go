package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxArrayPowers = 50

// PowerArrayProps - данные для создания или восстановления acervo.
type PowerArrayProps struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Nome           string
	Descricao      string
	Dominio        Domain
	ParametrosBase *PowerParameters
	Powers         []*Power
	CustoTotal     PowerCost
	IsPublic       bool
	Notas          string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// PowerArray - acervo: набор сил одного домена.
type PowerArray struct {
	ownership
	pendingEvents
	id             uuid.UUID
	nome           string
	descricao      string
	dominio        Domain
	parametrosBase *PowerParameters
	powers         *WatchedList[*Power]
	custoTotal     PowerCost
	notas          string
	createdAt      time.Time
	updatedAt      *time.Time
}

var _ Ownable = (*PowerArray)(nil)

func powerIdentity(a, b *Power) bool { return a.ID() == b.ID() }

// NewPowerArray создает новый acervo. Все силы считаются добавленными.
func NewPowerArray(props PowerArrayProps) (*PowerArray, error) {
	powers := NewWatchedList(powerIdentity)
	powers.Update(props.Powers)
	return buildPowerArray(props, powers)
}

// RestorePowerArray восстанавливает сохраненный acervo.
func RestorePowerArray(props PowerArrayProps) (*PowerArray, error) {
	return buildPowerArray(props, NewWatchedList(powerIdentity, props.Powers...))
}

func NewOfficialPowerArray(props PowerArrayProps) (*PowerArray, error) {
	props.UserID = uuid.Nil
	props.IsPublic = false
	return NewPowerArray(props)
}

func buildPowerArray(props PowerArrayProps, powers *WatchedList[*Power]) (*PowerArray, error) {
	a := &PowerArray{
		ownership:      ownership{userID: props.UserID, isPublic: props.IsPublic},
		id:             props.ID,
		nome:           props.Nome,
		descricao:      props.Descricao,
		dominio:        props.Dominio,
		parametrosBase: props.ParametrosBase,
		powers:         powers,
		custoTotal:     props.CustoTotal,
		notas:          props.Notas,
		createdAt:      props.CreatedAt,
		updatedAt:      props.UpdatedAt,
	}
	if a.id == uuid.Nil {
		a.id = uuid.New()
	}
	if a.createdAt.IsZero() {
		a.createdAt = now()
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *PowerArray) validate() error {
	if strings.TrimSpace(a.nome) == "" {
		return newValidationError("nome", "power array name is required")
	}
	if utf8.RuneCountInString(a.nome) > 100 {
		return newValidationError("nome", "power array name cannot exceed 100 characters")
	}
	if strings.TrimSpace(a.descricao) == "" {
		return newValidationError("descricao", "power array description is required")
	}
	items := a.powers.Items()
	if len(items) == 0 {
		return newValidationError("powers", "a power array must have at least one power")
	}
	if len(items) > MaxArrayPowers {
		return newValidationError("powers", "a power array cannot have more than 50 powers")
	}
	first := items[0].Dominio()
	for _, p := range items[1:] {
		if !p.Dominio().Equals(first) {
			return newValidationError("dominio", "all powers of an array must share the same domain")
		}
	}
	if !a.dominio.Equals(first) {
		return newValidationError("dominio", "the array domain must match the domain of its powers")
	}
	return nil
}

func (a *PowerArray) ID() uuid.UUID                    { return a.id }
func (a *PowerArray) Nome() string                     { return a.nome }
func (a *PowerArray) Descricao() string                { return a.descricao }
func (a *PowerArray) Dominio() Domain                  { return a.dominio }
func (a *PowerArray) ParametrosBase() *PowerParameters { return a.parametrosBase }
func (a *PowerArray) CustoTotal() PowerCost            { return a.custoTotal }
func (a *PowerArray) Notas() string                    { return a.notas }
func (a *PowerArray) CreatedAt() time.Time             { return a.createdAt }
func (a *PowerArray) UpdatedAt() *time.Time            { return a.updatedAt }
func (a *PowerArray) Powers() []*Power                 { return a.powers.Items() }
func (a *PowerArray) PowerList() *WatchedList[*Power]  { return a.powers.Clone() }

// PowerIDs возвращает id сил в порядке acervo.
func (a *PowerArray) PowerIDs() []uuid.UUID {
	items := a.powers.Items()
	ids := make([]uuid.UUID, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID())
	}
	return ids
}

// PowerArrayUpdate - частичное изменение; nil поля не меняются.
type PowerArrayUpdate struct {
	Nome           *string
	Descricao      *string
	Dominio        *Domain
	ParametrosBase *PowerParameters
	Powers         []*Power
	CustoTotal     *PowerCost
	Notas          *string
}

func (a *PowerArray) Update(u PowerArrayUpdate) (*PowerArray, error) {
	props := a.props()
	if u.Nome != nil {
		props.Nome = *u.Nome
	}
	if u.Descricao != nil {
		props.Descricao = *u.Descricao
	}
	if u.Dominio != nil {
		props.Dominio = *u.Dominio
	}
	if u.ParametrosBase != nil {
		props.ParametrosBase = u.ParametrosBase
	}
	if u.CustoTotal != nil {
		props.CustoTotal = *u.CustoTotal
	}
	if u.Notas != nil {
		props.Notas = *u.Notas
	}
	props.UpdatedAt = timePtr(now())

	powers := a.powers.Clone()
	if u.Powers != nil {
		powers = NewWatchedList(powerIdentity)
		powers.Update(u.Powers)
	}
	return buildPowerArray(props, powers)
}

// MakePublic возвращает публичную копию и записывает PowerArrayMadePublicEvent
// со списком приватных неофициальных сил.
func (a *PowerArray) MakePublic() (*PowerArray, error) {
	if a.IsOfficial() {
		return nil, newValidationError("isPublic", "official power arrays cannot be made public")
	}
	var privateIDs []uuid.UUID
	for _, p := range a.powers.Items() {
		if !p.IsOfficial() && !p.IsPublic() {
			privateIDs = append(privateIDs, p.ID())
		}
	}
	cp := a.copyWithVisibility(true)
	cp.record(PowerArrayMadePublicEvent{PowerArray: cp, PrivatePowerIDs: privateIDs, occurredAt: now()})
	return cp, nil
}

func (a *PowerArray) MakePrivate() (*PowerArray, error) {
	if a.IsOfficial() {
		return nil, newValidationError("isPublic", "official power arrays cannot be made private")
	}
	return a.copyWithVisibility(false), nil
}

func (a *PowerArray) copyWithVisibility(public bool) *PowerArray {
	cp := *a
	cp.pendingEvents = pendingEvents{}
	cp.powers = a.powers.Clone()
	cp.isPublic = public
	cp.updatedAt = timePtr(now())
	return &cp
}

func (a *PowerArray) Props() PowerArrayProps {
	return a.props()
}

func (a *PowerArray) props() PowerArrayProps {
	return PowerArrayProps{
		ID:             a.id,
		UserID:         a.userID,
		Nome:           a.nome,
		Descricao:      a.descricao,
		Dominio:        a.dominio,
		ParametrosBase: a.parametrosBase,
		Powers:         a.powers.Items(),
		CustoTotal:     a.custoTotal,
		IsPublic:       a.isPublic,
		Notas:          a.notas,
		CreatedAt:      a.createdAt,
		UpdatedAt:      a.updatedAt,
	}
}
