package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// PeculiarityProps - данные для создания или восстановления Peculiarity.
type PeculiarityProps struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Nome       string
	Descricao  string
	Espiritual bool
	IsPublic   bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Peculiarity - уникальный источник сил персонажа. Всегда принадлежит пользователю.
type Peculiarity struct {
	ownership
	id         uuid.UUID
	nome       string
	descricao  string
	espiritual bool
	createdAt  time.Time
	updatedAt  *time.Time
}

var _ Ownable = (*Peculiarity)(nil)

func NewPeculiarity(props PeculiarityProps) (*Peculiarity, error) {
	if props.UserID == uuid.Nil {
		return nil, newValidationError("userId", "user id is required")
	}
	if err := validatePeculiarityText(props.Nome, props.Descricao); err != nil {
		return nil, err
	}
	p := &Peculiarity{
		ownership:  ownership{userID: props.UserID, isPublic: props.IsPublic},
		id:         props.ID,
		nome:       props.Nome,
		descricao:  props.Descricao,
		espiritual: props.Espiritual,
		createdAt:  props.CreatedAt,
		updatedAt:  props.UpdatedAt,
	}
	if p.id == uuid.Nil {
		p.id = uuid.New()
	}
	if p.createdAt.IsZero() {
		p.createdAt = now()
	}
	return p, nil
}

func validatePeculiarityText(nome, descricao string) error {
	switch n := utf8.RuneCountInString(nome); {
	case strings.TrimSpace(nome) == "":
		return newValidationError("nome", "peculiarity name is required")
	case n < 3:
		return newValidationError("nome", "peculiarity name must have at least 3 characters")
	case n > 100:
		return newValidationError("nome", "peculiarity name must have at most 100 characters")
	}
	switch n := utf8.RuneCountInString(descricao); {
	case strings.TrimSpace(descricao) == "":
		return newValidationError("descricao", "peculiarity description is required")
	case n < 10:
		return newValidationError("descricao", "peculiarity description must have at least 10 characters")
	case n > 500:
		return newValidationError("descricao", "peculiarity description must have at most 500 characters")
	}
	return nil
}

func (p *Peculiarity) ID() uuid.UUID         { return p.id }
func (p *Peculiarity) Nome() string          { return p.nome }
func (p *Peculiarity) Descricao() string     { return p.descricao }
func (p *Peculiarity) Espiritual() bool      { return p.espiritual }
func (p *Peculiarity) CreatedAt() time.Time  { return p.createdAt }
func (p *Peculiarity) UpdatedAt() *time.Time { return p.updatedAt }

// PeculiarityUpdate - частичное изменение; nil поля не меняются.
type PeculiarityUpdate struct {
	Nome       *string
	Descricao  *string
	Espiritual *bool
}

func (p *Peculiarity) Update(u PeculiarityUpdate) (*Peculiarity, error) {
	props := p.props()
	if u.Nome != nil {
		props.Nome = *u.Nome
	}
	if u.Descricao != nil {
		props.Descricao = *u.Descricao
	}
	if u.Espiritual != nil {
		props.Espiritual = *u.Espiritual
	}
	props.UpdatedAt = timePtr(now())
	return NewPeculiarity(props)
}

func (p *Peculiarity) MakePublic() (*Peculiarity, error) {
	return p.withVisibility(true)
}

func (p *Peculiarity) MakePrivate() (*Peculiarity, error) {
	return p.withVisibility(false)
}

func (p *Peculiarity) withVisibility(public bool) (*Peculiarity, error) {
	if p.IsOfficial() {
		return nil, newValidationError("isPublic", "official peculiarities cannot change visibility")
	}
	cp := *p
	cp.isPublic = public
	cp.updatedAt = timePtr(now())
	return &cp, nil
}

func (p *Peculiarity) props() PeculiarityProps {
	return PeculiarityProps{
		ID:         p.id,
		UserID:     p.userID,
		Nome:       p.nome,
		Descricao:  p.descricao,
		Espiritual: p.espiritual,
		IsPublic:   p.isPublic,
		CreatedAt:  p.createdAt,
		UpdatedAt:  p.updatedAt,
	}
}

// now вынесен в переменную, чтобы тесты могли зафиксировать время.
var now = func() time.Time { return time.Now().UTC() }

func timePtr(t time.Time) *time.Time { return &t }

// Props возвращает данные для сохранения.
func (p *Peculiarity) Props() PeculiarityProps {
	return p.props()
}
