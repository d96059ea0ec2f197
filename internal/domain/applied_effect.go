package domain

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

const (
	MinEffectGrau = 1
	MaxEffectGrau = 30
)

// AppliedEffectProps - входные данные для NewAppliedEffect. Пустой ID заменяется новым.
type AppliedEffectProps struct {
	ID             uuid.UUID
	EffectBaseID   string
	Grau           int
	ConfiguracaoID string
	InputValue     string
	Modifications  []AppliedModification
	Custo          PowerCost
	Nota           string
}

// AppliedEffect - конкретное применение эффекта каталога внутри силы.
// Имеет собственную идентичность; все изменения возвращают копию.
type AppliedEffect struct {
	id             uuid.UUID
	effectBaseID   string
	grau           int
	configuracaoID string
	inputValue     string
	modifications  []AppliedModification
	custo          PowerCost
	nota           string
}

func NewAppliedEffect(props AppliedEffectProps) (AppliedEffect, error) {
	if strings.TrimSpace(props.EffectBaseID) == "" {
		return AppliedEffect{}, newValidationError("effectBaseId", "effectBaseId is required")
	}
	if err := validateEffectGrau(props.Grau); err != nil {
		return AppliedEffect{}, err
	}
	id := props.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return AppliedEffect{
		id:             id,
		effectBaseID:   props.EffectBaseID,
		grau:           props.Grau,
		configuracaoID: props.ConfiguracaoID,
		inputValue:     props.InputValue,
		modifications:  slices.Clone(props.Modifications),
		custo:          props.Custo,
		nota:           props.Nota,
	}, nil
}

func validateEffectGrau(grau int) error {
	if grau < MinEffectGrau {
		return newValidationError("grau", "effect grau must be at least 1")
	}
	if grau > MaxEffectGrau {
		return newValidationError("grau", "effect grau cannot exceed 30")
	}
	return nil
}

func (e AppliedEffect) ID() uuid.UUID          { return e.id }
func (e AppliedEffect) EffectBaseID() string   { return e.effectBaseID }
func (e AppliedEffect) Grau() int              { return e.grau }
func (e AppliedEffect) ConfiguracaoID() string { return e.configuracaoID }
func (e AppliedEffect) InputValue() string     { return e.inputValue }
func (e AppliedEffect) Custo() PowerCost       { return e.custo }
func (e AppliedEffect) Nota() string           { return e.nota }

// Modifications возвращает копию списка модификаций.
func (e AppliedEffect) Modifications() []AppliedModification {
	return slices.Clone(e.modifications)
}

func (e AppliedEffect) HasModifications() bool { return len(e.modifications) > 0 }

func (e AppliedEffect) ModificationsByScope(scope ModificationScope) []AppliedModification {
	var out []AppliedModification
	for _, m := range e.modifications {
		if m.scope == scope {
			out = append(out, m)
		}
	}
	return out
}

func (e AppliedEffect) AddModification(m AppliedModification) AppliedEffect {
	mods := make([]AppliedModification, 0, len(e.modifications)+1)
	mods = append(mods, e.modifications...)
	e.modifications = append(mods, m)
	return e
}

func (e AppliedEffect) RemoveModification(index int) (AppliedEffect, error) {
	if index < 0 || index >= len(e.modifications) {
		return AppliedEffect{}, newValidationError("modifications", "invalid modification index")
	}
	e.modifications = slices.Delete(slices.Clone(e.modifications), index, index+1)
	return e, nil
}

func (e AppliedEffect) WithCost(custo PowerCost) AppliedEffect {
	e.custo = custo
	return e
}

func (e AppliedEffect) WithGrau(grau int) (AppliedEffect, error) {
	if err := validateEffectGrau(grau); err != nil {
		return AppliedEffect{}, err
	}
	e.grau = grau
	return e, nil
}

func (e AppliedEffect) WithNota(nota string) AppliedEffect {
	e.nota = nota
	return e
}

// SameIdentity сравнивает эффекты по id.
func (e AppliedEffect) SameIdentity(other AppliedEffect) bool {
	return e.id == other.id
}
