package domain

import "strings"

// ModificationScope - local действует на один эффект, global на всю силу.
type ModificationScope string

const (
	ScopeLocal  ModificationScope = "local"
	ScopeGlobal ModificationScope = "global"
)

// AppliedModification - модификация каталога, примененная к эффекту или силе.
// Сравнивается структурно.
type AppliedModification struct {
	modificationBaseID string
	scope              ModificationScope
	grau               int
	hasGrau            bool
	parametros         string
	nota               string
}

// ModificationOption настраивает необязательные поля AppliedModification.
type ModificationOption func(*AppliedModification)

func WithModificationGrau(grau int) ModificationOption {
	return func(m *AppliedModification) {
		m.grau = grau
		m.hasGrau = true
	}
}

// WithParametros сохраняет параметры, выбранные игроком (texto или id варианта).
func WithParametros(parametros string) ModificationOption {
	return func(m *AppliedModification) { m.parametros = parametros }
}

func WithModificationNota(nota string) ModificationOption {
	return func(m *AppliedModification) { m.nota = nota }
}

func NewAppliedModification(modificationBaseID string, scope ModificationScope, opts ...ModificationOption) (AppliedModification, error) {
	if strings.TrimSpace(modificationBaseID) == "" {
		return AppliedModification{}, newValidationError("modificationBaseId", "modificationBaseId is required")
	}
	if scope != ScopeLocal && scope != ScopeGlobal {
		return AppliedModification{}, newValidationError("scope", "unknown modification scope: "+string(scope))
	}
	m := AppliedModification{modificationBaseID: modificationBaseID, scope: scope}
	for _, opt := range opts {
		opt(&m)
	}
	if m.hasGrau && m.grau < 0 {
		return AppliedModification{}, newValidationError("grau", "modification grau cannot be negative")
	}
	return m, nil
}

func NewLocalModification(modificationBaseID string, opts ...ModificationOption) (AppliedModification, error) {
	return NewAppliedModification(modificationBaseID, ScopeLocal, opts...)
}

func NewGlobalModification(modificationBaseID string, opts ...ModificationOption) (AppliedModification, error) {
	return NewAppliedModification(modificationBaseID, ScopeGlobal, opts...)
}

func (m AppliedModification) ModificationBaseID() string { return m.modificationBaseID }
func (m AppliedModification) Scope() ModificationScope   { return m.scope }
func (m AppliedModification) Parametros() string         { return m.parametros }
func (m AppliedModification) Nota() string               { return m.nota }

// Grau возвращает grau модификации и false, если он не задан.
func (m AppliedModification) Grau() (int, bool) { return m.grau, m.hasGrau }

// GrauOrDefault - grau для расчета стоимости, по умолчанию 1.
func (m AppliedModification) GrauOrDefault() int {
	if !m.hasGrau {
		return 1
	}
	return m.grau
}

func (m AppliedModification) IsGlobal() bool { return m.scope == ScopeGlobal }

func (m AppliedModification) Equals(other AppliedModification) bool {
	return m == other
}
