package domain

import (
	"slices"
	"strings"
)

// ModificationType - extra удорожает эффект, falha удешевляет.
type ModificationType string

const (
	ModificationExtra ModificationType = "extra"
	ModificationFalha ModificationType = "falha"
)

// ParameterType - вид параметра, который выбирает игрок при применении модификации.
type ParameterType string

const (
	ParameterText   ParameterType = "texto"
	ParameterGrau   ParameterType = "grau"
	ParameterSelect ParameterType = "select"
)

type ModificationConfigurationOption struct {
	ID                   string `json:"id"`
	Nome                 string `json:"nome"`
	ModificadorCusto     *int   `json:"modificadorCusto,omitempty"`
	ModificadorCustoFixo *int   `json:"modificadorCustoFixo,omitempty"`
	Descricao            string `json:"descricao"`
}

type ModificationConfiguration struct {
	Tipo   ConfigurationType                 `json:"tipo"`
	Label  string                            `json:"label"`
	Opcoes []ModificationConfigurationOption `json:"opcoes"`
}

// ModificationBase - запись каталога модификаций (extras и falhas).
type ModificationBase struct {
	ID               string                     `json:"id"`
	Nome             string                     `json:"nome"`
	Tipo             ModificationType           `json:"tipo"`
	CustoFixo        int                        `json:"custoFixo"`
	CustoPorGrau     int                        `json:"custoPorGrau"`
	Descricao        string                     `json:"descricao"`
	RequerParametros bool                       `json:"requerParametros,omitempty"`
	TipoParametro    ParameterType              `json:"tipoParametro,omitempty"`
	Opcoes           []string                   `json:"opcoes,omitempty"`
	GrauMinimo       *int                       `json:"grauMinimo,omitempty"`
	GrauMaximo       *int                       `json:"grauMaximo,omitempty"`
	Placeholder      string                     `json:"placeholder,omitempty"`
	Categoria        string                     `json:"categoria"`
	Observacoes      string                     `json:"observacoes,omitempty"`
	DetalhesGrau     string                     `json:"detalhesGrau,omitempty"`
	Configuracoes    *ModificationConfiguration `json:"configuracoes,omitempty"`
	Custom           bool                       `json:"custom,omitempty"`
}

func NewModificationBase(m ModificationBase) (*ModificationBase, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.Opcoes = slices.Clone(m.Opcoes)
	if m.Configuracoes != nil {
		cfg := *m.Configuracoes
		cfg.Opcoes = slices.Clone(cfg.Opcoes)
		m.Configuracoes = &cfg
	}
	return &m, nil
}

func (m *ModificationBase) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return newValidationError("id", "modification id is required")
	}
	if strings.TrimSpace(m.Nome) == "" {
		return newValidationError("nome", "modification name is required")
	}
	if strings.TrimSpace(m.Descricao) == "" {
		return newValidationError("descricao", "modification description is required")
	}
	if strings.TrimSpace(m.Categoria) == "" {
		return newValidationError("categoria", "modification category is required")
	}

	switch m.Tipo {
	case ModificationExtra:
		if m.CustoFixo < 0 || m.CustoPorGrau < 0 {
			return newValidationError("custoFixo", "extra cannot have a negative cost")
		}
	case ModificationFalha:
		if m.CustoFixo > 0 || m.CustoPorGrau > 0 {
			return newValidationError("custoFixo", "falha cannot have a positive cost")
		}
	default:
		return newValidationError("tipo", "unknown modification type: "+string(m.Tipo))
	}
	if abs(m.CustoFixo) > 50 {
		return newValidationError("custoFixo", "absolute fixed cost cannot exceed 50")
	}
	if abs(m.CustoPorGrau) > 20 {
		return newValidationError("custoPorGrau", "absolute cost per grau cannot exceed 20")
	}

	if m.RequerParametros {
		if m.TipoParametro == "" {
			return newValidationError("tipoParametro", "modification requiring parameters must specify the parameter type")
		}
		if m.TipoParametro == ParameterGrau && (m.GrauMinimo == nil || m.GrauMaximo == nil) {
			return newValidationError("tipoParametro", "grau parameter requires grauMinimo and grauMaximo")
		}
	}
	if m.TipoParametro == ParameterSelect && m.Configuracoes == nil && len(m.Opcoes) == 0 {
		return newValidationError("tipoParametro", "select parameter requires configurations or options")
	}
	if m.GrauMinimo != nil && m.GrauMaximo != nil {
		if *m.GrauMinimo > *m.GrauMaximo {
			return newValidationError("grauMinimo", "grauMinimo cannot exceed grauMaximo")
		}
		if *m.GrauMinimo < 0 || *m.GrauMaximo < 0 {
			return newValidationError("grauMinimo", "grauMinimo and grauMaximo must be non-negative")
		}
	}
	if m.Configuracoes != nil {
		if len(m.Configuracoes.Opcoes) == 0 {
			return newValidationError("configuracoes", "configuration must have at least one option")
		}
		for _, opt := range m.Configuracoes.Opcoes {
			if strings.TrimSpace(opt.ID) == "" {
				return newValidationError("configuracoes", "configuration option id is required")
			}
			if strings.TrimSpace(opt.Nome) == "" {
				return newValidationError("configuracoes", "configuration option name is required")
			}
		}
	}
	return nil
}

func (m *ModificationBase) IsExtra() bool { return m.Tipo == ModificationExtra }
func (m *ModificationBase) IsFalha() bool { return m.Tipo == ModificationFalha }
func (m *ModificationBase) HasCost() bool { return m.CustoFixo != 0 || m.CustoPorGrau != 0 }

func (m *ModificationBase) GetConfiguracao(configuracaoID string) (ModificationConfigurationOption, bool) {
	if m.Configuracoes == nil {
		return ModificationConfigurationOption{}, false
	}
	for _, opt := range m.Configuracoes.Opcoes {
		if opt.ID == configuracaoID {
			return opt, true
		}
	}
	return ModificationConfigurationOption{}, false
}

// CalcularCustoComConfiguracao возвращает custoFixo и custoPorGrau с учетом выбранного варианта.
func (m *ModificationBase) CalcularCustoComConfiguracao(configuracaoID string) (custoFixo, custoPorGrau int) {
	custoFixo, custoPorGrau = m.CustoFixo, m.CustoPorGrau
	if configuracaoID == "" {
		return custoFixo, custoPorGrau
	}
	if opt, ok := m.GetConfiguracao(configuracaoID); ok {
		if opt.ModificadorCustoFixo != nil {
			custoFixo += *opt.ModificadorCustoFixo
		}
		if opt.ModificadorCusto != nil {
			custoPorGrau += *opt.ModificadorCusto
		}
	}
	return custoFixo, custoPorGrau
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
