package domain

import (
	"slices"
	"strings"
)

// EffectInputType - тип дополнительного ввода, который требует эффект.
type EffectInputType string

const (
	EffectInputText   EffectInputType = "texto"
	EffectInputNumber EffectInputType = "numero"
	EffectInputSelect EffectInputType = "select"
)

// ConfigurationType - способ выбора конфигурации в каталоге.
type ConfigurationType string

const (
	ConfigurationSelect ConfigurationType = "select"
	ConfigurationRadio  ConfigurationType = "radio"
)

// EffectConfigurationOption - вариант конфигурации эффекта.
type EffectConfigurationOption struct {
	ID               string `json:"id"`
	Nome             string `json:"nome"`
	ModificadorCusto int    `json:"modificadorCusto"`
	GrauMinimo       *int   `json:"grauMinimo,omitempty"`
	Descricao        string `json:"descricao"`
	CustoProgressivo string `json:"custoProgressivo,omitempty"` // "dobrado" или пусто
}

type EffectConfiguration struct {
	Tipo   ConfigurationType           `json:"tipo"`
	Label  string                      `json:"label"`
	Opcoes []EffectConfigurationOption `json:"opcoes"`
}

// EffectBase - запись каталога эффектов. Сила ссылается на нее через AppliedEffect.
type EffectBase struct {
	ID               string               `json:"id"`
	Nome             string               `json:"nome"`
	CustoBase        int                  `json:"custoBase"`
	Descricao        string               `json:"descricao"`
	ParametrosPadrao ParametersDocument   `json:"parametrosPadrao"`
	Categorias       []string             `json:"categorias"`
	Exemplos         string               `json:"exemplos,omitempty"`
	RequerInput      bool                 `json:"requerInput,omitempty"`
	TipoInput        EffectInputType      `json:"tipoInput,omitempty"`
	LabelInput       string               `json:"labelInput,omitempty"`
	OpcoesInput      []string             `json:"opcoesInput,omitempty"`
	PlaceholderInput string               `json:"placeholderInput,omitempty"`
	Configuracoes    *EffectConfiguration `json:"configuracoes,omitempty"`
	Custom           bool                 `json:"custom,omitempty"`
}

// ParametersDocument - сериализуемая форма PowerParameters для каталога.
type ParametersDocument struct {
	Acao    int `json:"acao"`
	Alcance int `json:"alcance"`
	Duracao int `json:"duracao"`
}

// ToParameters проверяет документ и превращает его в PowerParameters.
func (d ParametersDocument) ToParameters() (PowerParameters, error) {
	return NewPowerParameters(d.Acao, d.Alcance, d.Duracao)
}

// ParametersDocumentOf - обратное преобразование.
func ParametersDocumentOf(p PowerParameters) ParametersDocument {
	return ParametersDocument{Acao: p.acao, Alcance: p.alcance, Duracao: p.duracao}
}

// NewEffectBase проверяет запись каталога и возвращает ее копию.
func NewEffectBase(e EffectBase) (*EffectBase, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.Categorias = slices.Clone(e.Categorias)
	e.OpcoesInput = slices.Clone(e.OpcoesInput)
	if e.Configuracoes != nil {
		cfg := *e.Configuracoes
		cfg.Opcoes = slices.Clone(cfg.Opcoes)
		e.Configuracoes = &cfg
	}
	return &e, nil
}

func (e *EffectBase) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return newValidationError("id", "effect id is required")
	}
	if strings.TrimSpace(e.Nome) == "" {
		return newValidationError("nome", "effect name is required")
	}
	if e.CustoBase < 0 {
		return newValidationError("custoBase", "base cost cannot be negative")
	}
	if e.CustoBase > 100 {
		return newValidationError("custoBase", "base cost cannot exceed 100")
	}
	if strings.TrimSpace(e.Descricao) == "" {
		return newValidationError("descricao", "effect description is required")
	}
	if _, err := e.ParametrosPadrao.ToParameters(); err != nil {
		return err
	}
	if e.RequerInput {
		if e.TipoInput == "" {
			return newValidationError("tipoInput", "effect requiring input must specify the input type")
		}
		if strings.TrimSpace(e.LabelInput) == "" {
			return newValidationError("labelInput", "effect requiring input must have a label")
		}
		if e.TipoInput == EffectInputSelect && len(e.OpcoesInput) == 0 {
			return newValidationError("opcoesInput", "select input requires options")
		}
	}
	if e.Configuracoes != nil {
		if len(e.Configuracoes.Opcoes) == 0 {
			return newValidationError("configuracoes", "configuration must have at least one option")
		}
		for _, opt := range e.Configuracoes.Opcoes {
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

func (e *EffectBase) HasConfiguracoes() bool {
	return e.Configuracoes != nil && len(e.Configuracoes.Opcoes) > 0
}

// GetConfiguracao ищет вариант конфигурации по id.
func (e *EffectBase) GetConfiguracao(configuracaoID string) (EffectConfigurationOption, bool) {
	if e.Configuracoes == nil {
		return EffectConfigurationOption{}, false
	}
	for _, opt := range e.Configuracoes.Opcoes {
		if opt.ID == configuracaoID {
			return opt, true
		}
	}
	return EffectConfigurationOption{}, false
}

// IsGrauValidoParaConfiguracao проверяет минимальный grau варианта. Неизвестный вариант не ограничивает grau.
func (e *EffectBase) IsGrauValidoParaConfiguracao(grau int, configuracaoID string) bool {
	opt, ok := e.GetConfiguracao(configuracaoID)
	if !ok || opt.GrauMinimo == nil {
		return true
	}
	return grau >= *opt.GrauMinimo
}

func (e *EffectBase) HasCategoria(categoria string) bool {
	return slices.Contains(e.Categorias, categoria)
}
