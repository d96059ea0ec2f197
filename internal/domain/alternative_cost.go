package domain

// AlternativeCostType - во что оплачивается альтернативная стоимость.
type AlternativeCostType string

const (
	AlternativeCostPE       AlternativeCostType = "pe"
	AlternativeCostAtributo AlternativeCostType = "atributo"
	AlternativeCostItem     AlternativeCostType = "item"
	AlternativeCostMaterial AlternativeCostType = "material"
)

// AlternativeCost - альтернативный способ оплаты силы вместо PdA.
type AlternativeCost struct {
	tipo      AlternativeCostType
	valor     int
	descricao string
}

func NewAlternativeCost(tipo AlternativeCostType, valor int, descricao string) (AlternativeCost, error) {
	switch tipo {
	case AlternativeCostPE, AlternativeCostAtributo, AlternativeCostItem, AlternativeCostMaterial:
	default:
		return AlternativeCost{}, newValidationError("tipo", "unknown alternative cost type: "+string(tipo))
	}
	if valor <= 0 {
		return AlternativeCost{}, newValidationError("valor", "alternative cost value must be positive")
	}
	return AlternativeCost{tipo: tipo, valor: valor, descricao: descricao}, nil
}

// NewPEAlternativeCost - альтернативная стоимость в PE.
func NewPEAlternativeCost(pe int) (AlternativeCost, error) {
	return NewAlternativeCost(AlternativeCostPE, pe, "")
}

func (c AlternativeCost) Tipo() AlternativeCostType { return c.tipo }
func (c AlternativeCost) Valor() int                { return c.valor }
func (c AlternativeCost) Descricao() string         { return c.descricao }

func (c AlternativeCost) Equals(other AlternativeCost) bool {
	return c == other
}
