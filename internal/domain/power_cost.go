package domain

import "math"

const (
	MaxPdA     = 99999
	MaxPE      = 999
	MaxEspacos = 999
)

// PowerCost - стоимость силы в трех валютах: PdA, PE и espaços.
// Значение неизменяемо, все операции возвращают новую стоимость.
type PowerCost struct {
	pda     int
	pe      int
	espacos int
}

// NewPowerCost создает стоимость, проверяя границы каждой валюты.
func NewPowerCost(pda, pe, espacos int) (PowerCost, error) {
	switch {
	case pda < 0:
		return PowerCost{}, newValidationError("pda", "PdA cost cannot be negative")
	case pe < 0:
		return PowerCost{}, newValidationError("pe", "PE cost cannot be negative")
	case espacos < 0:
		return PowerCost{}, newValidationError("espacos", "espacos cannot be negative")
	case pda > MaxPdA:
		return PowerCost{}, newValidationError("pda", "PdA cost exceeds the maximum (99999)")
	case pe > MaxPE:
		return PowerCost{}, newValidationError("pe", "PE cost exceeds the maximum (999)")
	case espacos > MaxEspacos:
		return PowerCost{}, newValidationError("espacos", "espacos exceed the maximum (999)")
	}
	return PowerCost{pda: pda, pe: pe, espacos: espacos}, nil
}

// ZeroCost возвращает нулевую стоимость.
func ZeroCost() PowerCost {
	return PowerCost{}
}

// SumCosts складывает стоимости поэлементно.
func SumCosts(costs ...PowerCost) (PowerCost, error) {
	var pda, pe, espacos int
	for _, c := range costs {
		pda += c.pda
		pe += c.pe
		espacos += c.espacos
	}
	return NewPowerCost(pda, pe, espacos)
}

func (c PowerCost) PdA() int     { return c.pda }
func (c PowerCost) PE() int      { return c.pe }
func (c PowerCost) Espacos() int { return c.espacos }

func (c PowerCost) IsFree() bool          { return c.pda == 0 }
func (c PowerCost) RequiresPE() bool      { return c.pe > 0 }
func (c PowerCost) RequiresEspacos() bool { return c.espacos > 0 }

func (c PowerCost) Add(other PowerCost) (PowerCost, error) {
	return NewPowerCost(c.pda+other.pda, c.pe+other.pe, c.espacos+other.espacos)
}

// Subtract вычитает поэлементно, каждое поле не опускается ниже нуля.
func (c PowerCost) Subtract(other PowerCost) PowerCost {
	return PowerCost{
		pda:     max(0, c.pda-other.pda),
		pe:      max(0, c.pe-other.pe),
		espacos: max(0, c.espacos-other.espacos),
	}
}

// Multiply умножает каждое поле на factor с округлением до целого.
func (c PowerCost) Multiply(factor float64) (PowerCost, error) {
	if factor < 0 {
		return PowerCost{}, newValidationError("factor", "multiplication factor cannot be negative")
	}
	return NewPowerCost(
		int(math.Round(float64(c.pda)*factor)),
		int(math.Round(float64(c.pe)*factor)),
		int(math.Round(float64(c.espacos)*factor)),
	)
}

func (c PowerCost) Equals(other PowerCost) bool {
	return c == other
}
