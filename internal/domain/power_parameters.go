package domain

// Границы параметров силы.
const (
	MaxAcao    = 5
	MaxAlcance = 6
	MaxDuracao = 4
)

// PowerParameters - параметры ação/alcance/duração силы.
type PowerParameters struct {
	acao    int
	alcance int
	duracao int
}

func NewPowerParameters(acao, alcance, duracao int) (PowerParameters, error) {
	if acao < 0 || acao > MaxAcao {
		return PowerParameters{}, newValidationError("acao", "acao must be between 0 and 5")
	}
	if alcance < 0 || alcance > MaxAlcance {
		return PowerParameters{}, newValidationError("alcance", "alcance must be between 0 and 6")
	}
	if duracao < 0 || duracao > MaxDuracao {
		return PowerParameters{}, newValidationError("duracao", "duracao must be between 0 and 4")
	}
	return PowerParameters{acao: acao, alcance: alcance, duracao: duracao}, nil
}

// DefaultPowerParameters возвращает параметры по умолчанию: ação padrão, alcance corpo a corpo, instantâneo.
func DefaultPowerParameters() PowerParameters {
	return PowerParameters{acao: 2, alcance: 1, duracao: 0}
}

func (p PowerParameters) Acao() int    { return p.acao }
func (p PowerParameters) Alcance() int { return p.alcance }
func (p PowerParameters) Duracao() int { return p.duracao }

func (p PowerParameters) IsPermanente() bool  { return p.duracao == MaxDuracao }
func (p PowerParameters) IsPessoal() bool     { return p.alcance == 0 }
func (p PowerParameters) IsInstantaneo() bool { return p.duracao == 0 }

func (p PowerParameters) Equals(other PowerParameters) bool {
	return p == other
}
