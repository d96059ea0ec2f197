package domain

import "github.com/google/uuid"

// DomainName - тематическая категория силы.
type DomainName string

const (
	DomainNatural    DomainName = "natural"
	DomainSagrado    DomainName = "sagrado"
	DomainSacrilegio DomainName = "sacrilegio"
	DomainPsiquico   DomainName = "psiquico"
	DomainCientifico DomainName = "cientifico"
	DomainPeculiar   DomainName = "peculiar"
)

// IsValid сообщает, входит ли имя в известный набор доменов.
func (n DomainName) IsValid() bool {
	switch n {
	case DomainNatural, DomainSagrado, DomainSacrilegio, DomainPsiquico, DomainCientifico, DomainPeculiar:
		return true
	}
	return false
}

// Domain - value object домена силы. Только peculiar ссылается на Peculiarity.
type Domain struct {
	name       DomainName
	peculiarID uuid.UUID
}

// NewDomain создает домен. Для peculiar peculiarID обязателен, для остальных должен быть пустым.
func NewDomain(name DomainName, peculiarID uuid.UUID) (Domain, error) {
	if !name.IsValid() {
		return Domain{}, newValidationError("dominio", "unknown domain: "+string(name))
	}
	if name == DomainPeculiar && peculiarID == uuid.Nil {
		return Domain{}, newValidationError("peculiarId", "peculiar domain requires a peculiarity id")
	}
	if name != DomainPeculiar && peculiarID != uuid.Nil {
		return Domain{}, newValidationError("peculiarId", "only the peculiar domain can reference a peculiarity")
	}
	return Domain{name: name, peculiarID: peculiarID}, nil
}

// NaturalDomain - домен по умолчанию.
func NaturalDomain() Domain {
	return Domain{name: DomainNatural}
}

// PeculiarDomain ссылается на Peculiarity с указанным id.
func PeculiarDomain(peculiarID uuid.UUID) (Domain, error) {
	return NewDomain(DomainPeculiar, peculiarID)
}

func (d Domain) Name() DomainName { return d.name }

// PeculiarID возвращает id Peculiarity и false, если домен не peculiar.
func (d Domain) PeculiarID() (uuid.UUID, bool) {
	return d.peculiarID, d.name == DomainPeculiar
}

func (d Domain) IsPeculiar() bool { return d.name == DomainPeculiar }

func (d Domain) Equals(other Domain) bool {
	return d == other
}
