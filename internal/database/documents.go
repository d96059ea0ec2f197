package database

import (
	"encoding/json"
	"fmt"

	"github.com/Gaaaybe/Aetherium/internal/domain"

	"github.com/google/uuid"
)

// JSONB-представления value objects силы. Агрегаты хранят поля закрытыми,
// поэтому сериализация идет через эти документы.

type costDocument struct {
	PdA     int `json:"pda"`
	PE      int `json:"pe"`
	Espacos int `json:"espacos"`
}

type appliedModificationDocument struct {
	ModificationBaseID string                   `json:"modificationBaseId"`
	Scope              domain.ModificationScope `json:"scope"`
	Grau               *int                     `json:"grau,omitempty"`
	Parametros         string                   `json:"parametros,omitempty"`
	Nota               string                   `json:"nota,omitempty"`
}

type appliedEffectDocument struct {
	ID             uuid.UUID                     `json:"id"`
	EffectBaseID   string                        `json:"effectBaseId"`
	Grau           int                           `json:"grau"`
	ConfiguracaoID string                        `json:"configuracaoId,omitempty"`
	InputValue     string                        `json:"inputValue,omitempty"`
	Modifications  []appliedModificationDocument `json:"modifications"`
	Custo          costDocument                  `json:"custo"`
	Nota           string                        `json:"nota,omitempty"`
}

type alternativeCostDocument struct {
	Tipo      domain.AlternativeCostType `json:"tipo"`
	Valor     int                        `json:"valor"`
	Descricao string                     `json:"descricao,omitempty"`
}

func costDocumentOf(c domain.PowerCost) costDocument {
	return costDocument{PdA: c.PdA(), PE: c.PE(), Espacos: c.Espacos()}
}

func (d costDocument) toCost() (domain.PowerCost, error) {
	return domain.NewPowerCost(d.PdA, d.PE, d.Espacos)
}

func modificationDocumentOf(m domain.AppliedModification) appliedModificationDocument {
	doc := appliedModificationDocument{
		ModificationBaseID: m.ModificationBaseID(),
		Scope:              m.Scope(),
		Parametros:         m.Parametros(),
		Nota:               m.Nota(),
	}
	if grau, ok := m.Grau(); ok {
		doc.Grau = &grau
	}
	return doc
}

func (d appliedModificationDocument) toModification() (domain.AppliedModification, error) {
	var opts []domain.ModificationOption
	if d.Grau != nil {
		opts = append(opts, domain.WithModificationGrau(*d.Grau))
	}
	if d.Parametros != "" {
		opts = append(opts, domain.WithParametros(d.Parametros))
	}
	if d.Nota != "" {
		opts = append(opts, domain.WithModificationNota(d.Nota))
	}
	return domain.NewAppliedModification(d.ModificationBaseID, d.Scope, opts...)
}

func modificationDocumentsOf(mods []domain.AppliedModification) []appliedModificationDocument {
	docs := make([]appliedModificationDocument, 0, len(mods))
	for _, m := range mods {
		docs = append(docs, modificationDocumentOf(m))
	}
	return docs
}

func toModifications(docs []appliedModificationDocument) ([]domain.AppliedModification, error) {
	mods := make([]domain.AppliedModification, 0, len(docs))
	for i, doc := range docs {
		m, err := doc.toModification()
		if err != nil {
			return nil, fmt.Errorf("modification %d: %w", i, err)
		}
		mods = append(mods, m)
	}
	return mods, nil
}

func effectDocumentsOf(effects []domain.AppliedEffect) []appliedEffectDocument {
	docs := make([]appliedEffectDocument, 0, len(effects))
	for _, e := range effects {
		docs = append(docs, appliedEffectDocument{
			ID:             e.ID(),
			EffectBaseID:   e.EffectBaseID(),
			Grau:           e.Grau(),
			ConfiguracaoID: e.ConfiguracaoID(),
			InputValue:     e.InputValue(),
			Modifications:  modificationDocumentsOf(e.Modifications()),
			Custo:          costDocumentOf(e.Custo()),
			Nota:           e.Nota(),
		})
	}
	return docs
}

func toEffects(docs []appliedEffectDocument) ([]domain.AppliedEffect, error) {
	effects := make([]domain.AppliedEffect, 0, len(docs))
	for _, doc := range docs {
		mods, err := toModifications(doc.Modifications)
		if err != nil {
			return nil, fmt.Errorf("effect %s: %w", doc.ID, err)
		}
		custo, err := doc.Custo.toCost()
		if err != nil {
			return nil, fmt.Errorf("effect %s: %w", doc.ID, err)
		}
		e, err := domain.NewAppliedEffect(domain.AppliedEffectProps{
			ID:             doc.ID,
			EffectBaseID:   doc.EffectBaseID,
			Grau:           doc.Grau,
			ConfiguracaoID: doc.ConfiguracaoID,
			InputValue:     doc.InputValue,
			Modifications:  mods,
			Custo:          custo,
			Nota:           doc.Nota,
		})
		if err != nil {
			return nil, fmt.Errorf("effect %s: %w", doc.ID, err)
		}
		effects = append(effects, e)
	}
	return effects, nil
}

func marshalAlternativeCost(c *domain.AlternativeCost) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(alternativeCostDocument{Tipo: c.Tipo(), Valor: c.Valor(), Descricao: c.Descricao()})
}

func unmarshalAlternativeCost(raw []byte) (*domain.AlternativeCost, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var doc alternativeCostDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	c, err := domain.NewAlternativeCost(doc.Tipo, doc.Valor, doc.Descricao)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func marshalParameters(p *domain.PowerParameters) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(domain.ParametersDocumentOf(*p))
}

func unmarshalParameters(raw []byte) (*domain.PowerParameters, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var doc domain.ParametersDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	p, err := doc.ToParameters()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// domainColumns раскладывает Domain на колонки dominio и peculiar_id.
func domainColumns(d domain.Domain) (string, *uuid.UUID) {
	if id, ok := d.PeculiarID(); ok {
		return string(d.Name()), &id
	}
	return string(d.Name()), nil
}

func restoreDomain(name string, peculiarID *uuid.UUID) (domain.Domain, error) {
	id := uuid.Nil
	if peculiarID != nil {
		id = *peculiarID
	}
	return domain.NewDomain(domain.DomainName(name), id)
}

// nullableUserID: официальные сущности хранят NULL.
func nullableUserID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func userIDOf(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
