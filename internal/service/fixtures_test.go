package service_test

import (
	"context"
	"testing"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/events"
	"github.com/Gaaaybe/Aetherium/internal/repository"
	"github.com/Gaaaybe/Aetherium/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Каталог из сценария "dano / area / alcance-limitado" плюс глобальные модификации.
func seedCatalog() (*repository.InMemoryEffectRepository, *repository.InMemoryModificationRepository) {
	effects := repository.NewInMemoryEffectRepository(
		&domain.EffectBase{
			ID: "dano", Nome: "Dano", CustoBase: 1, Descricao: "Causa dano", Categorias: []string{"ofensivo"},
			Configuracoes: &domain.EffectConfiguration{
				Tipo:  domain.ConfigurationSelect,
				Label: "Tipo",
				Opcoes: []domain.EffectConfigurationOption{
					{ID: "fisico", Nome: "Físico", ModificadorCusto: 0},
					{ID: "energia", Nome: "Energia", ModificadorCusto: 1},
				},
			},
		},
		&domain.EffectBase{ID: "voo", Nome: "Voo", CustoBase: 2, Descricao: "Permite voar", Categorias: []string{"movimento"}},
	)
	mods := repository.NewInMemoryModificationRepository(
		&domain.ModificationBase{ID: "area", Nome: "Área", Tipo: domain.ModificationExtra, CustoPorGrau: 1, Descricao: "Área", Categoria: "alcance"},
		&domain.ModificationBase{ID: "alcance-limitado", Nome: "Alcance Limitado", Tipo: domain.ModificationFalha, CustoPorGrau: -1, Descricao: "Limitado", Categoria: "alcance"},
		&domain.ModificationBase{ID: "preciso", Nome: "Preciso", Tipo: domain.ModificationExtra, CustoFixo: 2, Descricao: "Preciso", Categoria: "geral"},
		&domain.ModificationBase{ID: "dobrado", Nome: "Dobrado", Tipo: domain.ModificationExtra, CustoPorGrau: 1, Descricao: "Dobra o custo", Categoria: "geral"},
		&domain.ModificationBase{ID: "anulado", Nome: "Anulado", Tipo: domain.ModificationFalha, CustoFixo: -1, Descricao: "Zera o custo", Categoria: "geral"},
	)
	return effects, mods
}

type testEnv struct {
	ctx           context.Context
	effects       *repository.InMemoryEffectRepository
	modifications *repository.InMemoryModificationRepository
	powers        *repository.InMemoryPowerRepository
	arrays        *repository.InMemoryPowerArrayRepository
	peculiarities *repository.InMemoryPeculiarityRepository
	bus           *events.Bus
	calculator    service.PowerCostCalculator
	powerSvc      service.PowerService
	arraySvc      service.PowerArrayService
	peculiarSvc   service.PeculiarityService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	effects, mods := seedCatalog()
	env := &testEnv{
		ctx:           context.Background(),
		effects:       effects,
		modifications: mods,
		powers:        repository.NewInMemoryPowerRepository(),
		arrays:        repository.NewInMemoryPowerArrayRepository(),
		peculiarities: repository.NewInMemoryPeculiarityRepository(),
		bus:           events.NewBus(logger),
	}
	env.calculator = service.NewPowerCostCalculator(effects, mods, logger)
	service.NewVisibilitySubscribers(env.powers, env.peculiarities, env.bus, logger).Register()
	env.powerSvc = service.NewPowerService(env.powers, env.peculiarities, env.calculator, env.bus, logger)
	env.arraySvc = service.NewPowerArrayService(env.arrays, env.powers, env.peculiarities, env.bus, logger)
	env.peculiarSvc = service.NewPeculiarityService(env.peculiarities, logger)
	return env
}

func effect(t *testing.T, baseID string, grau int, mods ...domain.AppliedModification) domain.AppliedEffect {
	t.Helper()
	e, err := domain.NewAppliedEffect(domain.AppliedEffectProps{EffectBaseID: baseID, Grau: grau, Modifications: mods})
	require.NoError(t, err)
	return e
}

func local(t *testing.T, id string, grau int) domain.AppliedModification {
	t.Helper()
	m, err := domain.NewLocalModification(id, domain.WithModificationGrau(grau))
	require.NoError(t, err)
	return m
}

func global(t *testing.T, id string) domain.AppliedModification {
	t.Helper()
	m, err := domain.NewGlobalModification(id)
	require.NoError(t, err)
	return m
}

func (e *testEnv) createPeculiarity(t *testing.T, userID uuid.UUID) *domain.Peculiarity {
	t.Helper()
	p, err := e.peculiarSvc.CreatePeculiarity(e.ctx, service.CreatePeculiarityRequest{
		UserID:    userID,
		Nome:      "Sangue Arcano",
		Descricao: "Uma linhagem de sangue mágico",
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) createPower(t *testing.T, userID uuid.UUID, dominio domain.Domain, public bool) *domain.Power {
	t.Helper()
	p, err := e.powerSvc.CreatePower(e.ctx, service.CreatePowerRequest{
		UserID:    userID,
		Nome:      "Rajada",
		Descricao: "Uma rajada de energia",
		Dominio:   dominio,
		Effects:   []domain.AppliedEffect{effect(t, "dano", 2)},
		IsPublic:  public,
	})
	require.NoError(t, err)
	return p
}

func peculiarDomain(t *testing.T, id uuid.UUID) domain.Domain {
	t.Helper()
	d, err := domain.PeculiarDomain(id)
	require.NoError(t, err)
	return d
}

func boolPtr(v bool) *bool       { return &v }
func stringPtr(v string) *string { return &v }
