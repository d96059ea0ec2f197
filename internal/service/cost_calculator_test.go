package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/interfaces/mocks"
	"github.com/Gaaaybe/Aetherium/internal/models"
	"github.com/Gaaaybe/Aetherium/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPowerCostCalculator(t *testing.T) {
	ctx := context.Background()
	effects, mods := seedCatalog()
	calc := service.NewPowerCostCalculator(effects, mods, zap.NewNop())

	calculate := func(t *testing.T, input service.CostInput) service.CostResult {
		t.Helper()
		res, err := calc.Calculate(ctx, input)
		require.NoError(t, err)
		return res
	}

	t.Run("Base cost drives pda and espacos", func(t *testing.T) {
		e := effect(t, "dano", 10)
		res := calculate(t, service.CostInput{Effects: []domain.AppliedEffect{e}})
		assert.Equal(t, 10, res.CustoTotal.PdA())
		assert.Equal(t, 10, res.CustoTotal.Espacos())
		assert.Equal(t, 0, res.CustoTotal.PE())
		assert.True(t, res.CustoPorEfeito[e.ID()].Equals(res.CustoTotal))
	})

	t.Run("Local extra adds per effect grau", func(t *testing.T) {
		e := effect(t, "dano", 10, local(t, "area", 5))
		res := calculate(t, service.CostInput{Effects: []domain.AppliedEffect{e}})
		assert.Equal(t, 60, res.CustoTotal.PdA())
		assert.Equal(t, 10, res.CustoTotal.Espacos())
	})

	t.Run("Local falha is floored at zero", func(t *testing.T) {
		e := effect(t, "dano", 10, local(t, "alcance-limitado", 1))
		res := calculate(t, service.CostInput{Effects: []domain.AppliedEffect{e}})
		assert.Equal(t, 0, res.CustoTotal.PdA())
		assert.Equal(t, 10, res.CustoTotal.Espacos())

		heavy := effect(t, "dano", 3, local(t, "alcance-limitado", 4))
		res = calculate(t, service.CostInput{Effects: []domain.AppliedEffect{heavy}})
		assert.Equal(t, 0, res.CustoPorEfeito[heavy.ID()].PdA())
	})

	t.Run("Modification without grau counts as one", func(t *testing.T) {
		m, err := domain.NewLocalModification("area")
		require.NoError(t, err)
		e := effect(t, "dano", 4, m)
		res := calculate(t, service.CostInput{Effects: []domain.AppliedEffect{e}})
		assert.Equal(t, 8, res.CustoTotal.PdA())
	})

	t.Run("Fixed cost modification", func(t *testing.T) {
		e := effect(t, "voo", 2, local(t, "preciso", 3))
		res := calculate(t, service.CostInput{Effects: []domain.AppliedEffect{e}})
		// 2×2 + 2×2
		assert.Equal(t, 8, res.CustoTotal.PdA())
		assert.Equal(t, 4, res.CustoTotal.Espacos())
	})

	t.Run("Configuration modifier", func(t *testing.T) {
		e, err := domain.NewAppliedEffect(domain.AppliedEffectProps{EffectBaseID: "dano", Grau: 4, ConfiguracaoID: "energia"})
		require.NoError(t, err)
		res := calculate(t, service.CostInput{Effects: []domain.AppliedEffect{e}})
		assert.Equal(t, 8, res.CustoTotal.PdA())
		assert.Equal(t, 4, res.CustoTotal.Espacos())

		unknown, err := domain.NewAppliedEffect(domain.AppliedEffectProps{EffectBaseID: "dano", Grau: 4, ConfiguracaoID: "gelo"})
		require.NoError(t, err)
		res = calculate(t, service.CostInput{Effects: []domain.AppliedEffect{unknown}})
		assert.Equal(t, 4, res.CustoTotal.PdA())
	})

	t.Run("Effects are summed with per effect breakdown", func(t *testing.T) {
		a := effect(t, "dano", 3)
		b := effect(t, "voo", 2)
		res := calculate(t, service.CostInput{Effects: []domain.AppliedEffect{a, b}})
		assert.Equal(t, 7, res.CustoTotal.PdA())
		assert.Equal(t, 7, res.CustoTotal.Espacos())
		assert.Equal(t, 3, res.CustoPorEfeito[a.ID()].PdA())
		assert.Equal(t, 4, res.CustoPorEfeito[b.ID()].PdA())
	})

	t.Run("Global modification doubles the total", func(t *testing.T) {
		res := calculate(t, service.CostInput{
			Effects:             []domain.AppliedEffect{effect(t, "dano", 3), effect(t, "voo", 2)},
			GlobalModifications: []domain.AppliedModification{global(t, "dobrado")},
		})
		assert.Equal(t, 14, res.CustoTotal.PdA())
		assert.Equal(t, 7, res.CustoTotal.Espacos())
	})

	t.Run("Global modifications compound", func(t *testing.T) {
		effects := []domain.AppliedEffect{effect(t, "dano", 5)}
		res := calculate(t, service.CostInput{
			Effects:             effects,
			GlobalModifications: []domain.AppliedModification{global(t, "dobrado"), global(t, "dobrado")},
		})
		assert.Equal(t, 20, res.CustoTotal.PdA())

		forward := calculate(t, service.CostInput{
			Effects:             effects,
			GlobalModifications: []domain.AppliedModification{global(t, "dobrado"), global(t, "anulado")},
		})
		reverse := calculate(t, service.CostInput{
			Effects:             effects,
			GlobalModifications: []domain.AppliedModification{global(t, "anulado"), global(t, "dobrado")},
		})
		assert.Equal(t, 0, forward.CustoTotal.PdA())
		assert.Equal(t, forward.CustoTotal.PdA(), reverse.CustoTotal.PdA())
		assert.Equal(t, 5, forward.CustoTotal.Espacos())
	})

	t.Run("Compounding past the maximum is rejected instead of wrapping", func(t *testing.T) {
		globals := make([]domain.AppliedModification, 0, 41)
		for range 40 {
			globals = append(globals, global(t, "preciso"))
		}
		_, err := calc.Calculate(ctx, service.CostInput{
			Effects:             []domain.AppliedEffect{effect(t, "dano", 1)},
			GlobalModifications: globals,
		})
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "pda", vErr.Field)

		res := calculate(t, service.CostInput{
			Effects:             []domain.AppliedEffect{effect(t, "dano", 1)},
			GlobalModifications: append(globals, global(t, "anulado")),
		})
		assert.Equal(t, 0, res.CustoTotal.PdA())
	})

	t.Run("Missing effect aborts without partial result", func(t *testing.T) {
		res, err := calc.Calculate(ctx, service.CostInput{Effects: []domain.AppliedEffect{effect(t, "dano", 1), effect(t, "inexistente", 1)}})
		assert.ErrorIs(t, err, models.ErrResourceNotFound)
		assert.Nil(t, res.CustoPorEfeito)
	})

	t.Run("Missing local modification", func(t *testing.T) {
		_, err := calc.Calculate(ctx, service.CostInput{Effects: []domain.AppliedEffect{effect(t, "dano", 1, local(t, "nada", 1))}})
		assert.ErrorIs(t, err, models.ErrResourceNotFound)
	})

	t.Run("Missing global modification", func(t *testing.T) {
		_, err := calc.Calculate(ctx, service.CostInput{
			Effects:             []domain.AppliedEffect{effect(t, "dano", 1)},
			GlobalModifications: []domain.AppliedModification{global(t, "nada")},
		})
		assert.ErrorIs(t, err, models.ErrResourceNotFound)
	})

	t.Run("Repository failure is wrapped", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		effectRepo := new(mocks.EffectRepository)
		effectRepo.On("FindByID", mock.Anything, "dano").Return(nil, dbErr).Once()
		failing := service.NewPowerCostCalculator(effectRepo, mods, zap.NewNop())

		_, err := failing.Calculate(ctx, service.CostInput{Effects: []domain.AppliedEffect{effect(t, "dano", 1)}})
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, models.ErrResourceNotFound)
		effectRepo.AssertExpectations(t)
	})

	t.Run("Catalog entries are looked up once per calculation", func(t *testing.T) {
		base := &domain.EffectBase{ID: "dano", Nome: "Dano", CustoBase: 1}
		effectRepo := new(mocks.EffectRepository)
		effectRepo.On("FindByID", mock.Anything, "dano").Return(base, nil).Once()
		counting := service.NewPowerCostCalculator(effectRepo, mods, zap.NewNop())

		res, err := counting.Calculate(ctx, service.CostInput{Effects: []domain.AppliedEffect{effect(t, "dano", 1), effect(t, "dano", 2)}})
		require.NoError(t, err)
		assert.Equal(t, 3, res.CustoTotal.PdA())
		effectRepo.AssertExpectations(t)
	})
}

func TestCostResultApplyTo(t *testing.T) {
	effects, mods := seedCatalog()
	calc := service.NewPowerCostCalculator(effects, mods, zap.NewNop())
	e := effect(t, "dano", 10, local(t, "area", 5))

	svc := service.NewCostService(calc)
	res, err := svc.CalculatePowerCost(context.Background(), []domain.AppliedEffect{e}, nil)
	require.NoError(t, err)

	priced := res.ApplyTo([]domain.AppliedEffect{e})
	require.Len(t, priced, 1)
	assert.Equal(t, 60, priced[0].Custo().PdA())
	assert.Equal(t, 0, e.Custo().PdA())
}
