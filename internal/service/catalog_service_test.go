package service_test

import (
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

func TestCatalogService(t *testing.T) {
	effects, mods := seedCatalog()
	svc := service.NewCatalogService(effects, mods, zap.NewNop())
	ctx := t.Context()

	t.Run("Fetch effects", func(t *testing.T) {
		all, err := svc.FetchEffects(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		movement, err := svc.FetchEffects(ctx, "movimento")
		require.NoError(t, err)
		require.Len(t, movement, 1)
		assert.Equal(t, "voo", movement[0].ID)
	})

	t.Run("Fetch modifications by type and category", func(t *testing.T) {
		all, err := svc.FetchModifications(ctx, service.ModificationFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 5)

		falhas, err := svc.FetchModifications(ctx, service.ModificationFilter{Tipo: domain.ModificationFalha})
		require.NoError(t, err)
		assert.Len(t, falhas, 2)

		alcance, err := svc.FetchModifications(ctx, service.ModificationFilter{Categoria: "alcance"})
		require.NoError(t, err)
		assert.Len(t, alcance, 2)

		extrasGerais, err := svc.FetchModifications(ctx, service.ModificationFilter{Tipo: domain.ModificationExtra, Categoria: "geral"})
		require.NoError(t, err)
		assert.Len(t, extrasGerais, 2)
	})

	t.Run("Custom effect is flagged and validated", func(t *testing.T) {
		created, err := svc.CreateCustomEffect(ctx, domain.EffectBase{
			ID:         "teleporte",
			Nome:       "Teleporte",
			CustoBase:  3,
			Descricao:  "Move instantaneamente",
			Categorias: []string{"movimento"},
		})
		require.NoError(t, err)
		assert.True(t, created.Custom)

		custom, err := effects.FindCustom(ctx)
		require.NoError(t, err)
		assert.Len(t, custom, 1)

		_, err = svc.CreateCustomEffect(ctx, domain.EffectBase{ID: "teleporte", Nome: "Outro", CustoBase: 1, Descricao: "Duplicado"})
		assert.ErrorIs(t, err, models.ErrAlreadyExists)

		_, err = svc.CreateCustomEffect(ctx, domain.EffectBase{ID: "caro", Nome: "Caro", CustoBase: 101, Descricao: "Caro demais"})
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "custoBase", vErr.Field)
	})

	t.Run("Custom modification sign rules", func(t *testing.T) {
		created, err := svc.CreateCustomModification(ctx, domain.ModificationBase{
			ID:           "lento",
			Nome:         "Lento",
			Tipo:         domain.ModificationFalha,
			CustoPorGrau: -1,
			Descricao:    "Demora para agir",
			Categoria:    "tempo",
		})
		require.NoError(t, err)
		assert.True(t, created.Custom)

		_, err = svc.CreateCustomModification(ctx, domain.ModificationBase{
			ID:        "barato",
			Nome:      "Barato",
			Tipo:      domain.ModificationExtra,
			CustoFixo: -2,
			Descricao: "Extra negativo",
			Categoria: "geral",
		})
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
	})

	t.Run("Repository failure is wrapped", func(t *testing.T) {
		dbErr := errors.New("timeout")
		repo := new(mocks.EffectRepository)
		repo.On("FindAll", mock.Anything).Return(nil, dbErr).Once()
		failing := service.NewCatalogService(repo, mods, zap.NewNop())

		_, err := failing.FetchEffects(ctx, "")
		assert.ErrorIs(t, err, dbErr)
		repo.AssertExpectations(t)
	})
}
