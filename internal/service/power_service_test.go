package service_test

import (
	"errors"
	"testing"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/events"
	"github.com/Gaaaybe/Aetherium/internal/interfaces/mocks"
	"github.com/Gaaaybe/Aetherium/internal/models"
	"github.com/Gaaaybe/Aetherium/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreatePower(t *testing.T) {
	userID := uuid.New()

	t.Run("Prices and stores a private power", func(t *testing.T) {
		env := newTestEnv(t)
		power, err := env.powerSvc.CreatePower(env.ctx, service.CreatePowerRequest{
			UserID:    userID,
			Nome:      "Explosão",
			Descricao: "Uma explosão em área",
			Dominio:   domain.NaturalDomain(),
			Effects:   []domain.AppliedEffect{effect(t, "dano", 10, local(t, "area", 5))},
		})
		require.NoError(t, err)

		assert.Equal(t, 60, power.CustoTotal().PdA())
		assert.Equal(t, 10, power.CustoTotal().Espacos())
		assert.Equal(t, 60, power.Effects()[0].Custo().PdA())
		assert.True(t, power.Parametros().Equals(domain.DefaultPowerParameters()))
		assert.False(t, power.IsPublic())

		stored, err := env.powers.FindByID(env.ctx, power.ID())
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Empty(t, stored.PendingEvents())
	})

	t.Run("Missing catalog entry writes nothing", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.powerSvc.CreatePower(env.ctx, service.CreatePowerRequest{
			UserID:    userID,
			Nome:      "Nada",
			Descricao: "Efeito inexistente",
			Effects:   []domain.AppliedEffect{effect(t, "inexistente", 1)},
		})
		assert.ErrorIs(t, err, models.ErrResourceNotFound)
		assert.Zero(t, env.powers.Len())
	})

	t.Run("Validation errors propagate", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.powerSvc.CreatePower(env.ctx, service.CreatePowerRequest{
			UserID:  userID,
			Nome:    "",
			Effects: []domain.AppliedEffect{effect(t, "dano", 1)},
		})
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "nome", vErr.Field)
	})

	t.Run("Public power publishes its private peculiarity", func(t *testing.T) {
		env := newTestEnv(t)
		peculiarity := env.createPeculiarity(t, userID)
		require.False(t, peculiarity.IsPublic())

		power := env.createPower(t, userID, peculiarDomain(t, peculiarity.ID()), true)
		assert.True(t, power.IsPublic())

		stored, err := env.peculiarities.FindByID(env.ctx, peculiarity.ID())
		require.NoError(t, err)
		assert.True(t, stored.IsPublic())
		assert.False(t, env.bus.IsMarked(power.ID()))
	})

	t.Run("Public power with missing peculiarity is rejected before any write", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.powerSvc.CreatePower(env.ctx, service.CreatePowerRequest{
			UserID:    userID,
			Nome:      "Orfao",
			Descricao: "Referencia perdida",
			Dominio:   peculiarDomain(t, uuid.New()),
			Effects:   []domain.AppliedEffect{effect(t, "dano", 1)},
			IsPublic:  true,
		})
		assert.ErrorIs(t, err, models.ErrInvalidVisibility)
		assert.Zero(t, env.powers.Len())
	})

	t.Run("Private power may reference a missing peculiarity", func(t *testing.T) {
		env := newTestEnv(t)
		power := env.createPower(t, userID, peculiarDomain(t, uuid.New()), false)
		assert.True(t, power.Dominio().IsPeculiar())
	})

	t.Run("Official power cannot be created public", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.powerSvc.CreatePower(env.ctx, service.CreatePowerRequest{
			Nome:      "Oficial",
			Descricao: "Poder do sistema",
			Effects:   []domain.AppliedEffect{effect(t, "dano", 1)},
			IsPublic:  true,
		})
		assert.ErrorIs(t, err, models.ErrInvalidVisibility)
		assert.Zero(t, env.powers.Len())
	})

	t.Run("Repository error is wrapped", func(t *testing.T) {
		effects, mods := seedCatalog()
		repo := new(mocks.PowerRepository)
		dbErr := errors.New("insert failed")
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Power")).Return(dbErr).Once()
		logger := zap.NewNop()
		svc := service.NewPowerService(repo, new(mocks.PeculiarityRepository),
			service.NewPowerCostCalculator(effects, mods, logger), events.NewBus(logger), logger)

		_, err := svc.CreatePower(t.Context(), service.CreatePowerRequest{
			UserID:    userID,
			Nome:      "Falha",
			Descricao: "Banco fora",
			Effects:   []domain.AppliedEffect{effect(t, "dano", 1)},
		})
		assert.ErrorIs(t, err, dbErr)
		repo.AssertExpectations(t)
	})
}

func TestUpdatePower(t *testing.T) {
	owner := uuid.New()

	t.Run("Not found and not allowed", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.powerSvc.UpdatePower(env.ctx, service.UpdatePowerRequest{PowerID: uuid.New(), UserID: owner})
		assert.ErrorIs(t, err, models.ErrResourceNotFound)

		power := env.createPower(t, owner, domain.NaturalDomain(), false)
		_, err = env.powerSvc.UpdatePower(env.ctx, service.UpdatePowerRequest{PowerID: power.ID(), UserID: uuid.New()})
		assert.ErrorIs(t, err, models.ErrNotAllowed)
	})

	t.Run("Reprices when effects change", func(t *testing.T) {
		env := newTestEnv(t)
		power := env.createPower(t, owner, domain.NaturalDomain(), false)
		require.Equal(t, 2, power.CustoTotal().PdA())

		updated, err := env.powerSvc.UpdatePower(env.ctx, service.UpdatePowerRequest{
			PowerID: power.ID(),
			UserID:  owner,
			Nome:    stringPtr("Rajada Maior"),
			Effects: []domain.AppliedEffect{effect(t, "dano", 10, local(t, "area", 5))},
		})
		require.NoError(t, err)
		assert.Equal(t, "Rajada Maior", updated.Nome())
		assert.Equal(t, 60, updated.CustoTotal().PdA())
		assert.Equal(t, power.ID(), updated.ID())
		assert.NotNil(t, updated.UpdatedAt())
	})

	t.Run("Reprices existing effects when only globals change", func(t *testing.T) {
		env := newTestEnv(t)
		power := env.createPower(t, owner, domain.NaturalDomain(), false)
		updated, err := env.powerSvc.UpdatePower(env.ctx, service.UpdatePowerRequest{
			PowerID:             power.ID(),
			UserID:              owner,
			GlobalModifications: []domain.AppliedModification{global(t, "dobrado")},
		})
		require.NoError(t, err)
		assert.Equal(t, 4, updated.CustoTotal().PdA())
		assert.Len(t, updated.Effects(), 1)
	})

	t.Run("Keeps cost when only text changes", func(t *testing.T) {
		env := newTestEnv(t)
		power := env.createPower(t, owner, domain.NaturalDomain(), false)
		updated, err := env.powerSvc.UpdatePower(env.ctx, service.UpdatePowerRequest{
			PowerID: power.ID(),
			UserID:  owner,
			Notas:   stringPtr("anotado"),
		})
		require.NoError(t, err)
		assert.True(t, updated.CustoTotal().Equals(power.CustoTotal()))
		assert.Equal(t, "anotado", updated.Notas())
	})

	t.Run("Publishing cascades to the peculiarity", func(t *testing.T) {
		env := newTestEnv(t)
		peculiarity := env.createPeculiarity(t, owner)
		power := env.createPower(t, owner, peculiarDomain(t, peculiarity.ID()), false)

		updated, err := env.powerSvc.UpdatePower(env.ctx, service.UpdatePowerRequest{PowerID: power.ID(), UserID: owner, IsPublic: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, updated.IsPublic())

		stored, err := env.peculiarities.FindByID(env.ctx, peculiarity.ID())
		require.NoError(t, err)
		assert.True(t, stored.IsPublic())
	})

	t.Run("Publishing with a deleted peculiarity is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		peculiarity := env.createPeculiarity(t, owner)
		power := env.createPower(t, owner, peculiarDomain(t, peculiarity.ID()), false)
		require.NoError(t, env.peculiarSvc.DeletePeculiarity(env.ctx, peculiarity.ID(), owner))

		_, err := env.powerSvc.UpdatePower(env.ctx, service.UpdatePowerRequest{PowerID: power.ID(), UserID: owner, IsPublic: boolPtr(true)})
		assert.ErrorIs(t, err, models.ErrInvalidVisibility)

		stored, err := env.powers.FindByID(env.ctx, power.ID())
		require.NoError(t, err)
		assert.False(t, stored.IsPublic())
	})

	t.Run("Making private raises no event", func(t *testing.T) {
		env := newTestEnv(t)
		power := env.createPower(t, owner, domain.NaturalDomain(), true)
		updated, err := env.powerSvc.UpdatePower(env.ctx, service.UpdatePowerRequest{PowerID: power.ID(), UserID: owner, IsPublic: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, updated.IsPublic())
		assert.Empty(t, updated.PendingEvents())
	})
}

func TestDeleteAndGetPower(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	t.Run("Delete checks ownership", func(t *testing.T) {
		env := newTestEnv(t)
		power := env.createPower(t, owner, domain.NaturalDomain(), false)

		assert.ErrorIs(t, env.powerSvc.DeletePower(env.ctx, power.ID(), stranger), models.ErrNotAllowed)
		require.NoError(t, env.powerSvc.DeletePower(env.ctx, power.ID(), owner))
		assert.ErrorIs(t, env.powerSvc.DeletePower(env.ctx, power.ID(), owner), models.ErrResourceNotFound)
	})

	t.Run("Official powers cannot be deleted by users", func(t *testing.T) {
		env := newTestEnv(t)
		official := env.createPower(t, uuid.Nil, domain.NaturalDomain(), false)
		assert.ErrorIs(t, env.powerSvc.DeletePower(env.ctx, official.ID(), owner), models.ErrNotAllowed)
	})

	t.Run("Get respects visibility", func(t *testing.T) {
		env := newTestEnv(t)
		private := env.createPower(t, owner, domain.NaturalDomain(), false)
		public := env.createPower(t, owner, domain.NaturalDomain(), true)

		_, err := env.powerSvc.GetPowerByID(env.ctx, private.ID(), stranger)
		assert.ErrorIs(t, err, models.ErrNotAllowed)

		found, err := env.powerSvc.GetPowerByID(env.ctx, private.ID(), owner)
		require.NoError(t, err)
		assert.Equal(t, private.ID(), found.ID())

		found, err = env.powerSvc.GetPowerByID(env.ctx, public.ID(), uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, public.ID(), found.ID())

		_, err = env.powerSvc.GetPowerByID(env.ctx, uuid.New(), owner)
		assert.ErrorIs(t, err, models.ErrResourceNotFound)
	})
}

func TestCopyPublicPower(t *testing.T) {
	owner := uuid.New()
	reader := uuid.New()

	t.Run("Copies a public power into a private one", func(t *testing.T) {
		env := newTestEnv(t)
		source := env.createPower(t, owner, domain.NaturalDomain(), true)

		copied, err := env.powerSvc.CopyPublicPower(env.ctx, source.ID(), reader)
		require.NoError(t, err)
		assert.NotEqual(t, source.ID(), copied.ID())
		assert.Equal(t, reader, copied.UserID())
		assert.False(t, copied.IsPublic())
		assert.Equal(t, source.Nome(), copied.Nome())
		assert.True(t, source.CustoTotal().Equals(copied.CustoTotal()))
		assert.Equal(t, 2, env.powers.Len())
	})

	t.Run("Official powers can be copied", func(t *testing.T) {
		env := newTestEnv(t)
		official := env.createPower(t, uuid.Nil, domain.NaturalDomain(), false)
		copied, err := env.powerSvc.CopyPublicPower(env.ctx, official.ID(), reader)
		require.NoError(t, err)
		assert.False(t, copied.IsOfficial())
	})

	t.Run("Private powers cannot be copied even by the owner", func(t *testing.T) {
		env := newTestEnv(t)
		private := env.createPower(t, owner, domain.NaturalDomain(), false)
		_, err := env.powerSvc.CopyPublicPower(env.ctx, private.ID(), owner)
		assert.ErrorIs(t, err, models.ErrNotAllowed)
	})

	t.Run("Missing power", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.powerSvc.CopyPublicPower(env.ctx, uuid.New(), reader)
		assert.ErrorIs(t, err, models.ErrResourceNotFound)
	})
}

func TestFetchPowers(t *testing.T) {
	owner := uuid.New()
	env := newTestEnv(t)
	for range 21 {
		env.createPower(t, owner, domain.NaturalDomain(), true)
	}
	env.createPower(t, owner, domain.NaturalDomain(), false)
	env.createPower(t, uuid.New(), peculiarDomain(t, uuid.New()), false)

	first, err := env.powerSvc.FetchPublicPowers(env.ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first, 20)
	second, err := env.powerSvc.FetchPublicPowers(env.ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second, 1)

	mine, err := env.powerSvc.FetchUserPowers(env.ctx, owner, 2)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	peculiar, err := env.powerSvc.FetchPowersByDomain(env.ctx, domain.DomainPeculiar, 1)
	require.NoError(t, err)
	assert.Len(t, peculiar, 1)

	_, err = env.powerSvc.FetchPowersByDomain(env.ctx, domain.DomainName("astral"), 1)
	assert.ErrorIs(t, err, models.ErrResourceNotFound)
}
