package service_test

import (
	"errors"
	"testing"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/models"
	"github.com/Gaaaybe/Aetherium/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeculiarityService(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	t.Run("Create validates text lengths", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.peculiarSvc.CreatePeculiarity(env.ctx, service.CreatePeculiarityRequest{
			UserID:    owner,
			Nome:      "ab",
			Descricao: "Descricao suficiente",
		})
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "nome", vErr.Field)
		assert.Zero(t, env.peculiarities.Len())
	})

	t.Run("Update fields and visibility", func(t *testing.T) {
		env := newTestEnv(t)
		p := env.createPeculiarity(t, owner)

		updated, err := env.peculiarSvc.UpdatePeculiarity(env.ctx, service.UpdatePeculiarityRequest{
			PeculiarityID: p.ID(),
			UserID:        owner,
			Nome:          stringPtr("Sangue Antigo"),
			Espiritual:    boolPtr(true),
			IsPublic:      boolPtr(true),
		})
		require.NoError(t, err)
		assert.Equal(t, "Sangue Antigo", updated.Nome())
		assert.True(t, updated.Espiritual())
		assert.True(t, updated.IsPublic())
		assert.Equal(t, p.Descricao(), updated.Descricao())

		found, err := env.peculiarSvc.GetPeculiarityByID(env.ctx, p.ID(), stranger)
		require.NoError(t, err)
		assert.True(t, found.IsPublic())
	})

	t.Run("Ownership checks", func(t *testing.T) {
		env := newTestEnv(t)
		p := env.createPeculiarity(t, owner)

		_, err := env.peculiarSvc.UpdatePeculiarity(env.ctx, service.UpdatePeculiarityRequest{PeculiarityID: p.ID(), UserID: stranger})
		assert.ErrorIs(t, err, models.ErrNotAllowed)

		_, err = env.peculiarSvc.GetPeculiarityByID(env.ctx, p.ID(), stranger)
		assert.ErrorIs(t, err, models.ErrNotAllowed)

		assert.ErrorIs(t, env.peculiarSvc.DeletePeculiarity(env.ctx, p.ID(), stranger), models.ErrNotAllowed)
		require.NoError(t, env.peculiarSvc.DeletePeculiarity(env.ctx, p.ID(), owner))

		_, err = env.peculiarSvc.GetPeculiarityByID(env.ctx, p.ID(), owner)
		assert.ErrorIs(t, err, models.ErrResourceNotFound)
	})

	t.Run("Deleting leaves referencing powers intact", func(t *testing.T) {
		env := newTestEnv(t)
		p := env.createPeculiarity(t, owner)
		power := env.createPower(t, owner, peculiarDomain(t, p.ID()), false)

		require.NoError(t, env.peculiarSvc.DeletePeculiarity(env.ctx, p.ID(), owner))
		stored, err := env.powers.FindByID(env.ctx, power.ID())
		require.NoError(t, err)
		assert.NotNil(t, stored)
	})

	t.Run("Fetch by user", func(t *testing.T) {
		env := newTestEnv(t)
		env.createPeculiarity(t, owner)
		env.createPeculiarity(t, owner)
		env.createPeculiarity(t, stranger)

		list, err := env.peculiarSvc.FetchUserPeculiarities(env.ctx, owner, 1)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}
