package domain_test

import (
	"testing"

	"github.com/Gaaaybe/Aetherium/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomain(t *testing.T) {
	t.Run("Peculiar domain carries its peculiarity", func(t *testing.T) {
		id := uuid.New()
		d, err := domain.PeculiarDomain(id)
		require.NoError(t, err)
		assert.True(t, d.IsPeculiar())
		got, ok := d.PeculiarID()
		assert.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("Peculiar domain without id is rejected", func(t *testing.T) {
		_, err := domain.NewDomain(domain.DomainPeculiar, uuid.Nil)
		assert.Error(t, err)
	})

	t.Run("Non peculiar domain cannot reference a peculiarity", func(t *testing.T) {
		_, err := domain.NewDomain(domain.DomainSagrado, uuid.New())
		assert.Error(t, err)
	})

	t.Run("Unknown name", func(t *testing.T) {
		_, err := domain.NewDomain("arcano", uuid.Nil)
		assert.Error(t, err)
	})

	t.Run("Structural equality", func(t *testing.T) {
		id := uuid.New()
		a, _ := domain.PeculiarDomain(id)
		b, _ := domain.PeculiarDomain(id)
		c, _ := domain.PeculiarDomain(uuid.New())
		assert.True(t, a.Equals(b))
		assert.False(t, a.Equals(c))
		assert.False(t, a.Equals(domain.NaturalDomain()))
		_, ok := domain.NaturalDomain().PeculiarID()
		assert.False(t, ok)
	})
}

func TestAlternativeCost(t *testing.T) {
	c, err := domain.NewPEAlternativeCost(5)
	require.NoError(t, err)
	assert.Equal(t, domain.AlternativeCostPE, c.Tipo())
	assert.Equal(t, 5, c.Valor())

	_, err = domain.NewPEAlternativeCost(0)
	assert.Error(t, err)
	_, err = domain.NewAlternativeCost("ouro", 1, "")
	assert.Error(t, err)
}
