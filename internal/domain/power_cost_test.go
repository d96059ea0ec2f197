package domain_test

import (
	"errors"
	"testing"

	"github.com/Gaaaybe/Aetherium/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCost(t *testing.T, pda, pe, espacos int) domain.PowerCost {
	t.Helper()
	c, err := domain.NewPowerCost(pda, pe, espacos)
	require.NoError(t, err)
	return c
}

func TestNewPowerCost(t *testing.T) {
	t.Run("Valid bounds", func(t *testing.T) {
		c := mustCost(t, domain.MaxPdA, domain.MaxPE, domain.MaxEspacos)
		assert.Equal(t, 99999, c.PdA())
		assert.Equal(t, 999, c.PE())
		assert.Equal(t, 999, c.Espacos())
	})

	cases := []struct {
		name             string
		pda, pe, espacos int
		field            string
	}{
		{"Negative PdA", -1, 0, 0, "pda"},
		{"Negative PE", 0, -1, 0, "pe"},
		{"Negative espacos", 0, 0, -1, "espacos"},
		{"PdA over limit", 100000, 0, 0, "pda"},
		{"PE over limit", 0, 1000, 0, "pe"},
		{"Espacos over limit", 0, 0, 1000, "espacos"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.NewPowerCost(tc.pda, tc.pe, tc.espacos)
			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestPowerCostArithmetic(t *testing.T) {
	a := mustCost(t, 10, 2, 3)
	b := mustCost(t, 4, 5, 1)

	t.Run("Add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Equals(mustCost(t, 14, 7, 4)))
	})

	t.Run("Subtract floors every field at zero", func(t *testing.T) {
		diff := a.Subtract(b)
		assert.True(t, diff.Equals(mustCost(t, 6, 0, 2)))
	})

	t.Run("Multiply rounds", func(t *testing.T) {
		m, err := a.Multiply(1.5)
		require.NoError(t, err)
		assert.Equal(t, 15, m.PdA())
		assert.Equal(t, 3, m.PE())
		assert.Equal(t, 5, m.Espacos()) // 4.5 округляется вверх
	})

	t.Run("Multiply by negative factor fails", func(t *testing.T) {
		_, err := a.Multiply(-1)
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "factor", vErr.Field)
	})

	t.Run("Sum", func(t *testing.T) {
		total, err := domain.SumCosts(a, b, domain.ZeroCost())
		require.NoError(t, err)
		assert.True(t, total.Equals(mustCost(t, 14, 7, 4)))
	})

	t.Run("Sum over limit fails", func(t *testing.T) {
		big := mustCost(t, 60000, 0, 0)
		_, err := domain.SumCosts(big, big)
		assert.Error(t, err)
	})

	t.Run("Predicates", func(t *testing.T) {
		assert.True(t, domain.ZeroCost().IsFree())
		assert.False(t, a.IsFree())
		assert.True(t, a.RequiresPE())
		assert.True(t, a.RequiresEspacos())
		assert.False(t, domain.ZeroCost().RequiresPE())
	})
}

func TestPowerParameters(t *testing.T) {
	def := domain.DefaultPowerParameters()
	assert.Equal(t, 2, def.Acao())
	assert.Equal(t, 1, def.Alcance())
	assert.Equal(t, 0, def.Duracao())
	assert.True(t, def.IsInstantaneo())
	assert.False(t, def.IsPessoal())

	p, err := domain.NewPowerParameters(0, 0, 4)
	require.NoError(t, err)
	assert.True(t, p.IsPessoal())
	assert.True(t, p.IsPermanente())
	assert.False(t, p.Equals(def))

	for _, bad := range [][3]int{{6, 0, 0}, {0, 7, 0}, {0, 0, 5}, {-1, 0, 0}} {
		_, err := domain.NewPowerParameters(bad[0], bad[1], bad[2])
		assert.Error(t, err, "params %v", bad)
	}
}
