package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaVersion(t *testing.T) {
	version, err := SchemaVersion()
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)
}

func TestMigrationVersions(t *testing.T) {
	t.Run("sorted by numeric prefix", func(t *testing.T) {
		versions, err := migrationVersions(fstest.MapFS{
			"m/000010_late.up.sql":  {},
			"m/000002_b.up.sql":     {},
			"m/000002_b.down.sql":   {},
			"m/000001_a.up.sql":     {},
			"other/000099_x.up.sql": {},
		}, "m")
		require.NoError(t, err)
		assert.Equal(t, []uint{1, 2, 10}, versions)
	})

	t.Run("file without prefix", func(t *testing.T) {
		_, err := migrationVersions(fstest.MapFS{"m/init.up.sql": {}}, "m")
		assert.ErrorContains(t, err, "no version prefix")
	})

	t.Run("non numeric prefix", func(t *testing.T) {
		_, err := migrationVersions(fstest.MapFS{"m/v1_init.up.sql": {}}, "m")
		assert.ErrorContains(t, err, "invalid version")
	})
}
