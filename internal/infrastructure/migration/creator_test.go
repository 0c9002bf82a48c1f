package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Restock Orders")
	require.NoError(t, err)

	assert.Contains(t, filepath.Base(mf.UpPath), "add_restock_orders.up.sql")
	assert.Contains(t, filepath.Base(mf.DownPath), "add_restock_orders.down.sql")

	upContent, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "Add Restock Orders")

	_, err = os.Stat(mf.DownPath)
	require.NoError(t, err)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_products_table", sanitizeName("Add Products Table"))
	assert.Equal(t, "fix_index", sanitizeName("fix--index!!"))
	assert.Equal(t, "v2_schema", sanitizeName("V2 Schema "))
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty directory", func(t *testing.T) {
		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("missing directory", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(dir, "missing"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("lists up migrations once", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.up.sql"), []byte("SELECT 1;"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "001_init.down.sql"), []byte("SELECT 1;"), 0644))

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"001_init"}, migrations)
	})
}
