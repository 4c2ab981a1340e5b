package migration_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	fieldwork "github.com/dangerclosesec/fieldwork"
	"github.com/dangerclosesec/fieldwork/internal/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrdersByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"0010_late.sql":  {Data: []byte("SELECT 10;")},
		"0002_mid.sql":   {Data: []byte("SELECT 2;")},
		"0001_first.sql": {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("ignored")},
	}

	files, err := migration.Load(fsys)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, []int{1, 2, 10}, []int{files[0].Version, files[1].Version, files[2].Version})
	assert.Equal(t, "SELECT 2;", files[1].SQL)
}

func TestLoadRejectsBadNames(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"no underscore", fstest.MapFS{"0001.sql": {}}},
		{"non numeric", fstest.MapFS{"abc_init.sql": {}}},
		{"zero", fstest.MapFS{"0000_init.sql": {}}},
		{"duplicate", fstest.MapFS{"0001_a.sql": {}, "1_b.sql": {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := migration.Load(tt.fsys)
			assert.Error(t, err)
		})
	}
}

func TestPending(t *testing.T) {
	files := []migration.File{{Version: 1}, {Version: 2}, {Version: 3}}

	assert.Len(t, migration.Pending(files, 0), 3)
	assert.Equal(t, 3, migration.Pending(files, 2)[0].Version)
	assert.Empty(t, migration.Pending(files, 3))
}

func TestEmbeddedMigrations(t *testing.T) {
	sub, err := fs.Sub(fieldwork.MigrationFS, "migrations")
	require.NoError(t, err)

	files, err := migration.Load(sub)
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for i, f := range files {
		assert.Equal(t, i+1, f.Version, f.Name)
		assert.NotEmpty(t, f.SQL, f.Name)
	}
}
