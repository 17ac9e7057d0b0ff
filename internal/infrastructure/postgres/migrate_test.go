package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/stock?sslmode=disable", migrateURL("postgres://u:p@db:5432/stock?sslmode=disable"))
	assert.Equal(t, "pgx5://u:p@db/stock", migrateURL("postgresql://u:p@db/stock"))
	assert.Equal(t, "pgx5://ya/convertido", migrateURL("pgx5://ya/convertido"))
}

func TestMigraciones_EmbebidasEnPares(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups, downs := 0, 0
	for _, f := range files {
		switch {
		case strings.HasSuffix(f, ".up.sql"):
			ups++
		case strings.HasSuffix(f, ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs)
}

func TestWhere_ReusaPlaceholder(t *testing.T) {
	var w where
	w.add("type = ?", "Receipt")
	w.add("(warehouse_id = ? OR from_warehouse_id = ? OR to_warehouse_id = ?)", "wh-1")
	limit := w.arg(10)

	assert.Equal(t, " WHERE type = $1 AND (warehouse_id = $2 OR from_warehouse_id = $2 OR to_warehouse_id = $2)", w.sql())
	assert.Equal(t, "$3", limit)
	assert.Equal(t, []any{"Receipt", "wh-1", 10}, w.args)
}
