package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestTxOptions_SnapshotRepeatableReadSoloLectura(t *testing.T) {
	assert.Equal(t, pgx.RepeatableRead, snapshotTxOptions.IsoLevel)
	assert.Equal(t, pgx.ReadOnly, snapshotTxOptions.AccessMode)
	assert.Equal(t, pgx.ReadCommitted, writeTxOptions.IsoLevel)
}
