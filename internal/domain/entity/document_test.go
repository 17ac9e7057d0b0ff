package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

func TestDocumentStatus_Terminales(t *testing.T) {
	assert.True(t, entity.StatusDone.IsTerminal())
	assert.True(t, entity.StatusCanceled.IsTerminal())
	for _, s := range entity.PendingStatuses {
		assert.False(t, s.IsTerminal(), "%s no debe ser terminal", s)
	}
}

func TestDocumentStatus_CanAdvanceTo(t *testing.T) {
	cases := []struct {
		from, to entity.DocumentStatus
		ok       bool
	}{
		{entity.StatusDraft, entity.StatusWaiting, true},
		{entity.StatusDraft, entity.StatusReady, true},
		{entity.StatusWaiting, entity.StatusReady, true},
		{entity.StatusReady, entity.StatusWaiting, false},
		{entity.StatusWaiting, entity.StatusDraft, false},
		{entity.StatusDone, entity.StatusReady, false},
		{entity.StatusCanceled, entity.StatusDraft, false},
		{entity.StatusDraft, entity.StatusDone, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanAdvanceTo(c.to), "%s → %s", c.from, c.to)
	}
}

func TestStockKey_OrdenDeterminista(t *testing.T) {
	a := entity.StockKey{ProductID: "p1", WarehouseID: "w2"}
	b := entity.StockKey{ProductID: "p1", WarehouseID: "w1", LocationID: "l9"}
	c := entity.StockKey{ProductID: "p0", WarehouseID: "w9"}

	assert.True(t, b.Less(a))
	assert.True(t, c.Less(b))
	assert.False(t, a.Less(a))
	assert.Equal(t, "p1/w1/l9", b.String())
}
