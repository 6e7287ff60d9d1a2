package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pcbstock-api/internal/domain"
)

func TestTriggerResolve_TransicionUnica(t *testing.T) {
	tr := &ProcurementTrigger{
		ID:          "t-1",
		ComponentID: "comp-a",
		Status:      TriggerPending,
	}
	at := time.Now()

	require.NoError(t, tr.Resolve(5, "PO-1", at))
	assert.Equal(t, TriggerResolved, tr.Status)
	assert.Equal(t, 5, tr.StockAtResolution)
	assert.Equal(t, "PO-1", tr.POReference)
	require.NotNil(t, tr.ResolvedAt)
	assert.Equal(t, at, *tr.ResolvedAt)

	// La transición es de una sola vía: resolver de nuevo falla y no muta
	err := tr.Resolve(99, "PO-2", time.Now())
	assert.ErrorIs(t, err, domain.ErrTriggerNotPending)
	assert.Equal(t, 5, tr.StockAtResolution)
	assert.Equal(t, "PO-1", tr.POReference)
}

func TestTriggerStatus_Valid(t *testing.T) {
	assert.True(t, TriggerPending.Valid())
	assert.True(t, TriggerResolved.Valid())
	assert.False(t, TriggerStatus("CANCELLED").Valid())
	assert.False(t, TriggerStatus("").Valid())
}
