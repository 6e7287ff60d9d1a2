package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// El punto de reorden es el 20% del requerido mensual, redondeado hacia
// arriba: 9 → 2, no 1.
func TestReorderThreshold_RedondeaHaciaArriba(t *testing.T) {
	cases := []struct {
		monthly  int
		expected int
	}{
		{0, 0},
		{1, 1},  // ceil(0.2)
		{4, 1},  // ceil(0.8)
		{5, 1},  // exacto
		{9, 2},  // ceil(1.8)
		{10, 2}, // exacto
		{100, 20},
		{101, 21},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, ReorderThreshold(tc.monthly), "monthly=%d", tc.monthly)
	}
}

// La condición de bajo stock es estrictamente menor que el umbral.
func TestIsLowStock_EstrictamenteMenor(t *testing.T) {
	c := &Component{MonthlyRequiredQuantity: 100} // umbral 20

	c.CurrentStock = 19
	assert.True(t, c.IsLowStock())

	c.CurrentStock = 20
	assert.False(t, c.IsLowStock(), "en el umbral exacto no hay bajo stock")

	c.CurrentStock = 21
	assert.False(t, c.IsLowStock())
}

// Un componente sin requerido mensual tiene umbral cero y nunca dispara.
func TestIsLowStock_SinRequeridoMensual(t *testing.T) {
	c := &Component{MonthlyRequiredQuantity: 0, CurrentStock: 0}
	assert.False(t, c.IsLowStock())
}
