package production

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pcbstock-api/internal/domain"
	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
	"github.com/jhoicas/pcbstock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// fixture arma un escenario típico: una PCB con dos líneas de BOM, una de
// ellas con alterno aprobado.
//
//	comp-a  (R-100)  stock 100, requiere 2 por PCB, alterno comp-c
//	comp-b  (C-220)  stock 50,  requiere 5 por PCB, sin alterno
//	comp-c  (R-100A) stock 80,  solo como alterno de comp-a
func fixture() (*memStore, *ProduceUseCase, *fakeNotifier) {
	s := newMemStore()
	now := time.Now()
	s.components["comp-a"] = &entity.Component{ID: "comp-a", Name: "Resistencia 100", PartNumber: "R-100", CurrentStock: 100, MonthlyRequiredQuantity: 200, CreatedAt: now, UpdatedAt: now}
	s.components["comp-b"] = &entity.Component{ID: "comp-b", Name: "Capacitor 220", PartNumber: "C-220", CurrentStock: 50, MonthlyRequiredQuantity: 100, CreatedAt: now, UpdatedAt: now}
	s.components["comp-c"] = &entity.Component{ID: "comp-c", Name: "Resistencia 100 alt", PartNumber: "R-100A", CurrentStock: 80, MonthlyRequiredQuantity: 0, CreatedAt: now, UpdatedAt: now}
	s.pcbs["pcb-1"] = &entity.PCB{ID: "pcb-1", Name: "Controladora", Code: "CTRL-01", CreatedAt: now}
	s.bom["pcb-1"] = []*entity.BOMLine{
		{ID: "bom-1", PCBID: "pcb-1", ComponentID: "comp-a", QuantityPerPCB: 2, AlternativeComponentID: "comp-c"},
		{ID: "bom-2", PCBID: "pcb-1", ComponentID: "comp-b", QuantityPerPCB: 5},
	}

	notifier := &fakeNotifier{}
	uc := NewProduceUseCase(
		&memTxRunner{s: s},
		&memPCBRepo{s: s},
		&memProductionRepo{s: s},
		notifier,
		testLogger(),
	)
	return s, uc, notifier
}

// ──────────────────────────────────────────────────────────────────────────────
// Producción exitosa
// ──────────────────────────────────────────────────────────────────────────────

// Con stock suficiente la producción deduce todas las líneas, registra la
// entrada y el consumo, y encola la revisión de compras.
func TestProduce_Exitosa(t *testing.T) {
	s, uc, notifier := fixture()

	result, err := uc.Produce(context.Background(), ProduceInput{
		PCBID:            "pcb-1",
		QuantityProduced: 3,
		ActorID:          "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Entry)

	// Stocks deducidos: comp-a 100-6, comp-b 50-15
	assert.Equal(t, 94, s.components["comp-a"].CurrentStock)
	assert.Equal(t, 35, s.components["comp-b"].CurrentStock)
	// El alterno no se toca sin sustitución
	assert.Equal(t, 80, s.components["comp-c"].CurrentStock)

	require.Len(t, s.entries, 1)
	assert.Equal(t, "pcb-1", s.entries[0].PCBID)
	assert.Equal(t, 3, s.entries[0].QuantityProduced)
	assert.Equal(t, "user-1", s.entries[0].ProducedBy)

	// Un registro de consumo por línea, con stock antes/después coherentes
	require.Len(t, result.Consumption, 2)
	for _, rec := range result.Consumption {
		assert.Equal(t, result.Entry.ID, rec.ProductionEntryID)
		assert.Equal(t, rec.StockBefore-rec.QuantityConsumed, rec.StockAfter)
	}

	// Outbox: una fila por componente consumido, y un kick post-commit
	assert.Len(t, s.outbox, 2)
	assert.Equal(t, 1, notifier.kicks)
}

// Dos líneas pueden compartir el mismo componente objetivo vía sustitución; el
// stock disponible se descuenta de forma corrida, nunca dos veces del mismo
// punto de partida.
func TestProduce_LineasConMismoObjetivoDescuentanEnSerie(t *testing.T) {
	s, uc, _ := fixture()
	// comp-b ahora también tiene a comp-c como alterno
	s.bom["pcb-1"][1].AlternativeComponentID = "comp-c"

	// Ambas líneas sustituidas: todo sale de comp-c (2+5 por unidad, 10 unidades = 70)
	result, err := uc.Produce(context.Background(), ProduceInput{
		PCBID:            "pcb-1",
		QuantityProduced: 10,
		Substitutions:    map[string]bool{"comp-a": true, "comp-b": true},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, s.components["comp-c"].CurrentStock)
	assert.Equal(t, 100, s.components["comp-a"].CurrentStock)
	assert.Equal(t, 50, s.components["comp-b"].CurrentStock)

	// Dos registros de consumo sobre comp-c con trayectoria serial
	require.Len(t, result.Consumption, 2)
	first, second := result.Consumption[0], result.Consumption[1]
	assert.Equal(t, "comp-c", first.ComponentID)
	assert.Equal(t, "comp-c", second.ComponentID)
	assert.Equal(t, first.StockAfter, second.StockBefore)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazos por faltante: atomicidad
// ──────────────────────────────────────────────────────────────────────────────

// Si una sola línea tiene faltante, la solicitud completa se rechaza y nada
// queda mutado: ni stock, ni entradas, ni historial, ni outbox.
func TestProduce_StockInsuficienteNoMutaNada(t *testing.T) {
	s, uc, notifier := fixture()

	// comp-b: 50 unidades, se requieren 5*11=55
	_, err := uc.Produce(context.Background(), ProduceInput{
		PCBID:            "pcb-1",
		QuantityProduced: 11,
	})
	require.Error(t, err)

	insufficient, ok := domain.AsInsufficientStock(err)
	require.True(t, ok, "debe ser un error de stock insuficiente")
	require.Len(t, insufficient.Shortfalls, 1)

	sf := insufficient.Shortfalls[0]
	assert.Equal(t, "comp-b", sf.ComponentID)
	assert.Equal(t, 50, sf.CurrentStock)
	assert.Equal(t, 55, sf.Required)
	assert.Equal(t, 5, sf.Missing)
	assert.Nil(t, sf.Alternative, "comp-b no tiene alterno configurado")

	// Nada mutado
	assert.Equal(t, 100, s.components["comp-a"].CurrentStock)
	assert.Equal(t, 50, s.components["comp-b"].CurrentStock)
	assert.Empty(t, s.entries)
	assert.Empty(t, s.consumption)
	assert.Empty(t, s.outbox)
	assert.Zero(t, notifier.kicks)
}

// El rechazo reporta TODAS las líneas con faltante, no solo la primera.
func TestProduce_FaltanteReportaTodasLasLineas(t *testing.T) {
	s, uc, _ := fixture()
	s.components["comp-a"].CurrentStock = 1
	s.components["comp-b"].CurrentStock = 1

	_, err := uc.Produce(context.Background(), ProduceInput{
		PCBID:            "pcb-1",
		QuantityProduced: 2,
	})
	insufficient, ok := domain.AsInsufficientStock(err)
	require.True(t, ok)
	assert.Len(t, insufficient.Shortfalls, 2)
}

// El faltante del primario sugiere el alterno aprobado con su stock actual,
// indicando si alcanza para la cantidad solicitada.
func TestProduce_FaltanteSugiereAlterno(t *testing.T) {
	s, uc, _ := fixture()
	s.components["comp-a"].CurrentStock = 3

	_, err := uc.Produce(context.Background(), ProduceInput{
		PCBID:            "pcb-1",
		QuantityProduced: 2, // requiere 4 de comp-a
	})
	insufficient, ok := domain.AsInsufficientStock(err)
	require.True(t, ok)
	require.Len(t, insufficient.Shortfalls, 1)

	sf := insufficient.Shortfalls[0]
	assert.Equal(t, "comp-a", sf.ComponentID)
	require.NotNil(t, sf.Alternative)
	assert.Equal(t, "comp-c", sf.Alternative.ComponentID)
	assert.Equal(t, 80, sf.Alternative.CurrentStock)
	assert.True(t, sf.Alternative.Sufficient)
}

// Si el alterno tampoco alcanza, igual se sugiere pero marcado insuficiente.
func TestProduce_AlternoInsuficienteSeMarcaComoTal(t *testing.T) {
	s, uc, _ := fixture()
	s.components["comp-a"].CurrentStock = 0
	s.components["comp-c"].CurrentStock = 1

	_, err := uc.Produce(context.Background(), ProduceInput{
		PCBID:            "pcb-1",
		QuantityProduced: 1, // requiere 2
	})
	insufficient, ok := domain.AsInsufficientStock(err)
	require.True(t, ok)
	sf := insufficient.Shortfalls[0]
	require.NotNil(t, sf.Alternative)
	assert.False(t, sf.Alternative.Sufficient)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sustituciones
// ──────────────────────────────────────────────────────────────────────────────

// Con la sustitución solicitada, el consumo sale del alterno y el primario
// queda intacto; el historial registra el alterno como componente consumido.
func TestProduce_ConSustitucionConsumeElAlterno(t *testing.T) {
	s, uc, _ := fixture()
	s.components["comp-a"].CurrentStock = 0

	result, err := uc.Produce(context.Background(), ProduceInput{
		PCBID:            "pcb-1",
		QuantityProduced: 4,
		Substitutions:    map[string]bool{"comp-a": true},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, s.components["comp-a"].CurrentStock)
	assert.Equal(t, 72, s.components["comp-c"].CurrentStock) // 80 - 2*4
	assert.Equal(t, 30, s.components["comp-b"].CurrentStock) // 50 - 5*4

	var consumedIDs []string
	for _, rec := range result.Consumption {
		consumedIDs = append(consumedIDs, rec.ComponentID)
	}
	assert.Contains(t, consumedIDs, "comp-c")
	assert.NotContains(t, consumedIDs, "comp-a")
}

// Con sustitución aplicada, el faltante describe al alterno que quedó corto:
// id, nombre, part number y stock son todos del mismo componente.
func TestProduce_SustitucionConAlternoCortoReportaAlAlterno(t *testing.T) {
	s, uc, _ := fixture()
	s.components["comp-c"].CurrentStock = 5

	_, err := uc.Produce(context.Background(), ProduceInput{
		PCBID:            "pcb-1",
		QuantityProduced: 4, // requiere 8 del alterno
		Substitutions:    map[string]bool{"comp-a": true},
	})
	insufficient, ok := domain.AsInsufficientStock(err)
	require.True(t, ok)
	require.Len(t, insufficient.Shortfalls, 1)

	sf := insufficient.Shortfalls[0]
	assert.Equal(t, "comp-c", sf.ComponentID)
	assert.Equal(t, "Resistencia 100 alt", sf.ComponentName)
	assert.Equal(t, "R-100A", sf.PartNumber)
	assert.Equal(t, 5, sf.CurrentStock)
	assert.Equal(t, 8, sf.Required)
	assert.Equal(t, 3, sf.Missing)
	assert.Nil(t, sf.Alternative, "ya se estaba usando el alterno")

	assert.Equal(t, 100, s.components["comp-a"].CurrentStock)
	assert.Equal(t, 5, s.components["comp-c"].CurrentStock)
}

// Pedir sustitución sobre una línea sin alterno configurado es un no-op: la
// línea se evalúa contra su primario.
func TestProduce_SustitucionSinAlternoEsNoOp(t *testing.T) {
	s, uc, _ := fixture()

	_, err := uc.Produce(context.Background(), ProduceInput{
		PCBID:            "pcb-1",
		QuantityProduced: 1,
		Substitutions:    map[string]bool{"comp-b": true},
	})
	require.NoError(t, err)
	assert.Equal(t, 45, s.components["comp-b"].CurrentStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones y bordes
// ──────────────────────────────────────────────────────────────────────────────

func TestProduce_CantidadInvalida(t *testing.T) {
	_, uc, _ := fixture()

	_, err := uc.Produce(context.Background(), ProduceInput{PCBID: "pcb-1", QuantityProduced: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Produce(context.Background(), ProduceInput{PCBID: "pcb-1", QuantityProduced: -3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Produce(context.Background(), ProduceInput{PCBID: "", QuantityProduced: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduce_PCBInexistente(t *testing.T) {
	_, uc, _ := fixture()
	_, err := uc.Produce(context.Background(), ProduceInput{PCBID: "no-existe", QuantityProduced: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduce_BOMVacio(t *testing.T) {
	s, uc, _ := fixture()
	s.bom["pcb-1"] = nil
	_, err := uc.Produce(context.Background(), ProduceInput{PCBID: "pcb-1", QuantityProduced: 1})
	assert.ErrorIs(t, err, domain.ErrEmptyBOM)
}

// Consumir exactamente el stock disponible es válido y deja el stock en cero.
func TestProduce_ConsumoExactoDejaStockEnCero(t *testing.T) {
	s, uc, _ := fixture()
	s.components["comp-a"].CurrentStock = 20
	s.components["comp-b"].CurrentStock = 50

	_, err := uc.Produce(context.Background(), ProduceInput{
		PCBID:            "pcb-1",
		QuantityProduced: 10, // 2*10=20 de comp-a, 5*10=50 de comp-b
	})
	require.NoError(t, err)
	assert.Equal(t, 0, s.components["comp-a"].CurrentStock)
	assert.Equal(t, 0, s.components["comp-b"].CurrentStock)
}

func TestHistory_MasRecientePrimero(t *testing.T) {
	s, uc, _ := fixture()
	for i := 0; i < 3; i++ {
		_, err := uc.Produce(context.Background(), ProduceInput{PCBID: "pcb-1", QuantityProduced: 1})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}
	_ = s

	entries, err := uc.History(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, !entries[0].CreatedAt.Before(entries[1].CreatedAt))
}

func TestConsumptionByEntry_IDRequerido(t *testing.T) {
	_, uc, _ := fixture()
	_, err := uc.ConsumptionByEntry("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
