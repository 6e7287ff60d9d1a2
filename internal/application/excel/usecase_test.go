package excel

import (
	"bytes"
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/pcbstock-api/internal/domain"
	"github.com/jhoicas/pcbstock-api/internal/domain/entity"
	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
	"github.com/jhoicas/pcbstock-api/pkg/logger"
)

// memComponentRepo fake mínimo del maestro de componentes.
type memComponentRepo struct {
	items map[string]*entity.Component
}

func newMemComponentRepo() *memComponentRepo {
	return &memComponentRepo{items: make(map[string]*entity.Component)}
}

func (r *memComponentRepo) Create(c *entity.Component) error {
	for _, existing := range r.items {
		if existing.PartNumber == c.PartNumber {
			return domain.ErrDuplicate
		}
	}
	cc := *c
	r.items[c.ID] = &cc
	return nil
}

func (r *memComponentRepo) GetByID(id string) (*entity.Component, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *memComponentRepo) GetByPartNumber(partNumber string) (*entity.Component, error) {
	for _, c := range r.items {
		if c.PartNumber == partNumber {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *memComponentRepo) List(repository.ComponentFilter) ([]*entity.Component, error) {
	var out []*entity.Component
	for _, c := range r.items {
		cc := *c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memComponentRepo) Update(c *entity.Component) error {
	if _, ok := r.items[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cc := *c
	r.items[c.ID] = &cc
	return nil
}

func (r *memComponentRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

func (r *memComponentRepo) GetForUpdate(id string) (*entity.Component, error) {
	return r.GetByID(id)
}

func (r *memComponentRepo) SetStock(id string, stock int) error {
	c, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.CurrentStock = stock
	return nil
}

// memAnalyticsRepo fake de lecturas agregadas; solo sirve el reporte de
// consumo usado por el export.
type memAnalyticsRepo struct {
	report []*repository.ConsumptionReportRow
}

func (r *memAnalyticsRepo) Dashboard() (*repository.DashboardCounts, error) {
	panic("no usado")
}

func (r *memAnalyticsRepo) ConsumptionSummary() ([]*repository.ConsumptionSummaryRow, error) {
	panic("no usado")
}

func (r *memAnalyticsRepo) TopConsumed(int) ([]*repository.ConsumptionSummaryRow, error) {
	panic("no usado")
}

func (r *memAnalyticsRepo) LowStockComponents() ([]*repository.LowStockRow, error) {
	panic("no usado")
}

func (r *memAnalyticsRepo) ConsumptionTimeline(int) ([]*repository.TimelineRow, error) {
	panic("no usado")
}

func (r *memAnalyticsRepo) ConsumptionReport() ([]*repository.ConsumptionReportRow, error) {
	return r.report, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// buildWorkbook arma un libro en memoria con encabezado y las filas dadas.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := []interface{}{"Component Name", "Part Number", "Current Stock", "Monthly Required Quantity"}
	all := append([][]interface{}{header}, rows...)
	for i, row := range all {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestImportComponents_CreaYActualizaPorPartNumber(t *testing.T) {
	repo := newMemComponentRepo()
	now := time.Now()
	repo.items["comp-1"] = &entity.Component{
		ID: "comp-1", Name: "Viejo nombre", PartNumber: "R-100",
		CurrentStock: 10, MonthlyRequiredQuantity: 50,
		CreatedAt: now, UpdatedAt: now,
	}
	uc := NewUseCase(repo, nil, nil, testLogger())

	wb := buildWorkbook(t, [][]interface{}{
		{"Resistencia 100", "R-100", 25, 60},  // actualiza comp-1
		{"Capacitor 220", "C-220", 100, 200},  // crea
	})

	result, err := uc.ImportComponents(context.Background(), wb)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Errors)

	updated, err := repo.GetByPartNumber("R-100")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Resistencia 100", updated.Name)
	assert.Equal(t, 25, updated.CurrentStock)
	assert.Equal(t, 60, updated.MonthlyRequiredQuantity)

	created, err := repo.GetByPartNumber("C-220")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 100, created.CurrentStock)
}

// Los errores de fila no abortan el import: las filas válidas se procesan y
// los renglones inválidos quedan reportados.
func TestImportComponents_FilasInvalidasNoAbortan(t *testing.T) {
	repo := newMemComponentRepo()
	uc := NewUseCase(repo, nil, nil, testLogger())

	wb := buildWorkbook(t, [][]interface{}{
		{"", "R-100", 10, 50},                // sin nombre
		{"Capacitor 220", "C-220", -5, 200},  // stock negativo
		{"Diodo", "D-001", 30, 40},           // válida
	})

	result, err := uc.ImportComponents(context.Background(), wb)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Updated)
	assert.Len(t, result.Errors, 2)
}

func TestImportComponents_ArchivoInvalido(t *testing.T) {
	uc := NewUseCase(newMemComponentRepo(), nil, nil, testLogger())
	_, err := uc.ImportComponents(context.Background(), bytes.NewReader([]byte("no es xlsx")))
	assert.Error(t, err)
}

func TestExportComponents_RoundTrip(t *testing.T) {
	repo := newMemComponentRepo()
	now := time.Now()
	repo.items["comp-1"] = &entity.Component{
		ID: "comp-1", Name: "Resistencia 100", PartNumber: "R-100",
		CurrentStock: 42, MonthlyRequiredQuantity: 100,
		CreatedAt: now, UpdatedAt: now,
	}
	uc := NewUseCase(repo, nil, nil, testLogger())

	data, err := uc.ExportComponents()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Components")
	require.NoError(t, err)
	require.Len(t, rows, 2, "encabezado más una fila de datos")
	assert.Equal(t, "Resistencia 100", rows[1][0])
	assert.Equal(t, "R-100", rows[1][1])
	assert.Equal(t, "42", rows[1][2])
	assert.Equal(t, "100", rows[1][3])
}

func TestExportConsumption_RoundTrip(t *testing.T) {
	when := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	analytics := &memAnalyticsRepo{report: []*repository.ConsumptionReportRow{
		{
			CreatedAt: when, PCBName: "Controladora", QuantityProduced: 10,
			ComponentName: "Resistencia 100", PartNumber: "R-100",
			QuantityConsumed: 20, StockBefore: 100, StockAfter: 80,
		},
		{
			CreatedAt: when.Add(-time.Hour), PCBName: "Controladora", QuantityProduced: 10,
			ComponentName: "Capacitor 220", PartNumber: "C-220",
			QuantityConsumed: 50, StockBefore: 50, StockAfter: 0,
		},
	}}
	uc := NewUseCase(newMemComponentRepo(), analytics, nil, testLogger())

	data, err := uc.ExportConsumption()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Consumption Report")
	require.NoError(t, err)
	require.Len(t, rows, 3, "encabezado más dos filas de datos")

	assert.Equal(t, []string{"Date", "PCB Name", "Qty Produced", "Component", "Part Number", "Qty Consumed", "Stock Before", "Stock After"}, rows[0])
	assert.Equal(t, "2026-08-20 14:30:00", rows[1][0])
	assert.Equal(t, "Controladora", rows[1][1])
	assert.Equal(t, "Resistencia 100", rows[1][3])
	assert.Equal(t, "R-100", rows[1][4])
	assert.Equal(t, "20", rows[1][5])
	assert.Equal(t, "100", rows[1][6])
	assert.Equal(t, "80", rows[1][7])
	assert.Equal(t, "C-220", rows[2][4])
}

func TestExportConsumption_SinHistorialSoloEncabezado(t *testing.T) {
	uc := NewUseCase(newMemComponentRepo(), &memAnalyticsRepo{}, nil, testLogger())

	data, err := uc.ExportConsumption()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Consumption Report")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
