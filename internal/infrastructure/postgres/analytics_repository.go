package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pcbstock-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo lecturas agregadas para dashboard y reportes de consumo.
type AnalyticsRepo struct {
	q Querier
}

func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) Dashboard() (*repository.DashboardCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM components),
			(SELECT COUNT(*) FROM pcbs),
			(SELECT COUNT(*) FROM components WHERE current_stock < CEIL(monthly_required_quantity * 0.2)),
			(SELECT COUNT(*) FROM production_entries),
			(SELECT COUNT(*) FROM procurement_triggers WHERE status = 'PENDING')`
	var c repository.DashboardCounts
	err := r.q.QueryRow(context.Background(), query).Scan(
		&c.TotalComponents, &c.TotalPCBs, &c.LowStockCount, &c.TotalProductions, &c.PendingTriggers,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &c, nil
}

func (r *AnalyticsRepo) ConsumptionSummary() ([]*repository.ConsumptionSummaryRow, error) {
	query := `
		SELECT ch.component_id, c.component_name, c.part_number,
		       COALESCE(SUM(ch.quantity_consumed), 0), COUNT(*)
		FROM consumption_history ch
		JOIN components c ON c.id = ch.component_id
		GROUP BY ch.component_id, c.component_name, c.part_number
		ORDER BY SUM(ch.quantity_consumed) DESC`
	return r.scanSummary(query)
}

func (r *AnalyticsRepo) TopConsumed(limit int) ([]*repository.ConsumptionSummaryRow, error) {
	query := `
		SELECT ch.component_id, c.component_name, c.part_number,
		       COALESCE(SUM(ch.quantity_consumed), 0), COUNT(*)
		FROM consumption_history ch
		JOIN components c ON c.id = ch.component_id
		GROUP BY ch.component_id, c.component_name, c.part_number
		ORDER BY SUM(ch.quantity_consumed) DESC
		LIMIT $1`
	return r.scanSummary(query, limit)
}

func (r *AnalyticsRepo) scanSummary(query string, args ...any) ([]*repository.ConsumptionSummaryRow, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("consumption summary: %w", err)
	}
	defer rows.Close()

	var list []*repository.ConsumptionSummaryRow
	for rows.Next() {
		var s repository.ConsumptionSummaryRow
		if err := rows.Scan(&s.ComponentID, &s.ComponentName, &s.PartNumber, &s.TotalConsumed, &s.ConsumptionCount); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *AnalyticsRepo) ConsumptionTimeline(days int) ([]*repository.TimelineRow, error) {
	query := `
		SELECT DATE(ch.created_at),
		       COALESCE(SUM(ch.quantity_consumed), 0),
		       COUNT(DISTINCT ch.production_entry_id)
		FROM consumption_history ch
		GROUP BY DATE(ch.created_at)
		ORDER BY DATE(ch.created_at) DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, days)
	if err != nil {
		return nil, fmt.Errorf("consumption timeline: %w", err)
	}
	defer rows.Close()

	var list []*repository.TimelineRow
	for rows.Next() {
		var t repository.TimelineRow
		if err := rows.Scan(&t.Date, &t.TotalConsumed, &t.ProductionRuns); err != nil {
			return nil, fmt.Errorf("scan timeline row: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *AnalyticsRepo) ConsumptionReport() ([]*repository.ConsumptionReportRow, error) {
	query := `
		SELECT ch.created_at, p.pcb_name, pe.quantity_produced,
		       c.component_name, c.part_number,
		       ch.quantity_consumed, ch.stock_before, ch.stock_after
		FROM consumption_history ch
		JOIN components c ON c.id = ch.component_id
		JOIN production_entries pe ON pe.id = ch.production_entry_id
		JOIN pcbs p ON p.id = pe.pcb_id
		ORDER BY ch.created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("consumption report: %w", err)
	}
	defer rows.Close()

	var list []*repository.ConsumptionReportRow
	for rows.Next() {
		var rep repository.ConsumptionReportRow
		if err := rows.Scan(&rep.CreatedAt, &rep.PCBName, &rep.QuantityProduced,
			&rep.ComponentName, &rep.PartNumber,
			&rep.QuantityConsumed, &rep.StockBefore, &rep.StockAfter); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		list = append(list, &rep)
	}
	return list, rows.Err()
}

func (r *AnalyticsRepo) LowStockComponents() ([]*repository.LowStockRow, error) {
	query := `
		SELECT id, component_name, part_number, current_stock, monthly_required_quantity,
		       CEIL(monthly_required_quantity * 0.2)::int
		FROM components
		WHERE current_stock < CEIL(monthly_required_quantity * 0.2)
		ORDER BY component_name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("low stock components: %w", err)
	}
	defer rows.Close()

	var list []*repository.LowStockRow
	for rows.Next() {
		var l repository.LowStockRow
		if err := rows.Scan(&l.ComponentID, &l.ComponentName, &l.PartNumber, &l.CurrentStock, &l.MonthlyRequiredQuantity, &l.Threshold); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
