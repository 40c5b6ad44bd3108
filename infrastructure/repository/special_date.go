package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/database/postgres"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
)

const specialDatesTable = "special_dates"

type SpecialDateRepository interface {
	Create(overlay *domain.SpecialDateOverlay) error
	List() ([]*domain.SpecialDateOverlay, error)
	ListInRange(at time.Time) ([]*domain.SpecialDateOverlay, error)
	Delete(id string) (bool, error)
}

type specialDateRepository struct {
	conn *postgres.Connection
}

func NewSpecialDateRepository(conn *postgres.Connection) SpecialDateRepository {
	return &specialDateRepository{
		conn: conn,
	}
}

func (r *specialDateRepository) Create(overlay *domain.SpecialDateOverlay) error {
	peakHours := make([]int64, 0, len(overlay.PeakHours))
	for _, hour := range overlay.PeakHours {
		peakHours = append(peakHours, int64(hour))
	}

	query, args, err := squirrel.
		Insert(specialDatesTable).
		Columns("id", "name", "start_date", "end_date", "budget_multiplier",
			"acos_adjustment_pct", "priority_categories", "peak_hours").
		Values(overlay.ID, overlay.Name, overlay.StartDate, overlay.EndDate,
			overlay.BudgetMultiplier, overlay.ACOSAdjustmentPct,
			pq.Array(overlay.PriorityCategories), pq.Array(peakHours)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir data especial: %w", err)
	}

	return nil
}

func (r *specialDateRepository) List() ([]*domain.SpecialDateOverlay, error) {
	query, args, err := selectSpecialDates().
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryOverlays(query, args...)
}

// ListInRange busca overlays cuja janela [start_date, end_date] contém o
// instante. A ordenação por ID já devolve a ordem de aplicação.
func (r *specialDateRepository) ListInRange(at time.Time) ([]*domain.SpecialDateOverlay, error) {
	query, args, err := selectSpecialDates().
		Where(squirrel.LtOrEq{"start_date": at}).
		Where(squirrel.GtOrEq{"end_date": at}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryOverlays(query, args...)
}

func (r *specialDateRepository) Delete(id string) (bool, error) {
	query, args, err := squirrel.
		Delete(specialDatesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao remover data especial: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func selectSpecialDates() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "name", "start_date", "end_date", "budget_multiplier",
			"acos_adjustment_pct", "priority_categories", "peak_hours", "created_at").
		From(specialDatesTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *specialDateRepository) queryOverlays(query string, args ...interface{}) ([]*domain.SpecialDateOverlay, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	overlays := make([]*domain.SpecialDateOverlay, 0)
	for rows.Next() {
		overlay, err := r.scanOverlay(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear datas especiais: %w", err)
		}
		overlays = append(overlays, overlay)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return overlays, nil
}

func (r *specialDateRepository) scanOverlay(row rowScanner) (*domain.SpecialDateOverlay, error) {
	var overlay domain.SpecialDateOverlay
	var categories pq.StringArray
	var peakHours pq.Int64Array

	err := row.Scan(
		&overlay.ID,
		&overlay.Name,
		&overlay.StartDate,
		&overlay.EndDate,
		&overlay.BudgetMultiplier,
		&overlay.ACOSAdjustmentPct,
		&categories,
		&peakHours,
		&overlay.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	overlay.PriorityCategories = categories
	overlay.PeakHours = make([]int, 0, len(peakHours))
	for _, hour := range peakHours {
		overlay.PeakHours = append(overlay.PeakHours, int(hour))
	}

	return &overlay, nil
}
