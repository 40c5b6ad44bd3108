package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/database/postgres"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
)

const alertEventsTable = "alert_events"

type AlertEventRepository interface {
	Create(event *domain.AlertEvent) error
	GetByID(id string) (*domain.AlertEvent, error)
	ListByAccount(accountID string, onlyUnresolved bool) ([]*domain.AlertEvent, error)
	Acknowledge(id string, at time.Time) (bool, error)
	Resolve(id string, at time.Time) (bool, error)
	DeleteResolvedOlderThan(days int) (int64, error)
}

type alertEventRepository struct {
	conn *postgres.Connection
}

func NewAlertEventRepository(conn *postgres.Connection) AlertEventRepository {
	return &alertEventRepository{
		conn: conn,
	}
}

func (r *alertEventRepository) Create(event *domain.AlertEvent) error {
	query, args, err := squirrel.
		Insert(alertEventsTable).
		Columns("id", "rule_id", "account_id", "metric", "actual_value",
			"threshold", "severity", "message", "state", "created_at").
		Values(event.ID, event.RuleID, event.AccountID, event.Metric,
			event.ActualValue, event.Threshold, event.Severity, event.Message,
			event.State, event.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao inserir evento de alerta: %w", err)
	}

	return nil
}

func (r *alertEventRepository) GetByID(id string) (*domain.AlertEvent, error) {
	query, args, err := selectEvents().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	event, err := r.scanEvent(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear evento de alerta: %w", err)
	}

	return event, nil
}

func (r *alertEventRepository) ListByAccount(accountID string, onlyUnresolved bool) ([]*domain.AlertEvent, error) {
	builder := selectEvents().
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at DESC")

	if onlyUnresolved {
		builder = builder.Where(squirrel.NotEq{"state": domain.AlertStateResolved})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.AlertEvent, 0)
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear eventos de alerta: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return events, nil
}

// Acknowledge só avança a partir de triggered; a condição no WHERE é o que
// garante a máquina de estados sob concorrência.
func (r *alertEventRepository) Acknowledge(id string, at time.Time) (bool, error) {
	return r.transition(id, squirrel.Eq{"state": domain.AlertStateTriggered},
		domain.AlertStateAcknowledged, "acknowledged_at", at)
}

// Resolve avança a partir de triggered ou acknowledged; resolved é terminal.
func (r *alertEventRepository) Resolve(id string, at time.Time) (bool, error) {
	return r.transition(id,
		squirrel.Eq{"state": []domain.AlertState{domain.AlertStateTriggered, domain.AlertStateAcknowledged}},
		domain.AlertStateResolved, "resolved_at", at)
}

func (r *alertEventRepository) transition(id string, guard squirrel.Eq, to domain.AlertState, tsColumn string, at time.Time) (bool, error) {
	query, args, err := squirrel.
		Update(alertEventsTable).
		Set("state", to).
		Set(tsColumn, at).
		Where(squirrel.Eq{"id": id}).
		Where(guard).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao transicionar evento de alerta: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *alertEventRepository) DeleteResolvedOlderThan(days int) (int64, error) {
	query, args, err := squirrel.
		Delete(alertEventsTable).
		Where(squirrel.Eq{"state": domain.AlertStateResolved}).
		Where(squirrel.Expr("resolved_at < NOW() - make_interval(days => ?)", days)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover eventos resolvidos antigos: %w", err)
	}

	return result.RowsAffected()
}

func selectEvents() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "rule_id", "account_id", "metric", "actual_value",
			"threshold", "severity", "message", "state", "created_at",
			"acknowledged_at", "resolved_at").
		From(alertEventsTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *alertEventRepository) scanEvent(row rowScanner) (*domain.AlertEvent, error) {
	var event domain.AlertEvent
	var acknowledgedAt, resolvedAt sql.NullTime

	err := row.Scan(
		&event.ID,
		&event.RuleID,
		&event.AccountID,
		&event.Metric,
		&event.ActualValue,
		&event.Threshold,
		&event.Severity,
		&event.Message,
		&event.State,
		&event.CreatedAt,
		&acknowledgedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	if acknowledgedAt.Valid {
		event.AcknowledgedAt = &acknowledgedAt.Time
	}
	if resolvedAt.Valid {
		event.ResolvedAt = &resolvedAt.Time
	}

	return &event, nil
}
