package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/database/postgres"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
)

const actionsTable = "automation_actions"

// uniqueViolation é o código do PostgreSQL para violação de índice único
const uniqueViolation = "23505"

// ErrInFlightConflict indica que o índice único parcial de ações não
// terminais rejeitou a inserção: já existe ação pending/dispatched para o
// mesmo par (conta, alvo).
var ErrInFlightConflict = errors.New("já existe ação em andamento para o alvo")

type ActionRepository interface {
	Create(action *domain.AutomationAction) error
	GetByID(id string) (*domain.AutomationAction, error)
	ListByAccount(accountID string) ([]*domain.AutomationAction, error)
	MarkDispatched(id string, at time.Time) (bool, error)
	MarkCompleted(id string, status domain.ActionStatus, at time.Time) (bool, error)
	FailStale(olderThan time.Duration) (int64, error)
}

type actionRepository struct {
	conn *postgres.Connection
}

func NewActionRepository(conn *postgres.Connection) ActionRepository {
	return &actionRepository{
		conn: conn,
	}
}

// Create insere a ação como pending. A exclusividade por (conta, alvo) é
// garantida pelo índice único parcial sobre status não terminal, então a
// checagem e a inserção são um único passo atômico no banco.
func (r *actionRepository) Create(action *domain.AutomationAction) error {
	query, args, err := squirrel.
		Insert(actionsTable).
		Columns("id", "account_id", "target_kind", "target_id", "action_type",
			"computed_value", "triggered_by", "reason", "status", "created_at").
		Values(action.ID, action.AccountID, action.Target.Kind, action.Target.ID,
			action.ActionType, action.ComputedValue, action.TriggeredBy,
			action.Reason, action.Status, action.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return ErrInFlightConflict
		}
		return fmt.Errorf("erro ao inserir ação de automação: %w", err)
	}

	return nil
}

func (r *actionRepository) GetByID(id string) (*domain.AutomationAction, error) {
	query, args, err := selectActions().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	action, err := r.scanAction(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear ação: %w", err)
	}

	return action, nil
}

func (r *actionRepository) ListByAccount(accountID string) ([]*domain.AutomationAction, error) {
	query, args, err := selectActions().
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	actions := make([]*domain.AutomationAction, 0)
	for rows.Next() {
		action, err := r.scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear ações: %w", err)
		}
		actions = append(actions, action)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return actions, nil
}

func (r *actionRepository) MarkDispatched(id string, at time.Time) (bool, error) {
	query, args, err := squirrel.
		Update(actionsTable).
		Set("status", domain.ActionStatusDispatched).
		Set("dispatched_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.ActionStatusPending}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao marcar ação como despachada: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *actionRepository) MarkCompleted(id string, status domain.ActionStatus, at time.Time) (bool, error) {
	if !status.Terminal() {
		return false, fmt.Errorf("status %q não é terminal", status)
	}

	query, args, err := squirrel.
		Update(actionsTable).
		Set("status", status).
		Set("completed_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.ActionStatusDispatched}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao concluir ação: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// FailStale marca como failed as ações que estouraram o prazo sem desfecho:
// despachadas sem resposta do executor e pendentes cujo despacho nunca foi
// registrado (falha entre o insert e o MarkDispatched). Nos dois casos o
// alvo volta a aceitar novas propostas.
func (r *actionRepository) FailStale(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	query, args, err := squirrel.
		Update(actionsTable).
		Set("status", domain.ActionStatusFailed).
		Set("completed_at", squirrel.Expr("NOW()")).
		Set("reason", "prazo da ação excedido sem desfecho do executor").
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"status": domain.ActionStatusDispatched},
				squirrel.LtOrEq{"dispatched_at": cutoff},
			},
			squirrel.And{
				squirrel.Eq{"status": domain.ActionStatusPending},
				squirrel.LtOrEq{"created_at": cutoff},
			},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao expirar ações despachadas: %w", err)
	}

	return result.RowsAffected()
}

func selectActions() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "account_id", "target_kind", "target_id", "action_type",
			"computed_value", "triggered_by", "reason", "status", "created_at",
			"dispatched_at", "completed_at").
		From(actionsTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *actionRepository) scanAction(row rowScanner) (*domain.AutomationAction, error) {
	var action domain.AutomationAction
	var reason sql.NullString
	var dispatchedAt, completedAt sql.NullTime

	err := row.Scan(
		&action.ID,
		&action.AccountID,
		&action.Target.Kind,
		&action.Target.ID,
		&action.ActionType,
		&action.ComputedValue,
		&action.TriggeredBy,
		&reason,
		&action.Status,
		&action.CreatedAt,
		&dispatchedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	action.Reason = reason.String
	if dispatchedAt.Valid {
		action.DispatchedAt = &dispatchedAt.Time
	}
	if completedAt.Valid {
		action.CompletedAt = &completedAt.Time
	}

	return &action, nil
}
