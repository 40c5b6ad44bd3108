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

const (
	strategiesTable        = "strategies"
	accountStrategiesTable = "account_strategies"
)

type StrategyRepository interface {
	List() ([]*domain.Strategy, error)
	GetByID(id string) (*domain.Strategy, error)
	GetActiveByAccount(accountID string) (*domain.AccountStrategy, error)
	ApplyToAccount(accountID, strategyID string, at time.Time) (*domain.AccountStrategy, error)
}

type strategyRepository struct {
	conn *postgres.Connection
}

func NewStrategyRepository(conn *postgres.Connection) StrategyRepository {
	return &strategyRepository{
		conn: conn,
	}
}

func (r *strategyRepository) List() ([]*domain.Strategy, error) {
	query, args, err := selectStrategies().
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	strategies := make([]*domain.Strategy, 0)
	for rows.Next() {
		strategy, err := r.scanStrategy(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear estratégias: %w", err)
		}
		strategies = append(strategies, strategy)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return strategies, nil
}

func (r *strategyRepository) GetByID(id string) (*domain.Strategy, error) {
	query, args, err := selectStrategies().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	strategy, err := r.scanStrategy(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear estratégia: %w", err)
	}

	return strategy, nil
}

func (r *strategyRepository) GetActiveByAccount(accountID string) (*domain.AccountStrategy, error) {
	query, args, err := squirrel.
		Select("account_id", "strategy_id", "version", "applied_at").
		From(accountStrategiesTable).
		Where(squirrel.Eq{"account_id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var active domain.AccountStrategy
	err = r.conn.QueryRow(query, args...).Scan(
		&active.AccountID,
		&active.StrategyID,
		&active.Version,
		&active.AppliedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear estratégia ativa: %w", err)
	}

	return &active, nil
}

// ApplyToAccount faz o swap atômico da estratégia ativa da conta. O upsert
// com versão incrementada garante que leitores nunca veem estado
// intermediário e que aplicações concorrentes não se perdem.
func (r *strategyRepository) ApplyToAccount(accountID, strategyID string, at time.Time) (*domain.AccountStrategy, error) {
	query, args, err := squirrel.
		Insert(accountStrategiesTable).
		Columns("account_id", "strategy_id", "version", "applied_at").
		Values(accountID, strategyID, 1, at).
		Suffix(`
			ON CONFLICT (account_id) DO UPDATE SET
				strategy_id = EXCLUDED.strategy_id,
				version = account_strategies.version + 1,
				applied_at = EXCLUDED.applied_at
			RETURNING account_id, strategy_id, version, applied_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var active domain.AccountStrategy
	err = r.conn.QueryRow(query, args...).Scan(
		&active.AccountID,
		&active.StrategyID,
		&active.Version,
		&active.AppliedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao aplicar estratégia à conta: %w", err)
	}

	return &active, nil
}

func selectStrategies() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "name", "acos_min", "acos_max", "budget_multiplier",
			"bid_adjustment_pct", "margin_threshold_pct", "advantages", "created_at").
		From(strategiesTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *strategyRepository) scanStrategy(row rowScanner) (*domain.Strategy, error) {
	var strategy domain.Strategy
	var advantages pq.StringArray

	err := row.Scan(
		&strategy.ID,
		&strategy.Name,
		&strategy.ACOSMin,
		&strategy.ACOSMax,
		&strategy.BudgetMultiplier,
		&strategy.BidAdjustmentPct,
		&strategy.MarginThresholdPct,
		&advantages,
		&strategy.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	strategy.Advantages = advantages

	return &strategy, nil
}
