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

const alertRulesTable = "alert_rules"

type AlertRuleRepository interface {
	Create(rule *domain.AlertRule) error
	GetByID(id string) (*domain.AlertRule, error)
	ListByAccount(accountID string) ([]*domain.AlertRule, error)
	ListEnabledByAccountAndMetric(accountID string, metric domain.MetricName) ([]*domain.AlertRule, error)
	Update(rule *domain.AlertRule) error
	SetEnabled(id string, enabled bool) (bool, error)
	Delete(id string) (bool, error)
	TryAcquireCooldown(ruleID string, now time.Time, cooldown time.Duration) (bool, error)
}

type alertRuleRepository struct {
	conn *postgres.Connection
}

func NewAlertRuleRepository(conn *postgres.Connection) AlertRuleRepository {
	return &alertRuleRepository{
		conn: conn,
	}
}

func (r *alertRuleRepository) Create(rule *domain.AlertRule) error {
	query, args, err := squirrel.
		Insert(alertRulesTable).
		Columns("id", "account_id", "name", "metric", "condition", "threshold",
			"severity", "channels", "cooldown_minutes", "enabled").
		Values(rule.ID, rule.AccountID, rule.Name, rule.Metric, rule.Condition,
			rule.Threshold, rule.Severity, pq.Array(channelsToStrings(rule.Channels)),
			rule.CooldownMinutes, rule.Enabled).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao inserir regra de alerta: %w", err)
	}

	return nil
}

func (r *alertRuleRepository) GetByID(id string) (*domain.AlertRule, error) {
	query, args, err := selectRules().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rule, err := r.scanRule(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear regra de alerta: %w", err)
	}

	return rule, nil
}

func (r *alertRuleRepository) ListByAccount(accountID string) ([]*domain.AlertRule, error) {
	query, args, err := selectRules().
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRules(query, args...)
}

func (r *alertRuleRepository) ListEnabledByAccountAndMetric(accountID string, metric domain.MetricName) ([]*domain.AlertRule, error) {
	query, args, err := selectRules().
		Where(squirrel.Eq{"account_id": accountID, "metric": metric, "enabled": true}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryRules(query, args...)
}

func (r *alertRuleRepository) Update(rule *domain.AlertRule) error {
	query, args, err := squirrel.
		Update(alertRulesTable).
		Set("name", rule.Name).
		Set("metric", rule.Metric).
		Set("condition", rule.Condition).
		Set("threshold", rule.Threshold).
		Set("severity", rule.Severity).
		Set("channels", pq.Array(channelsToStrings(rule.Channels))).
		Set("cooldown_minutes", rule.CooldownMinutes).
		Set("enabled", rule.Enabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rule.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar regra de alerta: %w", err)
	}

	return nil
}

func (r *alertRuleRepository) SetEnabled(id string, enabled bool) (bool, error) {
	query, args, err := squirrel.
		Update(alertRulesTable).
		Set("enabled", enabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao alternar regra de alerta: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *alertRuleRepository) Delete(id string) (bool, error) {
	query, args, err := squirrel.
		Delete(alertRulesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao remover regra de alerta: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// TryAcquireCooldown é o check-and-set atômico do cooldown: só a primeira
// amostra concorrente consegue avançar last_triggered_at; as demais veem
// zero linhas afetadas e não disparam.
func (r *alertRuleRepository) TryAcquireCooldown(ruleID string, now time.Time, cooldown time.Duration) (bool, error) {
	cutoff := now.Add(-cooldown)

	query, args, err := squirrel.
		Update(alertRulesTable).
		Set("last_triggered_at", now).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ruleID}).
		Where(squirrel.Or{
			squirrel.Eq{"last_triggered_at": nil},
			squirrel.LtOrEq{"last_triggered_at": cutoff},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return false, fmt.Errorf("erro ao adquirir cooldown da regra: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func selectRules() squirrel.SelectBuilder {
	return squirrel.
		Select("id", "account_id", "name", "metric", "condition", "threshold",
			"severity", "channels", "cooldown_minutes", "enabled",
			"last_triggered_at", "created_at", "updated_at").
		From(alertRulesTable).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *alertRuleRepository) queryRules(query string, args ...interface{}) ([]*domain.AlertRule, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	rules := make([]*domain.AlertRule, 0)
	for rows.Next() {
		rule, err := r.scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear regras de alerta: %w", err)
		}
		rules = append(rules, rule)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return rules, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *alertRuleRepository) scanRule(row rowScanner) (*domain.AlertRule, error) {
	var rule domain.AlertRule
	var channels pq.StringArray
	var lastTriggeredAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.AccountID,
		&rule.Name,
		&rule.Metric,
		&rule.Condition,
		&rule.Threshold,
		&rule.Severity,
		&channels,
		&rule.CooldownMinutes,
		&rule.Enabled,
		&lastTriggeredAt,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Channels = stringsToChannels(channels)
	if lastTriggeredAt.Valid {
		rule.LastTriggeredAt = &lastTriggeredAt.Time
	}

	return &rule, nil
}

func channelsToStrings(channels []domain.ChannelType) []string {
	out := make([]string, 0, len(channels))
	for _, channel := range channels {
		out = append(out, string(channel))
	}
	return out
}

func stringsToChannels(values []string) []domain.ChannelType {
	out := make([]domain.ChannelType, 0, len(values))
	for _, value := range values {
		out = append(out, domain.ChannelType(value))
	}
	return out
}
