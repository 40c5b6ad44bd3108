package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/infrastructure/database/postgres"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/internal/domain"
)

const notificationDispatchesTable = "notification_dispatches"

type NotificationRepository interface {
	SaveResult(result *domain.DispatchResult) error
	ListByEvent(eventID string) ([]*domain.DispatchResult, error)
}

type notificationRepository struct {
	conn *postgres.Connection
}

func NewNotificationRepository(conn *postgres.Connection) NotificationRepository {
	return &notificationRepository{
		conn: conn,
	}
}

// SaveResult grava (ou atualiza) o resultado de entrega de um par
// (evento, canal). A chave primária composta faz do upsert a forma natural
// de registrar tentativas sucessivas.
func (r *notificationRepository) SaveResult(result *domain.DispatchResult) error {
	query, args, err := squirrel.
		Insert(notificationDispatchesTable).
		Columns("event_id", "channel", "status", "attempts", "last_error").
		Values(result.EventID, result.Channel, result.Status, result.Attempts, result.LastError).
		Suffix(`
			ON CONFLICT (event_id, channel) DO UPDATE SET
				status = EXCLUDED.status,
				attempts = EXCLUDED.attempts,
				last_error = EXCLUDED.last_error,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao gravar resultado de notificação: %w", err)
	}

	return nil
}

func (r *notificationRepository) ListByEvent(eventID string) ([]*domain.DispatchResult, error) {
	query, args, err := squirrel.
		Select("event_id", "channel", "status", "attempts", "last_error", "updated_at").
		From(notificationDispatchesTable).
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("channel ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	results := make([]*domain.DispatchResult, 0)
	for rows.Next() {
		var result domain.DispatchResult
		err := rows.Scan(
			&result.EventID,
			&result.Channel,
			&result.Status,
			&result.Attempts,
			&result.LastError,
			&result.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear resultados de notificação: %w", err)
		}
		results = append(results, &result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return results, nil
}
