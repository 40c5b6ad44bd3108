package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/lgscomercialadm-blip/mercadolivre-automation-sub000/pkg/log"
)

// RedisBus implementa Bus sobre o pub/sub do Redis
type RedisBus struct {
	client *redis.Client
}

func NewRedisBus(ctx context.Context, addr, password string, db int) (*RedisBus, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("erro ao conectar ao Redis: %w", err)
	}

	return &RedisBus{client: client}, nil
}

func (b *RedisBus) Publish(ctx context.Context, topic string, msg *Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("erro ao serializar mensagem: %w", err)
	}

	if err := b.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("erro ao publicar no tópico %s: %w", topic, err)
	}

	return nil
}

// Subscribe consome o tópico em uma goroutine própria até o cancelamento do
// contexto. Mensagens malformadas são logadas e descartadas.
func (b *RedisBus) Subscribe(ctx context.Context, topic string, handler Handler) error {
	sub := b.client.Subscribe(ctx, topic)

	// Confirma a assinatura antes de devolver o controle
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("erro ao assinar o tópico %s: %w", topic, err)
	}

	go func() {
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-ch:
				if !ok {
					return
				}

				var msg Message
				if err := json.Unmarshal([]byte(raw.Payload), &msg); err != nil {
					log.L.WithFields(log.Fields{
						"topic": topic,
						"error": err.Error(),
					}).Warn("Mensagem malformada descartada do barramento")
					continue
				}

				handler(ctx, &msg)
			}
		}
	}()

	return nil
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}
