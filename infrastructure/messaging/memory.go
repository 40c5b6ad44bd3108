package messaging

import (
	"context"
	"sync"
)

// MemoryBus é a implementação em memória do barramento, usada em testes e
// em execuções de processo único sem Redis disponível.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	closed   bool
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[string][]Handler),
	}
}

// Publish entrega a mensagem de forma síncrona a todos os assinantes do
// tópico. A entrega síncrona torna os testes determinísticos.
func (b *MemoryBus) Publish(ctx context.Context, topic string, msg *Message) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[topic]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, msg)
	}

	return nil
}

func (b *MemoryBus) Subscribe(_ context.Context, topic string, handler Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[topic] = append(b.handlers[topic], handler)
	return nil
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.handlers = make(map[string][]Handler)
	return nil
}
