// Package events publica as alterações gravadas no livro-caixa para outros sistemas.
package events

import (
	"context"

	"github.com/vfg2006/chai-ledger/internal/domain"
)

// Publisher envia eventos do domínio. Falhas de publicação nunca desfazem uma gravação.
type Publisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher é usado quando AMQP_URL não está configurado
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, domain.Event) error { return nil }

func (noopPublisher) Close() error { return nil }
