package recording

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/vfg2006/chai-ledger/infrastructure/events"
	"github.com/vfg2006/chai-ledger/infrastructure/repository"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/pkg/log"
	"github.com/vfg2006/chai-ledger/pkg/utils"
)

// Recorder é o dono dos escritórios e pedidos em memória
type Recorder interface {
	Load(ctx context.Context) error
	AddOffice(ctx context.Context, office domain.Office) (domain.Office, error)
	RemoveOffice(ctx context.Context, name string) (int, error)
	AddOrder(ctx context.Context, input domain.OrderInput) (domain.Order, error)
	NextInvoiceNumber(ctx context.Context) (int, error)

	Offices() []domain.Office
	Orders() []domain.Order
	FindOffice(name string) (domain.Office, bool)
	Snapshot() domain.Ledger
}

type Service struct {
	mu        sync.RWMutex
	ledger    domain.Ledger
	repo      repository.LedgerRepository
	publisher events.Publisher

	newID func() (string, error)
	today func() domain.Date
}

func NewService(repo repository.LedgerRepository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}

	return &Service{
		ledger:    domain.Ledger{Offices: []domain.Office{}, Orders: []domain.Order{}},
		repo:      repo,
		publisher: publisher,
		newID:     utils.GenerateID,
		today:     domain.Today,
	}
}

// Load lê todo o livro-caixa uma única vez, na inicialização
func (s *Service) Load(ctx context.Context) error {
	ledger, err := s.repo.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "erro ao carregar os registros")
	}

	if ledger.Offices == nil {
		ledger.Offices = []domain.Office{}
	}
	if ledger.Orders == nil {
		ledger.Orders = []domain.Order{}
	}

	s.mu.Lock()
	s.ledger = ledger
	s.mu.Unlock()

	log.ForContext(ctx).WithFields(log.Fields{
		"offices": len(ledger.Offices),
		"orders":  len(ledger.Orders),
	}).Info("recording: registros carregados")

	return nil
}

func (s *Service) AddOffice(ctx context.Context, office domain.Office) (domain.Office, error) {
	office = office.Normalize()
	if err := office.Validate(); err != nil {
		return domain.Office{}, err
	}

	s.mu.Lock()
	err := s.mutate(ctx, "adicionar escritório", func(l *domain.Ledger) {
		l.Offices = append(l.Offices, office)
	})
	s.mu.Unlock()
	if err != nil {
		return domain.Office{}, err
	}

	s.publish(ctx, domain.NewEvent(domain.EventOfficeAdded, office))
	return office, nil
}

// RemoveOffice apaga todos os escritórios com esse nome. Os pedidos continuam
// apontando para o nome removido.
func (s *Service) RemoveOffice(ctx context.Context, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, domain.NewValidationError("name", "nome do escritório é obrigatório")
	}

	s.mu.Lock()
	removed := 0
	for _, office := range s.ledger.Offices {
		if office.Name == name {
			removed++
		}
	}

	var err error
	if removed > 0 {
		err = s.mutate(ctx, "remover escritório", func(l *domain.Ledger) {
			kept := make([]domain.Office, 0, len(l.Offices)-removed)
			for _, office := range l.Offices {
				if office.Name != name {
					kept = append(kept, office)
				}
			}
			l.Offices = kept
		})
	}
	s.mu.Unlock()

	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.publish(ctx, domain.NewEvent(domain.EventOfficeRemoved, map[string]any{
			"name":    name,
			"removed": removed,
		}))
	}
	return removed, nil
}

// AddOrder valida, calcula o total e grava o pedido. Data zero vira a data de hoje.
func (s *Service) AddOrder(ctx context.Context, input domain.OrderInput) (domain.Order, error) {
	if err := input.Validate(); err != nil {
		return domain.Order{}, err
	}

	if input.Date.IsZero() {
		input.Date = s.today()
	}

	id, err := s.newID()
	if err != nil {
		return domain.Order{}, errors.Wrap(err, "erro ao gerar o identificador do pedido")
	}

	order := domain.NewOrder(id, input)

	s.mu.Lock()
	err = s.mutate(ctx, "registrar pedido", func(l *domain.Ledger) {
		l.Orders = append(l.Orders, order)
	})
	s.mu.Unlock()
	if err != nil {
		return domain.Order{}, err
	}

	s.publish(ctx, domain.NewEvent(domain.EventOrderRecorded, order))
	return order, nil
}

// NextInvoiceNumber reserva e grava o próximo número de fatura
func (s *Service) NextInvoiceNumber(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.ledger.InvoiceSequence + 1
	err := s.mutate(ctx, "reservar número de fatura", func(l *domain.Ledger) {
		l.InvoiceSequence = next
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (s *Service) Offices() []domain.Office {
	s.mu.RLock()
	defer s.mu.RUnlock()

	offices := make([]domain.Office, len(s.ledger.Offices))
	copy(offices, s.ledger.Offices)
	return offices
}

func (s *Service) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, len(s.ledger.Orders))
	copy(orders, s.ledger.Orders)
	return orders
}

// FindOffice devolve o primeiro escritório com esse nome
func (s *Service) FindOffice(name string) (domain.Office, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, office := range s.ledger.Offices {
		if office.Name == name {
			return office, true
		}
	}
	return domain.Office{}, false
}

func (s *Service) Snapshot() domain.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ledger.Clone()
}

// mutate aplica a alteração em uma cópia e só troca o estado depois que a gravação
// completa deu certo. Deve ser chamado com o lock de escrita.
func (s *Service) mutate(ctx context.Context, op string, apply func(*domain.Ledger)) error {
	next := s.ledger.Clone()
	apply(&next)

	if err := s.repo.Save(ctx, next); err != nil {
		log.ForContext(ctx).WithError(err).Errorf("recording: falha ao %s", op)
		return domain.NewPersistenceError(op, err)
	}

	s.ledger = next
	return nil
}

func (s *Service) publish(ctx context.Context, event domain.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.ForContext(ctx).WithError(err).Warnf("recording: evento %s não publicado", event.Type)
	}
}
