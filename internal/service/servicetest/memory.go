// Package servicetest provides in-memory stores for exercising services
// without a database. They enforce the same unique constraints as the
// postgres schema and report them with the repository error values.
package servicetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/removals-office/internal/model"
	"github.com/nurpe/removals-office/internal/repository"
)

// table is an in-memory stand-in for one postgres table.
type table[T any] struct {
	mu   sync.Mutex
	rows map[uuid.UUID]T
	key  func(*T) *uuid.UUID
}

func newTable[T any](key func(*T) *uuid.UUID) *table[T] {
	return &table[T]{rows: map[uuid.UUID]T{}, key: key}
}

// insert stores v unless conflict reports a clash with an existing row.
func (m *table[T]) insert(v *T, conflict func(existing, candidate *T) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conflict != nil {
		for _, row := range m.rows {
			row := row
			if err := conflict(&row, v); err != nil {
				return err
			}
		}
	}
	id := m.key(v)
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	m.rows[*id] = *v
	return nil
}

func (m *table[T]) get(id uuid.UUID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (m *table[T]) update(v *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := *m.key(v)
	if _, ok := m.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.rows[id] = *v
	return nil
}

func (m *table[T]) delete(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rows, id)
	return nil
}

// All returns a copy of every stored row.
func (m *table[T]) All() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, row)
	}
	return out
}

func (m *table[T]) page(filter model.ListFilter) model.Page[T] {
	filter = filter.Normalize()
	rows := m.All()
	return model.Page[T]{Items: rows, Total: int64(len(rows)), Page: filter.Page, Limit: filter.Limit}
}

type Clients struct {
	*table[model.Client]
}

func NewClients() *Clients {
	return &Clients{newTable(func(c *model.Client) *uuid.UUID { return &c.ID })}
}

func (s *Clients) Create(_ context.Context, client *model.Client) error {
	return s.insert(client, func(existing, candidate *model.Client) error {
		if strings.EqualFold(existing.Name, candidate.Name) {
			return repository.ErrDuplicate
		}
		return nil
	})
}

func (s *Clients) Get(_ context.Context, id uuid.UUID) (*model.Client, error) { return s.get(id) }
func (s *Clients) Update(_ context.Context, c *model.Client) error { return s.update(c) }
func (s *Clients) Delete(_ context.Context, id uuid.UUID) error { return s.delete(id) }

func (s *Clients) List(_ context.Context, filter model.ListFilter) (model.Page[model.Client], error) {
	return s.page(filter), nil
}

func (s *Clients) GetMany(_ context.Context, ids []uuid.UUID) ([]model.Client, error) {
	out := make([]model.Client, 0, len(ids))
	for _, id := range ids {
		if client, err := s.get(id); err == nil {
			out = append(out, *client)
		}
	}
	return out, nil
}

func (s *Clients) Seed(name string) model.Client {
	client := model.Client{Name: name, Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"}
	if err := s.Create(context.Background(), &client); err != nil {
		panic(err)
	}
	return client
}

type Items struct {
	*table[model.Item]
}

func NewItems() *Items {
	return &Items{newTable(func(i *model.Item) *uuid.UUID { return &i.ID })}
}

func (s *Items) Create(_ context.Context, item *model.Item) error {
	return s.insert(item, func(existing, candidate *model.Item) error {
		if strings.EqualFold(existing.Name, candidate.Name) {
			return repository.ErrDuplicate
		}
		return nil
	})
}

func (s *Items) Get(_ context.Context, id uuid.UUID) (*model.Item, error) { return s.get(id) }
func (s *Items) Update(_ context.Context, i *model.Item) error { return s.update(i) }
func (s *Items) Delete(_ context.Context, id uuid.UUID) error { return s.delete(id) }

func (s *Items) List(_ context.Context, filter model.ListFilter) (model.Page[model.Item], error) {
	return s.page(filter), nil
}

type Bookings struct {
	*table[model.Booking]
}

func NewBookings() *Bookings {
	return &Bookings{newTable(func(b *model.Booking) *uuid.UUID { return &b.ID })}
}

func (s *Bookings) Create(_ context.Context, b *model.Booking) error { return s.insert(b, nil) }
func (s *Bookings) Get(_ context.Context, id uuid.UUID) (*model.Booking, error) { return s.get(id) }
func (s *Bookings) Update(_ context.Context, b *model.Booking) error { return s.update(b) }
func (s *Bookings) Delete(_ context.Context, id uuid.UUID) error { return s.delete(id) }

func (s *Bookings) List(_ context.Context, filter model.ListFilter) (model.Page[model.Booking], error) {
	return s.page(filter), nil
}

type Quotes struct {
	*table[model.Quote]
	CountErr error
	// ExtraCount shifts Count to simulate rows the caller cannot see.
	ExtraCount int64
	// ConvertErr fails ConvertToBooking after the booking is written, which
	// is then rolled back.
	ConvertErr error

	bookings  *Bookings
	convertMu sync.Mutex
}

// NewQuotes writes converted bookings into bookings.
func NewQuotes(bookings *Bookings) *Quotes {
	return &Quotes{
		table:    newTable(func(q *model.Quote) *uuid.UUID { return &q.ID }),
		bookings: bookings,
	}
}

func (s *Quotes) Create(_ context.Context, quote *model.Quote) error {
	return s.insert(quote, func(existing, candidate *model.Quote) error {
		if existing.QuoteNumber == candidate.QuoteNumber {
			return repository.ErrNumberTaken
		}
		return nil
	})
}

func (s *Quotes) Get(_ context.Context, id uuid.UUID) (*model.Quote, error) { return s.get(id) }
func (s *Quotes) Update(_ context.Context, q *model.Quote) error { return s.update(q) }
func (s *Quotes) Delete(_ context.Context, id uuid.UUID) error { return s.delete(id) }

func (s *Quotes) Count(context.Context) (int64, error) {
	if s.CountErr != nil {
		return 0, s.CountErr
	}
	return int64(len(s.All())) + s.ExtraCount, nil
}

func (s *Quotes) ListNumbers(_ context.Context, prefix string) ([]string, error) {
	numbers := []string{}
	for _, row := range s.All() {
		if strings.HasPrefix(row.QuoteNumber, prefix) {
			numbers = append(numbers, row.QuoteNumber)
		}
	}
	sort.Strings(numbers)
	return numbers, nil
}

func (s *Quotes) ConvertToBooking(ctx context.Context, quoteID uuid.UUID, booking *model.Booking) error {
	s.convertMu.Lock()
	defer s.convertMu.Unlock()

	quote, err := s.get(quoteID)
	if err != nil {
		return err
	}
	if quote.Status != model.QuoteStatusAccepted {
		return repository.ErrStaleStatus
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return err
	}
	if s.ConvertErr != nil {
		_ = s.bookings.delete(booking.ID)
		return s.ConvertErr
	}
	quote.Status = model.QuoteStatusConverted
	quote.ConvertedBookingID = &booking.ID
	return s.update(quote)
}

func (s *Quotes) List(_ context.Context, filter model.ListFilter) (model.Page[model.Quote], error) {
	return s.page(filter), nil
}

func (s *Quotes) ListAll(context.Context, model.ListFilter) ([]model.Quote, error) {
	rows := s.All()
	sort.Slice(rows, func(i, j int) bool { return rows[i].QuoteNumber < rows[j].QuoteNumber })
	return rows, nil
}

type Invoices struct {
	*table[model.Invoice]

	gateMu    sync.Mutex
	gate      *sync.WaitGroup
	gateCalls int
}

func NewInvoices() *Invoices {
	return &Invoices{table: newTable(func(i *model.Invoice) *uuid.UUID { return &i.ID })}
}

// HoldFirstReads makes the first n ListNumbers callers wait for each other
// after taking their snapshot, so they all observe the same numbers.
func (s *Invoices) HoldFirstReads(n int) {
	s.gate = &sync.WaitGroup{}
	s.gate.Add(n)
	s.gateCalls = n
}

func (s *Invoices) Create(_ context.Context, invoice *model.Invoice) error {
	return s.insert(invoice, func(existing, candidate *model.Invoice) error {
		if existing.InvoiceNumber == candidate.InvoiceNumber {
			return repository.ErrNumberTaken
		}
		return nil
	})
}

func (s *Invoices) Get(_ context.Context, id uuid.UUID) (*model.Invoice, error) { return s.get(id) }
func (s *Invoices) Update(_ context.Context, i *model.Invoice) error { return s.update(i) }
func (s *Invoices) Delete(_ context.Context, id uuid.UUID) error { return s.delete(id) }

func (s *Invoices) ListNumbers(_ context.Context, prefix string) ([]string, error) {
	numbers := []string{}
	for _, row := range s.All() {
		if strings.HasPrefix(row.InvoiceNumber, prefix) {
			numbers = append(numbers, row.InvoiceNumber)
		}
	}
	sort.Strings(numbers)

	s.gateMu.Lock()
	gated := s.gateCalls > 0
	if gated {
		s.gateCalls--
	}
	s.gateMu.Unlock()
	if gated {
		s.gate.Done()
		s.gate.Wait()
	}
	return numbers, nil
}

func (s *Invoices) List(_ context.Context, filter model.ListFilter) (model.Page[model.Invoice], error) {
	return s.page(filter), nil
}

func (s *Invoices) ListAll(context.Context, model.ListFilter) ([]model.Invoice, error) {
	return s.All(), nil
}

func (s *Invoices) Seed(number string) {
	invoice := model.Invoice{InvoiceNumber: number}
	if err := s.Create(context.Background(), &invoice); err != nil {
		panic(err)
	}
}
