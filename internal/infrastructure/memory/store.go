// Package memory implementa los puertos de repository en memoria. Respeta las mismas
// reglas que PostgreSQL (unicidad, filtros por tenant, transacciones todo-o-nada) y se
// usa en tests y con STORE_DRIVER=memory.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/jhoicas/bizos-api/internal/domain/entity"
	"github.com/jhoicas/bizos-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	companies       map[string]entity.Company
	users           map[string]entity.User
	clients         map[string]entity.Client
	projectUpdates  map[string]entity.ProjectUpdate
	services        map[string]entity.Service
	availability    map[string]entity.Availability
	bookings        map[string]entity.Booking
	categories      map[string]entity.Category
	products        map[string]entity.Product
	movements       map[string]entity.StockMovement
	invoices        map[string]entity.Invoice
	receipts        map[string]entity.Receipt
	fieldReports    map[string]entity.FieldReport
	surveys         map[string]entity.Survey
	surveyResponses map[string]entity.SurveyResponse
	platforms       map[string]entity.SocialPlatform
	posts           map[string]entity.SocialPost
}

func newState() *state {
	return &state{
		companies:       map[string]entity.Company{},
		users:           map[string]entity.User{},
		clients:         map[string]entity.Client{},
		projectUpdates:  map[string]entity.ProjectUpdate{},
		services:        map[string]entity.Service{},
		availability:    map[string]entity.Availability{},
		bookings:        map[string]entity.Booking{},
		categories:      map[string]entity.Category{},
		products:        map[string]entity.Product{},
		movements:       map[string]entity.StockMovement{},
		invoices:        map[string]entity.Invoice{},
		receipts:        map[string]entity.Receipt{},
		fieldReports:    map[string]entity.FieldReport{},
		surveys:         map[string]entity.Survey{},
		surveyResponses: map[string]entity.SurveyResponse{},
		platforms:       map[string]entity.SocialPlatform{},
		posts:           map[string]entity.SocialPost{},
	}
}

// clone copia superficial de cada mapa. Los valores se reemplazan completos al escribir,
// nunca se mutan en sitio, así que basta para restaurar en rollback.
func (s *state) clone() *state {
	return &state{
		companies:       maps.Clone(s.companies),
		users:           maps.Clone(s.users),
		clients:         maps.Clone(s.clients),
		projectUpdates:  maps.Clone(s.projectUpdates),
		services:        maps.Clone(s.services),
		availability:    maps.Clone(s.availability),
		bookings:        maps.Clone(s.bookings),
		categories:      maps.Clone(s.categories),
		products:        maps.Clone(s.products),
		movements:       maps.Clone(s.movements),
		invoices:        maps.Clone(s.invoices),
		receipts:        maps.Clone(s.receipts),
		fieldReports:    maps.Clone(s.fieldReports),
		surveys:         maps.Clone(s.surveys),
		surveyResponses: maps.Clone(s.surveyResponses),
		platforms:       maps.Clone(s.platforms),
		posts:           maps.Clone(s.posts),
	}
}

// Store base de datos en memoria. Un único mutex serializa las transacciones,
// lo que equivale al bloqueo de fila de PostgreSQL para los casos de uso.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Repositories adaptadores fuera de transacción (cada llamada toma el lock).
func (s *Store) Repositories() repository.Repositories {
	return s.repos(false)
}

// Run ejecuta fn en exclusión mutua; si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(s.repos(true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) repos(inTx bool) repository.Repositories {
	b := base{s: s, inTx: inTx}
	return repository.Repositories{
		Companies:       &companyRepo{b},
		Users:           &userRepo{b},
		Clients:         &clientRepo{b},
		ProjectUpdates:  &projectUpdateRepo{b},
		Services:        &serviceRepo{b},
		Availability:    &availabilityRepo{b},
		Bookings:        &bookingRepo{b},
		Categories:      &categoryRepo{b},
		Products:        &productRepo{b},
		StockMovements:  &movementRepo{b},
		Invoices:        &invoiceRepo{b},
		Receipts:        &receiptRepo{b},
		FieldReports:    &fieldReportRepo{b},
		Surveys:         &surveyRepo{b},
		SurveyResponses: &surveyResponseRepo{b},
		Platforms:       &platformRepo{b},
		Posts:           &postRepo{b},
	}
}

// base comparte el store entre adaptadores. Dentro de Run el lock ya está tomado.
type base struct {
	s    *Store
	inTx bool
}

func (b base) lock() func() {
	if b.inTx {
		return func() {}
	}
	b.s.mu.Lock()
	return b.s.mu.Unlock
}

func (b base) db() *state { return b.s.data }

// collect filtra y ordena valores del mapa devolviendo copias.
func collect[T any](m map[string]T, keep func(*T) bool, less func(a, b *T) bool) []*T {
	out := make([]*T, 0)
	for _, v := range m {
		if keep(&v) {
			out = append(out, &v)
		}
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// paginate aplica limit/offset con los mismos defaults que PostgreSQL.
func paginate[T any](list []*T, limit, offset int) []*T {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []*T{}
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
