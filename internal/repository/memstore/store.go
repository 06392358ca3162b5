// Package memstore implements the domain repositories on top of
// process-local keyed maps. Each table owns its own RWMutex and entities
// are value-copied on the way in and out, so callers never share
// references with the store.
package memstore

import "github.com/adventuresync/server/internal/domain"

// Store owns one table per entity type.
type Store struct {
	users      *UserRepository
	events     *EventRepository
	userEvents *UserEventRepository
	files      *FileRepository
	payments   *PaymentRepository
	budgets    *BudgetRepository
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:      &UserRepository{byID: make(map[string]domain.User)},
		events:     &EventRepository{byID: make(map[string]domain.Event)},
		userEvents: &UserEventRepository{byID: make(map[string]domain.UserEvent)},
		files:      &FileRepository{byID: make(map[string]domain.FileRecord)},
		payments:   &PaymentRepository{byID: make(map[string]domain.Payment)},
		budgets:    &BudgetRepository{byID: make(map[string]domain.Budget)},
	}
}

func (s *Store) Users() domain.UserRepository           { return s.users }
func (s *Store) Events() domain.EventRepository         { return s.events }
func (s *Store) UserEvents() domain.UserEventRepository { return s.userEvents }
func (s *Store) Files() domain.FileRepository           { return s.files }
func (s *Store) Payments() domain.PaymentRepository     { return s.payments }
func (s *Store) Budgets() domain.BudgetRepository       { return s.budgets }
