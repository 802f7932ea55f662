// Package memory implementa los repositorios sobre un almacén en proceso con transacciones.
// Cada transacción trabaja sobre una copia del estado que se publica solo si fn termina sin error;
// el mutex del Store serializa las transacciones entre sí.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/repository"
)

type state struct {
	products  map[string]entity.Product
	movements []entity.Movement
	audit     []entity.AuditEntry
	users     map[string]entity.User // por username
}

func newState() *state {
	return &state{
		products: make(map[string]entity.Product),
		users:    make(map[string]entity.User),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:  make(map[string]entity.Product, len(s.products)),
		movements: append([]entity.Movement(nil), s.movements...),
		audit:     append([]entity.AuditEntry(nil), s.audit...),
		users:     make(map[string]entity.User, len(s.users)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// sortedProducts catálogo ordenado por nombre (desempate por SKU).
func (s *state) sortedProducts() []entity.Product {
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

// Store almacén en memoria. El valor cero no es usable; construir con NewStore.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// view ejecuta fn sobre el estado de la tx o, fuera de tx, sobre el estado publicado con el mutex tomado.
func (s *Store) view(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Run implementa TxRunner: Commit publica la copia, cualquier error la descarta (Rollback).
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	repos := repository.TxRepos{
		Products:  &ProductRepository{store: s, tx: tx},
		Movements: &MovementRepository{store: s, tx: tx},
		Audit:     &AuditRepository{store: s, tx: tx},
	}
	if err := fn(repos); err != nil {
		return err
	}
	s.st = tx
	return nil
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepository { return &ProductRepository{store: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepository { return &MovementRepository{store: s} }

// Audit repositorio de bitácora fuera de transacción.
func (s *Store) Audit() *AuditRepository { return &AuditRepository{store: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepository { return &UserRepository{store: s} }
