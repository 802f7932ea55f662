package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

// UserRepository implementa repository.UserRepository en memoria.
type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	return r.store.view(nil, func(st *state) error {
		if _, ok := st.users[u.Username]; ok {
			return domain.ErrDuplicate
		}
		st.users[u.Username] = *u
		return nil
	})
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.store.view(nil, func(st *state) error {
		if u, ok := st.users[username]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	var out []entity.User
	err := r.store.view(nil, func(st *state) error {
		out = make([]entity.User, 0, len(st.users))
		for _, u := range st.users {
			out = append(out, u)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, err
}

func (r *UserRepository) UpdateLastAccess(_ context.Context, id string, at time.Time) error {
	return r.store.view(nil, func(st *state) error {
		for name, u := range st.users {
			if u.ID == id {
				u.LastAccessAt = &at
				st.users[name] = u
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
}
