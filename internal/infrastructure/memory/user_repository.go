package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ h handle }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.h.do(func(st *state) error {
		for _, u := range st.users {
			if u.Email == user.Email {
				return domain.ErrEmailAlreadyExists
			}
			if u.Name == user.Name {
				return domain.ErrUsernameAlreadyExists
			}
		}
		c := *user
		st.users[user.ID] = &c
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *UserRepo) GetByName(_ context.Context, name string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Name == name })
}

func (r *UserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.h.do(func(st *state) error {
		for _, u := range st.users {
			if match(u) {
				c := *u
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.h.do(func(st *state) error {
		for _, u := range st.users {
			c := *u
			out = append(out, &c)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}

func (r *UserRepo) SetActive(_ context.Context, id string, active bool, updatedAt time.Time) error {
	return r.h.do(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.Active = active
		u.UpdatedAt = updatedAt
		return nil
	})
}

func (r *UserRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.h.do(func(st *state) error {
		n = len(st.users)
		return nil
	})
	return n, err
}
