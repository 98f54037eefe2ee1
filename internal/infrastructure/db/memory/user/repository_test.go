package user

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	domain "user-directory/internal/domain/user"
)

func TestRepository_Insert(t *testing.T) {
	tests := []struct {
		name    string
		seed    []*domain.User
		in      *domain.User
		want    string
		wantErr error
	}{
		{
			name: "stores new user",
			in:   &domain.User{ID: 1, Name: "John", Surname: "Doe"},
			want: "John",
		},
		{
			name:    "nil user is invalid",
			in:      nil,
			wantErr: ErrInvalidUser,
		},
		{
			name:    "duplicate id is rejected",
			seed:    []*domain.User{{ID: 1, Name: "John", Surname: "Doe"}},
			in:      &domain.User{ID: 1, Name: "Jane", Surname: "Smith"},
			wantErr: ErrAlreadyExists,
		},
		{
			name: "empty strings are left to the service",
			in:   &domain.User{ID: 7, Name: "", Surname: ""},
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := NewRepository()
			for _, u := range tt.seed {
				_, err := r.Insert(u)
				require.NoError(t, err)
			}

			got, err := r.Insert(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepository_InsertDuplicateDoesNotOverwrite(t *testing.T) {
	r := NewRepository()
	_, err := r.Insert(&domain.User{ID: 1, Name: "John", Surname: "Doe"})
	require.NoError(t, err)

	_, err = r.Insert(&domain.User{ID: 1, Name: "Jane", Surname: "Smith"})
	require.Error(t, err)
	assert.EqualError(t, err, "user with ID 1: user already exists")

	full, ok := r.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "John Doe", full)
}

func TestRepository_InsertCopiesRecord(t *testing.T) {
	r := NewRepository()
	u := &domain.User{ID: 1, Name: "John", Surname: "Doe"}
	_, err := r.Insert(u)
	require.NoError(t, err)

	u.Name = "Mallory"

	full, ok := r.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "John Doe", full)
}

func TestRepository_FindByID(t *testing.T) {
	r := NewRepository()
	_, err := r.Insert(&domain.User{ID: 1, Name: "John", Surname: "Doe"})
	require.NoError(t, err)

	full, ok := r.FindByID(1)
	assert.True(t, ok)
	assert.Equal(t, "John Doe", full)

	_, ok = r.FindByID(99)
	assert.False(t, ok)
}

func TestRepository_Delete(t *testing.T) {
	r := NewRepository()
	_, err := r.Insert(&domain.User{ID: 1, Name: "John", Surname: "Doe"})
	require.NoError(t, err)

	name, ok := r.Delete(1)
	assert.True(t, ok)
	assert.Equal(t, "John", name)

	_, ok = r.Delete(1)
	assert.False(t, ok, "second delete must report not found")

	_, ok = r.Delete(99)
	assert.False(t, ok)
}

func TestRepository_RemoveReturnsWholeRecord(t *testing.T) {
	r := NewRepository()
	_, err := r.Insert(&domain.User{ID: 1, Name: "John", Surname: "Doe"})
	require.NoError(t, err)

	u, ok := r.Remove(1)
	require.True(t, ok)
	assert.Equal(t, domain.User{ID: 1, Name: "John", Surname: "Doe"}, *u)

	_, found := r.FindByID(1)
	assert.False(t, found)

	u, ok = r.Remove(1)
	assert.False(t, ok)
	assert.Nil(t, u)
}

func TestRepository_Update(t *testing.T) {
	r := NewRepository()
	_, err := r.Insert(&domain.User{ID: 1, Name: "John", Surname: "Doe"})
	require.NoError(t, err)
	_, err = r.Insert(&domain.User{ID: 2, Name: "Jane", Surname: "Smith"})
	require.NoError(t, err)

	assert.True(t, r.Update(1, "Jack", "Black"))
	assert.False(t, r.Update(3, "Nobody", "Here"))

	full, _ := r.FindByID(1)
	assert.Equal(t, "Jack Black", full)
	full, _ = r.FindByID(2)
	assert.Equal(t, "Jane Smith", full)
}

func TestRepository_ListAll(t *testing.T) {
	r := NewRepository()
	assert.Empty(t, r.ListAll())

	_, _ = r.Insert(&domain.User{ID: 2, Name: "Jane", Surname: "Smith"})
	_, _ = r.Insert(&domain.User{ID: 1, Name: "John", Surname: "Doe"})

	us := r.ListAll()
	require.Len(t, us, 2)
	assert.Equal(t, domain.User{ID: 1, Name: "John", Surname: "Doe"}, *us[0])
	assert.Equal(t, domain.User{ID: 2, Name: "Jane", Surname: "Smith"}, *us[1])

	// snapshot, not a live view
	us[0].Name = "Changed"
	full, _ := r.FindByID(1)
	assert.Equal(t, "John Doe", full)
}

func TestRepository_ConcurrentInsertSameID(t *testing.T) {
	r := NewRepository()

	const n = 64
	var (
		mu       sync.Mutex
		accepted int
	)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			_, err := r.Insert(&domain.User{ID: 1, Name: fmt.Sprintf("n%d", i), Surname: "s"})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, accepted)
	assert.Len(t, r.ListAll(), 1)
}

func TestRepository_ConcurrentMixedOperations(t *testing.T) {
	r := NewRepository()

	var g errgroup.Group
	for i := 1; i <= 100; i++ {
		id := domain.ID(i)
		g.Go(func() error {
			if _, err := r.Insert(&domain.User{ID: id, Name: "n", Surname: "s"}); err != nil {
				return err
			}
			r.Update(id, "name", "surname")
			for _, u := range r.ListAll() {
				if u.Name == "name" && u.Surname != "surname" {
					return fmt.Errorf("torn record %d", u.ID)
				}
			}
			if id%2 == 0 {
				r.Delete(id)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Len(t, r.ListAll(), 50)
}
