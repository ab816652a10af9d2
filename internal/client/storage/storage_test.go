package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/giftshop/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memItems struct {
	m      map[string]string
	getErr error
}

func newMemItems() *memItems { return &memItems{m: map[string]string{}} }

func (f *memItems) GetItem(_ context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.m[key]
	return v, ok, nil
}
func (f *memItems) SetItem(_ context.Context, key, value string) error {
	f.m[key] = value
	return nil
}
func (f *memItems) RemoveItem(_ context.Context, key string) error {
	delete(f.m, key)
	return nil
}
func (f *memItems) Keys(context.Context) ([]string, error) { return nil, nil }

func TestStore_RoundTrip(t *testing.T) {
	items := newMemItems()
	s := New(items)
	ctx := context.Background()

	u := models.UserInfo{AuthToken: "tok", Email: "a@b.com", Name: "A"}
	require.NoError(t, s.Set(ctx, u))
	assert.JSONEq(t, `{"authToken":"tok","email":"a@b.com","name":"A"}`, items.m[UserInfoKey])

	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u, *got)

	require.NoError(t, s.Remove(ctx))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Get_InvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{oops`},
		{"wrong type", `{"authToken":1,"email":"a@b.com","name":"A"}`},
		{"missing email", `{"authToken":"tok","name":"A"}`},
		{"array", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := newMemItems()
			items.m[UserInfoKey] = tt.raw

			got, err := New(items).Get(context.Background())
			require.ErrorIs(t, err, ErrInvalidRecord)
			assert.Nil(t, got)
		})
	}
}

func TestStore_Get_PropagatesStoreErrors(t *testing.T) {
	items := newMemItems()
	items.getErr = errors.New("disk gone")

	_, err := New(items).Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidRecord)
}
