package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondecom/eshop/internal/transport"
)

func TestProfile(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	ctx := context.Background()

	u := e.mkUser(t, "ann")
	e.mkUser(t, "ben")

	got, err := e.profile.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann", got.Username)

	_, err = e.profile.Get(ctx, 999)
	assert.True(t, errors.Is(err, ErrNotFound))

	tests := []struct {
		name string
		req  transport.UpdateProfileRequest
		err  error
	}{
		{"email taken", transport.UpdateProfileRequest{Email: ptr("ben@example.com")}, ErrConflict},
		{"empty email", transport.UpdateProfileRequest{Email: ptr(" ")}, ErrValidation},
		{"empty first name", transport.UpdateProfileRequest{FirstName: ptr("")}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.profile.Update(ctx, u.ID, tt.req)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}

	updated, err := e.profile.Update(ctx, u.ID, transport.UpdateProfileRequest{
		Email: ptr("ann@example.com"), FirstName: ptr("Ann"), LastName: ptr("Lee"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", updated.FirstName)
	assert.Equal(t, "Lee", updated.LastName)

	_, err = e.profile.Update(ctx, 999, transport.UpdateProfileRequest{FirstName: ptr("X")})
	assert.True(t, errors.Is(err, ErrNotFound))
}
