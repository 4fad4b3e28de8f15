package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDirectValidation(t *testing.T) {
	svc := NewPlayerService(newFakePlayerRepo())

	_, err := svc.CreateDirect(context.Background(), "  ", 10, 7)
	require.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateDirect(context.Background(), "Jo", 0, 7)
	require.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateDirect(context.Background(), "Jo", 10, 0)
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestCreateDirectRosterEntry(t *testing.T) {
	repo := newFakePlayerRepo()
	svc := NewPlayerService(repo)

	player, err := svc.CreateDirect(context.Background(), " Jo Doe ", 11, 7)
	require.NoError(t, err)
	assert.Equal(t, "Jo Doe", player.Name)
	require.NotNil(t, player.Age)
	assert.Equal(t, 11, *player.Age)
	require.NotNil(t, player.Jersey)
	assert.Equal(t, 7, *player.Jersey)
	assert.Nil(t, player.RegistrationID, "direct entries carry no registration back-reference")

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
