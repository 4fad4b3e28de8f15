package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/athlos-fc/academy-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type approvalFixture struct {
	regs    *fakeRegistrationRepo
	players *fakePlayerRepo
	txm     *fakeTxManager
	events  *recordingPublisher
	svc     *ApprovalService
}

func newApprovalFixture() *approvalFixture {
	regs := newFakeRegistrationRepo()
	players := newFakePlayerRepo()
	txm := &fakeTxManager{regs: regs, players: players}
	events := &recordingPublisher{}
	return &approvalFixture{
		regs:    regs,
		players: players,
		txm:     txm,
		events:  events,
		svc:     NewApprovalService(txm, regs, players, events, testLogger()),
	}
}

func (f *approvalFixture) seedPendingRegistration(t *testing.T) int {
	t.Helper()
	dob := time.Date(2011, 7, 2, 0, 0, 0, 0, time.UTC)
	gender := "female"
	parentName := "Pat Doe"
	parentContact := "777"
	reg := &models.Registration{
		Email:            "a@b.com",
		PlayerName:       "Jo Doe",
		Phone:            "555",
		EmergencyContact: "999",
		DOB:              &dob,
		Gender:           &gender,
		ParentName:       &parentName,
		ParentContact:    &parentContact,
		Position:         strPtr("striker"),
		Program:          strPtr("summer-camp"),
		Photo:            &models.FileRef{Filename: "face.jpg", Key: "registrations/k"},
		Status:           models.RegistrationStatusPending,
	}
	require.NoError(t, f.regs.Create(context.Background(), nil, reg))
	return reg.ID
}

func TestApproveNotFound(t *testing.T) {
	f := newApprovalFixture()

	_, err := f.svc.Approve(context.Background(), 404)
	require.ErrorIs(t, err, ErrRegistrationNotFound)
	assert.Empty(t, f.players.players)
	assert.Zero(t, f.txm.commits)
}

func TestApproveCreatesPlayerAndMarksApproved(t *testing.T) {
	f := newApprovalFixture()
	regID := f.seedPendingRegistration(t)

	playerID, err := f.svc.Approve(context.Background(), regID)
	require.NoError(t, err)
	require.Equal(t, 1, playerID)
	assert.Equal(t, 1, f.txm.commits)

	player := f.players.players[playerID]
	require.NotNil(t, player)

	// Allow-listed fields are copied from the registration.
	assert.Equal(t, "Jo Doe", player.Name)
	require.NotNil(t, player.Email)
	assert.Equal(t, "a@b.com", *player.Email)
	require.NotNil(t, player.DOB)
	require.NotNil(t, player.Gender)
	assert.Equal(t, "female", *player.Gender)
	require.NotNil(t, player.Phone)
	assert.Equal(t, "555", *player.Phone)
	require.NotNil(t, player.EmergencyContact)
	assert.Equal(t, "999", *player.EmergencyContact)
	require.NotNil(t, player.ParentName)
	assert.Equal(t, "Pat Doe", *player.ParentName)
	require.NotNil(t, player.ParentContact)
	assert.Equal(t, "777", *player.ParentContact)
	require.NotNil(t, player.RegistrationID)
	assert.Equal(t, regID, *player.RegistrationID)

	// Everything else stays behind: a player is a roster identity, not a
	// registration mirror.
	assert.Nil(t, player.Age)
	assert.Nil(t, player.Jersey)

	reg := f.regs.regs[regID]
	assert.Equal(t, models.RegistrationStatusApproved, reg.Status)

	assert.Equal(t, []string{EventRegistrationApproved}, f.events.types())
}

func TestApproveIsAllOrNothing(t *testing.T) {
	f := newApprovalFixture()
	regID := f.seedPendingRegistration(t)
	f.players.createErr = assert.AnError

	_, err := f.svc.Approve(context.Background(), regID)
	require.Error(t, err)

	assert.Equal(t, 1, f.txm.rollbacks)
	assert.Empty(t, f.players.players, "no orphan player may survive a failed approval")
	assert.Equal(t, models.RegistrationStatusPending, f.regs.regs[regID].Status,
		"registration must remain pending after a failed approval")
	assert.Empty(t, f.events.types())
}

func TestApproveTwiceCreatesOnePlayer(t *testing.T) {
	f := newApprovalFixture()
	regID := f.seedPendingRegistration(t)

	_, err := f.svc.Approve(context.Background(), regID)
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), regID)
	require.ErrorIs(t, err, ErrRegistrationNotPending)
	assert.Len(t, f.players.players, 1)
}

func TestRejectDeletesRegistration(t *testing.T) {
	f := newApprovalFixture()
	regID := f.seedPendingRegistration(t)

	require.NoError(t, f.svc.Reject(context.Background(), regID))
	assert.Empty(t, f.regs.regs)
	assert.Equal(t, []string{EventRegistrationRejected}, f.events.types())

	// Rejection is terminal: both follow-ups observe a missing record.
	_, err := f.svc.Approve(context.Background(), regID)
	require.ErrorIs(t, err, ErrRegistrationNotFound)
	require.ErrorIs(t, f.svc.Reject(context.Background(), regID), ErrRegistrationNotFound)
}

func TestRejectNotFound(t *testing.T) {
	f := newApprovalFixture()
	require.ErrorIs(t, f.svc.Reject(context.Background(), 404), ErrRegistrationNotFound)
}

func strPtr(s string) *string { return &s }
