package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/athlos-fc/academy-system/models"
	"github.com/athlos-fc/academy-system/repositories"
)

// ApprovalService owns the registration → player state transition. Approve is
// the only multi-statement write in the system and runs inside a single
// transaction: either the player row appears and the registration flips to
// approved, or neither is visible.
type ApprovalService struct {
	txm        repositories.TxManager
	regRepo    repositories.RegistrationRepository
	playerRepo repositories.PlayerRepository
	events     EventPublisher
	logger     *slog.Logger
}

func NewApprovalService(
	txm repositories.TxManager,
	regRepo repositories.RegistrationRepository,
	playerRepo repositories.PlayerRepository,
	events EventPublisher,
	logger *slog.Logger,
) *ApprovalService {
	return &ApprovalService{
		txm:        txm,
		regRepo:    regRepo,
		playerRepo: playerRepo,
		events:     events,
		logger:     logger,
	}
}

// Approve promotes a pending registration to a roster player.
//
// The status flip is conditional on the row still being pending, so a
// concurrent approve of the same registration commits at most one player
// regardless of the store's isolation level.
func (s *ApprovalService) Approve(ctx context.Context, registrationID int) (int, error) {
	var playerID int

	err := s.txm.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		reg, err := s.regRepo.FindByID(ctx, exec, registrationID)
		if err != nil {
			if errors.Is(err, repositories.ErrRegistrationNotFound) {
				return ErrRegistrationNotFound
			}
			return fmt.Errorf("failed to load registration %d: %w", registrationID, err)
		}
		if reg.Status != models.RegistrationStatusPending {
			return ErrRegistrationNotPending
		}

		player := playerFromRegistration(reg)
		if err := s.playerRepo.Create(ctx, exec, player); err != nil {
			return fmt.Errorf("failed to create player for registration %d: %w", registrationID, err)
		}

		err = s.regRepo.UpdateStatusIfPending(ctx, exec, registrationID, models.RegistrationStatusApproved)
		if err != nil {
			if errors.Is(err, repositories.ErrRegistrationNotFound) {
				return ErrRegistrationNotPending
			}
			return fmt.Errorf("failed to mark registration %d approved: %w", registrationID, err)
		}

		playerID = player.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("registration approved",
		slog.Int("registration_id", registrationID),
		slog.Int("player_id", playerID),
	)
	if s.events != nil {
		s.events.Publish(EventRegistrationApproved, map[string]interface{}{
			"registrationId": registrationID,
			"playerId":       playerID,
		})
	}
	return playerID, nil
}

// Reject deletes a pending registration outright. This is irreversible and is
// deliberately not transactional with any other write. Blob cleanup is
// delegated to the store's lifecycle rules.
func (s *ApprovalService) Reject(ctx context.Context, registrationID int) error {
	if _, err := s.regRepo.FindByID(ctx, nil, registrationID); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to load registration %d: %w", registrationID, err)
	}

	if err := s.regRepo.Delete(ctx, registrationID); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to delete registration %d: %w", registrationID, err)
	}

	s.logger.Info("registration rejected", slog.Int("registration_id", registrationID))
	if s.events != nil {
		s.events.Publish(EventRegistrationRejected, map[string]interface{}{
			"registrationId": registrationID,
		})
	}
	return nil
}

// playerFromRegistration is the fixed allow-list copy: a deliberate mapping
// table, not a field enumeration. Experience, consent, payment, and file
// fields never reach the player record.
func playerFromRegistration(reg *models.Registration) *models.Player {
	regID := reg.ID
	return &models.Player{
		Name:             reg.PlayerName,
		Email:            optional(reg.Email),
		DOB:              reg.DOB,
		Gender:           reg.Gender,
		Phone:            optional(reg.Phone),
		EmergencyContact: optional(reg.EmergencyContact),
		ParentName:       reg.ParentName,
		ParentContact:    reg.ParentContact,
		RegistrationID:   &regID,
	}
}
