package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/athlos-fc/academy-system/models"
	"github.com/athlos-fc/academy-system/repositories"
)

// EventPublisher receives lifecycle events for connected coach dashboards.
// Publishing is best-effort and must never block or fail a request.
type EventPublisher interface {
	Publish(eventType string, payload interface{})
}

const (
	EventRegistrationCreated  = "registration.created"
	EventRegistrationApproved = "registration.approved"
	EventRegistrationRejected = "registration.rejected"
)

// FileRefInput is the client-supplied file reference produced by the upload
// authorization step. The upload timestamp is never taken from the client.
type FileRefInput struct {
	Filename    string
	ContentType string
	Size        int64
	Key         string
}

// SubmitRegistrationInput carries an already-decoded submission. Optional
// fields that arrived with an unexpected JSON shape have been dropped by the
// lenient decoding layer before this point.
type SubmitRegistrationInput struct {
	Email            string
	PlayerName       string
	Phone            string
	EmergencyContact string

	DOB           string
	Gender        string
	ParentName    string
	Relationship  string
	ParentContact string
	Occupation    string
	Position      string
	Purpose       string
	YearsExp      string
	PreviousClub  string
	Injuries      string

	ConsentParticipate bool
	ConsentLiability   bool
	ConsentMedia       bool
	ConsentAIFF        bool

	Program       string
	PaymentMethod string
	UpiID         string

	Photo          *FileRefInput
	IDDoc          *FileRefInput
	BirthProof     *FileRefInput
	PaymentReceipt *FileRefInput
}

type RegistrationService struct {
	repo   repositories.RegistrationRepository
	events EventPublisher
	now    func() time.Time
}

func NewRegistrationService(repo repositories.RegistrationRepository, events EventPublisher) *RegistrationService {
	return &RegistrationService{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

// Submit validates and persists a registration with status pending. Required
// fields are checked in a fixed order and the first missing one is reported;
// nothing is written on a validation failure.
func (s *RegistrationService) Submit(ctx context.Context, input SubmitRegistrationInput) (int, error) {
	email := strings.TrimSpace(input.Email)
	playerName := strings.TrimSpace(input.PlayerName)
	phone := strings.TrimSpace(input.Phone)
	emergencyContact := strings.TrimSpace(input.EmergencyContact)

	switch {
	case email == "":
		return 0, fmt.Errorf("email is required: %w", ErrValidationFailed)
	case playerName == "":
		return 0, fmt.Errorf("playerName is required: %w", ErrValidationFailed)
	case phone == "":
		return 0, fmt.Errorf("phone is required: %w", ErrValidationFailed)
	case emergencyContact == "":
		return 0, fmt.Errorf("emergencyContact is required: %w", ErrValidationFailed)
	}

	now := s.now().UTC()

	reg := &models.Registration{
		Email:            email,
		PlayerName:       playerName,
		Phone:            phone,
		EmergencyContact: emergencyContact,
		DOB:              parseDOB(input.DOB),
		Gender:           optional(input.Gender),
		ParentName:       optional(input.ParentName),
		Relationship:     optional(input.Relationship),
		ParentContact:    optional(input.ParentContact),
		Occupation:       optional(input.Occupation),
		Position:         optional(input.Position),
		Purpose:          optional(input.Purpose),
		YearsExp:         optional(input.YearsExp),
		PreviousClub:     optional(input.PreviousClub),
		Injuries:         optional(input.Injuries),

		ConsentParticipate: input.ConsentParticipate,
		ConsentLiability:   input.ConsentLiability,
		ConsentMedia:       input.ConsentMedia,
		ConsentAIFF:        input.ConsentAIFF,

		Program:       optional(input.Program),
		PaymentMethod: optional(input.PaymentMethod),
		UpiID:         optional(input.UpiID),

		Photo:          fileRefFromInput(input.Photo, now),
		IDDoc:          fileRefFromInput(input.IDDoc, now),
		BirthProof:     fileRefFromInput(input.BirthProof, now),
		PaymentReceipt: fileRefFromInput(input.PaymentReceipt, now),

		Status: models.RegistrationStatusPending,
	}

	if err := s.repo.Create(ctx, nil, reg); err != nil {
		return 0, err
	}

	if s.events != nil {
		s.events.Publish(EventRegistrationCreated, map[string]interface{}{
			"id":         reg.ID,
			"playerName": reg.PlayerName,
		})
	}
	return reg.ID, nil
}

func (s *RegistrationService) Get(ctx context.Context, id int) (*models.Registration, error) {
	reg, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (s *RegistrationService) List(ctx context.Context, statusFilter *models.RegistrationStatus) ([]*models.RegistrationSummary, error) {
	return s.repo.List(ctx, statusFilter)
}

// parseDOB tolerates the date shapes the registration form has produced over
// time; anything unparseable is stored as absent rather than rejected.
func parseDOB(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// fileRefFromInput accepts a reference only when it carries at minimum a
// filename and a storage key, and stamps the upload time server-side.
func fileRefFromInput(in *FileRefInput, now time.Time) *models.FileRef {
	if in == nil || in.Filename == "" || in.Key == "" {
		return nil
	}
	return &models.FileRef{
		Filename:    in.Filename,
		ContentType: in.ContentType,
		Size:        in.Size,
		Key:         in.Key,
		UploadedAt:  now,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
