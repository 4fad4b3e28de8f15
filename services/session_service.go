package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/athlos-fc/academy-system/models"
	"github.com/athlos-fc/academy-system/repositories"
)

// listSessionsLimit caps the dashboard listing to recent sessions.
const listSessionsLimit = 200

type SessionService struct {
	repo       repositories.SessionRepository
	playerRepo repositories.PlayerRepository
	txm        repositories.TxManager
}

func NewSessionService(
	repo repositories.SessionRepository,
	playerRepo repositories.PlayerRepository,
	txm repositories.TxManager,
) *SessionService {
	return &SessionService{repo: repo, playerRepo: playerRepo, txm: txm}
}

func (s *SessionService) Create(ctx context.Context, date, name string) (*models.SessionView, error) {
	name = strings.TrimSpace(name)
	if strings.TrimSpace(date) == "" || name == "" {
		return nil, fmt.Errorf("date and name are required: %w", ErrValidationFailed)
	}
	parsed, err := parseSessionDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", ErrValidationFailed)
	}

	session := &models.Session{Date: parsed, Name: name}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return s.toView(ctx, session)
}

// SetAttendees replaces the full attendee set. Ids are deduplicated; ids that
// do not resolve to a roster entry are accepted silently.
func (s *SessionService) SetAttendees(ctx context.Context, sessionID int, playerIDs []int) (*models.SessionView, error) {
	deduped := dedupeIDs(playerIDs)

	err := s.txm.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.repo.ReplaceAttendees(ctx, exec, sessionID, deduped)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.Get(ctx, sessionID)
}

func (s *SessionService) Get(ctx context.Context, sessionID int) (*models.SessionView, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s.toView(ctx, session)
}

func (s *SessionService) List(ctx context.Context) ([]*models.SessionView, error) {
	sessions, err := s.repo.List(ctx, listSessionsLimit)
	if err != nil {
		return nil, err
	}

	// One roster count shared across the page of sessions.
	total, err := s.playerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*models.SessionView, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, viewWithRate(session, total))
	}
	return views, nil
}

func (s *SessionService) toView(ctx context.Context, session *models.Session) (*models.SessionView, error) {
	total, err := s.playerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return viewWithRate(session, total), nil
}

// viewWithRate derives the attendance percentage against the current roster
// size. Historical percentages therefore shift as the roster grows; with an
// empty roster the rate is defined as 0.
func viewWithRate(session *models.Session, totalPlayers int) *models.SessionView {
	attendees := make([]string, 0, len(session.Attendees))
	for _, id := range session.Attendees {
		attendees = append(attendees, fmt.Sprintf("%d", id))
	}

	rate := 0
	if totalPlayers > 0 {
		rate = int(math.Round(100 * float64(len(session.Attendees)) / float64(totalPlayers)))
	}

	return &models.SessionView{
		ID:             session.ID,
		Date:           session.Date,
		Name:           session.Name,
		Attendees:      attendees,
		AttendanceRate: rate,
		CreatedAt:      session.CreatedAt,
	}
}

func parseSessionDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func dedupeIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
