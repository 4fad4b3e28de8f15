package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/athlos-fc/academy-system/models"
	"github.com/athlos-fc/academy-system/repositories"
)

type PlayerService struct {
	repo repositories.PlayerRepository
}

func NewPlayerService(repo repositories.PlayerRepository) *PlayerService {
	return &PlayerService{repo: repo}
}

// CreateDirect adds a roster entry without a registration behind it. It
// shares the repository insert with the approval path; only the producer
// differs.
func (s *PlayerService) CreateDirect(ctx context.Context, name string, age, jersey int) (*models.Player, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return nil, fmt.Errorf("name is required: %w", ErrValidationFailed)
	case age <= 0:
		return nil, fmt.Errorf("age is required: %w", ErrValidationFailed)
	case jersey <= 0:
		return nil, fmt.Errorf("jersey is required: %w", ErrValidationFailed)
	}

	player := &models.Player{
		Name:   name,
		Age:    &age,
		Jersey: &jersey,
	}
	if err := s.repo.Create(ctx, nil, player); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *PlayerService) List(ctx context.Context) ([]*models.Player, error) {
	return s.repo.List(ctx)
}

func (s *PlayerService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
