package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeboardapp/backend/internal/models"
	"github.com/homeboardapp/backend/internal/session"
)

// ContextService resolves the single active household for a session. It runs
// once per request (from the CurrentHousehold middleware) and its result is
// threaded to every downstream handler; nothing re-resolves independently.
type ContextService struct {
	db         *gorm.DB
	sessions   session.Store
	households *HouseholdService
}

func NewContextService(db *gorm.DB, sessions session.Store, households *HouseholdService) *ContextService {
	return &ContextService{
		db:         db,
		sessions:   sessions,
		households: households,
	}
}

// ResolveActiveHousehold determines the active household for the session:
// the persisted pointer if it still resolves, otherwise the user's oldest
// household (persisting the choice), otherwise nil for household-less users.
// A pointer to a household that no longer exists falls through to
// re-resolution instead of failing the request.
func (s *ContextService) ResolveActiveHousehold(ctx context.Context, sessionID string, userID uuid.UUID) (*models.Household, error) {
	raw, err := s.sessions.Get(ctx, sessionID, session.KeyCurrentHousehold)
	if err != nil {
		return nil, err
	}
	if raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			var household models.Household
			err := s.db.WithContext(ctx).First(&household, "id = ?", id).Error
			if err == nil {
				return &household, nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			// stale pointer, fall through and re-resolve
		}
	}

	households, err := s.households.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(households) == 0 {
		return nil, nil
	}

	first := households[0]
	if err := s.sessions.Set(ctx, sessionID, session.KeyCurrentHousehold, first.ID.String()); err != nil {
		return nil, err
	}
	return &first, nil
}

// SwitchActiveHousehold overwrites the session pointer. Callers verify
// membership before switching.
func (s *ContextService) SwitchActiveHousehold(ctx context.Context, sessionID string, household *models.Household) error {
	return s.sessions.Set(ctx, sessionID, session.KeyCurrentHousehold, household.ID.String())
}

// EndSession discards the whole session, including the household pointer.
func (s *ContextService) EndSession(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}
