package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeboardapp/backend/internal/apperrors"
	"github.com/homeboardapp/backend/internal/models"
)

// HouseholdService is the household directory: it stores households and
// membership records and answers which households a user belongs to.
type HouseholdService struct {
	db *gorm.DB
}

func NewHouseholdService(db *gorm.DB) *HouseholdService {
	return &HouseholdService{db: db}
}

// ListForUser returns the households the user is a member of, oldest first.
func (s *HouseholdService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Household, error) {
	var households []models.Household
	err := s.db.WithContext(ctx).
		Joins("JOIN household_members ON household_members.household_id = households.id").
		Where("household_members.user_id = ?", userID).
		Order("households.created_at ASC, households.id ASC").
		Find(&households).Error
	if err != nil {
		return nil, err
	}
	return households, nil
}

// Get looks up a household by id.
func (s *HouseholdService) Get(ctx context.Context, id uuid.UUID) (*models.Household, error) {
	var household models.Household
	if err := s.db.WithContext(ctx).First(&household, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("household: %w", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &household, nil
}

// Create makes a new household and the creator's admin membership in one
// transaction: a household must never exist without an admin.
func (s *HouseholdService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}

	existing, err := s.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, h := range existing {
		if h.Name == name {
			return nil, apperrors.NewValidationError("name", "you already belong to a household with this name")
		}
	}

	household := models.Household{
		Name:        name,
		CreatedByID: &userID,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&household).Error; err != nil {
			return err
		}
		member := models.HouseholdMember{
			HouseholdID: household.ID,
			UserID:      userID,
			MemberType:  models.MemberTypeAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &household, nil
}

// AddMember adds the user identified by targetEmail to the household. The
// acting user must be a member; the target must exist and not already be a
// member (self-add surfaces as already-a-member).
func (s *HouseholdService) AddMember(ctx context.Context, householdID, actingUserID uuid.UUID, targetEmail string, asAdmin bool) (*models.HouseholdMember, error) {
	actingMember, err := s.IsMember(ctx, householdID, actingUserID)
	if err != nil {
		return nil, err
	}
	if !actingMember {
		return nil, apperrors.ErrForbidden
	}

	targetEmail = strings.TrimSpace(strings.ToLower(targetEmail))
	var target models.User
	if err := s.db.WithContext(ctx).Where("email = ?", targetEmail).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no user with email %s: %w", targetEmail, apperrors.ErrNotFound)
		}
		return nil, err
	}

	alreadyMember, err := s.IsMember(ctx, householdID, target.ID)
	if err != nil {
		return nil, err
	}
	if alreadyMember {
		return nil, apperrors.ErrConflict
	}

	memberType := models.MemberTypeMember
	if asAdmin {
		memberType = models.MemberTypeAdmin
	}
	member := models.HouseholdMember{
		HouseholdID: householdID,
		UserID:      target.ID,
		MemberType:  memberType,
	}
	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers returns the household's membership records with users preloaded.
func (s *HouseholdService) ListMembers(ctx context.Context, householdID uuid.UUID) ([]models.HouseholdMember, error) {
	var members []models.HouseholdMember
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("household_id = ?", householdID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// IsMember reports whether the user holds any membership in the household.
func (s *HouseholdService) IsMember(ctx context.Context, householdID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.HouseholdMember{}).
		Where("household_id = ? AND user_id = ?", householdID, userID).
		Count(&count).Error
	return count > 0, err
}

// IsAdmin reports whether the user holds an admin membership in the household.
func (s *HouseholdService) IsAdmin(ctx context.Context, householdID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.HouseholdMember{}).
		Where("household_id = ? AND user_id = ? AND member_type = ?", householdID, userID, models.MemberTypeAdmin).
		Count(&count).Error
	return count > 0, err
}
