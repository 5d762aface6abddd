package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberType is the role a user holds within a household.
type MemberType string

const (
	MemberTypeMember MemberType = "member"
	MemberTypeAdmin  MemberType = "admin"
)

// Household is the tenant boundary: every scoped resource belongs to exactly
// one household. CreatedByID survives user deletion as NULL.
type Household struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	CreatedByID *uuid.UUID     `gorm:"type:varchar(36)" json:"created_by_id"`
	CreatedBy   *User          `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
}

func (h *Household) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// HouseholdMember joins a user to a household with a role. A user can hold at
// most one membership per household.
type HouseholdMember struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	HouseholdID uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_household_member" json:"household_id"`
	UserID      uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_household_member" json:"user_id"`
	MemberType  MemberType `gorm:"size:20;not null;default:'member'" json:"member_type"`
	JoinedAt    time.Time  `gorm:"autoCreateTime" json:"joined_at"`
	Household   *Household `gorm:"foreignKey:HouseholdID;constraint:OnDelete:CASCADE" json:"-"`
	User        *User      `gorm:"foreignKey:UserID" json:"-"`
}

func (m *HouseholdMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsAdmin reports whether the membership carries the admin role.
func (m *HouseholdMember) IsAdmin() bool {
	return m.MemberType == MemberTypeAdmin
}

// OwningHouseholdID implements the scoped-resource contract used by the
// access guard.
func (m *HouseholdMember) OwningHouseholdID() *uuid.UUID {
	return &m.HouseholdID
}
