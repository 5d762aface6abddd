package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeboardapp/backend/internal/apperrors"
	"github.com/homeboardapp/backend/internal/models"
	"github.com/homeboardapp/backend/internal/service"
	"github.com/homeboardapp/backend/internal/testhelpers"
)

func TestCreateHousehold(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	user := testhelpers.CreateTestUser(t, db, "alice@example.com")

	household, err := svc.Create(context.Background(), user.ID, "  Smith Household  ")
	require.NoError(t, err)
	assert.Equal(t, "Smith Household", household.Name)
	require.NotNil(t, household.CreatedByID)
	assert.Equal(t, user.ID, *household.CreatedByID)
}

func TestCreateHouseholdCreatorBecomesAdmin(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	user := testhelpers.CreateTestUser(t, db, "alice@example.com")

	household, err := svc.Create(context.Background(), user.ID, "Smith Household")
	require.NoError(t, err)

	var members []models.HouseholdMember
	require.NoError(t, db.Where("household_id = ?", household.ID).Find(&members).Error)
	require.Len(t, members, 1)
	assert.Equal(t, user.ID, members[0].UserID)
	assert.Equal(t, models.MemberTypeAdmin, members[0].MemberType)

	isAdmin, err := svc.IsAdmin(context.Background(), household.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestCreateHouseholdDuplicateNameSameUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	user := testhelpers.CreateTestUser(t, db, "alice@example.com")

	_, err := svc.Create(context.Background(), user.ID, "Smith Household")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), user.ID, " Smith Household ")
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
}

func TestCreateHouseholdSameNameDifferentUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "bob@example.com")

	_, err := svc.Create(context.Background(), alice.ID, "Smith Household")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), bob.ID, "Smith Household")
	assert.NoError(t, err)
}

func TestCreateHouseholdEmptyName(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	user := testhelpers.CreateTestUser(t, db, "alice@example.com")

	_, err := svc.Create(context.Background(), user.ID, "   ")
	var verr *apperrors.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestListForUserOrderedByCreation(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	user := testhelpers.CreateTestUser(t, db, "alice@example.com")

	first, err := svc.Create(context.Background(), user.ID, "First Household")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), user.ID, "Second Household")
	require.NoError(t, err)

	households, err := svc.ListForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, households, 2)
	assert.Equal(t, first.ID, households[0].ID)
	assert.Equal(t, second.ID, households[1].ID)
}

func TestListForUserExcludesOtherHouseholds(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "bob@example.com")

	_, err := svc.Create(context.Background(), alice.ID, "Alice Household")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bob.ID, "Bob Household")
	require.NoError(t, err)

	households, err := svc.ListForUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, households, 1)
	assert.Equal(t, "Alice Household", households[0].Name)
}

func TestAddMember(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "bob@example.com")

	household, err := svc.Create(context.Background(), alice.ID, "Smith Household")
	require.NoError(t, err)

	member, err := svc.AddMember(context.Background(), household.ID, alice.ID, "Bob@Example.com", false)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, member.UserID)
	assert.Equal(t, models.MemberTypeMember, member.MemberType)

	isMember, err := svc.IsMember(context.Background(), household.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, isMember)

	isAdmin, err := svc.IsAdmin(context.Background(), household.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestAddMemberAsAdmin(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "bob@example.com")

	household, err := svc.Create(context.Background(), alice.ID, "Smith Household")
	require.NoError(t, err)

	member, err := svc.AddMember(context.Background(), household.ID, alice.ID, bob.Email, true)
	require.NoError(t, err)
	assert.Equal(t, models.MemberTypeAdmin, member.MemberType)
}

func TestAddMemberUnknownEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")

	household, err := svc.Create(context.Background(), alice.ID, "Smith Household")
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), household.ID, alice.ID, "nobody@example.com", false)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestAddMemberAlreadyMember(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "bob@example.com")

	household, err := svc.Create(context.Background(), alice.ID, "Smith Household")
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), household.ID, alice.ID, bob.Email, false)
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), household.ID, alice.ID, bob.Email, false)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestAddMemberSelfAddIsConflict(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")

	household, err := svc.Create(context.Background(), alice.ID, "Smith Household")
	require.NoError(t, err)

	// The creator is already a member, so self-add surfaces as a conflict.
	_, err = svc.AddMember(context.Background(), household.ID, alice.ID, alice.Email, false)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestAddMemberActingUserMustBeMember(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "bob@example.com")
	carol := testhelpers.CreateTestUser(t, db, "carol@example.com")

	household, err := svc.Create(context.Background(), alice.ID, "Smith Household")
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), household.ID, bob.ID, carol.Email, false)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestListMembers(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewHouseholdService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "bob@example.com")

	household, err := svc.Create(context.Background(), alice.ID, "Smith Household")
	require.NoError(t, err)
	_, err = svc.AddMember(context.Background(), household.ID, alice.ID, bob.Email, false)
	require.NoError(t, err)

	members, err := svc.ListMembers(context.Background(), household.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.NotNil(t, members[0].User)
	assert.Equal(t, "alice@example.com", members[0].User.Email)
}
