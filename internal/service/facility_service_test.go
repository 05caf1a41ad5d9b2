package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacilityCRUDIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customer := env.createUser(t, "Alice", "alice@example.com", model.RoleCustomer)
	staff := env.createUser(t, "John", "john@example.com", model.RoleStaff)

	req := CreateFacilityRequest{Name: "Plumbing", Price: 75, Category: "repair"}
	_, err := env.facilityService.CreateFacility(ctx, asActor(customer), req)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = env.facilityService.CreateFacility(ctx, asActor(staff), req)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateAndGetFacility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin)

	res, err := env.facilityService.CreateFacility(ctx, asActor(admin), CreateFacilityRequest{
		Name:          "Deep Cleaning",
		Description:   "Full home cleaning",
		Price:         120,
		Category:      "cleaning",
		AssignedStaff: []string{uuid.NewString()},
		EstimatedTime: "3 hours",
	})
	require.NoError(t, err)
	assert.True(t, res.IsAvailable, "new facilities start available")

	got, err := env.facilityService.GetFacility(ctx, uuid.MustParse(res.ID))
	require.NoError(t, err)
	assert.Equal(t, "Deep Cleaning", got.Name)
	assert.Equal(t, 120.0, got.Price)

	_, err = env.facilityService.GetFacility(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFacilityMergesOnlySentFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin)
	facility := env.createFacility(t, "Plumbing", 75)

	available := false
	res, err := env.facilityService.UpdateFacility(ctx, asActor(admin), facility.ID, UpdateFacilityRequest{
		IsAvailable: &available,
	})
	require.NoError(t, err)

	assert.False(t, res.IsAvailable)
	assert.Equal(t, "Plumbing", res.Name, "unsent fields stay untouched")
	assert.Equal(t, 75.0, res.Price)

	name := "Emergency Plumbing"
	price := 99.5
	res, err = env.facilityService.UpdateFacility(ctx, asActor(admin), facility.ID, UpdateFacilityRequest{
		Name:  &name,
		Price: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "Emergency Plumbing", res.Name)
	assert.Equal(t, 99.5, res.Price)
	assert.False(t, res.IsAvailable, "earlier toggle survives later partial updates")

	_, err = env.facilityService.UpdateFacility(ctx, asActor(admin), uuid.New(), UpdateFacilityRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFacilitiesByCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin)
	for _, f := range []CreateFacilityRequest{
		{Name: "Plumbing", Price: 75, Category: "repair"},
		{Name: "AC Repair", Price: 95, Category: "repair"},
		{Name: "Deep Cleaning", Price: 120, Category: "cleaning"},
	} {
		_, err := env.facilityService.CreateFacility(ctx, asActor(admin), f)
		require.NoError(t, err)
	}

	all, err := env.facilityService.ListFacilities(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	repairs, err := env.facilityService.ListFacilities(ctx, "repair")
	require.NoError(t, err)
	assert.Len(t, repairs, 2)
}

func TestFacilityMutationsAreAudited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin)

	res, err := env.facilityService.CreateFacility(ctx, asActor(admin), CreateFacilityRequest{
		Name: "Plumbing", Price: 75, Category: "repair",
	})
	require.NoError(t, err)
	require.NoError(t, env.facilityService.DeleteFacility(ctx, asActor(admin), uuid.MustParse(res.ID)))

	var count int64
	require.NoError(t, env.db.Model(&model.AuditLog{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var entry model.AuditLog
	require.NoError(t, env.db.Where("action = ?", model.ActionDeleteFacility).First(&entry).Error)
	assert.Equal(t, res.ID, entry.EntityID)
	assert.Equal(t, admin.ID, *entry.UserID)
}
