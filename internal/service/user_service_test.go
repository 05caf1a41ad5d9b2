package service

import (
	"context"
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserByIDSelfOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin)
	alice := env.createUser(t, "Alice", "alice@example.com", model.RoleCustomer)
	bob := env.createUser(t, "Bob", "bob@example.com", model.RoleCustomer)

	got, err := env.userService.GetUserByID(ctx, asActor(alice), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = env.userService.GetUserByID(ctx, asActor(bob), alice.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.userService.GetUserByID(ctx, asActor(admin), alice.ID)
	assert.NoError(t, err)
}

func TestListUsersIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin)
	alice := env.createUser(t, "Alice", "alice@example.com", model.RoleCustomer)

	_, err := env.userService.ListUsers(ctx, asActor(alice))
	assert.ErrorIs(t, err, ErrForbidden)

	users, err := env.userService.ListUsers(ctx, asActor(admin))
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestListStaffOnlyReturnsStaff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin)
	env.createUser(t, "Alice", "alice@example.com", model.RoleCustomer)
	env.createUser(t, "John", "john@example.com", model.RoleStaff)
	env.createUser(t, "Sarah", "sarah@example.com", model.RoleStaff)

	staff, err := env.userService.ListStaff(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	for _, s := range staff {
		assert.Equal(t, model.RoleStaff, s.Role)
	}
}

func TestSetStaffAvailability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, "Admin", "admin@example.com", model.RoleAdmin)
	alice := env.createUser(t, "Alice", "alice@example.com", model.RoleCustomer)
	john := env.createUser(t, "John", "john@example.com", model.RoleStaff)
	sarah := env.createUser(t, "Sarah", "sarah@example.com", model.RoleStaff)

	// Staff toggle themselves.
	res, err := env.userService.SetStaffAvailability(ctx, asActor(john), john.ID, false)
	require.NoError(t, err)
	assert.False(t, res.IsAvailable)

	// But not each other.
	_, err = env.userService.SetStaffAvailability(ctx, asActor(sarah), john.ID, true)
	assert.ErrorIs(t, err, ErrForbidden)

	// Customers never.
	_, err = env.userService.SetStaffAvailability(ctx, asActor(alice), john.ID, true)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admins may toggle anyone, but only accounts that are actually staff.
	res, err = env.userService.SetStaffAvailability(ctx, asActor(admin), john.ID, true)
	require.NoError(t, err)
	assert.True(t, res.IsAvailable)

	_, err = env.userService.SetStaffAvailability(ctx, asActor(admin), alice.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}
