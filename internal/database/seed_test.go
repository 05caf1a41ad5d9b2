package database

import (
	"testing"

	"backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestSeedLoadsFixtures(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))

	assert.Equal(t, int64(6), countRows(t, db, &model.User{}))
	assert.Equal(t, int64(5), countRows(t, db, &model.Facility{}))
	assert.Equal(t, int64(3), countRows(t, db, &model.Booking{}))
	assert.Equal(t, int64(2), countRows(t, db, &model.Review{}))
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	assert.Equal(t, int64(6), countRows(t, db, &model.User{}))
	assert.Equal(t, int64(5), countRows(t, db, &model.Facility{}))
}

func TestSeedReferencesResolve(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))

	var bookings []model.Booking
	require.NoError(t, db.Find(&bookings).Error)
	for _, b := range bookings {
		var n int64
		require.NoError(t, db.Model(&model.User{}).Where("id = ? AND role = ?", b.CustomerID, model.RoleCustomer).Count(&n).Error)
		assert.Equal(t, int64(1), n, "booking %s customer", b.ID)
		require.NoError(t, db.Model(&model.User{}).Where("id = ? AND role = ?", b.StaffID, model.RoleStaff).Count(&n).Error)
		assert.Equal(t, int64(1), n, "booking %s staff", b.ID)
		require.NoError(t, db.Model(&model.Facility{}).Where("id = ?", b.FacilityID).Count(&n).Error)
		assert.Equal(t, int64(1), n, "booking %s facility", b.ID)
	}

	var reviews []model.Review
	require.NoError(t, db.Find(&reviews).Error)
	for _, r := range reviews {
		var booking model.Booking
		require.NoError(t, db.First(&booking, "id = ?", r.BookingID).Error)
		assert.Equal(t, model.BookingStatusCompleted, booking.Status, "reviews only exist on completed bookings")
		assert.Equal(t, booking.CustomerID, r.CustomerID)
		assert.Equal(t, booking.StaffID, r.StaffID)
	}
}

func TestSeedPasswordsAreHashed(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))

	var admin model.User
	require.NoError(t, db.First(&admin, "id = ?", SeedAdminID).Error)
	assert.Equal(t, "admin@homeservices.com", admin.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin123")))
}

func TestSeedCustomerBookingMirror(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, Seed(db))

	var alice model.User
	require.NoError(t, db.First(&alice, "id = ?", SeedCustomerAliceID).Error)
	assert.Len(t, []string(alice.Bookings), 2)

	var bookings []model.Booking
	require.NoError(t, db.Where("customer_id = ?", alice.ID).Find(&bookings).Error)
	require.Len(t, bookings, 2)
	for _, b := range bookings {
		assert.Contains(t, []string(alice.Bookings), b.ID.String())
	}
}
