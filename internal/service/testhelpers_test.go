package service

import (
	"testing"
	"time"

	"backend/internal/database"
	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database per test. A single
// pooled connection keeps every statement on the same memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db), "migrate schema")
	return db
}

type testEnv struct {
	db         *gorm.DB
	users      repository.UserRepository
	facilities repository.FacilityRepository
	bookings   repository.BookingRepository
	reviews    repository.ReviewRepository
	audit      repository.AuditRepository
	txManager  repository.TransactionManager

	authService     AuthService
	userService     UserService
	facilityService FacilityService
	bookingService  BookingService
	reviewService   ReviewService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{
		db:         db,
		users:      repository.NewUserRepository(db),
		facilities: repository.NewFacilityRepository(db),
		bookings:   repository.NewBookingRepository(db),
		reviews:    repository.NewReviewRepository(db),
		audit:      repository.NewAuditRepository(db),
		txManager:  repository.NewTransactionManager(db),
	}
	env.authService = NewAuthService(env.users)
	env.userService = NewUserService(env.users, env.reviews)
	env.facilityService = NewFacilityService(env.facilities, env.audit, env.txManager)
	env.bookingService = NewBookingService(env.bookings, env.facilities, env.users, env.audit, env.txManager, nil)
	env.reviewService = NewReviewService(env.reviews, env.bookings, env.audit, env.txManager)
	return env
}

func (e *testEnv) createUser(t *testing.T, name, email, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Name:        name,
		Email:       email,
		Password:    string(hash),
		Role:        role,
		IsAvailable: true,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createFacility(t *testing.T, name string, price float64) *model.Facility {
	t.Helper()

	facility := &model.Facility{
		Name:        name,
		Category:    "general",
		Price:       decimal.NewFromFloat(price),
		IsAvailable: true,
	}
	require.NoError(t, e.db.Create(facility).Error)
	return facility
}

func (e *testEnv) createBooking(t *testing.T, customer, staff *model.User, facility *model.Facility, status model.BookingStatus) *model.Booking {
	t.Helper()

	booking := &model.Booking{
		CustomerID: customer.ID,
		FacilityID: facility.ID,
		StaffID:    staff.ID,
		Date:       time.Now().Add(48 * time.Hour),
		TimeSlot:   "10:00-12:00",
		Status:     status,
		TotalPrice: facility.Price,
	}
	require.NoError(t, e.db.Create(booking).Error)
	return booking
}

func asActor(user *model.User) Actor {
	return Actor{ID: user.ID, Role: user.Role}
}
