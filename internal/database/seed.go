package database

import (
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Fixed fixture ids so cross-entity references survive reseeding.
var (
	SeedAdminID = uuid.MustParse("a0000000-0000-4000-8000-000000000001")

	SeedStaffJohnID  = uuid.MustParse("b0000000-0000-4000-8000-000000000001")
	SeedStaffSarahID = uuid.MustParse("b0000000-0000-4000-8000-000000000002")
	SeedStaffMikeID  = uuid.MustParse("b0000000-0000-4000-8000-000000000003")

	SeedCustomerAliceID = uuid.MustParse("c0000000-0000-4000-8000-000000000001")
	SeedCustomerBobID   = uuid.MustParse("c0000000-0000-4000-8000-000000000002")

	SeedFacilityPlumbingID   = uuid.MustParse("f0000000-0000-4000-8000-000000000001")
	SeedFacilityElectricalID = uuid.MustParse("f0000000-0000-4000-8000-000000000002")
	SeedFacilityCleaningID   = uuid.MustParse("f0000000-0000-4000-8000-000000000003")
	SeedFacilityACRepairID   = uuid.MustParse("f0000000-0000-4000-8000-000000000004")
	SeedFacilityApplianceID  = uuid.MustParse("f0000000-0000-4000-8000-000000000005")

	seedBooking1ID = uuid.MustParse("d0000000-0000-4000-8000-000000000001")
	seedBooking2ID = uuid.MustParse("d0000000-0000-4000-8000-000000000002")
	seedBooking3ID = uuid.MustParse("d0000000-0000-4000-8000-000000000003")

	seedReview1ID = uuid.MustParse("e0000000-0000-4000-8000-000000000001")
	seedReview2ID = uuid.MustParse("e0000000-0000-4000-8000-000000000002")
)

// Seed loads the demo fixtures: one admin, three staff, two customers, five
// facilities, three bookings and two reviews. It is a no-op when users
// already exist, so a durable postgres deployment is only seeded once.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug().Msg("seed skipped: users already present")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range seedUsers() {
			if err := tx.Create(u).Error; err != nil {
				return err
			}
		}
		for _, f := range seedFacilities() {
			if err := tx.Create(f).Error; err != nil {
				return err
			}
		}
		for _, b := range seedBookings() {
			if err := tx.Create(b).Error; err != nil {
				return err
			}
		}
		for _, r := range seedReviews() {
			if err := tx.Create(r).Error; err != nil {
				return err
			}
		}
		log.Info().Msg("demo fixtures seeded")
		return nil
	})
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err) // only reachable with an invalid cost constant
	}
	return string(hash)
}

func seedUsers() []*model.User {
	return []*model.User{
		{
			ID:           SeedAdminID,
			Name:         "Admin User",
			Email:        "admin@homeservices.com",
			Password:     mustHash("admin123"),
			Role:         model.RoleAdmin,
			ProfileImage: "https://images.pexels.com/photos/5792641/pexels-photo-5792641.jpeg",
			PhoneNumber:  "555-0100",
			Address:      "123 Admin St, Admin City",
			Permissions:  datatypes.NewJSONSlice([]string{"manage_staff", "manage_facilities", "manage_bookings", "view_reports"}),
			CreatedAt:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:                 SeedStaffJohnID,
			Name:               "John Technician",
			Email:              "john@homeservices.com",
			Password:           mustHash("john123"),
			Role:               model.RoleStaff,
			ProfileImage:       "https://images.pexels.com/photos/8091469/pexels-photo-8091469.jpeg",
			PhoneNumber:        "555-0101",
			Address:            "456 Staff St, Staff City",
			Skills:             datatypes.NewJSONSlice([]string{"Plumbing", "Electrical"}),
			AssignedFacilities: datatypes.NewJSONSlice([]string{SeedFacilityPlumbingID.String(), SeedFacilityElectricalID.String()}),
			Availability: datatypes.NewJSONType(model.Availability{
				Days:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
				Hours: model.HourRange{Start: "09:00", End: "17:00"},
			}),
			IsAvailable: true,
			CreatedAt:   time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:                 SeedStaffSarahID,
			Name:               "Sarah Cleaner",
			Email:              "sarah@homeservices.com",
			Password:           mustHash("sarah123"),
			Role:               model.RoleStaff,
			ProfileImage:       "https://images.pexels.com/photos/6194095/pexels-photo-6194095.jpeg",
			PhoneNumber:        "555-0102",
			Address:            "789 Staff Ave, Staff Town",
			Skills:             datatypes.NewJSONSlice([]string{"Cleaning", "Organization"}),
			AssignedFacilities: datatypes.NewJSONSlice([]string{SeedFacilityCleaningID.String()}),
			Availability: datatypes.NewJSONType(model.Availability{
				Days:  []string{"Monday", "Wednesday", "Friday"},
				Hours: model.HourRange{Start: "08:00", End: "16:00"},
			}),
			IsAvailable: true,
			CreatedAt:   time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:                 SeedStaffMikeID,
			Name:               "Mike Repairman",
			Email:              "mike@homeservices.com",
			Password:           mustHash("mike123"),
			Role:               model.RoleStaff,
			ProfileImage:       "https://images.pexels.com/photos/8108035/pexels-photo-8108035.jpeg",
			PhoneNumber:        "555-0103",
			Address:            "101 Staff Blvd, Staffville",
			Skills:             datatypes.NewJSONSlice([]string{"AC Repair", "Appliance Repair"}),
			AssignedFacilities: datatypes.NewJSONSlice([]string{SeedFacilityACRepairID.String(), SeedFacilityApplianceID.String()}),
			Availability: datatypes.NewJSONType(model.Availability{
				Days:  []string{"Tuesday", "Thursday", "Saturday"},
				Hours: model.HourRange{Start: "10:00", End: "18:00"},
			}),
			IsAvailable: true,
			CreatedAt:   time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           SeedCustomerAliceID,
			Name:         "Alice Customer",
			Email:        "alice@example.com",
			Password:     mustHash("alice123"),
			Role:         model.RoleCustomer,
			ProfileImage: "https://images.pexels.com/photos/3760583/pexels-photo-3760583.jpeg",
			PhoneNumber:  "555-0104",
			Address:      "222 Customer Rd, Customer City",
			Bookings:     datatypes.NewJSONSlice([]string{seedBooking1ID.String(), seedBooking3ID.String()}),
			CreatedAt:    time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           SeedCustomerBobID,
			Name:         "Bob Homeowner",
			Email:        "bob@example.com",
			Password:     mustHash("bob123"),
			Role:         model.RoleCustomer,
			ProfileImage: "https://images.pexels.com/photos/1043474/pexels-photo-1043474.jpeg",
			PhoneNumber:  "555-0105",
			Address:      "333 Customer St, Customer Town",
			Bookings:     datatypes.NewJSONSlice([]string{seedBooking2ID.String()}),
			CreatedAt:    time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}
}

func seedFacilities() []*model.Facility {
	return []*model.Facility{
		{
			ID:            SeedFacilityPlumbingID,
			Name:          "Plumbing Services",
			Description:   "Professional plumbing services for your home, including pipe repairs, installations, and drain cleaning.",
			ImageURL:      "https://images.pexels.com/photos/5486432/pexels-photo-5486432.jpeg",
			Price:         decimal.NewFromInt(75),
			Category:      "Plumbing",
			AssignedStaff: datatypes.NewJSONSlice([]string{SeedStaffJohnID.String()}),
			IsAvailable:   true,
			EstimatedTime: "1-2 hours",
			CreatedAt:     time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            SeedFacilityElectricalID,
			Name:          "Electrical Services",
			Description:   "Certified electricians for all your electrical needs, from installations to repairs and maintenance.",
			ImageURL:      "https://images.pexels.com/photos/257736/pexels-photo-257736.jpeg",
			Price:         decimal.NewFromInt(85),
			Category:      "Electrical",
			AssignedStaff: datatypes.NewJSONSlice([]string{SeedStaffJohnID.String()}),
			IsAvailable:   true,
			EstimatedTime: "1-3 hours",
			CreatedAt:     time.Date(2023, 1, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            SeedFacilityCleaningID,
			Name:          "Home Cleaning",
			Description:   "Thorough home cleaning services that leave your spaces spotless and fresh.",
			ImageURL:      "https://images.pexels.com/photos/4107098/pexels-photo-4107098.jpeg",
			Price:         decimal.NewFromInt(120),
			Category:      "Cleaning",
			AssignedStaff: datatypes.NewJSONSlice([]string{SeedStaffSarahID.String()}),
			IsAvailable:   true,
			EstimatedTime: "3-4 hours",
			CreatedAt:     time.Date(2023, 1, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            SeedFacilityACRepairID,
			Name:          "AC Repair & Maintenance",
			Description:   "Keep your home cool with our expert AC repair and maintenance services.",
			ImageURL:      "https://images.pexels.com/photos/4108714/pexels-photo-4108714.jpeg",
			Price:         decimal.NewFromInt(95),
			Category:      "AC Repair",
			AssignedStaff: datatypes.NewJSONSlice([]string{SeedStaffMikeID.String()}),
			IsAvailable:   true,
			EstimatedTime: "1-2 hours",
			CreatedAt:     time.Date(2023, 1, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            SeedFacilityApplianceID,
			Name:          "Appliance Repair",
			Description:   "Expert repairs for all major household appliances, including refrigerators, washing machines, and dishwashers.",
			ImageURL:      "https://images.pexels.com/photos/5063095/pexels-photo-5063095.jpeg",
			Price:         decimal.NewFromInt(80),
			Category:      "Appliance Repair",
			AssignedStaff: datatypes.NewJSONSlice([]string{SeedStaffMikeID.String()}),
			IsAvailable:   true,
			EstimatedTime: "1-3 hours",
			CreatedAt:     time.Date(2023, 1, 18, 0, 0, 0, 0, time.UTC),
		},
	}
}

func seedBookings() []*model.Booking {
	return []*model.Booking{
		{
			ID:         seedBooking1ID,
			CustomerID: SeedCustomerAliceID,
			FacilityID: SeedFacilityPlumbingID,
			StaffID:    SeedStaffJohnID,
			Date:       time.Date(2023, 4, 15, 10, 0, 0, 0, time.UTC),
			TimeSlot:   "10:00 - 12:00",
			Status:     model.BookingStatusCompleted,
			TotalPrice: decimal.NewFromInt(75),
			Notes:      "Fixing leak under the kitchen sink",
			CreatedAt:  time.Date(2023, 4, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         seedBooking2ID,
			CustomerID: SeedCustomerBobID,
			FacilityID: SeedFacilityCleaningID,
			StaffID:    SeedStaffSarahID,
			Date:       time.Date(2023, 4, 20, 8, 0, 0, 0, time.UTC),
			TimeSlot:   "08:00 - 12:00",
			Status:     model.BookingStatusCompleted,
			TotalPrice: decimal.NewFromInt(120),
			Notes:      "Full house cleaning, please pay special attention to bathrooms",
			CreatedAt:  time.Date(2023, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         seedBooking3ID,
			CustomerID: SeedCustomerAliceID,
			FacilityID: SeedFacilityACRepairID,
			StaffID:    SeedStaffMikeID,
			Date:       time.Date(2023, 5, 5, 14, 0, 0, 0, time.UTC),
			TimeSlot:   "14:00 - 16:00",
			Status:     model.BookingStatusConfirmed,
			TotalPrice: decimal.NewFromInt(95),
			Notes:      "AC not cooling properly",
			CreatedAt:  time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func seedReviews() []*model.Review {
	return []*model.Review{
		{
			ID:         seedReview1ID,
			BookingID:  seedBooking1ID,
			CustomerID: SeedCustomerAliceID,
			StaffID:    SeedStaffJohnID,
			FacilityID: SeedFacilityPlumbingID,
			Rating:     5,
			Comment:    "John fixed our plumbing issue quickly and professionally. Highly recommend!",
			CreatedAt:  time.Date(2023, 4, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:         seedReview2ID,
			BookingID:  seedBooking2ID,
			CustomerID: SeedCustomerBobID,
			StaffID:    SeedStaffSarahID,
			FacilityID: SeedFacilityCleaningID,
			Rating:     5,
			Comment:    "Sarah did an amazing job cleaning our home. Everything looks spotless!",
			CreatedAt:  time.Date(2023, 4, 21, 0, 0, 0, 0, time.UTC),
		},
	}
}
