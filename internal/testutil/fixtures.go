package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/ben/workshop-manager/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	name     string
	email    string
	password string
}

func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		name:     "Test User",
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the store and returns it with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Username:     b.username,
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		ShopSpaces:   datatypes.JSON("[]"),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// EquipmentTypeBuilder creates catalog entries for tests
type EquipmentTypeBuilder struct {
	name         string
	intervalDays int
	width        float64
	height       float64
	depth        float64
}

func NewEquipmentTypeBuilder() *EquipmentTypeBuilder {
	return &EquipmentTypeBuilder{
		name:         fmt.Sprintf("Test Tool %s", uuid.New().String()[:8]),
		intervalDays: 90,
		width:        30,
		height:       40,
		depth:        50,
	}
}

func (b *EquipmentTypeBuilder) WithName(name string) *EquipmentTypeBuilder {
	b.name = name
	return b
}

func (b *EquipmentTypeBuilder) WithMaintenanceInterval(days int) *EquipmentTypeBuilder {
	b.intervalDays = days
	return b
}

func (b *EquipmentTypeBuilder) Build(t *testing.T, db *gorm.DB) *domain.EquipmentType {
	t.Helper()

	equipmentType := &domain.EquipmentType{
		Name:                    b.name,
		Description:             "test catalog entry",
		Width:                   b.width,
		Height:                  b.height,
		Depth:                   b.depth,
		MaintenanceIntervalDays: b.intervalDays,
		Color:                   "#aaa",
		CreatedAt:               time.Now(),
	}

	if err := db.Create(equipmentType).Error; err != nil {
		t.Fatalf("failed to create equipment type: %v", err)
	}

	return equipmentType
}

// EquipmentInstanceBuilder creates owned equipment for tests
type EquipmentInstanceBuilder struct {
	userID          uint
	equipmentTypeID uint
	datePurchased   time.Time
	nextMaintenance *time.Time
	notes           string
}

func NewEquipmentInstanceBuilder(userID, equipmentTypeID uint) *EquipmentInstanceBuilder {
	return &EquipmentInstanceBuilder{
		userID:          userID,
		equipmentTypeID: equipmentTypeID,
		datePurchased:   time.Now().AddDate(0, 0, -30),
		notes:           "test equipment",
	}
}

func (b *EquipmentInstanceBuilder) WithDatePurchased(d time.Time) *EquipmentInstanceBuilder {
	b.datePurchased = d
	return b
}

func (b *EquipmentInstanceBuilder) WithNextMaintenance(d time.Time) *EquipmentInstanceBuilder {
	b.nextMaintenance = &d
	return b
}

func (b *EquipmentInstanceBuilder) WithNotes(notes string) *EquipmentInstanceBuilder {
	b.notes = notes
	return b
}

func (b *EquipmentInstanceBuilder) Build(t *testing.T, db *gorm.DB) *domain.EquipmentInstance {
	t.Helper()

	instance := &domain.EquipmentInstance{
		EquipmentTypeID:     b.equipmentTypeID,
		UserID:              b.userID,
		DatePurchased:       b.datePurchased,
		NextMaintenanceDate: b.nextMaintenance,
		Notes:               b.notes,
		CreatedAt:           time.Now(),
	}

	if err := db.Create(instance).Error; err != nil {
		t.Fatalf("failed to create equipment instance: %v", err)
	}

	return instance
}

// ShopSpaceBuilder creates shop spaces for tests
type ShopSpaceBuilder struct {
	username  string
	shopName  string
	length    float64
	width     float64
	height    float64
	equipment domain.PlacementList
}

func NewShopSpaceBuilder(username string) *ShopSpaceBuilder {
	return &ShopSpaceBuilder{
		username: username,
		shopName: fmt.Sprintf("TestShop%s", uuid.New().String()[:8]),
		length:   500,
		width:    400,
		height:   300,
	}
}

func (b *ShopSpaceBuilder) WithShopName(name string) *ShopSpaceBuilder {
	b.shopName = name
	return b
}

func (b *ShopSpaceBuilder) WithDimensions(length, width, height float64) *ShopSpaceBuilder {
	b.length = length
	b.width = width
	b.height = height
	return b
}

func (b *ShopSpaceBuilder) WithPlacement(p domain.Placement) *ShopSpaceBuilder {
	b.equipment = append(b.equipment, p)
	return b
}

func (b *ShopSpaceBuilder) Build(t *testing.T, db *gorm.DB) *domain.ShopSpace {
	t.Helper()

	now := time.Now()
	shop := &domain.ShopSpace{
		ShopID:            fmt.Sprintf("%s_%s_%s", b.username, b.shopName, now.Format("20060102_150405")),
		Username:          b.username,
		ShopName:          b.shopName,
		CreationTimestamp: now,
		Length:            b.length,
		Width:             b.width,
		Height:            b.height,
		Equipment:         b.equipment,
	}

	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("failed to create shop space: %v", err)
	}

	return shop
}
