package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ben/workshop-manager/internal/cache"
	"github.com/ben/workshop-manager/internal/domain"
	"github.com/ben/workshop-manager/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dueSoonWindowDays = 30

// EquipmentService owns the catalog, the per-user instances and the
// maintenance-date arithmetic. It reads the shop-space store only for
// the cross-shop schedule, which is read-only and reflects whatever the
// stores currently contain.
type EquipmentService struct {
	types     repository.EquipmentTypeRepository
	instances repository.EquipmentInstanceRepository
	users     repository.UserRepository
	shops     repository.ShopSpaceRepository
	catalog   *cache.CatalogCache
	log       *zap.Logger
}

func NewEquipmentService(
	types repository.EquipmentTypeRepository,
	instances repository.EquipmentInstanceRepository,
	users repository.UserRepository,
	shops repository.ShopSpaceRepository,
	catalog *cache.CatalogCache,
	log *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		types:     types,
		instances: instances,
		users:     users,
		shops:     shops,
		catalog:   catalog,
		log:       log,
	}
}

type AddEquipmentTypeInput struct {
	Name                    string
	Description             string
	Width                   float64
	Height                  float64
	Depth                   float64
	MaintenanceIntervalDays int
	Color                   string
	Manufacturer            string
	Model                   string
	ImagePath               string
}

func (s *EquipmentService) AddEquipmentType(ctx context.Context, input AddEquipmentTypeInput) (*domain.EquipmentType, error) {
	equipmentType := &domain.EquipmentType{
		Name:                    input.Name,
		Description:             input.Description,
		Width:                   input.Width,
		Height:                  input.Height,
		Depth:                   input.Depth,
		MaintenanceIntervalDays: input.MaintenanceIntervalDays,
		Color:                   input.Color,
		Manufacturer:            input.Manufacturer,
		Model:                   input.Model,
		ImagePath:               input.ImagePath,
	}
	if equipmentType.Color == "" {
		equipmentType.Color = "#aaa"
	}

	if err := s.types.Create(ctx, equipmentType); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.NewValidationError("equipment type %q already exists: %v", input.Name, err)
		}
		return nil, err
	}

	s.catalog.Invalidate(ctx)
	return equipmentType, nil
}

func (s *EquipmentService) GetCatalog(ctx context.Context) ([]*domain.EquipmentType, error) {
	if types, ok := s.catalog.Get(ctx); ok {
		return types, nil
	}
	types, err := s.types.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.catalog.Set(ctx, types)
	return types, nil
}

func (s *EquipmentService) GetEquipmentTypeByID(ctx context.Context, id uint) (*domain.EquipmentType, error) {
	equipmentType, err := s.types.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return equipmentType, nil
}

// AddEquipmentToUser creates an owned instance of a catalog type. The
// purchase date defaults to today; the first maintenance is due one
// interval after it.
func (s *EquipmentService) AddEquipmentToUser(ctx context.Context, userID, equipmentTypeID uint, notes string, purchaseDate *time.Time) (*domain.EquipmentInstance, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewValidationError("user with ID %d does not exist", userID)
		}
		return nil, err
	}

	equipmentType, err := s.types.GetByID(ctx, equipmentTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewValidationError("equipment type with ID %d does not exist", equipmentTypeID)
		}
		return nil, err
	}

	purchased := today()
	if purchaseDate != nil {
		purchased = dateOf(*purchaseDate)
	}
	next := purchased.AddDate(0, 0, equipmentType.MaintenanceIntervalDays)

	instance := &domain.EquipmentInstance{
		EquipmentTypeID:     equipmentTypeID,
		UserID:              userID,
		DatePurchased:       purchased,
		NextMaintenanceDate: &next,
		Notes:               notes,
	}
	if err := s.instances.Create(ctx, instance); err != nil {
		return nil, err
	}

	return s.instances.GetByID(ctx, instance.ID)
}

func (s *EquipmentService) GetUserEquipmentByID(ctx context.Context, id uint) (*domain.EquipmentInstance, error) {
	instance, err := s.instances.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return instance, nil
}

func (s *EquipmentService) GetEquipmentByUser(ctx context.Context, userID uint) ([]*domain.EquipmentInstance, error) {
	return s.instances.GetByUserID(ctx, userID)
}

func (s *EquipmentService) GetAllUserEquipment(ctx context.Context) ([]*domain.EquipmentInstance, error) {
	return s.instances.GetAll(ctx)
}

func (s *EquipmentService) DeleteUserEquipment(ctx context.Context, id uint) (bool, error) {
	// Deliberately does not touch shop-space placement lists; a
	// placement referencing a deleted instance dangles until the shop
	// owner removes it.
	return s.instances.Delete(ctx, id)
}

// PerformMaintenance records a service event. The next due date is
// recomputed from the maintenance date, not the purchase date: the
// interval always anchors to the most recent service.
func (s *EquipmentService) PerformMaintenance(ctx context.Context, id uint, maintenanceDate *time.Time) (*domain.EquipmentInstance, error) {
	instance, err := s.instances.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewValidationError("equipment with ID %d not found", id)
		}
		return nil, err
	}

	serviced := today()
	if maintenanceDate != nil {
		serviced = dateOf(*maintenanceDate)
	}
	next := serviced.AddDate(0, 0, instance.EquipmentType.MaintenanceIntervalDays)

	instance.LastMaintenanceDate = &serviced
	instance.NextMaintenanceDate = &next
	if err := s.instances.Update(ctx, instance); err != nil {
		return nil, err
	}

	return s.instances.GetByID(ctx, id)
}

func (s *EquipmentService) GetOverdueMaintenance(ctx context.Context, userID uint) ([]*domain.EquipmentInstance, error) {
	return s.instances.GetOverdue(ctx, userID, today())
}

func (s *EquipmentService) GetMaintenanceDue(ctx context.Context, userID uint, daysAhead int) ([]*domain.EquipmentInstance, error) {
	from := today()
	return s.instances.GetDueBetween(ctx, userID, from, from.AddDate(0, 0, daysAhead))
}

type MaintenanceSummary struct {
	UserID             uint `json:"user_id"`
	TotalEquipment     int  `json:"total_equipment"`
	OverdueMaintenance int  `json:"overdue_maintenance"`
	DueWithin30Days    int  `json:"due_within_30_days"`
}

// GetMaintenanceSummary counts a user's equipment by maintenance state.
// Overdue (strictly before today) and due-soon (today through +30d) are
// mutually exclusive by construction.
func (s *EquipmentService) GetMaintenanceSummary(ctx context.Context, userID uint) (*MaintenanceSummary, error) {
	total, err := s.instances.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	overdue, err := s.GetOverdueMaintenance(ctx, userID)
	if err != nil {
		return nil, err
	}
	dueSoon, err := s.GetMaintenanceDue(ctx, userID, dueSoonWindowDays)
	if err != nil {
		return nil, err
	}

	return &MaintenanceSummary{
		UserID:             userID,
		TotalEquipment:     len(total),
		OverdueMaintenance: len(overdue),
		DueWithin30Days:    len(dueSoon),
	}, nil
}

type MaintenanceItem struct {
	EquipmentID             uint      `json:"equipment_id"`
	EquipmentName           string    `json:"equipment_name"`
	ShopID                  string    `json:"shop_id"`
	ShopName                string    `json:"shop_name"`
	NextMaintenanceDate     time.Time `json:"next_maintenance_date"`
	MaintenanceIntervalDays int       `json:"maintenance_interval_days"`
	DaysUntil               int       `json:"days_until"`
	Notes                   string    `json:"notes"`
	IsOverdue               bool      `json:"is_overdue"`
	IsDueSoon               bool      `json:"is_due_soon"`
}

type MaintenanceSchedule struct {
	Overdue  []MaintenanceItem `json:"overdue"`
	ThisWeek []MaintenanceItem `json:"this_week"`
	Upcoming []MaintenanceItem `json:"upcoming"`
}

// GetMaintenanceSchedule cross-joins every shop space owned by the
// user's username against every placement, resolves maintenance dates
// and buckets the results. Placements whose instance is gone or has no
// due date are skipped. This is the one place maintenance data and
// placement data meet; it is read-only.
func (s *EquipmentService) GetMaintenanceSchedule(ctx context.Context, userID uint) (*MaintenanceSchedule, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewValidationError("user with ID %d does not exist", userID)
		}
		return nil, err
	}

	shops, err := s.shops.GetByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	var items []MaintenanceItem
	now := today()
	for _, shop := range shops {
		for _, placement := range shop.Equipment {
			instance, err := s.instances.GetByID(ctx, placement.EquipmentID)
			if err != nil {
				// Dangling placement; shops are never rewritten when
				// instances are deleted.
				s.log.Debug("skipping placement without instance",
					zap.String("shop_id", shop.ShopID),
					zap.Uint("equipment_id", placement.EquipmentID))
				continue
			}
			if instance.NextMaintenanceDate == nil {
				continue
			}

			daysUntil := daysBetween(now, *instance.NextMaintenanceDate)
			item := MaintenanceItem{
				EquipmentID:         placement.EquipmentID,
				ShopID:              shop.ShopID,
				ShopName:            shop.ShopName,
				NextMaintenanceDate: dateOf(*instance.NextMaintenanceDate),
				DaysUntil:           daysUntil,
				Notes:               instance.Notes,
				IsOverdue:           daysUntil < 0,
				IsDueSoon:           daysUntil >= 0 && daysUntil <= 7,
			}
			if instance.EquipmentType != nil {
				item.EquipmentName = instance.EquipmentType.Name
				item.MaintenanceIntervalDays = instance.EquipmentType.MaintenanceIntervalDays
			}
			items = append(items, item)
		}
	}

	schedule := &MaintenanceSchedule{
		Overdue:  []MaintenanceItem{},
		ThisWeek: []MaintenanceItem{},
		Upcoming: []MaintenanceItem{},
	}
	for _, item := range items {
		switch {
		case item.IsOverdue:
			schedule.Overdue = append(schedule.Overdue, item)
		case item.IsDueSoon:
			schedule.ThisWeek = append(schedule.ThisWeek, item)
		default:
			schedule.Upcoming = append(schedule.Upcoming, item)
		}
	}
	sortByDaysUntil(schedule.Overdue)
	sortByDaysUntil(schedule.ThisWeek)
	sortByDaysUntil(schedule.Upcoming)

	return schedule, nil
}

func sortByDaysUntil(items []MaintenanceItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DaysUntil < items[j].DaysUntil
	})
}

// dateOf truncates a timestamp to its civil date at midnight UTC.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func today() time.Time {
	return dateOf(time.Now())
}

func daysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}
