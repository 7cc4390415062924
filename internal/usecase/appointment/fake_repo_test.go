package appointment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	loyaltydomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/loyalty"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// IN-MEMORY REPOSITORY
// ======================================================

// fakeRepo mirrors the gorm repository's contract, including the
// atomic conflict re-check inside CreateAppointmentIfFree.
type fakeRepo struct {
	mu sync.Mutex

	tenants       map[uint]*models.Tenant
	slugs         map[string]uint
	hours         map[uint]*models.BusinessHours
	services      map[uint]*models.Service
	professionals map[uint]*models.Professional
	offers        map[[2]uint]bool
	rules         map[[2]uint]*models.AvailabilityRule

	appointments []*models.Appointment
	nextID       uint
}

var _ domain.Repository = (*fakeRepo)(nil)

// newFakeRepo seeds one tenant open Monday through Saturday 09:00 to
// 18:00, one professional available the same hours every open day, and
// one 30-minute service the professional offers.
func newFakeRepo() *fakeRepo {
	r := &fakeRepo{
		tenants:       map[uint]*models.Tenant{},
		slugs:         map[string]uint{},
		hours:         map[uint]*models.BusinessHours{},
		services:      map[uint]*models.Service{},
		professionals: map[uint]*models.Professional{},
		offers:        map[[2]uint]bool{},
		rules:         map[[2]uint]*models.AvailabilityRule{},
	}

	r.tenants[1] = &models.Tenant{
		ID:       1,
		Name:     "Studio Norte",
		Slug:     "studio-norte",
		Active:   true,
		Timezone: "America/Sao_Paulo",
	}
	r.slugs["studio-norte"] = 1

	r.hours[1] = &models.BusinessHours{
		TenantID:  1,
		OpenTime:  "09:00",
		CloseTime: "18:00",
		OpenDays:  "1,2,3,4,5,6",
	}

	r.services[1] = &models.Service{
		ID:          1,
		TenantID:    1,
		Name:        "Corte",
		DurationMin: 30,
		Price:       60,
		Active:      true,
	}

	r.professionals[1] = &models.Professional{ID: 1, TenantID: 1, Name: "Marcos"}
	r.offers[[2]uint{1, 1}] = true

	for wd := 1; wd <= 6; wd++ {
		r.rules[[2]uint{1, uint(wd)}] = &models.AvailabilityRule{
			TenantID:       1,
			ProfessionalID: 1,
			Weekday:        wd,
			StartTime:      "09:00",
			EndTime:        "18:00",
			IsAvailable:    true,
		}
	}

	return r
}

func (r *fakeRepo) GetTenantByID(_ context.Context, id uint) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tenants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRepo) GetTenantBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	r.mu.Lock()
	id, ok := r.slugs[slug]
	r.mu.Unlock()

	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetTenantByID(context.Background(), id)
}

func (r *fakeRepo) GetBusinessHours(_ context.Context, tenantID uint) (*models.BusinessHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.hours[tenantID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *h
	return &cp, nil
}

func (r *fakeRepo) GetService(_ context.Context, tenantID, serviceID uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.services[serviceID]
	if !ok || s.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) GetProfessional(_ context.Context, tenantID, professionalID uint) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.professionals[professionalID]
	if !ok || p.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) ProfessionalOffersService(_ context.Context, professionalID, serviceID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offers[[2]uint{professionalID, serviceID}], nil
}

func (r *fakeRepo) GetAvailabilityRule(_ context.Context, professionalID uint, weekday int) (*models.AvailabilityRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.rules[[2]uint{professionalID, uint(weekday)}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rule
	return &cp, nil
}

func (r *fakeRepo) ListAppointmentsForDay(_ context.Context, professionalID uint, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	return r.ListAppointmentsForPeriod(context.Background(), professionalID, dayStart, dayEnd)
}

func (r *fakeRepo) CreateAppointmentIfFree(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var conflicts []uint
	for _, other := range r.appointments {
		if other.ProfessionalID != ap.ProfessionalID || other.Status == "cancelled" {
			continue
		}
		if schedule.Overlaps(ap.StartTime, ap.EndTime, other.StartTime, other.EndTime) {
			conflicts = append(conflicts, other.ID)
		}
	}
	if len(conflicts) > 0 {
		return httperr.ErrBusinessDetails("slot_conflict", map[string]any{
			"conflicts": conflicts,
		})
	}

	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.appointments = append(r.appointments, &cp)
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, tenantID, appointmentID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ap := range r.appointments {
		if ap.ID == appointmentID && ap.TenantID == tenantID {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.appointments {
		if existing.ID == ap.ID {
			cp := *ap
			r.appointments[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProfessionalID != professionalID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

// ======================================================
// IN-MEMORY LOYALTY ACCOUNTS
// ======================================================

type memAccounts struct {
	mu       sync.Mutex
	accounts map[string]*models.RewardAccount
}

var _ loyaltydomain.Repository = (*memAccounts)(nil)

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: map[string]*models.RewardAccount{}}
}

func (m *memAccounts) key(tenantID uint, phone string) string {
	return fmt.Sprintf("%d|%s", tenantID, phone)
}

func (m *memAccounts) GetAccount(_ context.Context, tenantID uint, clientPhone string) (*models.RewardAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[m.key(tenantID, clientPhone)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) MutateAccount(
	_ context.Context,
	tenantID uint,
	clientPhone string,
	clientName string,
	fn func(*models.RewardAccount) error,
) (*models.RewardAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.key(tenantID, clientPhone)
	a, ok := m.accounts[key]
	if !ok {
		a = &models.RewardAccount{
			TenantID:    tenantID,
			ClientPhone: clientPhone,
			ClientName:  clientName,
		}
		m.accounts[key] = a
	}

	if err := fn(a); err != nil {
		return nil, err
	}
	cp := *a
	return &cp, nil
}
