package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Tenant --------
	GetTenantByID(
		ctx context.Context,
		id uint,
	) (*models.Tenant, error)

	GetTenantBySlug(
		ctx context.Context,
		slug string,
	) (*models.Tenant, error)

	GetBusinessHours(
		ctx context.Context,
		tenantID uint,
	) (*models.BusinessHours, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		tenantID uint,
		serviceID uint,
	) (*models.Service, error)

	GetProfessional(
		ctx context.Context,
		tenantID uint,
		professionalID uint,
	) (*models.Professional, error)

	ProfessionalOffersService(
		ctx context.Context,
		professionalID uint,
		serviceID uint,
	) (bool, error)

	// -------- Availability --------
	GetAvailabilityRule(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) (*models.AvailabilityRule, error)

	ListAppointmentsForDay(
		ctx context.Context,
		professionalID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointmentIfFree re-checks the overlap rule against the
	// live appointment set and inserts, as one atomic unit. Returns a
	// slot_conflict business error carrying the conflicting ids.
	CreateAppointmentIfFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		tenantID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
