package appointment

import (
	"context"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/dto"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/models"
)

// BarberDirectory is the read-only view of barbers the core needs.
type BarberDirectory interface {
	// GetBarber returns ErrBarberNotFound when the barber does not exist.
	GetBarber(ctx context.Context, barberID uint) (*models.Barber, error)

	// GetSlotTemplates lists the barber's daily times in HH:MM order.
	// An unknown barber has no templates.
	GetSlotTemplates(ctx context.Context, barberID uint) ([]string, error)
}

// ServiceCatalog resolves prices of a shop's services.
type ServiceCatalog interface {
	// GetServicePrice returns nil when the service or its price is unknown.
	GetServicePrice(ctx context.Context, shopID uint, serviceName string) (*float64, error)
}

// ActorDirectory loads who is performing an operation.
type ActorDirectory interface {
	GetActor(ctx context.Context, userID uint) (*Actor, error)
}

// Repository owns appointment rows. Every insert and delete of an
// appointment goes through it.
type Repository interface {
	BarberDirectory
	ServiceCatalog
	ActorDirectory

	// -------- Booking --------
	ListBookedTimes(ctx context.Context, barberID uint, date string) ([]string, error)

	SlotTaken(ctx context.Context, barberID uint, date, time string) (bool, error)

	// CreateAppointment returns ErrSlotConflict when the unique index over
	// (barber, date, time) rejects the row.
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// -------- Cancellation / expiry --------
	GetAppointment(ctx context.Context, appointmentID uint) (*models.Appointment, error)

	// DeleteAppointment returns ErrAppointmentNotFound when no row was removed.
	DeleteAppointment(ctx context.Context, appointmentID uint) error

	// DeleteAppointmentsBefore removes every appointment dated before date
	// and reports the affected (barber, date) pairs.
	DeleteAppointmentsBefore(ctx context.Context, date string) ([]dto.BarberDay, error)

	// -------- Listings --------
	ListAppointmentsForDay(ctx context.Context, barberID uint, date string) ([]dto.AgendaEntryDTO, error)

	ListAppointmentsForClient(ctx context.Context, clientID uint, fromDate string) ([]dto.ClientAppointmentDTO, error)

	CountAppointmentsByMonth(ctx context.Context, barberID uint, limit int) ([]dto.MonthTotalDTO, error)
}

// CacheKey addresses one cached availability under the versions current
// when it was looked up. An empty key disables the write.
type CacheKey string

// AvailabilityCache stores resolved availability for future dates.
//
// Get returns the key a later Set must use, so a result computed from
// rows read before an invalidation can never be served after it.
type AvailabilityCache interface {
	Get(ctx context.Context, barberID uint, date string) (*Availability, CacheKey, bool)
	Set(ctx context.Context, key CacheKey, av Availability)
	// Invalidate must be called after any write to (barber, date).
	Invalidate(ctx context.Context, barberID uint, date string)
	// InvalidateBarber drops every cached date of the barber, used when
	// the slot templates change.
	InvalidateBarber(ctx context.Context, barberID uint)
}

// Authorizer holds the role and ownership checks of the core.
type Authorizer interface {
	CanCancel(actor Actor, ap *models.Appointment) bool
	// CanViewAgenda covers a barber's daily agenda and monthly history.
	CanViewAgenda(actor Actor, barber *models.Barber) bool
}
