package appointment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/metrics"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/timezone"
)

// SweepExpired deletes every appointment dated before today.
type SweepExpired struct {
	repo   domain.Repository
	cache  domain.AvailabilityCache
	clock  timezone.Clock
	audit  *audit.Dispatcher
	logger zerolog.Logger
}

func NewSweepExpired(
	repo domain.Repository,
	cache domain.AvailabilityCache,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *SweepExpired {
	return &SweepExpired{
		repo:   repo,
		cache:  cache,
		clock:  clock,
		audit:  audit,
		logger: logger.With().Str("usecase", "sweep_expired").Logger(),
	}
}

// Execute returns how many (barber, date) agendas were cleared.
func (uc *SweepExpired) Execute(ctx context.Context) (int, error) {
	today := timezone.Today(uc.clock).String()

	days, err := uc.repo.DeleteAppointmentsBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	perShop := make(map[uint][]string)
	for _, d := range days {
		uc.cache.Invalidate(ctx, d.BarberID, d.Date)
		perShop[d.ShopID] = append(perShop[d.ShopID], d.Date)
	}

	for shopID, dates := range perShop {
		uc.audit.Dispatch(audit.Event{
			ShopID:   shopID,
			Action:   audit.ActionAppointmentsExpired,
			Entity:   "appointment",
			Metadata: map[string]any{"before": today, "dates": dates},
		})
	}

	metrics.AddExpired(len(days))
	uc.logger.Info().Str("before", today).Int("barber_days", len(days)).Msg("expired appointments swept")

	return len(days), nil
}
