package appointment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/peluqueria-scheduler/internal/civil"
	domain "github.com/BruksfildServices01/peluqueria-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/peluqueria-scheduler/internal/timezone"
)

// GetAvailability resolves the bookable times of a barber on one date.
// It never writes appointment data.
type GetAvailability struct {
	repo   domain.Repository
	cache  domain.AvailabilityCache
	clock  timezone.Clock
	logger zerolog.Logger
}

func NewGetAvailability(
	repo domain.Repository,
	cache domain.AvailabilityCache,
	clock timezone.Clock,
	logger zerolog.Logger,
) *GetAvailability {
	return &GetAvailability{
		repo:   repo,
		cache:  cache,
		clock:  clock,
		logger: logger.With().Str("usecase", "get_availability").Logger(),
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.Availability, error) {

	if in.BarberID == 0 || in.Date == "" {
		return nil, domain.ErrMissingFields
	}

	date, err := civil.ParseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	now := uc.clock.Now()
	today := civil.DateOf(now)

	if date.Before(today) {
		return &domain.Availability{
			Date:   date.String(),
			Slots:  []string{},
			Reason: domain.ReasonPastDate,
		}, nil
	}

	// today changes minute by minute and is never cached
	var key domain.CacheKey
	if date.After(today) {
		cached, k, ok := uc.cache.Get(ctx, in.BarberID, date.String())
		if ok {
			return cached, nil
		}
		key = k
	}

	// --------------------------------------------------
	// Templates minus booked minus elapsed
	// --------------------------------------------------
	raw, err := uc.repo.GetSlotTemplates(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	templates := make([]civil.TimeOfDay, 0, len(raw))
	for _, s := range raw {
		at, err := civil.ParseTimeOfDay(s)
		if err != nil {
			uc.logger.Warn().Uint("barber_id", in.BarberID).Str("time", s).Msg("skipping malformed slot template")
			continue
		}
		templates = append(templates, at)
	}

	bookedTimes, err := uc.repo.ListBookedTimes(ctx, in.BarberID, date.String())
	if err != nil {
		return nil, err
	}
	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	slots, reason := domain.ResolveSlots(templates, booked, date, today, civil.TimeOf(now))

	av := domain.Availability{
		Date:   date.String(),
		Slots:  slots,
		Reason: reason,
	}

	if key != "" {
		uc.cache.Set(ctx, key, av)
	}

	return &av, nil
}
