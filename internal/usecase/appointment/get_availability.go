package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// SlotCache memoizes open slots per professional and salon day.
type SlotCache interface {
	Get(ctx context.Context, professionalID uint, day string) ([]string, bool)
	// Generation changes every time the day is invalidated.
	Generation(ctx context.Context, professionalID uint, day string) string
	// Set drops slots computed under a generation that is no longer current.
	Set(ctx context.Context, professionalID uint, day, gen string, slots []string)
}

type noCache struct{}

func (noCache) Get(context.Context, uint, string) ([]string, bool)  { return nil, false }
func (noCache) Generation(context.Context, uint, string) string     { return "" }
func (noCache) Set(context.Context, uint, string, string, []string) {}

type GetAvailability struct {
	repo  domain.Repository
	cache SlotCache
	clock timezone.Clock
}

// NewGetAvailability accepts a nil cache.
func NewGetAvailability(
	repo domain.Repository,
	cache SlotCache,
	clock timezone.Clock,
) *GetAvailability {
	if cache == nil {
		cache = noCache{}
	}
	return &GetAvailability{
		repo:  repo,
		cache: cache,
		clock: clock,
	}
}

// Execute lists the open "HH:MM" slots of the professional on in.Date's
// calendar day in the salon zone.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	pro, err := uc.repo.GetProfessional(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if !pro.Active {
		return nil, httperr.ErrNotFound("professional")
	}

	loc := uc.clock.Location()
	day := schedule.StartOfDay(in.Date, loc)

	if !pro.WorkingDays.Contains(schedule.ISOWeekday(day)) {
		return []string{}, nil
	}

	key := day.Format("2006-01-02")
	if slots, ok := uc.cache.Get(ctx, pro.ID, key); ok {
		return slots, nil
	}

	// read before the bookings so a concurrent invalidation rejects the Set
	gen := uc.cache.Generation(ctx, pro.ID, key)

	occupied, err := uc.repo.ListActiveStarts(ctx, pro.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	slots := domain.OpenSlots(pro, day, occupied)
	uc.cache.Set(ctx, pro.ID, key, gen, slots)

	return slots, nil
}
