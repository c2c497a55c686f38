package report

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const DefaultPeriodDays = 30

// Lister is the slice of the appointment repository reports read from.
type Lister interface {
	ListAppointments(ctx context.Context, filter domain.ListFilter) ([]models.Appointment, error)
}

type Totals struct {
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

func (t *Totals) add(price decimal.Decimal) {
	t.Count++
	t.Revenue = t.Revenue.Add(price)
}

type ServiceTotals struct {
	ServiceID uint   `json:"service_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Totals
}

type ProfessionalTotals struct {
	ProfessionalID uint   `json:"professional_id"`
	Name           string `json:"name"`
	Totals
}

type DayTotals struct {
	Date string `json:"date"`
	Totals
}

type Summary struct {
	Totals
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

type CompletedServicesReport struct {
	From          string               `json:"from"`
	To            string               `json:"to"`
	Summary       Summary              `json:"summary"`
	Services      []ServiceTotals      `json:"services"`
	Professionals []ProfessionalTotals `json:"professionals"`
	Days          []DayTotals          `json:"days"`
}

type Input struct {
	// From and To are salon calendar days, both inclusive. Zero values mean
	// the last DefaultPeriodDays days up to today.
	From           time.Time
	To             time.Time
	ProfessionalID uint
}

type CompletedServices struct {
	repo  Lister
	clock timezone.Clock
}

func NewCompletedServices(repo Lister, clock timezone.Clock) *CompletedServices {
	return &CompletedServices{repo: repo, clock: clock}
}

func (uc *CompletedServices) Execute(ctx context.Context, in Input) (*CompletedServicesReport, error) {
	loc := uc.clock.Location()

	to := in.To
	if to.IsZero() {
		to = uc.clock.Now()
	}
	to = schedule.StartOfDay(to, loc)

	from := in.From
	if from.IsZero() {
		from = to.AddDate(0, 0, -DefaultPeriodDays)
	}
	from = schedule.StartOfDay(from, loc)

	if from.After(to) {
		return nil, httperr.ErrValidation("invalid_period", "start date must not be after end date")
	}

	appointments, err := uc.repo.ListAppointments(ctx, domain.ListFilter{
		ProfessionalID: in.ProfessionalID,
		From:           from,
		To:             to.AddDate(0, 0, 1),
		Statuses:       []domain.Status{domain.StatusCompleted},
	})
	if err != nil {
		return nil, err
	}

	rep := aggregate(appointments, loc)
	rep.From = from.Format("2006-01-02")
	rep.To = to.Format("2006-01-02")
	return rep, nil
}

func aggregate(appointments []models.Appointment, loc *time.Location) *CompletedServicesReport {
	services := map[uint]*ServiceTotals{}
	professionals := map[uint]*ProfessionalTotals{}
	days := map[string]*DayTotals{}
	var total Totals

	for _, ap := range appointments {
		total.add(ap.FinalPrice)

		st, ok := services[ap.ServiceID]
		if !ok {
			st = &ServiceTotals{ServiceID: ap.ServiceID}
			if ap.Service != nil {
				st.Name = ap.Service.Name
				st.Category = ap.Service.Category
			}
			services[ap.ServiceID] = st
		}
		st.add(ap.FinalPrice)

		pt, ok := professionals[ap.ProfessionalID]
		if !ok {
			pt = &ProfessionalTotals{ProfessionalID: ap.ProfessionalID}
			if ap.Professional != nil {
				pt.Name = ap.Professional.Name
			}
			professionals[ap.ProfessionalID] = pt
		}
		pt.add(ap.FinalPrice)

		key := ap.StartAt.In(loc).Format("2006-01-02")
		dt, ok := days[key]
		if !ok {
			dt = &DayTotals{Date: key}
			days[key] = dt
		}
		dt.add(ap.FinalPrice)
	}

	rep := &CompletedServicesReport{
		Summary:       Summary{Totals: total, AverageTicket: decimal.Zero},
		Services:      make([]ServiceTotals, 0, len(services)),
		Professionals: make([]ProfessionalTotals, 0, len(professionals)),
		Days:          make([]DayTotals, 0, len(days)),
	}
	if total.Count > 0 {
		rep.Summary.AverageTicket = total.Revenue.Div(decimal.NewFromInt(total.Count)).Round(2)
	}

	for _, st := range services {
		rep.Services = append(rep.Services, *st)
	}
	sort.Slice(rep.Services, func(i, j int) bool {
		if rep.Services[i].Count != rep.Services[j].Count {
			return rep.Services[i].Count > rep.Services[j].Count
		}
		return rep.Services[i].Name < rep.Services[j].Name
	})

	for _, pt := range professionals {
		rep.Professionals = append(rep.Professionals, *pt)
	}
	sort.Slice(rep.Professionals, func(i, j int) bool {
		return rep.Professionals[i].Revenue.GreaterThan(rep.Professionals[j].Revenue)
	})

	for _, dt := range days {
		rep.Days = append(rep.Days, *dt)
	}
	sort.Slice(rep.Days, func(i, j int) bool {
		return rep.Days[i].Date < rep.Days[j].Date
	})

	return rep
}
