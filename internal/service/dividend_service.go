package service

import (
	"github.com/dividenddash/backend/internal/dates"
	"github.com/dividenddash/backend/internal/dividend"
	"github.com/dividenddash/backend/internal/model"
	"github.com/dividenddash/backend/internal/repository"
)

// DividendService projects upcoming dividend events for the current
// positions against the fund catalog.
type DividendService struct {
	positionRepo *repository.PositionRepository
	fundRepo     *repository.FundRepository
	today        func() dates.Date
}

// NewDividendService creates a new DividendService with the provided repository dependencies.
func NewDividendService(
	positionRepo *repository.PositionRepository,
	fundRepo *repository.FundRepository,
) *DividendService {
	return &DividendService{
		positionRepo: positionRepo,
		fundRepo:     fundRepo,
		today:        dates.Today,
	}
}

// WithToday overrides the clock. Used by tests to pin the projection date.
func (s *DividendService) WithToday(today func() dates.Date) *DividendService {
	s.today = today
	return s
}

func (s *DividendService) project(horizonDays int) ([]model.DividendEvent, dates.Date, error) {
	positions, err := s.positionRepo.GetPositions()
	if err != nil {
		return nil, dates.Date{}, err
	}
	funds, err := s.fundRepo.GetFunds()
	if err != nil {
		return nil, dates.Date{}, err
	}
	today := s.today()
	return dividend.Project(positions, funds, today, horizonDays), today, nil
}

// Upcoming returns projected dividend events within the horizon, sorted by
// ex-date ascending, optionally filtered to a period bucket.
func (s *DividendService) Upcoming(horizonDays int, period string) ([]model.DividendEvent, error) {
	if horizonDays <= 0 {
		horizonDays = dividend.DefaultHorizonDays
	}
	events, today, err := s.project(horizonDays)
	if err != nil {
		return nil, err
	}
	return dividend.FilterByPeriod(events, today, period), nil
}

// Summary aggregates the default-horizon projection into headline counts.
func (s *DividendService) Summary() (model.DividendSummary, error) {
	events, _, err := s.project(dividend.DefaultHorizonDays)
	if err != nil {
		return model.DividendSummary{}, err
	}
	return dividend.Summarize(events), nil
}

// Calendar returns the month's dividend events keyed by day of month.
// The projection horizon is stretched to a year so any displayed month is
// fully covered.
func (s *DividendService) Calendar(year, month int) (map[int]model.CalendarDay, error) {
	events, _, err := s.project(366)
	if err != nil {
		return nil, err
	}
	return dividend.Calendar(events, year, month), nil
}
