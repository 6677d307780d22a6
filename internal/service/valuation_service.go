package service

import (
	"github.com/dividenddash/backend/internal/model"
	"github.com/dividenddash/backend/internal/portfolio"
	"github.com/dividenddash/backend/internal/repository"
)

// PortfolioSummary is the full valuation view: every position enriched with
// current prices and income projections, plus portfolio-level totals.
type PortfolioSummary struct {
	Positions []model.PositionValuation `json:"positions"`
	Totals    model.PortfolioTotals     `json:"totals"`
}

// ValuationService joins positions against the fund catalog to produce the
// portfolio summary.
type ValuationService struct {
	positionRepo *repository.PositionRepository
	fundRepo     *repository.FundRepository
}

// NewValuationService creates a new ValuationService with the provided repository dependencies.
func NewValuationService(
	positionRepo *repository.PositionRepository,
	fundRepo *repository.FundRepository,
) *ValuationService {
	return &ValuationService{
		positionRepo: positionRepo,
		fundRepo:     fundRepo,
	}
}

// Summary values every position at its current fund price, falling back to
// the position's own average cost when no quote is available.
func (s *ValuationService) Summary() (PortfolioSummary, error) {
	positions, err := s.positionRepo.GetPositions()
	if err != nil {
		return PortfolioSummary{}, err
	}
	funds, err := s.fundRepo.GetFunds()
	if err != nil {
		return PortfolioSummary{}, err
	}

	valuations, totals := portfolio.Valuate(positions, funds)
	return PortfolioSummary{Positions: valuations, Totals: totals}, nil
}
