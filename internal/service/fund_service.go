package service

import (
	"strings"

	"github.com/dividenddash/backend/internal/model"
	"github.com/dividenddash/backend/internal/repository"
)

// FundService exposes the cached fund catalog. The catalog is seeded at
// migration time and overwritten by market refreshes; it is never written
// from request handlers.
type FundService struct {
	fundRepo *repository.FundRepository
}

// NewFundService creates a new FundService
func NewFundService(fundRepo *repository.FundRepository) *FundService {
	return &FundService{fundRepo: fundRepo}
}

// GetFunds returns every fund in the catalog.
func (s *FundService) GetFunds() ([]model.Fund, error) {
	return s.fundRepo.GetFunds()
}

// GetFund returns a single fund by symbol.
func (s *FundService) GetFund(symbol string) (model.Fund, error) {
	return s.fundRepo.GetFund(strings.ToUpper(strings.TrimSpace(symbol)))
}
