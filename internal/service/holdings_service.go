package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dividenddash/backend/internal/api/request"
	"github.com/dividenddash/backend/internal/apperrors"
	"github.com/dividenddash/backend/internal/dates"
	"github.com/dividenddash/backend/internal/model"
	"github.com/dividenddash/backend/internal/repository"
	"github.com/dividenddash/backend/internal/validation"
)

// HoldingsService owns the purchase ledger and the aggregated positions
// derived from it. Every purchase appends exactly one transaction and folds
// into the symbol's single position using the weighted-average cost method.
type HoldingsService struct {
	db              *sql.DB
	positionRepo    *repository.PositionRepository
	transactionRepo *repository.TransactionRepository
	fundRepo        *repository.FundRepository
}

// NewHoldingsService creates a new HoldingsService with the provided repository dependencies.
func NewHoldingsService(
	db *sql.DB,
	positionRepo *repository.PositionRepository,
	transactionRepo *repository.TransactionRepository,
	fundRepo *repository.FundRepository,
) *HoldingsService {
	return &HoldingsService{
		db:              db,
		positionRepo:    positionRepo,
		transactionRepo: transactionRepo,
		fundRepo:        fundRepo,
	}
}

// AddPurchase records a buy: one new transaction, merged into the symbol's
// position. Both writes happen in a single database transaction so the ledger
// and the position can never drift apart.
//
// Merging follows the weighted-average cost method:
//
//	newShares = oldShares + shares
//	newCost   = oldCost + shares*price
//	avgCost   = newCost / newShares
//
// The position's purchase date is always the incoming purchase's date.
func (s *HoldingsService) AddPurchase(ctx context.Context, req request.AddHoldingRequest) (*model.Position, error) {
	if err := validation.ValidateAddHolding(req); err != nil {
		return nil, err
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	purchaseDate, err := dates.Parse(req.Date)
	if err != nil {
		return nil, apperrors.ErrInvalidDate
	}

	name := strings.TrimSpace(req.Name)
	sector := strings.TrimSpace(req.Sector)
	if fund, err := s.fundRepo.GetFund(symbol); err == nil {
		if name == "" {
			name = fund.Name
		}
		if sector == "" {
			sector = fund.Sector
		}
	}
	if name == "" {
		name = symbol
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txnRepo := s.transactionRepo.WithTx(tx)
	posRepo := s.positionRepo.WithTx(tx)

	txn := model.Transaction{
		ID:        uuid.New().String(),
		Symbol:    symbol,
		Name:      name,
		Type:      model.TransactionBuy,
		Shares:    req.Shares,
		Price:     req.PricePerShare,
		Total:     req.Shares * req.PricePerShare,
		Date:      purchaseDate,
		CreatedAt: time.Now(),
	}
	if err := txnRepo.InsertTransaction(txn); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	pos, err := posRepo.GetPosition(symbol)
	switch {
	case err == nil:
		pos.Shares += req.Shares
		pos.CostBasis += req.Shares * req.PricePerShare
		pos.AvgCost = pos.CostBasis / pos.Shares
		pos.PurchaseDate = purchaseDate
		if name != "" {
			pos.Name = name
		}
		if sector != "" {
			pos.Sector = sector
		}
	case errors.Is(err, apperrors.ErrPositionNotFound):
		pos = model.Position{
			Symbol:       symbol,
			Name:         name,
			Sector:       sector,
			Shares:       req.Shares,
			AvgCost:      req.PricePerShare,
			CostBasis:    req.Shares * req.PricePerShare,
			PurchaseDate: purchaseDate,
		}
	default:
		return nil, err
	}

	if err := posRepo.UpsertPosition(pos); err != nil {
		return nil, fmt.Errorf("failed to update position: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}

	return &pos, nil
}

// Positions returns all current positions.
func (s *HoldingsService) Positions() ([]model.Position, error) {
	return s.positionRepo.GetPositions()
}

// Transactions returns the full purchase history, newest first.
func (s *HoldingsService) Transactions() ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions()
}

// RemovePosition deletes one position. Its transactions remain: the ledger
// is an audit trail, not a mirror of current holdings.
func (s *HoldingsService) RemovePosition(symbol string) error {
	return s.positionRepo.DeletePosition(strings.ToUpper(strings.TrimSpace(symbol)))
}

// ClearPositions removes every position but keeps the transaction history.
func (s *HoldingsService) ClearPositions() error {
	return s.positionRepo.DeleteAll()
}

// ClearAll removes every position and every transaction.
func (s *HoldingsService) ClearAll() error {
	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.positionRepo.WithTx(tx).DeleteAll(); err != nil {
		return err
	}
	if err := s.transactionRepo.WithTx(tx).DeleteAll(); err != nil {
		return err
	}

	return tx.Commit()
}
