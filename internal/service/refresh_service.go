package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/dividenddash/backend/internal/apperrors"
	"github.com/dividenddash/backend/internal/model"
	"github.com/dividenddash/backend/internal/refresh"
	"github.com/dividenddash/backend/internal/repository"
)

// MarketClient fetches fund snapshots from the market data provider.
type MarketClient interface {
	FundSnapshot(ctx context.Context, symbol string) (model.Fund, error)
	TickerName(ctx context.Context, symbol string) (string, error)
}

// ClientFactory builds a market client for the given API key. The client is
// rebuilt per refresh so key rotation takes effect without a restart.
type ClientFactory func(apiKey string) MarketClient

// RefreshService updates the fund catalog from the market data provider.
// Refreshes are gated by a cooldown, deduplicated across concurrent callers,
// and run symbol by symbol so a single bad ticker cannot sink the batch.
type RefreshService struct {
	gate         *refresh.Gate
	settingsRepo *repository.SettingsRepository
	fundRepo     *repository.FundRepository
	newClient    ClientFactory
	fernetKey    *fernet.Key
	flight       singleflight.Group
}

// NewRefreshService creates a new RefreshService. fernetKey encrypts the
// stored provider API key at rest.
func NewRefreshService(
	gate *refresh.Gate,
	settingsRepo *repository.SettingsRepository,
	fundRepo *repository.FundRepository,
	newClient ClientFactory,
	fernetKey *fernet.Key,
) *RefreshService {
	return &RefreshService{
		gate:         gate,
		settingsRepo: settingsRepo,
		fundRepo:     fundRepo,
		newClient:    newClient,
		fernetKey:    fernetKey,
	}
}

// SetAPIKey stores the market data provider API key, encrypted at rest.
func (s *RefreshService) SetAPIKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return apperrors.ErrAPIKeyNotConfigured
	}
	token, err := fernet.EncryptAndSign([]byte(apiKey), s.fernetKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt api key: %w", err)
	}
	return s.settingsRepo.Set(repository.SettingPolygonAPIKey, string(token))
}

// apiKey loads and decrypts the stored provider API key.
func (s *RefreshService) apiKey() (string, error) {
	token, ok, err := s.settingsRepo.Get(repository.SettingPolygonAPIKey)
	if err != nil {
		return "", err
	}
	if !ok || token == "" {
		return "", apperrors.ErrAPIKeyNotConfigured
	}
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{s.fernetKey})
	if msg == nil {
		return "", apperrors.ErrAPIKeyNotConfigured
	}
	return string(msg), nil
}

// Status reports the current gate state for API consumers.
func (s *RefreshService) Status() (model.RefreshStatus, error) {
	remaining, err := s.gate.TimeUntilReady()
	if err != nil {
		return model.RefreshStatus{}, err
	}

	status := model.RefreshStatus{
		CanRefresh:     remaining == 0,
		TimeUntilNext:  remaining.Round(time.Second).String(),
		SecondsToReady: int64(remaining / time.Second),
		CooldownHours:  s.gate.Cooldown().Hours(),
	}

	last, ok, err := s.gate.LastRefresh()
	if err != nil {
		return model.RefreshStatus{}, err
	}
	if ok {
		status.LastRefresh = &last
	}
	return status, nil
}

// Refresh runs a gated catalog refresh. Concurrent callers share a single
// in-flight refresh instead of each hitting the provider.
func (s *RefreshService) Refresh(ctx context.Context) (*model.RefreshResult, error) {
	v, err, _ := s.flight.Do("refresh", func() (interface{}, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.RefreshResult), nil
}

func (s *RefreshService) refresh(ctx context.Context) (*model.RefreshResult, error) {
	var result *model.RefreshResult

	err := s.gate.PerformRefresh(ctx, func(ctx context.Context) error {
		apiKey, err := s.apiKey()
		if err != nil {
			return err
		}
		client := s.newClient(apiKey)

		symbols, err := s.fundRepo.Symbols()
		if err != nil {
			return err
		}

		batch := &model.RefreshResult{
			Timestamp: time.Now(),
			Results:   make([]model.SymbolRefreshResult, 0, len(symbols)),
		}

		for _, symbol := range symbols {
			if err := s.refreshSymbol(ctx, client, symbol); err != nil {
				log.Warn().Err(err).Str("symbol", symbol).Msg("fund refresh failed")
				batch.Failed++
				batch.Results = append(batch.Results, model.SymbolRefreshResult{
					Symbol: symbol,
					Error:  err.Error(),
				})
				continue
			}
			batch.Updated++
			batch.Results = append(batch.Results, model.SymbolRefreshResult{Symbol: symbol})
		}

		// A batch where nothing updated means the provider is down or the
		// key is bad. Fail the refresh so the cooldown does not advance and
		// the caller can retry once the provider recovers.
		if batch.Updated == 0 && len(symbols) > 0 {
			return fmt.Errorf("%w: all %d symbols failed", apperrors.ErrUpstreamFetch, len(symbols))
		}

		result = batch
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("updated", result.Updated).Int("failed", result.Failed).Msg("fund catalog refreshed")
	return result, nil
}

// refreshSymbol fetches a fresh snapshot and merges it into the catalog row,
// preserving the name and sector the snapshot does not carry.
func (s *RefreshService) refreshSymbol(ctx context.Context, client MarketClient, symbol string) error {
	snapshot, err := client.FundSnapshot(ctx, symbol)
	if err != nil {
		return err
	}

	if existing, err := s.fundRepo.GetFund(symbol); err == nil {
		snapshot.Name = existing.Name
		snapshot.Sector = existing.Sector
	}
	if snapshot.Name == "" {
		name, err := client.TickerName(ctx, symbol)
		if err == nil && name != "" {
			snapshot.Name = name
		} else {
			snapshot.Name = symbol
		}
	}

	return s.fundRepo.UpsertFund(snapshot)
}
