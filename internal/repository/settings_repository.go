package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Well-known settings keys.
const (
	// SettingLastRefresh stores the RFC3339 timestamp of the last successful
	// market-data refresh. Absent until the first refresh succeeds.
	SettingLastRefresh = "last_refresh"

	// SettingPolygonAPIKey stores the fernet-encrypted Polygon API key.
	SettingPolygonAPIKey = "polygon_api_key"
)

// SettingsRepository provides access to the settings key/value table.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the provided database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the value for a key, with ok=false when the key is absent.
func (r *SettingsRepository) Get(key string) (value string, ok bool, err error) {
	row := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores the value for a key, replacing any previous value.
func (r *SettingsRepository) Set(key, value string) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`
	if _, err := r.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}
	return nil
}

// LastRefresh implements the refresh gate's store: it returns the timestamp
// of the last successful refresh, or ok=false when none has ever succeeded.
func (r *SettingsRepository) LastRefresh() (time.Time, bool, error) {
	value, ok, err := r.Get(SettingLastRefresh)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid %s value %q: %w", SettingLastRefresh, value, err)
	}
	return t, true, nil
}

// SetLastRefresh stamps the last successful refresh time.
func (r *SettingsRepository) SetLastRefresh(t time.Time) error {
	return r.Set(SettingLastRefresh, t.UTC().Format(time.RFC3339))
}
