package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"tradedesk/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// tokenKey is the fixed key the bearer token is persisted under. It is the
// only value that must survive restarts.
const tokenKey = "session_token"

// Storage is the SQLite-backed local persistence: the session token plus a
// snapshot of the last fetched market rows.
type Storage struct {
	db *gorm.DB
}

// NewStorage opens (or creates) the local database. An empty path resolves
// to the OS config directory.
func NewStorage(path string) (*Storage, error) {
	if path == "" {
		resolved, err := getDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
		path = resolved
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Pure Go SQLite
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Setting{}, &domain.CoinRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "TradeDesk", "data", "tradedesk.db"), nil
}

// ======================================================================================
// Token Operations
// ======================================================================================

// SaveToken persists the bearer token.
func (s *Storage) SaveToken(token string) error {
	return s.SaveSetting(tokenKey, token)
}

// LoadToken returns the persisted bearer token, or "" when none is held.
func (s *Storage) LoadToken() (string, error) {
	var setting domain.Setting
	err := s.db.First(&setting, "key = ?", tokenKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return setting.Value, err
}

// ClearToken removes the persisted bearer token.
func (s *Storage) ClearToken() error {
	return s.db.Where("key = ?", tokenKey).Delete(&domain.Setting{}).Error
}

// ======================================================================================
// Settings Operations
// ======================================================================================

// SaveSetting stores a key-value pair.
func (s *Storage) SaveSetting(key, value string) error {
	setting := domain.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return s.db.Save(&setting).Error
}

// LoadSettings loads all key-value pairs as a map.
func (s *Storage) LoadSettings() (map[string]string, error) {
	var settings []domain.Setting
	if err := s.db.Find(&settings).Error; err != nil {
		return nil, err
	}

	result := make(map[string]string)
	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}
	return result, nil
}

// ======================================================================================
// Coin Cache Operations
// ======================================================================================

// SaveCoins upserts a fetched market page so a restart can render last-known
// data before the first fetch completes.
func (s *Storage) SaveCoins(coins []domain.Coin) error {
	for i := range coins {
		payload, err := json.Marshal(&coins[i])
		if err != nil {
			return fmt.Errorf("encode coin %s: %w", coins[i].ID, err)
		}
		record := domain.CoinRecord{
			ID:        coins[i].ID,
			Symbol:    coins[i].Symbol,
			Name:      coins[i].Name,
			Image:     coins[i].Image,
			Price:     coins[i].CurrentPrice.String(),
			Payload:   string(payload),
			UpdatedAt: time.Now(),
		}
		if err := s.db.Save(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

// LoadCoins returns the cached market rows.
func (s *Storage) LoadCoins() ([]domain.Coin, error) {
	var records []domain.CoinRecord
	if err := s.db.Find(&records).Error; err != nil {
		return nil, err
	}

	coins := make([]domain.Coin, 0, len(records))
	for _, record := range records {
		var coin domain.Coin
		if err := json.Unmarshal([]byte(record.Payload), &coin); err != nil {
			// A corrupt row should not block startup rendering
			continue
		}
		coins = append(coins, coin)
	}
	return coins, nil
}

// DeleteCoin removes one cached row.
func (s *Storage) DeleteCoin(coinID string) error {
	return s.db.Where("id = ?", coinID).Delete(&domain.CoinRecord{}).Error
}
