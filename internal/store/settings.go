package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/JamesHardey/PoseDetect/internal/posture"
)

// referenceKey is the settings key the reference pose is stored under.
const referenceKey = "reference_pose"

// SettingsRepository provides key-value storage for application settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value by its key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string

	err := r.db.QueryRow(
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	return value, nil
}

// Set stores a setting value, replacing any existing value for the key.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetReference loads the stored reference pose. When none has been stored
// yet, the built-in default reference is returned.
func (r *SettingsRepository) GetReference() (posture.Reference, error) {
	value, err := r.Get(referenceKey)
	if errors.Is(err, ErrNotFound) {
		return posture.DefaultReference(), nil
	}
	if err != nil {
		return posture.Reference{}, err
	}

	var ref posture.Reference
	if err := json.Unmarshal([]byte(value), &ref); err != nil {
		return posture.Reference{}, fmt.Errorf("failed to parse reference pose: %w", err)
	}

	return ref, nil
}

// SetReference persists the reference pose as JSON.
func (r *SettingsRepository) SetReference(ref posture.Reference) error {
	data, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("failed to encode reference pose: %w", err)
	}

	return r.Set(referenceKey, string(data))
}
