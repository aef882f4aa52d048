package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Capture represents one completed two-stage capture: a front-facing image
// and a side-facing image taken in the same session.
type Capture struct {
	ID        string
	FrontPath string
	SidePath  string
	CreatedAt time.Time
}

// CaptureRepository provides CRUD operations for captures.
type CaptureRepository struct {
	db *sql.DB
}

// Captures returns the capture repository for this store.
func (s *Store) Captures() *CaptureRepository {
	return &CaptureRepository{db: s.db}
}

// Create inserts a new capture into the database.
func (r *CaptureRepository) Create(c *Capture) error {
	c.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO captures (id, front_path, side_path, created_at)
		 VALUES (?, ?, ?, ?)`,
		c.ID, c.FrontPath, c.SidePath, c.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a capture by its ID.
func (r *CaptureRepository) GetByID(id string) (*Capture, error) {
	c := &Capture{}

	err := r.db.QueryRow(
		`SELECT id, front_path, side_path, created_at
		 FROM captures WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.FrontPath, &c.SidePath, &c.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

// List retrieves all captures from the database, newest first.
func (r *CaptureRepository) List() ([]*Capture, error) {
	rows, err := r.db.Query(
		`SELECT id, front_path, side_path, created_at
		 FROM captures ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []*Capture
	for rows.Next() {
		c := &Capture{}

		err := rows.Scan(&c.ID, &c.FrontPath, &c.SidePath, &c.CreatedAt)
		if err != nil {
			return nil, err
		}

		captures = append(captures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return captures, nil
}

// Delete removes a capture from the database by its ID.
func (r *CaptureRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM captures WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
