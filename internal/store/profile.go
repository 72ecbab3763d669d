package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/ayusman/sparsh/internal/gesture"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Thresholds holds the per-profile sensitivity overrides. Zero-valued
// fields fall back to the engine defaults, so a profile only needs the
// thresholds it actually changes.
type Thresholds struct {
	TapWindowMs       int64   `json:"tap_window_ms,omitempty" toml:"tap_window_ms"`
	DoubleTapWindowMs int64   `json:"double_tap_window_ms,omitempty" toml:"double_tap_window_ms"`
	DoubleTapDistance float64 `json:"double_tap_distance,omitempty" toml:"double_tap_distance"`
	LongPressMs       int64   `json:"long_press_ms,omitempty" toml:"long_press_ms"`
	MoveTolerance     float64 `json:"move_tolerance,omitempty" toml:"move_tolerance"`
	VelocityWindowMs  int64   `json:"velocity_window_ms,omitempty" toml:"velocity_window_ms"`
	PageWindowMs      int64   `json:"page_window_ms,omitempty" toml:"page_window_ms"`
	PageVelocity      float64 `json:"page_velocity,omitempty" toml:"page_velocity"` // inches per second
	PixelsPerInch     float64 `json:"pixels_per_inch,omitempty" toml:"pixels_per_inch"`
	ZoomDeadzone      float64 `json:"zoom_deadzone,omitempty" toml:"zoom_deadzone"`
	RotateDeadzone    float64 `json:"rotate_deadzone,omitempty" toml:"rotate_deadzone"` // radians
	PairSeparation    float64 `json:"pair_separation,omitempty" toml:"pair_separation"`
	WheelScale        float64 `json:"wheel_scale,omitempty" toml:"wheel_scale"`
	WheelScrollStep   float64 `json:"wheel_scroll_step,omitempty" toml:"wheel_scroll_step"`
	WheelAngleStep    float64 `json:"wheel_angle_step,omitempty" toml:"wheel_angle_step"` // radians
}

// GestureConfig converts the stored overrides into an engine config.
func (t Thresholds) GestureConfig() gesture.Config {
	return gesture.Config{
		TapWindow:         time.Duration(t.TapWindowMs) * time.Millisecond,
		DoubleTapWindow:   time.Duration(t.DoubleTapWindowMs) * time.Millisecond,
		DoubleTapDistance: t.DoubleTapDistance,
		LongPress:         time.Duration(t.LongPressMs) * time.Millisecond,
		MoveTolerance:     t.MoveTolerance,
		VelocityWindow:    time.Duration(t.VelocityWindowMs) * time.Millisecond,
		PageWindow:        time.Duration(t.PageWindowMs) * time.Millisecond,
		PageVelocity:      t.PageVelocity,
		PixelsPerInch:     t.PixelsPerInch,
		ZoomDeadzone:      t.ZoomDeadzone,
		RotateDeadzone:    t.RotateDeadzone,
		PairSeparation:    t.PairSeparation,
		WheelScale:        t.WheelScale,
		WheelScrollStep:   t.WheelScrollStep,
		WheelAngleStep:    t.WheelAngleStep,
	}
}

// Profile represents a named set of classification thresholds stored in
// the database. At most one profile is active at a time.
type Profile struct {
	ID         string
	Name       string
	Active     bool
	Thresholds Thresholds
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProfileRepository provides CRUD operations for profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

// Create inserts a new profile into the database.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	thresholds, err := json.Marshal(p.Thresholds)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		`INSERT INTO profiles (id, name, active, thresholds, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, boolToInt(p.Active), string(thresholds), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, active, thresholds, created_at, updated_at
		 FROM profiles WHERE id = ?`,
		id,
	))
}

// GetByName retrieves a profile by its name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, active, thresholds, created_at, updated_at
		 FROM profiles WHERE name = ?`,
		name,
	))
}

// GetActive retrieves the active profile.
// Returns nil, nil if no profile is active.
func (r *ProfileRepository) GetActive() (*Profile, error) {
	p, err := r.scanOne(r.db.QueryRow(
		`SELECT id, name, active, thresholds, created_at, updated_at
		 FROM profiles WHERE active = 1`,
	))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// List retrieves all profiles from the database.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(
		`SELECT id, name, active, thresholds, created_at, updated_at
		 FROM profiles ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p := &Profile{}
		var active int
		var thresholds string

		err := rows.Scan(&p.ID, &p.Name, &active, &thresholds, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(thresholds), &p.Thresholds); err != nil {
			return nil, err
		}

		p.Active = active != 0
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Update updates an existing profile in the database.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	thresholds, err := json.Marshal(p.Thresholds)
	if err != nil {
		return err
	}

	result, err := r.db.Exec(
		`UPDATE profiles SET name = ?, thresholds = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, string(thresholds), p.UpdatedAt, p.ID,
	)
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

// Activate marks the given profile active and deactivates all others,
// atomically.
func (r *ProfileRepository) Activate(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE profiles SET active = 0 WHERE active = 1`); err != nil {
		return err
	}

	result, err := tx.Exec(`UPDATE profiles SET active = 1, updated_at = ? WHERE id = ?`, time.Now(), id)
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

	return tx.Commit()
}

// Delete removes a profile from the database by its ID.
func (r *ProfileRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
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

// scanOne scans a single profile row, mapping sql.ErrNoRows to ErrNotFound.
func (r *ProfileRepository) scanOne(row *sql.Row) (*Profile, error) {
	p := &Profile{}
	var active int
	var thresholds string

	err := row.Scan(&p.ID, &p.Name, &active, &thresholds, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(thresholds), &p.Thresholds); err != nil {
		return nil, err
	}

	p.Active = active != 0
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
