// Package store persists defined tracks in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"track-definition/internal/common"
	"track-definition/internal/monitoring"
	"track-definition/internal/numeric"
	"track-definition/internal/track"
)

// ErrTrackNotFound is returned for an unknown track ID.
var ErrTrackNotFound = errors.New("store: track not found")

// TrackRecord is the summary row of a stored track.
type TrackRecord struct {
	TrackID     string  `json:"track_id"`
	Name        string  `json:"name"`
	Samples     int     `json:"samples"`
	OuterPoints int     `json:"outer_points"`
	Length      float64 `json:"length"`
	MeanWidth   float64 `json:"mean_width"`
	MinWidth    float64 `json:"min_width"`
	MaxWidth    float64 `json:"max_width"`
	CreatedAt   int64   `json:"created_at"`
}

// StoredTrack is a TrackRecord with its full geometry.
type StoredTrack struct {
	TrackRecord
	Geometry *track.Geometry
}

// Store provides persistence for defined tracks.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and migrates it
// to the latest schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SchemaVersion returns the applied migration version.
func (s *Store) SchemaVersion() (uint, error) {
	v, dirty, err := migrationVersion(s.db)
	if err != nil {
		return 0, err
	}
	if dirty {
		return v, fmt.Errorf("store: schema version %d is dirty", v)
	}
	return v, nil
}

// Save persists g under name in one transaction and returns the new track ID.
func (s *Store) Save(ctx context.Context, name string, g *track.Geometry) (string, error) {
	summary := track.Summarize(g)
	rec := TrackRecord{
		TrackID:     uuid.New().String(),
		Name:        name,
		Samples:     g.Len(),
		OuterPoints: len(g.Outer),
		Length:      summary.Length,
		MeanWidth:   summary.MeanWidth,
		MinWidth:    summary.MinWidth,
		MaxWidth:    summary.MaxWidth,
		CreatedAt:   time.Now().UnixNano(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO tracks (
			track_id, name, samples, outer_points, length,
			mean_width, min_width, max_width, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.TrackID, rec.Name, rec.Samples, rec.OuterPoints, rec.Length,
		rec.MeanWidth, rec.MinWidth, rec.MaxWidth, rec.CreatedAt,
	); err != nil {
		return "", fmt.Errorf("store: insert track: %w", err)
	}

	sampleStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO track_samples (
			track_id, idx, inner_x, inner_y, opposing_x, opposing_y,
			centre_x, centre_y, width, arc_length, curvature, rejections
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("store: prepare samples: %w", err)
	}
	defer sampleStmt.Close()

	for i := 0; i < g.Len(); i++ {
		rejections := 0
		if i < len(g.Rejections) {
			rejections = g.Rejections[i]
		}
		if _, err := sampleStmt.ExecContext(ctx,
			rec.TrackID, i,
			g.Inner[i].X, g.Inner[i].Y,
			g.Opposing[i].X, g.Opposing[i].Y,
			g.Centreline[i].X, g.Centreline[i].Y,
			g.Width[i], g.ArcLength[i], g.Curvature[i], rejections,
		); err != nil {
			return "", fmt.Errorf("store: insert sample %d: %w", i, err)
		}
	}

	outerStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO track_outer_points (track_id, idx, x, y) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("store: prepare outer points: %w", err)
	}
	defer outerStmt.Close()

	for i, p := range g.Outer {
		if _, err := outerStmt.ExecContext(ctx, rec.TrackID, i, p.X, p.Y); err != nil {
			return "", fmt.Errorf("store: insert outer point %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit: %w", err)
	}
	monitoring.Logf("store: saved track %s (%q, %d samples)", rec.TrackID, name, rec.Samples)
	return rec.TrackID, nil
}

// List returns all stored tracks, newest first.
func (s *Store) List(ctx context.Context) ([]TrackRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT track_id, name, samples, outer_points, length,
		       mean_width, min_width, max_width, created_at
		FROM tracks
		ORDER BY created_at DESC, track_id`)
	if err != nil {
		return nil, fmt.Errorf("store: list tracks: %w", err)
	}
	defer rows.Close()

	var records []TrackRecord
	for rows.Next() {
		var r TrackRecord
		if err := rows.Scan(&r.TrackID, &r.Name, &r.Samples, &r.OuterPoints, &r.Length,
			&r.MeanWidth, &r.MinWidth, &r.MaxWidth, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan track: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Load returns the track with the given ID and its geometry.
func (s *Store) Load(ctx context.Context, trackID string) (*StoredTrack, error) {
	var st StoredTrack
	err := s.db.QueryRowContext(ctx, `
		SELECT track_id, name, samples, outer_points, length,
		       mean_width, min_width, max_width, created_at
		FROM tracks WHERE track_id = ?`, trackID,
	).Scan(&st.TrackID, &st.Name, &st.Samples, &st.OuterPoints, &st.Length,
		&st.MeanWidth, &st.MinWidth, &st.MaxWidth, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load track %s: %w", trackID, err)
	}

	g := &track.Geometry{
		Inner:      make(track.Contour, 0, st.Samples),
		Opposing:   make([]common.Vec2, 0, st.Samples),
		Centreline: make([]common.Vec2, 0, st.Samples),
		Width:      make([]float64, 0, st.Samples),
		ArcLength:  make([]float64, 0, st.Samples),
		Curvature:  make([]float64, 0, st.Samples),
		Rejections: make([]int, 0, st.Samples),
		Outer:      make(track.Contour, 0, st.OuterPoints),
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT inner_x, inner_y, opposing_x, opposing_y, centre_x, centre_y,
		       width, arc_length, curvature, rejections
		FROM track_samples WHERE track_id = ? ORDER BY idx`, trackID)
	if err != nil {
		return nil, fmt.Errorf("store: load samples: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var in, opp, centre common.Vec2
		var width, arc, curv float64
		var rejections int
		if err := rows.Scan(&in.X, &in.Y, &opp.X, &opp.Y, &centre.X, &centre.Y,
			&width, &arc, &curv, &rejections); err != nil {
			return nil, fmt.Errorf("store: scan sample: %w", err)
		}
		g.Inner = append(g.Inner, in)
		g.Opposing = append(g.Opposing, opp)
		g.Centreline = append(g.Centreline, centre)
		g.Width = append(g.Width, width)
		g.ArcLength = append(g.ArcLength, arc)
		g.Curvature = append(g.Curvature, curv)
		g.Rejections = append(g.Rejections, rejections)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	outerRows, err := s.db.QueryContext(ctx,
		`SELECT x, y FROM track_outer_points WHERE track_id = ? ORDER BY idx`, trackID)
	if err != nil {
		return nil, fmt.Errorf("store: load outer points: %w", err)
	}
	defer outerRows.Close()
	for outerRows.Next() {
		var p common.Vec2
		if err := outerRows.Scan(&p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("store: scan outer point: %w", err)
		}
		g.Outer = append(g.Outer, p)
	}
	if err := outerRows.Err(); err != nil {
		return nil, err
	}

	g.Tangents = numeric.CyclicGradient2D(g.Inner)
	st.Geometry = g
	return &st, nil
}

// Delete removes a stored track and its samples.
func (s *Store) Delete(ctx context.Context, trackID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM track_samples WHERE track_id = ?`,
		`DELETE FROM track_outer_points WHERE track_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, trackID); err != nil {
			return fmt.Errorf("store: delete %s: %w", trackID, err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM tracks WHERE track_id = ?`, trackID)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", trackID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTrackNotFound
	}
	return tx.Commit()
}
