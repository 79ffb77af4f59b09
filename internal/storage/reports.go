package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tonyback0101-cmyk/seeqi/internal/report"
)

// ErrNotFound is returned when a requested report does not exist.
var ErrNotFound = errors.New("not found")

// ReportMeta is the listing row for a stored report.
type ReportMeta struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Locale       string    `json:"locale"`
	Constitution string    `json:"constitution"`
	QiIndex      int       `json:"qi_index"`
}

// SaveReport persists a report atomically. The insert and a read-back
// verification run inside one transaction: the caller sees success only
// after the written payload has been read back and matched, so the request
// is never reported as succeeded on an unconfirmed write.
func (s *Store) SaveReport(r report.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO reports (id, created_at, locale, constitution, qi_index, payload)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.Locale, r.Constitution, r.Qi.Index, string(payload),
	); err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}

	var back string
	if err := tx.QueryRow("SELECT payload FROM reports WHERE id = ?", r.ID).Scan(&back); err != nil {
		return fmt.Errorf("verifying report write: %w", err)
	}
	if back != string(payload) {
		return fmt.Errorf("report write verification mismatch for %s", r.ID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing report: %w", err)
	}
	return nil
}

// GetReport loads a stored report by id.
func (s *Store) GetReport(id string) (report.Report, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM reports WHERE id = ?", id).Scan(&payload)
	if err == sql.ErrNoRows {
		return report.Report{}, ErrNotFound
	}
	if err != nil {
		return report.Report{}, err
	}

	var r report.Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return report.Report{}, fmt.Errorf("decoding report %s: %w", id, err)
	}
	return r, nil
}

// ListReports returns metadata for the most recent reports, newest first.
func (s *Store) ListReports(limit int) ([]ReportMeta, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, locale, constitution, qi_index
		FROM reports ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ReportMeta
	for rows.Next() {
		var m ReportMeta
		var createdAt string
		if err := rows.Scan(&m.ID, &createdAt, &m.Locale, &m.Constitution, &m.QiIndex); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		m.CreatedAt = t
		results = append(results, m)
	}
	return results, rows.Err()
}
