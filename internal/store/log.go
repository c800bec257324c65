package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/babel/internal/ir"
)

// WriteSnapshot stores body as a snapshot of the project. Writing the same
// body twice is a no-op that returns the original row.
func (s *Store) WriteSnapshot(ctx context.Context, projectID string, body []byte) (ir.Snapshot, error) {
	digest := ir.ProjectDigest(body)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (project_id, digest, body, engine_version)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(project_id, digest) DO NOTHING
	`, projectID, digest, body, ir.EngineVersion)
	if err != nil {
		return ir.Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}

	snap := ir.Snapshot{ProjectID: projectID, Digest: digest, Body: body}
	err = s.db.QueryRowContext(ctx, `
		SELECT seq FROM snapshots WHERE project_id = ? AND digest = ?
	`, projectID, digest).Scan(&snap.Seq)
	if err != nil {
		return ir.Snapshot{}, fmt.Errorf("read snapshot seq: %w", err)
	}
	return snap, nil
}

// LatestSnapshot returns the most recent snapshot of a project.
// found is false when the project has none.
func (s *Store) LatestSnapshot(ctx context.Context, projectID string) (snap ir.Snapshot, found bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT seq, project_id, digest, body
		FROM snapshots
		WHERE project_id = ?
		ORDER BY seq DESC
		LIMIT 1
	`, projectID).Scan(&snap.Seq, &snap.ProjectID, &snap.Digest, &snap.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Snapshot{}, false, nil
	}
	if err != nil {
		return ir.Snapshot{}, false, fmt.Errorf("read latest snapshot: %w", err)
	}
	return snap, true, nil
}

// RecordDerivation appends a derivation record and returns its seq.
// The Seq field of rec is ignored.
func (s *Store) RecordDerivation(ctx context.Context, rec ir.DerivationRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO derivations
		(project_id, language, ancestor, fused, inherited, preserved, digest, engine_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ProjectID,
		rec.Language,
		rec.Ancestor,
		rec.Fused,
		rec.Inherited,
		rec.Preserved,
		rec.Digest,
		ir.EngineVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("record derivation: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record derivation: %w", err)
	}
	return seq, nil
}

// ReadDerivations returns a project's derivation records ordered by seq.
// A negative language returns every language.
//
// Returns an empty slice (not nil) if there are no records.
func (s *Store) ReadDerivations(ctx context.Context, projectID string, language int) ([]ir.DerivationRecord, error) {
	query := `
		SELECT seq, project_id, language, ancestor, fused, inherited, preserved, digest
		FROM derivations
		WHERE project_id = ?`
	args := []any{projectID}
	if language >= 0 {
		query += ` AND language = ?`
		args = append(args, language)
	}
	query += ` ORDER BY seq ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query derivations: %w", err)
	}
	defer rows.Close()

	records := []ir.DerivationRecord{}
	for rows.Next() {
		var rec ir.DerivationRecord
		if err := rows.Scan(
			&rec.Seq,
			&rec.ProjectID,
			&rec.Language,
			&rec.Ancestor,
			&rec.Fused,
			&rec.Inherited,
			&rec.Preserved,
			&rec.Digest,
		); err != nil {
			return nil, fmt.Errorf("scan derivation: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate derivations: %w", err)
	}
	return records, nil
}
