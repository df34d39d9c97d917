package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/marcusball/class-scheduler/internal/domain"
)

// InsertScheduleRun replaces the stored run of run.CatalogID. Concurrent calls for the
// same catalog queue on the catalog row, so the last one to commit wins. It returns
// sql.ErrNoRows if the catalog no longer exists.
func (r *Repository) InsertScheduleRun(run *domain.ScheduleRun) error {
	return r.withTx(func(ctx context.Context, tx *sql.Tx) error {
		query := `SELECT id FROM catalogs WHERE id = $1 FOR UPDATE`
		var id int64
		if err := tx.QueryRowContext(ctx, query, run.CatalogID).Scan(&id); err != nil {
			return err
		}

		// items of the previous run go with it through the cascade
		query = `DELETE FROM schedule_runs WHERE catalog_id = $1`
		if _, err := tx.ExecContext(ctx, query, run.CatalogID); err != nil {
			return err
		}

		query = `
			INSERT INTO schedule_runs (catalog_id, truncated)
			VALUES ($1, $2)
			RETURNING id, created_at, version
		`

		if err := tx.QueryRowContext(ctx, query, run.CatalogID, run.Truncated).Scan(&run.ID, &run.CreatedAt, &run.Version); err != nil {
			return err
		}

		query = `
			INSERT INTO schedule_run_items (schedule_run_id, ordinal, slots)
			VALUES ($1, $2, $3)
		`

		for i, schedule := range run.Schedules {
			slots, err := json.Marshal(schedule)
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, query, run.ID, i, string(slots)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *Repository) GetScheduleRunByCatalogID(catalogID int64) (*domain.ScheduleRun, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT
			sr.id,
			sr.truncated,
			sr.created_at,
			sr.version,
			sri.slots
		FROM schedule_runs sr
		LEFT JOIN schedule_run_items sri ON sr.id = sri.schedule_run_id
		WHERE sr.catalog_id = $1
		ORDER BY sri.ordinal
	`

	rows, err := r.dbpool.QueryContext(ctx, query, catalogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	run := &domain.ScheduleRun{
		CatalogID: catalogID,
		Schedules: make([]*domain.Schedule, 0),
	}

	for rows.Next() {
		var slots []byte

		dst := []any{&run.ID, &run.Truncated, &run.CreatedAt, &run.Version, &slots}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		// a run that found no schedule has no items
		if slots == nil {
			continue
		}

		schedule := &domain.Schedule{}
		if err := json.Unmarshal(slots, schedule); err != nil {
			return nil, err
		}
		run.Schedules = append(run.Schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if run.ID == 0 {
		return nil, sql.ErrNoRows
	}

	return run, nil
}
