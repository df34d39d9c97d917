package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/marcusball/class-scheduler/internal/domain"
)

func (r *Repository) CreateCatalog(catalog *domain.Catalog) error {
	document, err := json.Marshal(catalog.Options)
	if err != nil {
		return err
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO catalogs (name, description, document, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	createdBy := sql.NullInt64{Int64: catalog.CreatedBy, Valid: catalog.CreatedBy != 0}
	args := []any{catalog.Name, catalog.Description, string(document), createdBy}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&catalog.ID, &catalog.CreatedAt, &catalog.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllCatalogs() ([]*domain.Catalog, error) {
	query := `
		SELECT id, name, description, document, created_by, created_at, version
		FROM catalogs
		ORDER BY id
	`

	return r.listCatalogs(query)
}

// GetCatalogsByCreator lists the catalogs userID created, oldest first.
func (r *Repository) GetCatalogsByCreator(userID int64) ([]*domain.Catalog, error) {
	query := `
		SELECT id, name, description, document, created_by, created_at, version
		FROM catalogs
		WHERE created_by = $1
		ORDER BY id
	`

	return r.listCatalogs(query, userID)
}

func (r *Repository) listCatalogs(query string, args ...any) ([]*domain.Catalog, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	catalogs := make([]*domain.Catalog, 0)
	for rows.Next() {
		catalog, err := scanCatalog(rows)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, catalog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return catalogs, nil
}

func (r *Repository) GetCatalogByID(id int64) (*domain.Catalog, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, name, description, document, created_by, created_at, version
		FROM catalogs
		WHERE id = $1
	`

	return scanCatalog(r.dbpool.QueryRowContext(ctx, query, id))
}

// UpdateCatalog returns sql.ErrNoRows when the catalog was changed since it was read.
func (r *Repository) UpdateCatalog(catalog *domain.Catalog) error {
	document, err := json.Marshal(catalog.Options)
	if err != nil {
		return err
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE catalogs
		SET name = $1, description = $2, document = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	args := []any{catalog.Name, catalog.Description, string(document), catalog.ID, catalog.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&catalog.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteCatalog(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `DELETE FROM catalogs WHERE id = $1`

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCatalog(row scanner) (*domain.Catalog, error) {
	catalog := &domain.Catalog{}
	var document []byte
	var createdBy sql.NullInt64

	dst := []any{&catalog.ID, &catalog.Name, &catalog.Description, &document, &createdBy, &catalog.CreatedAt, &catalog.Version}
	if err := row.Scan(dst...); err != nil {
		return nil, err
	}
	catalog.CreatedBy = createdBy.Int64

	if err := json.Unmarshal(document, &catalog.Options); err != nil {
		return nil, err
	}

	return catalog, nil
}
