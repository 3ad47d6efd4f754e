package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"universidad-sunshine/internal/domain"
	"universidad-sunshine/internal/domain/model"
	"universidad-sunshine/internal/domain/ports/repository"
)

var _ repository.SectionRepository = (*PostgresSectionRepo)(nil)

type PostgresSectionRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresSectionRepo(pool *pgxpool.Pool) *PostgresSectionRepo {
	return &PostgresSectionRepo{pool: pool}
}

const sectionColumns = `id, category_id, name, description, countries, created_by, created_at, updated_by, updated_at`

func scanSection(row pgx.Row) (*model.Section, error) {
	var (
		s         model.Section
		updatedBy *string
	)
	if err := row.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.Countries, &s.CreatedBy, &s.CreatedAt, &updatedBy, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if updatedBy != nil {
		s.UpdatedBy = *updatedBy
	}
	return &s, nil
}

func (r *PostgresSectionRepo) Save(ctx context.Context, tx repository.Tx, s *model.Section) error {
	const q = `
INSERT INTO sections (id, category_id, name, description, countries, created_by, created_at, updated_by, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,''),$9)
ON CONFLICT (id) DO UPDATE SET
  category_id=$2, name=$3, description=$4, countries=$5, updated_by=NULLIF($8,''), updated_at=$9;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q, s.ID, s.CategoryID, s.Name, s.Description, s.Countries, s.CreatedBy, s.CreatedAt, s.UpdatedBy, s.UpdatedAt)
	return err
}

func (r *PostgresSectionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Section, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanSection(ex.QueryRow(ctx, `SELECT `+sectionColumns+` FROM sections WHERE id=$1;`, id))
}

func (r *PostgresSectionRepo) ListByCategory(ctx context.Context, tx repository.Tx, categoryID string) ([]*model.Section, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `SELECT `+sectionColumns+` FROM sections WHERE category_id=$1 ORDER BY name;`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSections(rows)
}

func (r *PostgresSectionRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Section, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `SELECT `+sectionColumns+` FROM sections ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSections(rows)
}

func collectSections(rows pgx.Rows) ([]*model.Section, error) {
	var out []*model.Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresSectionRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	tag, err := ex.Exec(ctx, `DELETE FROM sections WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
