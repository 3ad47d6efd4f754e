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

var _ repository.CategoryRepository = (*PostgresCategoryRepo)(nil)

type PostgresCategoryRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresCategoryRepo(pool *pgxpool.Pool) *PostgresCategoryRepo {
	return &PostgresCategoryRepo{pool: pool}
}

const categoryColumns = `id, name, description, icon, created_by, created_at, updated_by, updated_at`

func scanCategory(row pgx.Row) (*model.Category, error) {
	var (
		c         model.Category
		updatedBy *string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.CreatedBy, &c.CreatedAt, &updatedBy, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if updatedBy != nil {
		c.UpdatedBy = *updatedBy
	}
	return &c, nil
}

func (r *PostgresCategoryRepo) Save(ctx context.Context, tx repository.Tx, c *model.Category) error {
	const q = `
INSERT INTO categories (id, name, description, icon, created_by, created_at, updated_by, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),$8)
ON CONFLICT (id) DO UPDATE SET
  name=$2, description=$3, icon=$4, updated_by=NULLIF($7,''), updated_at=$8;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q, c.ID, c.Name, c.Description, string(c.Icon), c.CreatedBy, c.CreatedAt, c.UpdatedBy, c.UpdatedAt)
	return err
}

func (r *PostgresCategoryRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Category, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanCategory(ex.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id=$1;`, id))
}

func (r *PostgresCategoryRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Category, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCategoryRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	tag, err := ex.Exec(ctx, `DELETE FROM categories WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
