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

var _ repository.ContentRepository = (*PostgresContentRepo)(nil)

type PostgresContentRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresContentRepo(pool *pgxpool.Pool) *PostgresContentRepo {
	return &PostgresContentRepo{pool: pool}
}

const contentColumns = `id, title, author, description, category_id, section_id, subsection,
       content_type, url, size, countries, status, published_at, expires_at,
       created_by, created_at, updated_by, updated_at`

func scanContent(row pgx.Row) (*model.ContentItem, error) {
	var (
		c         model.ContentItem
		updatedBy *string
	)
	if err := row.Scan(&c.ID, &c.Title, &c.Author, &c.Description, &c.CategoryID, &c.SectionID, &c.Subsection,
		&c.Type, &c.URL, &c.Size, &c.Countries, &c.Status, &c.PublishedAt, &c.ExpiresAt,
		&c.CreatedBy, &c.CreatedAt, &updatedBy, &c.UpdatedAt); err != nil {
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

func (r *PostgresContentRepo) Save(ctx context.Context, tx repository.Tx, c *model.ContentItem) error {
	const q = `
INSERT INTO contents (id, title, author, description, category_id, section_id, subsection,
  content_type, url, size, countries, status, published_at, expires_at,
  created_by, created_at, updated_by, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,NULLIF($17,''),$18)
ON CONFLICT (id) DO UPDATE SET
  title=$2, author=$3, description=$4, category_id=$5, section_id=$6, subsection=$7,
  content_type=$8, url=$9, size=$10, countries=$11, status=$12, published_at=$13,
  expires_at=$14, updated_by=NULLIF($17,''), updated_at=$18;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q, c.ID, c.Title, c.Author, c.Description, c.CategoryID, c.SectionID, c.Subsection,
		string(c.Type), c.URL, c.Size, c.Countries, string(c.Status), c.PublishedAt, c.ExpiresAt,
		c.CreatedBy, c.CreatedAt, c.UpdatedBy, c.UpdatedAt)
	return err
}

func (r *PostgresContentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.ContentItem, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanContent(ex.QueryRow(ctx, `SELECT `+contentColumns+` FROM contents WHERE id=$1;`, id))
}

func (r *PostgresContentRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.ContentItem, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `SELECT `+contentColumns+` FROM contents ORDER BY created_at DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.ContentItem
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresContentRepo) ListAllWithRelations(ctx context.Context, tx repository.Tx) ([]*model.ContentWithRelations, error) {
	const q = `
SELECT c.id, c.title, c.author, c.description, c.category_id, c.section_id, c.subsection,
       c.content_type, c.url, c.size, c.countries, c.status, c.published_at, c.expires_at,
       c.created_by, c.created_at, c.updated_by, c.updated_at,
       cat.id, cat.name, cat.description, cat.icon,
       sec.id, sec.category_id, sec.name, sec.description, sec.countries
  FROM contents c
  JOIN categories cat ON cat.id = c.category_id
  JOIN sections sec   ON sec.id = c.section_id
 ORDER BY c.created_at DESC;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.ContentWithRelations
	for rows.Next() {
		var (
			rel       model.ContentWithRelations
			updatedBy *string
		)
		c := &rel.ContentItem
		if err := rows.Scan(&c.ID, &c.Title, &c.Author, &c.Description, &c.CategoryID, &c.SectionID, &c.Subsection,
			&c.Type, &c.URL, &c.Size, &c.Countries, &c.Status, &c.PublishedAt, &c.ExpiresAt,
			&c.CreatedBy, &c.CreatedAt, &updatedBy, &c.UpdatedAt,
			&rel.Category.ID, &rel.Category.Name, &rel.Category.Description, &rel.Category.Icon,
			&rel.Section.ID, &rel.Section.CategoryID, &rel.Section.Name, &rel.Section.Description, &rel.Section.Countries); err != nil {
			return nil, err
		}
		if updatedBy != nil {
			c.UpdatedBy = *updatedBy
		}
		out = append(out, &rel)
	}
	return out, rows.Err()
}

func (r *PostgresContentRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	tag, err := ex.Exec(ctx, `DELETE FROM contents WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
