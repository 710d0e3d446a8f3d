package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/daily-report-api/internal/domain"
	"github.com/jhoicas/daily-report-api/internal/domain/entity"
	"github.com/jhoicas/daily-report-api/internal/domain/repository"
)

var _ repository.SalesPersonRepository = (*SalesPersonRepo)(nil)

const salesPersonColumns = `id, employee_code, name, email, password_hash, role, manager_id, is_active, created_at, updated_at`

// SalesPersonRepo implementación del puerto SalesPersonRepository sobre PostgreSQL.
type SalesPersonRepo struct {
	q Querier
}

// NewSalesPersonRepository construye el adaptador. Pasar pool o tx.
func NewSalesPersonRepository(q Querier) *SalesPersonRepo {
	return &SalesPersonRepo{q: q}
}

// Create persiste un nuevo vendedor y asigna el ID generado.
func (r *SalesPersonRepo) Create(ctx context.Context, sp *entity.SalesPerson) error {
	query := `
		INSERT INTO sales_persons (employee_code, name, email, password_hash, role, manager_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		sp.EmployeeCode, sp.Name, sp.Email, sp.PasswordHash, string(sp.Role), sp.ManagerID, sp.IsActive,
		sp.CreatedAt, sp.UpdatedAt,
	).Scan(&sp.ID)
	if err != nil {
		return translateError("insert sales person", err)
	}
	return nil
}

// GetByID obtiene un vendedor por ID.
func (r *SalesPersonRepo) GetByID(ctx context.Context, id int64) (*entity.SalesPerson, error) {
	query := `SELECT ` + salesPersonColumns + ` FROM sales_persons WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get sales person")
}

// GetByEmail obtiene un vendedor por email (ya normalizado).
func (r *SalesPersonRepo) GetByEmail(ctx context.Context, email string) (*entity.SalesPerson, error) {
	query := `SELECT ` + salesPersonColumns + ` FROM sales_persons WHERE email = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, email), "get sales person by email")
}

// List lista vendedores ordenados por código de empleado.
func (r *SalesPersonRepo) List(ctx context.Context, filter repository.SalesPersonFilter) ([]*entity.SalesPerson, int, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	where := sq.And{}
	if filter.IsActive != nil {
		where = append(where, sq.Eq{"is_active": *filter.IsActive})
	}
	if filter.Role != nil {
		where = append(where, sq.Eq{"role": string(*filter.Role)})
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("sales_persons").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count sales persons: %w", err)
	}
	var total int
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales persons: %w", err)
	}

	query, args, err := psql.Select(salesPersonColumns).
		From("sales_persons").
		Where(where).
		OrderBy("employee_code ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list sales persons: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales persons: %w", err)
	}
	defer rows.Close()

	var list []*entity.SalesPerson
	for rows.Next() {
		sp, err := scanSalesPerson(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sales person: %w", err)
		}
		list = append(list, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update actualiza los campos editables. employee_code no se toca.
func (r *SalesPersonRepo) Update(ctx context.Context, sp *entity.SalesPerson) error {
	query := `
		UPDATE sales_persons
		SET name = $2, email = $3, password_hash = $4, role = $5, manager_id = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		sp.ID, sp.Name, sp.Email, sp.PasswordHash, string(sp.Role), sp.ManagerID, sp.IsActive, sp.UpdatedAt,
	)
	if err != nil {
		return translateError("update sales person", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate marca is_active = false.
func (r *SalesPersonRepo) Deactivate(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE sales_persons SET is_active = FALSE, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("deactivate sales person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SalesPersonRepo) scanOne(row pgx.Row, op string) (*entity.SalesPerson, error) {
	sp, err := scanSalesPerson(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sp, nil
}

func scanSalesPerson(row pgx.Row) (*entity.SalesPerson, error) {
	var sp entity.SalesPerson
	var role string
	err := row.Scan(
		&sp.ID, &sp.EmployeeCode, &sp.Name, &sp.Email, &sp.PasswordHash, &role, &sp.ManagerID, &sp.IsActive,
		&sp.CreatedAt, &sp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sp.Role = entity.Role(role)
	return &sp, nil
}
