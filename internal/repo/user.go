package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/crucial707/itadmin/internal/db"
	"github.com/crucial707/itadmin/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB db.DBTX
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db db.DBTX) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, email, name, role, department, created_at, updated_at`

func scanUser(s rowScanner) (models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Department, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// ==========================
// Create User
// ==========================

// Create inserts u. A duplicate email yields ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO users (email, name, role, department)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		u.Email, u.Name, u.Role, u.Department,
	)
	created, err := scanUser(row)
	return created, classify("user", err)
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, classify("user", err)
}

// FirstID returns the id of the oldest user, or ErrNotFound when the table is empty.
func (r *UserRepo) FirstID(ctx context.Context) (int, error) {
	var id int
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM users ORDER BY id LIMIT 1`).Scan(&id)
	return id, classify("user", err)
}

// ==========================
// List Users
// ==========================

// List returns a page of users ordered by name.
func (r *UserRepo) List(ctx context.Context, search string, limit, offset int) ([]models.User, error) {
	where, args := userWhere(search)
	args = append(args, limit, offset)
	return r.query(ctx,
		fmt.Sprintf(`SELECT %s FROM users%s ORDER BY name ASC, id ASC LIMIT $%d OFFSET $%d`,
			userColumns, where, len(args)-1, len(args)),
		args...,
	)
}

func (r *UserRepo) Count(ctx context.Context, search string) (int, error) {
	where, args := userWhere(search)
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&n)
	return n, err
}

// ListAll returns every user, newest first.
func (r *UserRepo) ListAll(ctx context.Context) ([]models.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
}

func (r *UserRepo) query(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func userWhere(search string) (string, []any) {
	search = strings.TrimSpace(search)
	if search == "" {
		return "", nil
	}
	return " WHERE (name LIKE $1 OR email LIKE $1 OR department LIKE $1)",
		[]any{"%" + escapeLike(search) + "%"}
}
