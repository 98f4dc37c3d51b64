package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"

	"Geospace/internal/auth"
	"Geospace/internal/project"
)

type Repository interface {
	auth.UserStore
	project.Store
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Open connects to Postgres and checks the connection. sslmode=require is
// appended when the URL does not choose one.
func Open(ctx context.Context, connStr string, maxConns int) (*sql.DB, error) {
	if !strings.Contains(connStr, "sslmode=") {
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			if strings.Contains(connStr, "?") {
				connStr += "&sslmode=require"
			} else {
				connStr += "?sslmode=require"
			}
		} else {
			connStr += " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to configure database")
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, pkgerrors.Wrap(err, "database is not responding")
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id       SERIAL PRIMARY KEY,
	login    TEXT NOT NULL UNIQUE,
	email    TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS projects (
	user_id   INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	project   TEXT NOT NULL DEFAULT '',
	client    TEXT NOT NULL DEFAULT '',
	location  TEXT NOT NULL DEFAULT '',
	boring_no TEXT NOT NULL DEFAULT '',
	sample_no TEXT NOT NULL DEFAULT '',
	depth_m   TEXT NOT NULL DEFAULT '',
	tested_by TEXT NOT NULL DEFAULT '',
	test_date TEXT NOT NULL DEFAULT ''
);`

func (r *PostgresUserRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return pkgerrors.Wrap(err, "failed to create schema")
}

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	if isUniqueViolation(err) {
		return 0, auth.ErrUserExists
	}
	return id, pkgerrors.Wrap(err, "failed to insert user")
}

func (r *PostgresUserRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", pkgerrors.Wrapf(err, "failed to look up user %s", login)
	}
	return id, hash, nil
}

func (r *PostgresUserRepository) GetProject(ctx context.Context, userID int) (project.Details, error) {
	var d project.Details
	query := `SELECT project, client, location, boring_no, sample_no, depth_m, tested_by, test_date
		FROM projects WHERE user_id=$1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&d.Project, &d.Client, &d.Location, &d.BoringNo, &d.SampleNo, &d.DepthM, &d.TestedBy, &d.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return project.Details{}, nil
	}
	return d, pkgerrors.Wrapf(err, "failed to load project of user %d", userID)
}

func (r *PostgresUserRepository) SaveProject(ctx context.Context, userID int, d project.Details) error {
	query := `INSERT INTO projects (user_id, project, client, location, boring_no, sample_no, depth_m, tested_by, test_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			project = EXCLUDED.project, client = EXCLUDED.client, location = EXCLUDED.location,
			boring_no = EXCLUDED.boring_no, sample_no = EXCLUDED.sample_no, depth_m = EXCLUDED.depth_m,
			tested_by = EXCLUDED.tested_by, test_date = EXCLUDED.test_date`
	_, err := r.db.ExecContext(ctx, query, userID,
		d.Project, d.Client, d.Location, d.BoringNo, d.SampleNo, d.DepthM, d.TestedBy, d.Date)
	return pkgerrors.Wrapf(err, "failed to save project of user %d", userID)
}
