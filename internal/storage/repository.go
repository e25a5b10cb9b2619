package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"costmanager/internal/core"

	_ "modernc.org/sqlite"
)

const birthdayLayout = "2006-01-02"

// SQLiteRepository is the shared record store behind all services. Each
// service process opens its own repository over the same database file;
// concurrency control is left to SQLite's per-statement atomicity.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateCost persists a validated cost entry.
func (r *SQLiteRepository) CreateCost(ctx context.Context, c core.Cost) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO costs (user_id, description, category, sum_cents, year, month, day)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, c.Description, string(c.Category), c.Sum.Cents, c.Year, c.Month, c.Day)
	if err != nil {
		return fmt.Errorf("create cost: %w", err)
	}

	slog.InfoContext(ctx, "Cost saved",
		"user_id", c.UserID,
		"category", c.Category,
		"sum_cents", c.Sum.Cents,
		"year", c.Year,
		"month", c.Month,
		"day", c.Day)
	return nil
}

// CostsByMonth returns a user's cost entries for one calendar month in
// insertion order. Report buckets preserve this order.
func (r *SQLiteRepository) CostsByMonth(ctx context.Context, userID int64, year, month int) ([]core.Cost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, description, category, sum_cents, year, month, day
		 FROM costs
		 WHERE user_id = ? AND year = ? AND month = ?
		 ORDER BY id`,
		userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("query costs by month: %w", err)
	}
	defer rows.Close()

	var costs []core.Cost
	for rows.Next() {
		var c core.Cost
		var category string
		if err := rows.Scan(&c.UserID, &c.Description, &category, &c.Sum.Cents, &c.Year, &c.Month, &c.Day); err != nil {
			return nil, fmt.Errorf("scan cost row: %w", err)
		}
		c.Category = core.Category(category)
		costs = append(costs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cost rows: %w", err)
	}
	return costs, nil
}

// CostTotal returns the sum of all of a user's cost entries.
func (r *SQLiteRepository) CostTotal(ctx context.Context, userID int64) (core.Amount, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sum_cents), 0) FROM costs WHERE user_id = ?`,
		userID).Scan(&cents)
	if err != nil {
		return core.Amount{}, fmt.Errorf("sum costs: %w", err)
	}
	return core.Amount{Cents: cents}, nil
}

// ReportByMonth returns the cached report for (user, year, month), or
// nil when no report has been cached yet.
func (r *SQLiteRepository) ReportByMonth(ctx context.Context, userID int64, year, month int) (*core.Report, error) {
	var costsJSON string
	err := r.db.QueryRowContext(ctx,
		`SELECT costs FROM reports WHERE user_id = ? AND year = ? AND month = ?`,
		userID, year, month).Scan(&costsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	var buckets []core.CategoryBucket
	if err := json.Unmarshal([]byte(costsJSON), &buckets); err != nil {
		return nil, fmt.Errorf("decode cached report: %w", err)
	}
	return &core.Report{UserID: userID, Year: year, Month: month, Costs: buckets}, nil
}

// SaveReport caches a computed report. The insert ignores conflicts on
// (user_id, year, month): a report already cached by a concurrent
// request is authoritative and is never overwritten.
func (r *SQLiteRepository) SaveReport(ctx context.Context, report core.Report) error {
	costsJSON, err := json.Marshal(report.Costs)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO reports (user_id, year, month, costs)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, year, month) DO NOTHING`,
		report.UserID, report.Year, report.Month, string(costsJSON))
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	slog.InfoContext(ctx, "Report cached",
		"user_id", report.UserID,
		"year", report.Year,
		"month", report.Month)
	return nil
}

// CreateUser persists a new user record.
func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) error {
	birthday := ""
	if !u.Birthday.IsZero() {
		birthday = u.Birthday.Format(birthdayLayout)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, birthday) VALUES (?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, birthday)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User saved", "user_id", u.ID)
	return nil
}

// UserByID returns the user with the given application id, or nil when
// no such user exists.
func (r *SQLiteRepository) UserByID(ctx context.Context, id int64) (*core.User, error) {
	var u core.User
	var birthday string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, birthday FROM users WHERE id = ?`,
		id).Scan(&u.ID, &u.FirstName, &u.LastName, &birthday)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	if birthday != "" {
		if t, err := time.ParseInLocation(birthdayLayout, birthday, time.Local); err == nil {
			u.Birthday = t
		}
	}
	return &u, nil
}

// UserExists implements the user-directory lookup used by cost ingestion.
func (r *SQLiteRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query user existence: %w", err)
	}
	return true, nil
}

func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]core.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, birthday FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []core.User
	for rows.Next() {
		var u core.User
		var birthday string
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &birthday); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		if birthday != "" {
			if t, err := time.ParseInLocation(birthdayLayout, birthday, time.Local); err == nil {
				u.Birthday = t
			}
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return users, nil
}

// CreateAccessLog appends one audit record. Callers treat failures as
// non-fatal: auditing never affects the request being logged.
func (r *SQLiteRepository) CreateAccessLog(ctx context.Context, entry core.AccessLog) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO logs (method, url, status, timestamp) VALUES (?, ?, ?, ?)`,
		entry.Method, entry.URL, entry.Status, ts.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("create access log: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListAccessLogs(ctx context.Context) ([]core.AccessLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT method, url, status, timestamp FROM logs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	var logs []core.AccessLog
	for rows.Next() {
		var entry core.AccessLog
		var ts string
		if err := rows.Scan(&entry.Method, &entry.URL, &entry.Status, &ts); err != nil {
			return nil, fmt.Errorf("scan log row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			entry.Timestamp = t
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate log rows: %w", err)
	}
	return logs, nil
}
