// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementations of the tracking repositories.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.

package tracking

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/trackline/internal/platform/apperr"
	"github.com/taibuivan/trackline/internal/platform/dberr"
)

// PostgresEmployeeRepository implements [EmployeeRepository] using pgx.
type PostgresEmployeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository creates a new PostgreSQL implementation of the EmployeeRepository.
func NewEmployeeRepository(pool *pgxpool.Pool) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{pool: pool}
}

// UUID columns are cast to text before the COALESCE: coalescing a bare uuid
// with '' makes PostgreSQL resolve the expression to uuid and reject the
// empty-string literal at parse time.
const employeeSelect = `
	SELECT
		id, email, name, COALESCE(password_hash, ''), is_admin, email_verified,
		deactivated, organization_id, COALESCE(team_id::text, ''), created_at, updated_at
	FROM core.employees`

// scanEmployee reads one employee row in [employeeSelect] column order.
func scanEmployee(row pgx.Row) (*Employee, error) {
	employee := &Employee{}
	err := row.Scan(
		&employee.ID,
		&employee.Email,
		&employee.Name,
		&employee.PasswordHash,
		&employee.IsAdmin,
		&employee.EmailVerified,
		&employee.Deactivated,
		&employee.OrganizationID,
		&employee.TeamID,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return employee, nil
}

// FindByID retrieves an employee record by primary key.
//
// # Returns
//
// Returns [*Employee] if found, or [apperr.NotFound] if no record exists.
func (repository *PostgresEmployeeRepository) FindByID(ctx context.Context, id string) (*Employee, error) {
	query := employeeSelect + ` WHERE id = $1`

	employee, err := scanEmployee(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Employee", "postgres_employee_repo_find_by_id_failed")
	}

	return employee, nil
}

// FindByEmail retrieves an employee record by unique email address.
//
// # Returns
//
// Returns [*Employee] if found, or [apperr.NotFound] if no record exists.
func (repository *PostgresEmployeeRepository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	query := employeeSelect + ` WHERE email = $1`

	employee, err := scanEmployee(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "Employee", "postgres_employee_repo_find_by_email_failed")
	}

	return employee, nil
}

// SetPassword stores a new bcrypt hash for the employee, optionally marking
// the email verified in the same statement (invitation redemption).
func (repository *PostgresEmployeeRepository) SetPassword(ctx context.Context, id, passwordHash string, markVerified bool) error {
	const query = `
		UPDATE core.employees
		SET password_hash = $2,
		    email_verified = email_verified OR $3,
		    updated_at = now()
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id, passwordHash, markVerified)
	if err != nil {
		return dberr.Wrap(err, "Employee", "postgres_employee_repo_set_password_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Employee")
	}

	return nil
}

// Stats computes the per-employee aggregate counters for GET /user/stats.
//
// # Queries
//
// Four focused queries instead of one sprawling CTE: shift time sums,
// project counts, task counts, and the screenshot count. All of them hit
// covered indexes, and keeping them separate keeps each one trivially
// explainable under EXPLAIN.
func (repository *PostgresEmployeeRepository) Stats(ctx context.Context, employeeID string, weekStart, monthStart int64) (*EmployeeStats, error) {
	stats := &EmployeeStats{}

	// ── 1. Tracked Time (total / weekly / monthly) ────────────────────────

	const timeQuery = `
		SELECT
			COALESCE(SUM(end_ms - start_ms), 0),
			COALESCE(SUM(end_ms - start_ms) FILTER (WHERE start_ms >= $2), 0),
			COALESCE(SUM(end_ms - start_ms) FILTER (WHERE start_ms >= $3), 0)
		FROM track.shifts
		WHERE employee_id = $1 AND end_ms IS NOT NULL`

	err := repository.pool.QueryRow(ctx, timeQuery, employeeID, weekStart, monthStart).
		Scan(&stats.TotalTimeTracked, &stats.WeeklyTimeTracked, &stats.MonthlyTimeTracked)
	if err != nil {
		return nil, fmt.Errorf("postgres_employee_repo_stats_time_failed: %w", err)
	}

	// ── 2. Project Membership ─────────────────────────────────────────────

	const projectQuery = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT p.archived)
		FROM core.project_members pm
		JOIN core.projects p ON p.id = pm.project_id
		WHERE pm.employee_id = $1`

	err = repository.pool.QueryRow(ctx, projectQuery, employeeID).
		Scan(&stats.TotalProjects, &stats.ActiveProjects)
	if err != nil {
		return nil, fmt.Errorf("postgres_employee_repo_stats_projects_failed: %w", err)
	}

	// ── 3. Task Assignment ────────────────────────────────────────────────

	const taskQuery = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE t.status <> 'done')
		FROM core.task_assignments ta
		JOIN core.tasks t ON t.id = ta.task_id
		WHERE ta.employee_id = $1`

	err = repository.pool.QueryRow(ctx, taskQuery, employeeID).
		Scan(&stats.TotalTasks, &stats.ActiveTasks)
	if err != nil {
		return nil, fmt.Errorf("postgres_employee_repo_stats_tasks_failed: %w", err)
	}

	// ── 4. Screenshot Count ───────────────────────────────────────────────

	const screenshotQuery = `SELECT COUNT(*) FROM track.screenshots WHERE employee_id = $1`

	err = repository.pool.QueryRow(ctx, screenshotQuery, employeeID).Scan(&stats.TotalScreenshots)
	if err != nil {
		return nil, fmt.Errorf("postgres_employee_repo_stats_screenshots_failed: %w", err)
	}

	return stats, nil
}

// PostgresShiftRepository implements [ShiftRepository] using pgx.
type PostgresShiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository creates a new PostgreSQL implementation of the ShiftRepository.
func NewShiftRepository(pool *pgxpool.Pool) *PostgresShiftRepository {
	return &PostgresShiftRepository{pool: pool}
}

// shiftWindowWhere builds the shared WHERE clause for analytics queries.
//
// Only completed shifts fully inside the window qualify; each optional
// filter is ANDed on with positional placeholders continuing after the
// three mandatory arguments.
func shiftWindowWhere(organizationID string, filter AnalyticsFilter) (string, []any) {
	conditions := []string{
		"s.organization_id = $1",
		"s.start_ms >= $2",
		"s.end_ms <= $3",
		"s.end_ms IS NOT NULL",
	}
	args := []any{organizationID, filter.Start, filter.End}

	appendFilter := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	appendFilter("s.employee_id", filter.EmployeeID)
	appendFilter("s.team_id", filter.TeamID)
	appendFilter("s.project_id", filter.ProjectID)
	appendFilter("s.task_id", filter.TaskID)
	appendFilter("s.id", filter.ShiftID)

	return strings.Join(conditions, " AND "), args
}

// WindowTotal sums the duration of every completed shift in the window.
func (repository *PostgresShiftRepository) WindowTotal(ctx context.Context, organizationID string, filter AnalyticsFilter) (int64, error) {
	where, args := shiftWindowWhere(organizationID, filter)
	query := `SELECT COALESCE(SUM(s.end_ms - s.start_ms), 0) FROM track.shifts s WHERE ` + where

	var total int64
	if err := repository.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_shift_repo_window_total_failed: %w", err)
	}

	return total, nil
}

// ProjectTotals groups the window by project, joining project names.
func (repository *PostgresShiftRepository) ProjectTotals(ctx context.Context, organizationID string, filter AnalyticsFilter) ([]ProjectTotal, error) {
	where, args := shiftWindowWhere(organizationID, filter)
	query := `
		SELECT s.project_id, p.name, SUM(s.end_ms - s.start_ms), COUNT(*)
		FROM track.shifts s
		JOIN core.projects p ON p.id = s.project_id
		WHERE s.project_id IS NOT NULL AND ` + where + `
		GROUP BY s.project_id, p.name
		ORDER BY SUM(s.end_ms - s.start_ms) DESC`

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_shift_repo_project_totals_failed: %w", err)
	}
	defer rows.Close()

	var totals []ProjectTotal
	for rows.Next() {
		var entry ProjectTotal
		if err := rows.Scan(&entry.ProjectID, &entry.ProjectName, &entry.TotalTime, &entry.ShiftCount); err != nil {
			return nil, fmt.Errorf("postgres_shift_repo_project_totals_scan_failed: %w", err)
		}
		totals = append(totals, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_shift_repo_project_totals_rows_failed: %w", err)
	}

	return totals, nil
}

// PostgresScreenshotRepository implements [ScreenshotRepository] using pgx.
type PostgresScreenshotRepository struct {
	pool *pgxpool.Pool
}

// NewScreenshotRepository creates a new PostgreSQL implementation of the ScreenshotRepository.
func NewScreenshotRepository(pool *pgxpool.Pool) *PostgresScreenshotRepository {
	return &PostgresScreenshotRepository{pool: pool}
}

// screenshotSelect is the ListWindow query template: %s takes the WHERE
// clause, %d the limit placeholder index. The optional-uuid columns are cast
// to text inside their COALESCEs, same rule as [employeeSelect].
const screenshotSelect = `
	SELECT
		sc.id, sc.employee_id, e.name,
		COALESCE(sc.team_id::text, ''),
		COALESCE(sc.project_id::text, ''), COALESCE(p.name, ''),
		COALESCE(sc.task_id::text, ''), COALESCE(t.name, ''),
		COALESCE(sc.shift_id::text, ''),
		sc.captured_ms, COALESCE(sc.image_url, ''), sc.activity_level
	FROM track.screenshots sc
	JOIN core.employees e ON e.id = sc.employee_id
	LEFT JOIN core.projects p ON p.id = sc.project_id
	LEFT JOIN core.tasks t ON t.id = sc.task_id
	WHERE %s
	ORDER BY sc.captured_ms DESC
	LIMIT $%d`

// ListWindow returns screenshots in the window matching the filter, newest
// first, capped at limit. Owning names are denormalized via LEFT JOINs so a
// deleted project or task never hides the capture itself.
func (repository *PostgresScreenshotRepository) ListWindow(ctx context.Context, organizationID string, filter AnalyticsFilter, limit int) ([]Screenshot, error) {
	conditions := []string{
		"sc.organization_id = $1",
		"sc.captured_ms >= $2",
		"sc.captured_ms <= $3",
	}
	args := []any{organizationID, filter.Start, filter.End}

	appendFilter := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	appendFilter("sc.employee_id", filter.EmployeeID)
	appendFilter("sc.team_id", filter.TeamID)
	appendFilter("sc.project_id", filter.ProjectID)
	appendFilter("sc.task_id", filter.TaskID)
	appendFilter("sc.shift_id", filter.ShiftID)

	args = append(args, limit)
	query := fmt.Sprintf(screenshotSelect, strings.Join(conditions, " AND "), len(args))

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_screenshot_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var screenshots []Screenshot
	for rows.Next() {
		var shot Screenshot
		err := rows.Scan(
			&shot.ID,
			&shot.EmployeeID,
			&shot.EmployeeName,
			&shot.TeamID,
			&shot.ProjectID,
			&shot.ProjectName,
			&shot.TaskID,
			&shot.TaskName,
			&shot.ShiftID,
			&shot.Timestamp,
			&shot.ImageURL,
			&shot.ActivityLevel,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_screenshot_repo_scan_failed: %w", err)
		}
		shot.OrganizationID = organizationID
		screenshots = append(screenshots, shot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_screenshot_repo_rows_failed: %w", err)
	}

	return screenshots, nil
}
