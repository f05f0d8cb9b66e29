package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"taskdesk/internal/domain"
	"taskdesk/internal/platform/logger"
	"taskdesk/internal/store"
)

// PostgresEmployeeStore implements the store.EmployeeStore interface
// using a PostgreSQL database as the storage backend.
type PostgresEmployeeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEmployeeStore creates a new PostgreSQL implementation of the
// EmployeeStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresEmployeeStore(db store.DBTX, logger *slog.Logger) *PostgresEmployeeStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEmployeeStore{
		db:     db,
		logger: logger.With(slog.String("component", "employee_store")),
	}
}

// Ensure PostgresEmployeeStore implements store.EmployeeStore.
var _ store.EmployeeStore = (*PostgresEmployeeStore)(nil)

// Create implements store.EmployeeStore.Create.
// The employee must arrive with a HashedPassword; plaintext never gets here.
// Returns store.ErrLoginExists if the login is already taken.
func (s *PostgresEmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := employee.Validate(); err != nil {
		log.Warn("employee validation failed during create",
			slog.String("error", err.Error()),
			slog.String("login", employee.Login))
		return err
	}

	if employee.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}

	query := `
		INSERT INTO employees (login, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		employee.Login,
		employee.HashedPassword,
		employee.FullName,
		employee.Role,
		employee.IsActive,
	).Scan(&employee.ID, &employee.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate login during employee creation",
				slog.String("login", employee.Login))
			return store.ErrLoginExists
		}

		log.Error("failed to create employee",
			slog.String("error", err.Error()),
			slog.String("login", employee.Login))
		return err
	}

	log.Info("employee created",
		slog.Int64("employee_id", employee.ID),
		slog.String("login", employee.Login),
		slog.String("role", string(employee.Role)))
	return nil
}

// GetByID implements store.EmployeeStore.GetByID.
// Returns store.ErrEmployeeNotFound if the employee does not exist.
func (s *PostgresEmployeeStore) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, login, password_hash, full_name, role, created_at, is_active
		FROM employees
		WHERE id = $1
	`

	emp, err := scanEmployee(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEmployeeNotFound
		}
		log.Error("failed to get employee by ID",
			slog.String("error", err.Error()),
			slog.Int64("employee_id", id))
		return nil, err
	}

	return emp, nil
}

// GetByLogin implements store.EmployeeStore.GetByLogin.
// Deactivated employees are invisible here; this feeds the login flow.
// Returns store.ErrEmployeeNotFound if no active employee matches.
func (s *PostgresEmployeeStore) GetByLogin(ctx context.Context, login string) (*domain.Employee, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, login, password_hash, full_name, role, created_at, is_active
		FROM employees
		WHERE login = $1 AND is_active = true
	`

	emp, err := scanEmployee(s.db.QueryRowContext(ctx, query, login))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("active employee not found by login", slog.String("login", login))
			return nil, store.ErrEmployeeNotFound
		}
		log.Error("failed to get employee by login",
			slog.String("error", err.Error()),
			slog.String("login", login))
		return nil, err
	}

	return emp, nil
}

// ListActive implements store.EmployeeStore.ListActive.
func (s *PostgresEmployeeStore) ListActive(ctx context.Context) ([]domain.Employee, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, login, password_hash, full_name, role, created_at, is_active
		FROM employees
		WHERE is_active = true
		ORDER BY full_name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list active employees", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var employees []domain.Employee
	for rows.Next() {
		var emp domain.Employee
		var role string
		if err := rows.Scan(
			&emp.ID,
			&emp.Login,
			&emp.HashedPassword,
			&emp.FullName,
			&role,
			&emp.CreatedAt,
			&emp.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee row: %w", err)
		}
		emp.Role = domain.Role(role)
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// Deactivate implements store.EmployeeStore.Deactivate.
// Soft delete: rows referencing the employee keep their foreign keys.
// Returns store.ErrEmployeeNotFound if the employee does not exist.
func (s *PostgresEmployeeStore) Deactivate(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `UPDATE employees SET is_active = false WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to deactivate employee",
			slog.String("error", err.Error()),
			slog.Int64("employee_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.ErrEmployeeNotFound
	}

	log.Info("employee deactivated", slog.Int64("employee_id", id))
	return nil
}

// rowScanner abstracts *sql.Row for the single-row scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var emp domain.Employee
	var role string

	err := row.Scan(
		&emp.ID,
		&emp.Login,
		&emp.HashedPassword,
		&emp.FullName,
		&role,
		&emp.CreatedAt,
		&emp.IsActive,
	)
	if err != nil {
		return nil, err
	}

	emp.Role = domain.Role(role)
	return &emp, nil
}
