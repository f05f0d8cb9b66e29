package staff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskdesk/internal/domain"
	"taskdesk/internal/platform/logger"
	"taskdesk/internal/service/auth"
	"taskdesk/internal/store"
)

var _ Service = (*staffService)(nil)

type staffService struct {
	employees store.EmployeeStore
	hasher    auth.PasswordHasher
	jwt       auth.JWTService
	logger    *slog.Logger
}

// NewService creates the staff Service implementation.
func NewService(
	employees store.EmployeeStore,
	hasher auth.PasswordHasher,
	jwt auth.JWTService,
	log *slog.Logger,
) Service {
	if employees == nil {
		panic("employee store cannot be nil")
	}
	if hasher == nil {
		panic("password hasher cannot be nil")
	}
	if jwt == nil {
		panic("jwt service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &staffService{
		employees: employees,
		hasher:    hasher,
		jwt:       jwt,
		logger:    log.With(slog.String("component", "staff_service")),
	}
}

// Authenticate implements Service.Authenticate.
func (s *staffService) Authenticate(ctx context.Context, login, password string) (*domain.Employee, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	employee, err := s.employees.GetByLogin(ctx, login)
	if err != nil {
		if store.IsNotFoundError(err) {
			// Same error as a wrong password, so the response does not
			// reveal which logins exist.
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load employee: %w", err)
	}

	if err := s.hasher.Compare(employee.HashedPassword, password); err != nil {
		log.Warn("login failed", slog.String("login", login))
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(ctx, employee)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("login succeeded",
		slog.Int64("employee_id", employee.ID),
		slog.String("role", string(employee.Role)))
	return employee, token, nil
}

// Register implements Service.Register.
func (s *staffService) Register(ctx context.Context, caller *domain.Employee, input RegisterInput) (*domain.Employee, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !caller.Role.CanAdministerAccounts() {
		log.Warn("employee registration denied",
			slog.Int64("caller_id", caller.ID),
			slog.String("role", string(caller.Role)))
		return nil, ErrPermissionDenied
	}

	employee, err := domain.NewEmployee(input.Login, input.FullName, input.Role, input.Password)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	employee.HashedPassword = hash
	employee.Password = ""

	if err := s.employees.Create(ctx, employee); err != nil {
		if errors.Is(err, store.ErrLoginExists) {
			return nil, ErrLoginTaken
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	log.Info("employee registered",
		slog.Int64("employee_id", employee.ID),
		slog.String("role", string(employee.Role)),
		slog.Int64("created_by", caller.ID))
	return employee, nil
}

// ListActive implements Service.ListActive.
func (s *staffService) ListActive(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// Deactivate implements Service.Deactivate.
func (s *staffService) Deactivate(ctx context.Context, caller *domain.Employee, employeeID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !caller.Role.CanAdministerAccounts() {
		log.Warn("employee deactivation denied",
			slog.Int64("caller_id", caller.ID),
			slog.String("role", string(caller.Role)))
		return ErrPermissionDenied
	}
	if caller.ID == employeeID {
		return ErrSelfDeactivation
	}

	if err := s.employees.Deactivate(ctx, employeeID); err != nil {
		if store.IsNotFoundError(err) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	log.Info("employee deactivated",
		slog.Int64("employee_id", employeeID),
		slog.Int64("deactivated_by", caller.ID))
	return nil
}
