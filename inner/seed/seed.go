package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"ems/inner/common"
	"ems/inner/database"
	"ems/inner/employee"
	"ems/inner/user"
	"ems/inner/web"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

type Options struct {
	Employees int
	Truncate  bool
}

// Summary сколько записей создано за прогон
type Summary struct {
	Departments  int
	Managers     int
	Employees    int
	Skipped      int
	AdminCreated bool
}

type Seeder struct {
	db        *sqlx.DB
	employees *employee.Repository
	users     *user.Repository
	logger    *common.Logger
	workers   int
	hashCost  int
}

func NewSeeder(db *sqlx.DB, logger *common.Logger) *Seeder {
	return &Seeder{
		db:        db,
		employees: employee.NewEmployeeRepository(db),
		users:     user.NewUserRepository(db),
		logger:    logger,
		workers:   defaultWorkers,
		hashCost:  bcrypt.DefaultCost,
	}
}

// Run наполняет базу демо-данными. Без Truncate повторный запуск пропускает занятые email.
func (s *Seeder) Run(ctx context.Context, opts Options) (summary Summary, err error) {
	if err = database.EnsureSchema(ctx, s.db); err != nil {
		return summary, err
	}

	if opts.Truncate {
		if _, err = s.db.ExecContext(ctx, "TRUNCATE employee, department RESTART IDENTITY CASCADE"); err != nil {
			return summary, fmt.Errorf("error truncating tables: %w", err)
		}
		s.logger.Info("tables truncated")
	}

	departmentIds, err := s.seedDepartments(ctx)
	if err != nil {
		return summary, err
	}
	summary.Departments = len(departmentIds)

	if summary.AdminCreated, err = s.ensureAdmin(ctx); err != nil {
		return summary, err
	}

	managerIds, err := s.seedManagers(ctx, departmentIds)
	if err != nil {
		return summary, err
	}
	summary.Managers = len(managerIds)

	summary.Employees, summary.Skipped, err = s.seedEmployees(ctx, planEmployees(opts.Employees, departmentIds, managerIds))
	return summary, err
}

func (s *Seeder) seedDepartments(ctx context.Context) (map[string]int64, error) {
	ids := make(map[string]int64, len(Departments))
	for _, department := range Departments {
		var id int64
		err := s.db.QueryRowxContext(ctx,
			`INSERT INTO department (name, description) VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
			RETURNING id`,
			department.Name, department.Description,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("error upserting department %s: %w", department.Name, err)
		}
		ids[department.Name] = id
	}
	return ids, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context) (bool, error) {
	_, err := s.users.FindByUsername(ctx, AdminUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("error finding admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), s.hashCost)
	if err != nil {
		return false, fmt.Errorf("error hashing admin password: %w", err)
	}
	admin := user.Entity{Username: AdminUsername, PasswordHash: string(hash), Role: web.RoleAdmin}
	if err = s.users.Add(ctx, &admin); err != nil {
		return false, fmt.Errorf("error creating admin user: %w", err)
	}
	s.logger.Info("admin user created", zap.Int64("id", admin.Id))
	return true, nil
}

func (s *Seeder) seedManagers(ctx context.Context, departmentIds map[string]int64) ([]int64, error) {
	ids := make([]int64, 0, len(ManagerEmails))
	for _, email := range ManagerEmails {
		manager := newManager(email, departmentIds[pick(Departments).Name])
		err := s.employees.Add(ctx, &manager)
		if errors.As(common.TranslateDbError(err, "employee"), &common.AlreadyExistsError{}) {
			err = s.db.GetContext(ctx, &manager.Id, "SELECT id FROM employee WHERE email = $1", email)
		}
		if err != nil {
			return nil, fmt.Errorf("error creating manager %s: %w", email, err)
		}
		ids = append(ids, manager.Id)
	}
	return ids, nil
}

// seedEmployees пишет сотрудников отделов параллельно, не более workers горутин
func (s *Seeder) seedEmployees(ctx context.Context, plan map[string][]employee.Entity) (int, int, error) {
	var inserted, skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for departmentName, entities := range plan {
		g.Go(func() error {
			for i := range entities {
				err := s.employees.Add(gctx, &entities[i])
				if errors.As(common.TranslateDbError(err, "employee"), &common.AlreadyExistsError{}) {
					skipped.Add(1)
					continue
				}
				if err != nil {
					return fmt.Errorf("error seeding %s employee %s: %w", departmentName, entities[i].Email, err)
				}
				inserted.Add(1)
			}
			s.logger.Debug("department seeded",
				zap.String("department", departmentName),
				zap.Int("employees", len(entities)))
			return nil
		})
	}

	err := g.Wait()
	return int(inserted.Load()), int(skipped.Load()), err
}
