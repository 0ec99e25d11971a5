package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/catalogcache"
	"github.com/fekuna/omnipos-storefront/internal/department"
	"github.com/fekuna/omnipos-storefront/internal/department/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"go.uber.org/zap"
)

type departmentUseCase struct {
	repo    department.Repository
	tm      database.TxManager
	catalog *catalogcache.Catalog
	logger  logger.ZapLogger
}

func NewDepartmentUseCase(repo department.Repository, tm database.TxManager, catalog *catalogcache.Catalog, log logger.ZapLogger) department.UseCase {
	return &departmentUseCase{
		repo:    repo,
		tm:      tm,
		catalog: catalog,
		logger:  log,
	}
}

var errDuplicate = apperror.New(apperror.Conflict, "department already exists")

const maxNameLength = 50

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.New(apperror.BadRequest, "name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", apperror.New(apperror.BadRequest, fmt.Sprintf("name must be at most %d characters", maxNameLength))
	}
	return name, nil
}

func (uc *departmentUseCase) CreateDepartment(ctx context.Context, input *dto.CreateDepartmentInput) (*model.Department, error) {
	name, err := cleanName(input.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d := &model.Department{
		BaseModel: model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Name:      name,
	}

	err = uc.tm.WithTx(ctx, func(tx database.DBTX) error {
		existing, err := uc.repo.FindByName(ctx, tx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return errDuplicate
		}
		if err := uc.repo.Create(ctx, tx, d); err != nil {
			if database.IsUniqueViolation(err) {
				return errDuplicate
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.catalog.Invalidate(ctx)
	uc.logger.Info("department created", zap.Int64("department_id", d.ID), zap.String("name", d.Name))
	return d, nil
}

func (uc *departmentUseCase) ListDepartments(ctx context.Context) ([]model.Department, error) {
	return catalogcache.Load(ctx, uc.catalog, catalogcache.DepartmentsKey, func() ([]model.Department, error) {
		return uc.repo.FindAll(ctx, uc.tm.Conn())
	})
}

func (uc *departmentUseCase) UpdateDepartment(ctx context.Context, input *dto.UpdateDepartmentInput) (*model.Department, error) {
	name, err := cleanName(input.Name)
	if err != nil {
		return nil, err
	}

	var d *model.Department
	err = uc.tm.WithTx(ctx, func(tx database.DBTX) error {
		found, err := uc.repo.FindByID(ctx, tx, input.ID)
		if err != nil {
			return err
		}
		if found == nil {
			return apperror.New(apperror.NotFound, "department not found")
		}
		d = found

		other, err := uc.repo.FindByName(ctx, tx, name)
		if err != nil {
			return err
		}
		if other != nil && other.ID != d.ID {
			return errDuplicate
		}

		d.Name = name
		d.UpdatedAt = time.Now().UTC()
		if err := uc.repo.Update(ctx, tx, d); err != nil {
			if database.IsUniqueViolation(err) {
				return errDuplicate
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.catalog.Invalidate(ctx)
	return d, nil
}

// DeleteDepartment refuses while any product still references the
// department.
func (uc *departmentUseCase) DeleteDepartment(ctx context.Context, id int64) error {
	err := uc.tm.WithTx(ctx, func(tx database.DBTX) error {
		d, err := uc.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return apperror.New(apperror.NotFound, "department not found")
		}

		count, err := uc.repo.CountProducts(ctx, tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.New(apperror.Conflict, "cannot delete department with products")
		}

		if err := uc.repo.Delete(ctx, tx, id); err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperror.New(apperror.Conflict, "cannot delete department with products")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.catalog.Invalidate(ctx)
	uc.logger.Info("department deleted", zap.Int64("department_id", id))
	return nil
}
