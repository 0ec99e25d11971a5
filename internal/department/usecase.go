package department

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/department/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type UseCase interface {
	CreateDepartment(ctx context.Context, input *dto.CreateDepartmentInput) (*model.Department, error)
	ListDepartments(ctx context.Context) ([]model.Department, error)
	UpdateDepartment(ctx context.Context, input *dto.UpdateDepartmentInput) (*model.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}
