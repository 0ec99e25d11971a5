package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fekuna/omnipos-storefront/internal/apperror"
	"github.com/fekuna/omnipos-storefront/internal/catalogcache"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo    product.Repository
	tm      database.TxManager
	catalog *catalogcache.Catalog
	logger  logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, tm database.TxManager, catalog *catalogcache.Catalog, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:    repo,
		tm:      tm,
		catalog: catalog,
		logger:  log,
	}
}

var errProductNotFound = apperror.New(apperror.NotFound, "product not found")

const (
	maxNameLength     = 100
	maxImageURLLength = 500
)

// maxPrice is the first value that no longer fits NUMERIC(10,2).
var maxPrice = decimal.New(1, 8)

func validName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.New(apperror.BadRequest, "name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", apperror.New(apperror.BadRequest, fmt.Sprintf("name must be at most %d characters", maxNameLength))
	}
	return name, nil
}

func validPrice(price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, apperror.New(apperror.BadRequest, "price must not be negative")
	}
	rounded := price.Round(2)
	if rounded.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, apperror.New(apperror.BadRequest, "price must be less than 100000000")
	}
	return rounded, nil
}

// imageURL trims url. A blank value becomes nil.
func imageURL(url *string) (*string, error) {
	if url == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*url)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxImageURLLength {
		return nil, apperror.New(apperror.BadRequest, fmt.Sprintf("image_url must be at most %d characters", maxImageURLLength))
	}
	return &trimmed, nil
}

func (uc *productUseCase) checkDepartment(ctx context.Context, q database.DBTX, id int64) error {
	ok, err := uc.repo.DepartmentExists(ctx, q, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.New(apperror.BadRequest, "department does not exist")
	}
	return nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	name, err := validName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Price == nil {
		return nil, apperror.New(apperror.BadRequest, "price is required")
	}
	price, err := validPrice(*input.Price)
	if err != nil {
		return nil, err
	}
	if input.DepartmentID == nil {
		return nil, apperror.New(apperror.BadRequest, "department_id is required")
	}

	image, err := imageURL(input.ImageURL)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &model.Product{
		BaseModel:    model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Name:         name,
		Price:        price,
		ImageURL:     image,
		DepartmentID: *input.DepartmentID,
	}

	err = uc.tm.WithTx(ctx, func(tx database.DBTX) error {
		if err := uc.checkDepartment(ctx, tx, p.DepartmentID); err != nil {
			return err
		}
		return uc.repo.Create(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.catalog.Invalidate(ctx)
	uc.logger.Info("product created", zap.Int64("product_id", p.ID), zap.Int64("department_id", p.DepartmentID))
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, uc.tm.Conn(), id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errProductNotFound
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}
	return catalogcache.Load(ctx, uc.catalog, catalogcache.ProductsKey(filters.DepartmentID), func() ([]model.Product, error) {
		return uc.repo.FindAll(ctx, uc.tm.Conn(), filters)
	})
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	var p *model.Product
	err := uc.tm.WithTx(ctx, func(tx database.DBTX) error {
		found, err := uc.repo.FindByID(ctx, tx, input.ID)
		if err != nil {
			return err
		}
		if found == nil {
			return errProductNotFound
		}
		p = found

		if input.Name != nil {
			if p.Name, err = validName(*input.Name); err != nil {
				return err
			}
		}
		if input.Price != nil {
			if p.Price, err = validPrice(*input.Price); err != nil {
				return err
			}
		}
		if input.ImageURL != nil {
			if p.ImageURL, err = imageURL(input.ImageURL); err != nil {
				return err
			}
		}
		if input.DepartmentID != nil && *input.DepartmentID != p.DepartmentID {
			if err := uc.checkDepartment(ctx, tx, *input.DepartmentID); err != nil {
				return err
			}
			p.DepartmentID = *input.DepartmentID
		}

		p.UpdatedAt = time.Now().UTC()
		return uc.repo.Update(ctx, tx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.catalog.Invalidate(ctx)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	err := uc.tm.WithTx(ctx, func(tx database.DBTX) error {
		p, err := uc.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return errProductNotFound
		}
		return uc.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	uc.catalog.Invalidate(ctx)
	uc.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}
