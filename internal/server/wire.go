package server

import (
	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/catalogcache"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/logger"

	cartH "github.com/fekuna/omnipos-storefront/internal/cart/handler"
	cartRepoPkg "github.com/fekuna/omnipos-storefront/internal/cart/repository"
	cartUCPkg "github.com/fekuna/omnipos-storefront/internal/cart/usecase"

	deptH "github.com/fekuna/omnipos-storefront/internal/department/handler"
	deptRepoPkg "github.com/fekuna/omnipos-storefront/internal/department/repository"
	deptUCPkg "github.com/fekuna/omnipos-storefront/internal/department/usecase"

	orderH "github.com/fekuna/omnipos-storefront/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-storefront/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-storefront/internal/order/usecase"

	prodH "github.com/fekuna/omnipos-storefront/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-storefront/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-storefront/internal/product/usecase"

	userH "github.com/fekuna/omnipos-storefront/internal/user/handler"
	userRepoPkg "github.com/fekuna/omnipos-storefront/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-storefront/internal/user/usecase"
)

// Deps are the infrastructure pieces shared by every use case. Catalog and
// Publisher may be nil.
type Deps struct {
	Tx        database.TxManager
	Hasher    auth.PasswordHasher
	Tokens    auth.TokenMaker
	Catalog   *catalogcache.Catalog
	Publisher order.Publisher
	Logger    logger.ZapLogger
}

func NewHandlers(d Deps) *Handlers {
	userUC := userUCPkg.NewUserUseCase(userRepoPkg.NewSQLRepository(), d.Tx, d.Hasher, d.Tokens, d.Logger)
	deptUC := deptUCPkg.NewDepartmentUseCase(deptRepoPkg.NewSQLRepository(), d.Tx, d.Catalog, d.Logger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepoPkg.NewSQLRepository(), d.Tx, d.Catalog, d.Logger)
	cartUC := cartUCPkg.NewCartUseCase(cartRepoPkg.NewSQLRepository(), d.Tx, d.Logger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepoPkg.NewSQLRepository(), d.Tx, d.Publisher, d.Logger)

	return &Handlers{
		User:       userH.NewUserHandler(userUC, d.Logger),
		Department: deptH.NewDepartmentHandler(deptUC, d.Logger),
		Product:    prodH.NewProductHandler(prodUC, d.Logger),
		Cart:       cartH.NewCartHandler(cartUC, d.Logger),
		Order:      orderH.NewOrderHandler(orderUC, d.Logger),
	}
}
