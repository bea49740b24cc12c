package cmd

import (
	"fmt"
	"log/slog"
	"time"

	freighthttp "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/barocert"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/accountrepo"
	"freight/internal/adapters/out/postgres/documentrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/adapters/out/signqueue"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/jobs"
	"freight/internal/pkg/token"
	"freight/internal/workers"

	"gorm.io/gorm"
)

const (
	apiTokenNamespace   = "api_access_token"
	orderTokenNamespace = "order_access_token"
	passTokenNamespace  = "pass_access"

	apiTokenMaxAge   = 30 * 24 * time.Hour
	orderTokenMaxAge = time.Hour
	passTokenMaxAge  = 5 * time.Minute
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      ports.Clock
	logger     *slog.Logger
	queue      ports.SignTaskQueue

	apiSigner   *token.Signer
	orderSigner *token.Signer
	passSigner  *token.Signer
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	queue, err := createSignQueue(config)
	if err != nil {
		return nil, err
	}

	secret := []byte(config.TokenSecret)
	return &CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:       systemClock{},
		logger:      logger,
		queue:       queue,
		apiSigner:   token.NewSigner(apiTokenNamespace, apiTokenMaxAge, secret),
		orderSigner: token.NewSigner(orderTokenNamespace, orderTokenMaxAge, secret),
		passSigner:  token.NewSigner(passTokenNamespace, passTokenMaxAge, secret),
	}, nil
}

func createSignQueue(config Config) (ports.SignTaskQueue, error) {
	switch config.SignQueueBackend {
	case "redis":
		return signqueue.NewRedisQueue(config.RedisAddr, config.RedisPassword, config.RedisDB, "")
	default:
		return signqueue.NewMemoryQueue(1024)
	}
}

func (c *CompositionRoot) CreatePostOrderCommandHandler() commands.PostOrderCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPostOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateAllocateOrderCommandHandler() commands.AllocateOrderCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateDeallocateOrderCommandHandler() commands.DeallocateOrderCommandHandler {
	return commands.NewDeallocateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSetOrderFailedCommandHandler() commands.SetOrderFailedCommandHandler {
	return commands.NewSetOrderFailedCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRequestOnboardCommandHandler() commands.RequestOnboardCommandHandler {
	return commands.NewRequestOnboardCommandHandler(c.signingUoWFactory(), c.queue, c.clock)
}

func (c *CompositionRoot) CreateRequestOutboardCommandHandler() commands.RequestOutboardCommandHandler {
	return commands.NewRequestOutboardCommandHandler(c.signingUoWFactory(), c.queue, c.clock)
}

func (c *CompositionRoot) CreateFinalizeSigningCommandHandler() commands.FinalizeSigningCommandHandler {
	return commands.NewFinalizeSigningCommandHandler(c.signingUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAddOrderContactCommandHandler() commands.AddOrderContactCommandHandler {
	return commands.NewAddOrderContactCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateReplaceOrderContactCommandHandler() commands.ReplaceOrderContactCommandHandler {
	return commands.NewReplaceOrderContactCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRemoveOrderContactCommandHandler() commands.RemoveOrderContactCommandHandler {
	return commands.NewRemoveOrderContactCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderDocumentQueryHandler() queries.GetOrderDocumentQueryHandler {
	return queries.NewGetOrderDocumentQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every inbound route onto the command and query
// handlers above.
func (c *CompositionRoot) CreateHTTPServer() (*freighthttp.Server, error) {
	commandHandlers := freighthttp.Commands{
		PostOrder:       c.CreatePostOrderCommandHandler(),
		AllocateOrder:   c.CreateAllocateOrderCommandHandler(),
		DeallocateOrder: c.CreateDeallocateOrderCommandHandler(),
		CancelOrder:     c.CreateCancelOrderCommandHandler(),
		SetOrderFailed:  c.CreateSetOrderFailedCommandHandler(),
		RequestOnboard:  c.CreateRequestOnboardCommandHandler(),
		RequestOutboard: c.CreateRequestOutboardCommandHandler(),
		AddContact:      c.CreateAddOrderContactCommandHandler(),
		ReplaceContact:  c.CreateReplaceOrderContactCommandHandler(),
		RemoveContact:   c.CreateRemoveOrderContactCommandHandler(),
	}
	queryHandlers := freighthttp.Queries{
		GetOrders:        c.CreateGetOrdersQueryHandler(),
		GetOrder:         c.CreateGetOrderQueryHandler(),
		GetOrderDocument: c.CreateGetOrderDocumentQueryHandler(),
	}
	accounts := accountrepo.NewGormAccountRepository(c.gormDB, passiveTracker{})

	return freighthttp.NewServer(
		commandHandlers,
		queryHandlers,
		accounts,
		c.apiSigner,
		c.orderSigner,
		c.passSigner,
		c.logger,
	)
}

// CreateSignWorkerPool builds the pool that drains the sign-task queue
// against the barocert gateway.
func (c *CompositionRoot) CreateSignWorkerPool() (*workers.SignWorkerPool, error) {
	certClient, err := barocert.NewClient(barocert.Config{
		BaseURL:         c.config.BarocertBaseURL,
		LinkID:          c.config.BarocertLinkID,
		SecretKey:       c.config.BarocertSecretKey,
		KakaoClientCode: c.config.BarocertKakaoClientCode,
		NaverClientCode: c.config.BarocertNaverClientCode,
		PassClientCode:  c.config.BarocertPassClientCode,
		CallCenterNum:   c.config.CallCenterNumber,
	}, nil, c.clock, c.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create barocert client: %w", err)
	}

	orders := orderrepo.NewGormOrderRepository(c.gormDB, passiveTracker{})
	documents := documentrepo.NewGormDocumentRepository(c.gormDB, passiveTracker{})

	size := c.config.SignWorkers
	if size < 1 {
		size = 4
	}
	return workers.NewSignWorkerPool(
		c.queue,
		certClient,
		c.CreateFinalizeSigningCommandHandler(),
		orders,
		documents,
		c.passSigner,
		c.config.PublicBaseURL,
		c.config.Production,
		size,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	finder := orderrepo.NewGormOrderRepository(c.gormDB, passiveTracker{})
	return jobs.NewJobManager(finder, c.clock, c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) signingUoWFactory() commands.SigningUoWFactory {
	return FuncSigningUoWFactory(func() commands.SigningUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncAllocationUoWFactory func() commands.AllocationUoW

func (f FuncAllocationUoWFactory) Create() commands.AllocationUoW {
	return f()
}

type FuncSigningUoWFactory func() commands.SigningUoW

func (f FuncSigningUoWFactory) Create() commands.SigningUoW {
	return f()
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// passiveTracker satisfies the repository tracker dependency for
// repositories used outside a unit of work, where nothing collects
// modified aggregates.
type passiveTracker struct{}

func (passiveTracker) TrackAggregate(kernel.UUID, any) {}
