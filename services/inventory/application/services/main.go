package services

import (
	"github.com/ghuser/barstock/pkg/app"
	"github.com/ghuser/barstock/pkg/config"
	"github.com/ghuser/barstock/services/inventory/domain/repositories"
	"github.com/ghuser/barstock/services/inventory/infrastructure/persistence/memory"
	"github.com/ghuser/barstock/services/inventory/infrastructure/persistence/mysql"
	"github.com/ghuser/barstock/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Inventory *InventoryService
}

// New wires all inventory application services with infrastructure from the
// Application container. The repository is chosen by STORAGE_DRIVER.
func New(a *app.Application) *Services {
	return &Services{
		Inventory: NewInventoryService(NewRepository(a), a.Cache, a.Logger),
	}
}

// NewRepository returns the storage backing selected by a.Config.StorageDriver.
// The relational backings require a.Db; the memory backing ignores it.
func NewRepository(a *app.Application) repositories.InventoryRepository {
	switch a.Config.StorageDriver {
	case config.DriverPostgres:
		return postgres.NewItemRepository(a.Db, a.EventBus)
	case config.DriverMySQL:
		return mysql.NewItemRepository(a.Db, a.EventBus)
	default:
		if a.Config.SeedSampleData {
			return memory.NewSeededItemRepository()
		}
		return memory.NewItemRepository()
	}
}
