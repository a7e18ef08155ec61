package billing

import (
	"github.com/civicgrid/waterworks/internal/billing/repository"
	"github.com/civicgrid/waterworks/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
