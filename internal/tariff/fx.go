package tariff

import (
	"github.com/civicgrid/waterworks/internal/tariff/repository"
	"github.com/civicgrid/waterworks/internal/tariff/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tariff.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
