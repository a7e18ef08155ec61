package connection

import (
	"github.com/civicgrid/waterworks/internal/connection/repository"
	"github.com/civicgrid/waterworks/internal/connection/service"
	"go.uber.org/fx"
)

var Module = fx.Module("connection.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
