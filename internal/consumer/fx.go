package consumer

import (
	"github.com/civicgrid/waterworks/internal/consumer/repository"
	"github.com/civicgrid/waterworks/internal/consumer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("consumer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
