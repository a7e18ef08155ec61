package network

import (
	"github.com/civicgrid/waterworks/internal/network/service"
	"go.uber.org/fx"
)

var Module = fx.Module("network.service",
	fx.Provide(service.New),
)
