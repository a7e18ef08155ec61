package asset

import (
	"github.com/civicgrid/waterworks/internal/asset/service"
	"go.uber.org/fx"
)

var Module = fx.Module("asset.service",
	fx.Provide(service.New),
)
