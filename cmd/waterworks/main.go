package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/civicgrid/waterworks/internal/clock"
	"github.com/civicgrid/waterworks/internal/config"
	"github.com/civicgrid/waterworks/internal/migration"
	"github.com/civicgrid/waterworks/internal/observability"
	"github.com/civicgrid/waterworks/internal/scheduler"
	"github.com/civicgrid/waterworks/internal/server"
	"github.com/civicgrid/waterworks/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		migration.Module,
		server.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
