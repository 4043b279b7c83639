package bootstrap

import (
	"time"

	"shareit/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewLocation,
	),
)

// NewLocation provides the zone used to read and render naive timestamps.
func NewLocation(cfg config.Config) (*time.Location, error) {
	return cfg.App.Location()
}
