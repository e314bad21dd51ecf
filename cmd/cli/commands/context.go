package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/marlowtransit/shiftboard/internal/config"
	"github.com/marlowtransit/shiftboard/pkg/core/services"
	"github.com/marlowtransit/shiftboard/pkg/db"
)

// AppContext holds the application dependencies shared across all commands.
type AppContext struct {
	Cfg       *config.Config
	Store     db.Store
	Scheduler *services.Scheduler
	Location  *time.Location
	Logger    *zap.Logger
	Ctx       context.Context
	Env       string
}
