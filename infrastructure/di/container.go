// Package di wires the application together. Run `wire` in this directory
// after changing providers to regenerate wire_gen.go.
package di

import (
	"advicehub-backend/application/commands/bus"
	commands_handlers "advicehub-backend/application/commands/handlers"
	"advicehub-backend/application/ports"
	querybus "advicehub-backend/application/queries/bus"
	"advicehub-backend/infrastructure/config"
	"advicehub-backend/pkg/auth"
	"advicehub-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	AdviceRepo     ports.AdviceRepository
	UserRepo       ports.UserRepository
	EventPublisher ports.EventPublisher
	Metrics        *observability.Metrics
	Tracer         *observability.Tracer
	JWTGenerator   *auth.JWTGenerator
	JWTValidator   *auth.JWTValidator
	ToggleLike     *commands_handlers.ToggleLikeHandler
	CommandBus     *bus.CommandBus
	QueryBus       *querybus.QueryBus
}
