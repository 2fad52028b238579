package di

import (
	"context"
	"time"

	"advicehub-backend/application/commands"
	"advicehub-backend/application/commands/bus"
	commands_handlers "advicehub-backend/application/commands/handlers"
	"advicehub-backend/application/ports"
	"advicehub-backend/application/queries"
	querybus "advicehub-backend/application/queries/bus"
	queries_handlers "advicehub-backend/application/queries/handlers"
	"advicehub-backend/infrastructure/config"
	"advicehub-backend/infrastructure/messaging/eventbridge"
	"advicehub-backend/infrastructure/messaging/noop"
	ddb "advicehub-backend/infrastructure/persistence/dynamodb"
	"advicehub-backend/infrastructure/persistence/memory"
	"advicehub-backend/pkg/auth"
	"advicehub-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideAdviceRepository selects the advice store backend
func ProvideAdviceRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.AdviceRepository {
	if cfg.StoreBackend == config.StoreMemory {
		logger.Warn("Using in-memory advice store; data will not survive a restart")
		return memory.NewAdviceRepository()
	}
	return ddb.NewAdviceRepository(client, cfg.DynamoDBTable, cfg.ListIndexName, logger)
}

// ProvideUserRepository selects the user store backend
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	if cfg.StoreBackend == config.StoreMemory {
		return memory.NewUserRepository()
	}
	return ddb.NewUserRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventPublisher creates the event publisher, or a no-op one when
// event publishing is disabled
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if !cfg.EnableEvents {
		return noop.NewPublisher()
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the metrics recorder
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	return observability.NewMetrics(client, cfg.MetricsNamespace, logger, cfg.EnableMetrics)
}

// ProvideTracer creates the request tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("advicehub-backend", cfg.EnableTracing)
}

// ProvideJWTGenerator creates the token issuer
func ProvideJWTGenerator(cfg *config.Config) (*auth.JWTGenerator, error) {
	return auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SecretKey:  cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		ExpiryTime: time.Duration(cfg.TokenTTLHours) * time.Hour,
	})
}

// ProvideJWTValidator creates the token verifier
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideToggleLikeHandler creates the like toggle handler. It is invoked
// directly by the HTTP layer rather than through the command bus because
// the toggle returns the updated record and the applied action.
func ProvideToggleLikeHandler(
	adviceRepo ports.AdviceRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *commands_handlers.ToggleLikeHandler {
	return commands_handlers.NewToggleLikeHandler(adviceRepo, publisher, metrics, logger)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	adviceRepo ports.AdviceRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus()

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateAdviceCommand{}, commands_handlers.NewCreateAdviceHandler(adviceRepo, publisher, metrics, logger)},
		{commands.UpdateAdviceCommand{}, commands_handlers.NewUpdateAdviceHandler(adviceRepo, publisher, logger)},
		{commands.DeleteAdviceCommand{}, commands_handlers.NewDeleteAdviceHandler(adviceRepo, publisher, logger)},
	}
	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, reg.handler); err != nil {
			return nil, err
		}
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(adviceRepo ports.AdviceRepository, logger *zap.Logger) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.ListAdvicesQuery{}, queries_handlers.NewListAdvicesHandler(adviceRepo, logger)},
		{queries.GetAdviceQuery{}, queries_handlers.NewGetAdviceHandler(adviceRepo, logger)},
	}
	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, reg.handler); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}
