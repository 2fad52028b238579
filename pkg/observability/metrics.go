package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes operational counters to CloudWatch. Publishing is
// fire-and-forget: a metrics failure must never fail the request that
// produced it.
type Metrics struct {
	client    *cloudwatch.Client
	namespace string
	logger    *zap.Logger
	enabled   bool
}

// NewMetrics creates a metrics publisher. With enabled=false every call is
// a no-op, which is how tests and local development run.
func NewMetrics(client *cloudwatch.Client, namespace string, logger *zap.Logger, enabled bool) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
		enabled:   enabled && client != nil,
	}
}

// Increment records a count of 1 for the named metric
func (m *Metrics) Increment(name string, dimensions map[string]string) {
	m.put(name, 1, types.StandardUnitCount, dimensions)
}

// RecordDuration records a latency value in milliseconds
func (m *Metrics) RecordDuration(name string, d time.Duration, dimensions map[string]string) {
	m.put(name, float64(d.Milliseconds()), types.StandardUnitMilliseconds, dimensions)
}

func (m *Metrics) put(name string, value float64, unit types.StandardUnit, dimensions map[string]string) {
	if !m.enabled {
		return
	}

	dims := make([]types.Dimension, 0, len(dimensions))
	for k, v := range dimensions {
		dims = append(dims, types.Dimension{
			Name:  aws.String(k),
			Value: aws.String(v),
		})
	}

	datum := types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: dims,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: []types.MetricDatum{datum},
		})
		if err != nil {
			m.logger.Warn("failed to publish metric",
				zap.String("metric", name),
				zap.Error(err),
			)
		}
	}()
}
