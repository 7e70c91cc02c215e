package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Units used by the gateway's datums
const (
	UnitCount        = types.StandardUnitCount
	UnitMilliseconds = types.StandardUnitMilliseconds
)

// maxDatumsPerRequest bounds one PutMetricData call
const maxDatumsPerRequest = 20

// maxBuffered drops the oldest datums once the buffer grows past it
const maxBuffered = 5000

// PutMetricDataAPI is the part of the CloudWatch client the publisher uses
type PutMetricDataAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Dimension is a CloudWatch metric dimension
type Dimension struct {
	Name  string
	Value string
}

// CloudWatchPublisher buffers datums and ships them in batches. A nil
// publisher accepts and discards everything.
type CloudWatchPublisher struct {
	namespace string
	client    PutMetricDataAPI
	logger    *zap.Logger

	mu     sync.Mutex
	buffer []types.MetricDatum
}

// NewCloudWatchPublisher creates a publisher for namespace
func NewCloudWatchPublisher(namespace string, client PutMetricDataAPI, logger *zap.Logger) *CloudWatchPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CloudWatchPublisher{
		namespace: namespace,
		client:    client,
		logger:    logger,
	}
}

// Add buffers one datum
func (p *CloudWatchPublisher) Add(name string, value float64, unit types.StandardUnit, dims ...Dimension) {
	if p == nil || p.client == nil {
		return
	}

	datum := types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
	}
	for _, d := range dims {
		datum.Dimensions = append(datum.Dimensions, types.Dimension{
			Name:  aws.String(d.Name),
			Value: aws.String(d.Value),
		})
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.buffer = append(p.buffer, datum)
	if over := len(p.buffer) - maxBuffered; over > 0 {
		p.buffer = p.buffer[over:]
	}
}

// Pending returns the number of buffered datums
func (p *CloudWatchPublisher) Pending() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buffer)
}

// Flush sends every buffered datum. A failed batch is logged and dropped;
// metrics never fail a request.
func (p *CloudWatchPublisher) Flush(ctx context.Context) {
	if p == nil || p.client == nil {
		return
	}

	p.mu.Lock()
	pending := p.buffer
	p.buffer = nil
	p.mu.Unlock()

	for start := 0; start < len(pending); start += maxDatumsPerRequest {
		end := start + maxDatumsPerRequest
		if end > len(pending) {
			end = len(pending)
		}

		_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(p.namespace),
			MetricData: pending[start:end],
		})
		if err != nil {
			p.logger.Warn("Failed to send metrics",
				zap.String("namespace", p.namespace),
				zap.Int("datums", end-start),
				zap.Error(err),
			)
		}
	}
}

// Run flushes every interval until ctx is done, then flushes once more
func (p *CloudWatchPublisher) Run(ctx context.Context, interval time.Duration) {
	if p == nil || p.client == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			p.Flush(flushCtx)
			cancel()
			return
		case <-ticker.C:
			p.Flush(ctx)
		}
	}
}
