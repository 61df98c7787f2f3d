// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"internship-assistant/internal/common/config"
	"internship-assistant/internal/common/errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client owns the gateway connection of the worker manager. It reports readiness
// from the broker topology and retries job commands that hit transient failures.
type Client struct {
	client zbc.Client
	config *ClientConfig

	topology func(context.Context) error
}

type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	RequestTimeout         time.Duration
	RetryConfig            *RetryConfig
}

type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 3,
	BaseDelay:  1 * time.Second,
	MaxDelay:   10 * time.Second,
}

// backoff doubles BaseDelay per attempt and caps it at MaxDelay.
func (r *RetryConfig) backoff(attempt int) time.Duration {
	delay := r.BaseDelay << attempt
	if delay <= 0 || delay > r.MaxDelay {
		return r.MaxDelay
	}
	return delay
}

// ClientConfigFromApp maps the camunda section of the application config.
func ClientConfigFromApp(cfg config.CamundaConfig) *ClientConfig {
	return &ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      10 * time.Second,
		RequestTimeout:         config.GetDuration(cfg.RequestTimeout),
		RetryConfig:            DefaultRetryConfig,
	}
}

// NewClientWithConfig dials the gateway and fails unless the broker answers a topology request.
func NewClientWithConfig(cfg *ClientConfig) (*Client, error) {
	if cfg.RetryConfig == nil {
		cfg.RetryConfig = DefaultRetryConfig
	}

	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.GatewayAddress,
		UsePlaintextConnection: cfg.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	c := &Client{client: zeebeClient, config: cfg}
	c.topology = func(ctx context.Context) error {
		_, err := zeebeClient.NewTopologyCommand().Send(ctx)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectionTimeout)
	defer cancel()
	if err := c.topology(ctx); err != nil {
		zeebeClient.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.GatewayAddress, err)
	}
	return c, nil
}

// GetClient returns the raw Zeebe client for job polling.
func (c *Client) GetClient() zbc.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

// HealthCheck is the readiness check of the worker manager.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
	defer cancel()

	_, err := Retry(ctx, c.config.RetryConfig, "topology", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.topology(ctx)
	})
	if err != nil {
		return fmt.Errorf("zeebe health check failed: %w", err)
	}
	return nil
}

// CompleteJob sends the complete command for jobKey with variables, retrying transient
// gateway failures. A nil rc uses DefaultRetryConfig.
func CompleteJob(ctx context.Context, client worker.JobClient, jobKey int64, variables interface{}, rc *RetryConfig) error {
	request, err := client.NewCompleteJobCommand().JobKey(jobKey).VariablesFromObject(variables)
	if err != nil {
		return errors.NewInternalError(fmt.Errorf("build complete command for job %d: %w", jobKey, err))
	}
	_, err = Retry(ctx, rc, "complete-job", func(ctx context.Context) (struct{}, error) {
		_, err := request.Send(ctx)
		return struct{}{}, err
	})
	return err
}

// Retry runs fn until it succeeds, fails permanently or has been retried rc.MaxRetries
// times. The returned error is a StandardError classified by the last failure.
func Retry[T any](ctx context.Context, rc *RetryConfig, operation string, fn func(context.Context) (T, error)) (T, error) {
	if rc == nil {
		rc = DefaultRetryConfig
	}

	var zero T
	for attempt := 0; ; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		class := classifyZeebeError(err)
		if class == zeebePermanent || attempt >= rc.MaxRetries {
			return zero, mapZeebeError(err, class, operation, attempt)
		}

		select {
		case <-time.After(rc.backoff(attempt)):
		case <-ctx.Done():
			return zero, errors.NewTimeoutError("zeebe",
				fmt.Errorf("operation %s cancelled after %d attempts: %w", operation, attempt+1, ctx.Err()))
		}
	}
}

type zeebeErrorClass int

const (
	zeebePermanent zeebeErrorClass = iota
	zeebeTimeout
	zeebeUnavailable
)

// ResourceExhausted is how the broker signals backpressure.
var grpcClasses = map[codes.Code]zeebeErrorClass{
	codes.DeadlineExceeded:  zeebeTimeout,
	codes.Unavailable:       zeebeUnavailable,
	codes.ResourceExhausted: zeebeUnavailable,
}

// Errors that lost their gRPC status on the way are classified by message.
var transientPhrases = []struct {
	class   zeebeErrorClass
	phrases []string
}{
	{zeebeTimeout, []string{"timeout", "deadline exceeded"}},
	{zeebeUnavailable, []string{"connection refused", "connection reset", "unavailable", "unreachable", "broken pipe"}},
}

func classifyZeebeError(err error) zeebeErrorClass {
	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
		return grpcClasses[st.Code()]
	}
	msg := strings.ToLower(err.Error())
	for _, group := range transientPhrases {
		for _, phrase := range group.phrases {
			if strings.Contains(msg, phrase) {
				return group.class
			}
		}
	}
	return zeebePermanent
}

func mapZeebeError(err error, class zeebeErrorClass, operation string, attempt int) error {
	msg := fmt.Sprintf("Zeebe operation '%s' failed", operation)
	if attempt > 0 {
		msg += fmt.Sprintf(" after %d attempts", attempt+1)
	}
	wrapped := fmt.Errorf("%s: %w", msg, err)

	switch class {
	case zeebeTimeout:
		return errors.NewTimeoutError("zeebe", wrapped)
	case zeebeUnavailable:
		return errors.NewExternalServiceError("zeebe", wrapped)
	default:
		return errors.NewInternalError(wrapped)
	}
}
