// internal/workers/ai-conversation/answer-question/handler.go
package answerquestion

import (
	"context"
	"fmt"
	"time"

	"internship-assistant/internal/assistant"
	"internship-assistant/internal/common/camunda"
	"internship-assistant/internal/common/config"
	"internship-assistant/internal/common/errors"
	"internship-assistant/internal/common/logger"
	"internship-assistant/internal/common/metrics"
	"internship-assistant/internal/common/observability"
	"internship-assistant/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "assistant.answer-question"

var schema = validation.MustCompile(inputSchema)

// Answerer is the part of the assistant the worker depends on.
type Answerer interface {
	Answer(ctx context.Context, question, languageHint string) (*assistant.Answer, error)
}

type Handler struct {
	config       *Config
	logger       logger.Logger
	service      Answerer
	errorHandler *errors.ErrorHandler
	obs          *observability.Observability
}

type HandlerOptions struct {
	AppConfig    *config.Config
	CustomConfig *Config
	Service      Answerer
	Logger       logger.Logger

	// Observability is optional.
	Observability *observability.Observability
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", WorkerName, err)
	}
	if opts.Service == nil {
		return nil, fmt.Errorf("assistant service is required")
	}

	loggerInstance := opts.Logger
	if loggerInstance == nil {
		loggerInstance = logger.NewStructured("info", "json")
	}
	loggerInstance = loggerInstance.With(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       workerConfig,
		logger:       loggerInstance,
		service:      opts.Service,
		errorHandler: errors.NewErrorHandler(loggerInstance),
		obs:          opts.Observability,
	}, nil
}

// Config exposes the resolved worker settings for registration.
func (h *Handler) Config() *Config {
	return h.config
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing question", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.fail(ctx, client, job, err, startTime)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err, startTime)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.obs.RecordJobProcessed(ctx, "completed")
	h.obs.RecordJobDuration(ctx, time.Since(startTime), "completed")
}

// Execute answers one validated question.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	answer, err := h.service.Answer(ctx, input.Question, input.Language)
	if err != nil {
		return nil, err
	}
	return &Output{
		Answer:        answer.Text,
		QueryType:     string(answer.QueryType),
		Language:      string(answer.Language),
		RequestID:     answer.RequestID,
		ContextBlocks: answer.ContextBlocks,
	}, nil
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInputParsingError(err)
	}

	result := schema.Validate(variables)
	if !result.Valid {
		return nil, errors.NewInvalidQuestionError(fmt.Sprintf("%v", result.GetErrorMessages()))
	}

	input := &Input{Question: variables["question"].(string)}
	if lang, ok := variables["language"].(string); ok {
		input.Language = lang
	}
	return input, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	if err := camunda.CompleteJob(ctx, client, job.GetKey(), output, nil); err != nil {
		h.logger.WithError(err).Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
		})
		return
	}

	h.logger.Info("Question answered", map[string]interface{}{
		"jobKey":        job.GetKey(),
		"requestId":     output.RequestID,
		"queryType":     output.QueryType,
		"contextBlocks": output.ContextBlocks,
	})
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, startTime time.Time) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.CodeOf(err))).Inc()
	h.obs.RecordJobProcessed(ctx, "failed")
	h.obs.RecordJobDuration(ctx, time.Since(startTime), "failed")
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
