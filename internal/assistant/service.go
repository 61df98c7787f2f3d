// Package assistant routes natural-language questions about internship records to
// short-circuit replies or to grounded text generation.
package assistant

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"internship-assistant/internal/common/config"
	"internship-assistant/internal/common/errors"
	"internship-assistant/internal/common/genai"
	"internship-assistant/internal/common/logger"
	"internship-assistant/internal/common/metrics"
	"internship-assistant/internal/common/observability"
	"internship-assistant/internal/models"
	"internship-assistant/internal/store"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const questionExcerptLength = 120

// Options tunes a Service. Zero timeouts disable the corresponding deadline.
type Options struct {
	AnswerTimeout         time.Duration
	StoreTimeout          time.Duration
	GenerationTimeout     time.Duration
	IncludeContextOnEmpty bool
}

func OptionsFromConfig(cfg config.AssistantConfig) Options {
	return Options{
		AnswerTimeout:         config.GetDuration(cfg.AnswerTimeout),
		StoreTimeout:          config.GetDuration(cfg.StoreTimeout),
		GenerationTimeout:     config.GetDuration(cfg.GenerationTimeout),
		IncludeContextOnEmpty: cfg.ContextOnEmpty(),
	}
}

// Answer is the reply to one question.
type Answer struct {
	Text          string
	QueryType     QueryType
	Language      Language
	Reference     *ReferenceMatch
	Kinds         []models.EntityKind
	ContextBlocks int
	// Generated is false when the reply was produced without the generation capability.
	Generated bool
	RequestID string
}

type Service struct {
	assembler *Assembler
	generator genai.Generator
	opts      Options
	obs       *observability.Observability
	logger    logger.Logger
}

// NewService wires the assistant. obs may be nil.
func NewService(stores store.Stores, generator genai.Generator, opts Options, obs *observability.Observability, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		assembler: NewAssembler(stores, opts.StoreTimeout, log),
		generator: generator,
		opts:      opts,
		obs:       obs,
		logger:    log,
	}
}

// Answer routes question and produces the reply text. Greetings, counts over named
// categories and references to missing records are answered without generation.
func (s *Service) Answer(ctx context.Context, question, languageHint string) (*Answer, error) {
	start := time.Now()
	requestID := uuid.NewString()

	if s.opts.AnswerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.AnswerTimeout)
		defer cancel()
	}

	decision := Route(question, languageHint)

	ctx, span := s.obs.StartSpan(ctx, "assistant.answer",
		attribute.String("request.id", requestID),
		attribute.String("assistant.query_type", string(decision.QueryType)),
		attribute.String("assistant.language", string(decision.Language)),
	)
	defer span.End()

	log := s.logger.With(map[string]interface{}{
		"requestId": requestID,
		"queryType": string(decision.QueryType),
		"language":  string(decision.Language),
	})
	log.Info("Routing question", map[string]interface{}{
		"question":   logger.Excerpt(question, questionExcerptLength),
		"categories": decision.Categories.Kinds,
		"pending":    decision.Categories.Pending,
	})

	answer := &Answer{
		QueryType: decision.QueryType,
		Language:  decision.Language,
		Reference: decision.Reference,
		Kinds:     decision.Categories.Kinds,
		RequestID: requestID,
	}

	text, err := s.respond(ctx, question, decision, answer, log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("Failed to answer question", map[string]interface{}{
			"errorCode": string(errors.CodeOf(err)),
			"error":     err.Error(),
			"duration":  time.Since(start).String(),
		})
		return nil, err
	}
	answer.Text = text

	metrics.AssistantQuestions.WithLabelValues(string(answer.QueryType), string(answer.Language)).Inc()
	s.obs.RecordAnswer(ctx, string(answer.QueryType), time.Since(start))

	log.Info("Question answered", map[string]interface{}{
		"generated":     answer.Generated,
		"contextBlocks": answer.ContextBlocks,
		"duration":      time.Since(start).String(),
	})
	return answer, nil
}

func (s *Service) respond(ctx context.Context, question string, d RoutingDecision, answer *Answer, log logger.Logger) (string, error) {
	switch d.QueryType {
	case QueryGreeting:
		metrics.AssistantShortCircuits.WithLabelValues(metrics.ShortCircuitGreeting).Inc()
		return GreetingText(d.Language), nil
	case QueryCount:
		if !d.Categories.Empty() {
			counts, err := s.assembler.Count(ctx, d.Categories)
			if err != nil {
				return "", err
			}
			metrics.AssistantShortCircuits.WithLabelValues(metrics.ShortCircuitCount).Inc()
			return CountAnswer(counts, d.Language), nil
		}
	}

	asm, err := s.assemble(ctx, question, d.QueryType)
	if err != nil {
		return "", err
	}
	answer.ContextBlocks = len(asm.Blocks)
	metrics.AssistantContextBlocks.Observe(float64(len(asm.Blocks)))

	if d.QueryType == QueryDetail && asm.NotFound {
		metrics.AssistantShortCircuits.WithLabelValues(metrics.ShortCircuitNotFound).Inc()
		log.Info("Referenced record not found", map[string]interface{}{
			"kind": string(asm.Reference.Kind),
			"id":   asm.Reference.ID,
		})
		return NotFoundText(d.Language), nil
	}

	system := BuildSystemInstruction(d.Language, d.QueryType, asm.Blocks)
	raw, err := s.generate(ctx, system, question)
	if err != nil {
		return "", err
	}
	answer.Generated = true

	return PostProcess(raw, PostProcessOptions{
		QueryType:             d.QueryType,
		Language:              d.Language,
		Blocks:                asm.Blocks,
		IncludeContextOnEmpty: s.opts.IncludeContextOnEmpty,
	}), nil
}

func (s *Service) assemble(ctx context.Context, question string, qt QueryType) (Assembly, error) {
	ctx, span := s.obs.StartSpan(ctx, "assistant.assemble", attribute.String("query_type", string(qt)))
	defer span.End()

	asm, err := s.assembler.Assemble(ctx, question, qt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return asm, err
	}
	span.SetAttributes(attribute.Int("context_blocks", len(asm.Blocks)), attribute.Bool("not_found", asm.NotFound))
	return asm, nil
}

// generate makes a single generation attempt under the generation deadline.
func (s *Service) generate(ctx context.Context, system, question string) (string, error) {
	if s.opts.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.GenerationTimeout)
		defer cancel()
	}
	ctx, span := s.obs.StartSpan(ctx, "assistant.generate")
	defer span.End()

	text, err := s.generator.Generate(ctx, system, question)
	switch {
	case err == nil && strings.TrimSpace(text) == "":
		metrics.AssistantGenerationCalls.WithLabelValues(metrics.GenerationBlank).Inc()
		return text, nil
	case err == nil:
		metrics.AssistantGenerationCalls.WithLabelValues(metrics.GenerationOK).Inc()
		return text, nil
	case stderrors.Is(err, genai.ErrGenerationTimeout),
		stderrors.Is(err, context.DeadlineExceeded),
		stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		metrics.AssistantGenerationCalls.WithLabelValues(metrics.GenerationTimeout).Inc()
		span.SetStatus(codes.Error, "generation timeout")
		return "", errors.NewGenerationTimeoutError(err)
	default:
		metrics.AssistantGenerationCalls.WithLabelValues(metrics.GenerationError).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", errors.NewGenerationFailedError(err)
	}
}
