package assistant

import (
	"context"
	stderrors "errors"
	"time"

	"internship-assistant/internal/common/errors"
	"internship-assistant/internal/common/logger"
	"internship-assistant/internal/models"
	"internship-assistant/internal/store"
)

// recordSource erases the record type of a store so kinds can be handled uniformly.
type recordSource interface {
	list(ctx context.Context, pendingOnly bool) ([]any, error)
	get(ctx context.Context, id int64) (any, bool, error)
}

type typedSource[T any] struct {
	store   store.Store[T]
	pending func(T) bool
}

func (s typedSource[T]) list(ctx context.Context, pendingOnly bool) ([]any, error) {
	records, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(records))
	for _, r := range records {
		if pendingOnly && s.pending != nil && !s.pending(r) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s typedSource[T]) get(ctx context.Context, id int64) (any, bool, error) {
	r, found, err := s.store.FindByID(ctx, id)
	if err != nil || !found {
		return nil, found, err
	}
	return r, true, nil
}

func source[T any](s store.Store[T], pending func(T) bool) recordSource {
	if s == nil {
		return nil
	}
	return typedSource[T]{store: s, pending: pending}
}

// Assembly is the context gathered for one question.
type Assembly struct {
	Blocks []ContextBlock
	// Reference is set when the question named an entity and id.
	Reference *ReferenceMatch
	// NotFound reports that Reference pointed at a record that does not exist.
	NotFound bool
}

// Assembler turns a routed question into context blocks read from the stores.
type Assembler struct {
	sources      map[models.EntityKind]recordSource
	storeTimeout time.Duration
	logger       logger.Logger
}

func NewAssembler(stores store.Stores, storeTimeout time.Duration, log logger.Logger) *Assembler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	sources := map[models.EntityKind]recordSource{
		models.KindOffer:               source(stores.Offers, nil),
		models.KindApplication:         source(stores.Applications, models.Application.IsPending),
		models.KindAgreement:           source(stores.Agreements, nil),
		models.KindInterviewInvitation: source(stores.Invitations, nil),
		models.KindStudentEvaluation:   source(stores.StudentEvaluations, nil),
		models.KindWorkplaceEvaluation: source(stores.WorkplaceEvaluations, nil),
		models.KindNotification:        source(stores.Notifications, nil),
	}
	for kind, src := range sources {
		if src == nil {
			delete(sources, kind)
		}
	}
	return &Assembler{sources: sources, storeTimeout: storeTimeout, logger: log}
}

// Assemble gathers context for question routed as queryType.
//
// DETAIL looks up the referenced record. LIST reads up to MaxList records of every
// matched category. Any other type tries the reference first and falls back to the
// categories. Store failures are returned as STORE_QUERY_FAILED or STORE_TIMEOUT.
func (a *Assembler) Assemble(ctx context.Context, question string, queryType QueryType) (Assembly, error) {
	var asm Assembly

	if queryType != QueryList {
		if ref, ok := ExtractReference(question); ok {
			asm.Reference = &ref
			block, found, err := a.lookup(ctx, ref)
			if err != nil {
				return asm, err
			}
			if found {
				asm.Blocks = []ContextBlock{block}
				return asm, nil
			}
			asm.NotFound = true
		}
		if queryType == QueryDetail {
			return asm, nil
		}
	}

	blocks, err := a.listBlocks(ctx, MatchCategories(question))
	if err != nil {
		return asm, err
	}
	asm.Blocks = blocks
	return asm, nil
}

// Count returns the number of records of each matched kind.
func (a *Assembler) Count(ctx context.Context, categories CategoryMatch) ([]KindCount, error) {
	counts := make([]KindCount, 0, len(categories.Kinds))
	for _, kind := range categories.Kinds {
		src, ok := a.sources[kind]
		if !ok {
			continue
		}
		pending := categories.Pending && kind == models.KindApplication
		records, err := a.list(ctx, kind, src, pending)
		if err != nil {
			return nil, err
		}
		counts = append(counts, KindCount{Kind: kind, Count: len(records), Pending: pending})
	}
	return counts, nil
}

func (a *Assembler) lookup(ctx context.Context, ref ReferenceMatch) (ContextBlock, bool, error) {
	src, ok := a.sources[ref.Kind]
	if !ok {
		return "", false, nil
	}

	sctx, cancel := a.withStoreTimeout(ctx)
	defer cancel()

	record, found, err := src.get(sctx, ref.ID)
	if err != nil {
		return "", false, storeError(sctx, ref.Kind, err)
	}
	if !found {
		a.logger.Debug("Referenced record not found", map[string]interface{}{
			"kind": string(ref.Kind),
			"id":   ref.ID,
		})
		return "", false, nil
	}
	block, ok := FormatRecord(record)
	return block, ok, nil
}

func (a *Assembler) listBlocks(ctx context.Context, categories CategoryMatch) ([]ContextBlock, error) {
	var blocks []ContextBlock
	for _, kind := range categories.Kinds {
		src, ok := a.sources[kind]
		if !ok {
			continue
		}
		pending := categories.Pending && kind == models.KindApplication
		records, err := a.list(ctx, kind, src, pending)
		if err != nil {
			return nil, err
		}
		if len(records) > MaxList {
			records = records[:MaxList]
		}
		for _, r := range records {
			if block, ok := FormatRecord(r); ok {
				blocks = append(blocks, block)
			}
		}
	}
	return blocks, nil
}

func (a *Assembler) list(ctx context.Context, kind models.EntityKind, src recordSource, pending bool) ([]any, error) {
	sctx, cancel := a.withStoreTimeout(ctx)
	defer cancel()

	records, err := src.list(sctx, pending)
	if err != nil {
		return nil, storeError(sctx, kind, err)
	}
	return records, nil
}

func (a *Assembler) withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.storeTimeout)
}

func storeError(ctx context.Context, kind models.EntityKind, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewStoreTimeoutError(string(kind), err)
	}
	return errors.NewStoreQueryFailedError(string(kind), err)
}
