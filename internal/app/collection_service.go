package app

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"erp-dashboard/internal/core"
	"erp-dashboard/internal/metrics"
	"erp-dashboard/internal/storage"

	"github.com/invopop/jsonschema"
	"github.com/sirupsen/logrus"
)

// recordService implements CollectionService for one schema over one
// storage collection. Every mutation is a read-modify-write inside
// Collection.Update, so id assignment and uniqueness checks see the
// records they are written against.
type recordService[T any, F any] struct {
	schema  *core.Schema[T, F]
	coll    *storage.Collection[T]
	clock   func() time.Time
	metrics *metrics.Metrics
	logger  logrus.FieldLogger

	jsonSchema func() *jsonschema.Schema
}

func newRecordService[T any, F any](schema *core.Schema[T, F], store storage.Store, opts Options) *recordService[T, F] {
	s := &recordService[T, F]{
		schema:  schema,
		clock:   opts.Clock,
		metrics: opts.Metrics,
		logger:  opts.Logger.WithField("collection", schema.Name),
	}
	s.coll = storage.NewCollection(store, schema.Name, schema.Seed, s.logger).
		OnSeed(opts.Metrics.RecordSeed)
	s.jsonSchema = sync.OnceValue(func() *jsonschema.Schema {
		r := jsonschema.Reflector{
			AllowAdditionalProperties: false,
			DoNotReference:            true,
			ExpandedStruct:            true,
		}
		js := r.Reflect(new(F))
		js.Title = schema.Singular
		js.Description = schema.Title
		return js
	})
	return s
}

func (s *recordService[T, F]) Info() CollectionInfo {
	return CollectionInfo{
		Name:     s.schema.Name,
		Title:    s.schema.Title,
		Singular: s.schema.Singular,
		Columns:  s.schema.Headers(),
	}
}

func (s *recordService[T, F]) List(ctx context.Context, f core.Filter) (*ListResult, error) {
	records, err := s.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	matched := s.schema.Filter(records, f)
	return &ListResult{Records: matched, Count: len(matched), Total: len(records)}, nil
}

func (s *recordService[T, F]) Get(ctx context.Context, id int) (any, error) {
	return s.get(ctx, id)
}

func (s *recordService[T, F]) get(ctx context.Context, id int) (T, error) {
	var zero T
	records, err := s.coll.Load(ctx)
	if err != nil {
		return zero, err
	}
	i := s.schema.Find(records, id)
	if i < 0 {
		return zero, s.notFound(id)
	}
	return records[i], nil
}

func (s *recordService[T, F]) Fields(ctx context.Context, id int) (core.Fields, error) {
	rec, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordFields(rec)
}

func (s *recordService[T, F]) Validate(ctx context.Context, fields core.Fields, editingID int) (core.FieldErrors, error) {
	records, err := s.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	_, errs := s.schema.Validate(fields, records, editingID, s.clock())
	return errs, nil
}

func (s *recordService[T, F]) Create(ctx context.Context, fields core.Fields) (*MutationResult, error) {
	var created T
	_, err := s.coll.Update(ctx, func(records []T) ([]T, error) {
		rec, err := s.schema.Submit(fields, records, 0, s.clock())
		if err != nil {
			return nil, err
		}
		created = rec
		return append(records, rec), nil
	})
	if err != nil {
		return nil, s.failed(core.OpCreate, err)
	}
	return s.succeeded(core.OpCreate, created, s.schema.ID(created)), nil
}

func (s *recordService[T, F]) Update(ctx context.Context, id int, fields core.Fields) (*MutationResult, error) {
	var updated T
	_, err := s.coll.Update(ctx, func(records []T) ([]T, error) {
		i := s.schema.Find(records, id)
		if i < 0 {
			return nil, s.notFound(id)
		}
		rec, err := s.schema.Submit(fields, records, id, s.clock())
		if err != nil {
			return nil, err
		}
		updated = rec
		next := slices.Clone(records)
		next[i] = rec
		return next, nil
	})
	if err != nil {
		return nil, s.failed(core.OpUpdate, err)
	}
	return s.succeeded(core.OpUpdate, updated, id), nil
}

func (s *recordService[T, F]) Delete(ctx context.Context, id int) (*MutationResult, error) {
	_, err := s.coll.Update(ctx, func(records []T) ([]T, error) {
		i := s.schema.Find(records, id)
		if i < 0 {
			return nil, s.notFound(id)
		}
		return slices.Delete(slices.Clone(records), i, i+1), nil
	})
	if err != nil {
		return nil, s.failed(core.OpDelete, err)
	}
	return s.succeeded(core.OpDelete, nil, id), nil
}

func (s *recordService[T, F]) Reset(ctx context.Context) (*ResetResult, error) {
	records, err := s.coll.Reset(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("records", len(records)).Info("collection reset to seed")
	return &ResetResult{Collection: s.schema.Name, Records: len(records)}, nil
}

func (s *recordService[T, F]) Table(ctx context.Context, f core.Filter) (*TableResult, error) {
	records, err := s.coll.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &TableResult{
		Title:   s.schema.Title,
		Headers: s.schema.Headers(),
		Rows:    s.schema.Rows(s.schema.Filter(records, f)),
	}, nil
}

func (s *recordService[T, F]) Schema() *jsonschema.Schema {
	return s.jsonSchema()
}

func (s *recordService[T, F]) notFound(id int) error {
	return fmt.Errorf("%s %d: %w", s.schema.Name, id, core.ErrRecordNotFound)
}

func (s *recordService[T, F]) failed(op core.Operation, err error) error {
	if fields, ok := core.AsValidationError(err); ok {
		s.metrics.RecordValidationFailure(s.schema.Name)
		s.logger.WithFields(logrus.Fields{"operation": op, "fields": len(fields)}).Debug("submission rejected")
	}
	return err
}

func (s *recordService[T, F]) succeeded(op core.Operation, rec any, id int) *MutationResult {
	s.metrics.RecordMutation(s.schema.Name, string(op))
	s.logger.WithFields(logrus.Fields{"operation": op, "id": id}).Info("record saved")
	return &MutationResult{Record: rec, ID: id, Message: s.schema.Message(op)}
}

// recordFields flattens a record into form fields through its JSON form.
// The id is dropped; it is never part of a submission.
func recordFields(rec any) (core.Fields, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	delete(m, "id")
	return core.FieldsFrom(m)
}
