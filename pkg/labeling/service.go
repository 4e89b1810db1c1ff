package labeling

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/labelworks/labeler/pkg/common/kafka"
	"github.com/labelworks/labeler/pkg/common/logger"
	"gorm.io/datatypes"
)

const textColumn = "text"

type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func validationErrorf(format string, args ...interface{}) error {
	return ValidationError{reason: fmt.Errorf(format, args...)}
}

// RecordStore is the persistence capability the service needs. The gorm
// Repository implements it; tests inject an in-memory fake.
type RecordStore interface {
	Create(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context) ([]Record, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*Record, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CreateUpload(ctx context.Context, up *Upload) error
	ListUploads(ctx context.Context) ([]Upload, error)
}

// Labeler assigns a category label to text. It never fails; classification
// errors are resolved inside it by falling back to keyword matching.
type Labeler interface {
	Label(ctx context.Context, text string) string
}

type Service struct {
	store    RecordStore
	labeler  Labeler
	producer *kafka.Producer
}

// NewService wires the ingestion service. producer may be nil, which
// disables event publishing.
func NewService(store RecordStore, labeler Labeler, producer *kafka.Producer) *Service {
	return &Service{store: store, labeler: labeler, producer: producer}
}

// Submit labels a single text and persists it with status pending.
func (s *Service) Submit(ctx context.Context, text string) (*Record, error) {
	if strings.TrimSpace(text) == "" {
		return nil, validationErrorf("text is required")
	}

	label := s.labeler.Label(ctx, text)

	rec := &Record{
		ID:     uuid.New().String(),
		Text:   text,
		Label:  label,
		Status: StatusPending,
	}

	if err := s.store.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("persisting label record: %w", err)
	}

	s.publish(ctx, "record.created", rec)
	return rec, nil
}

// SubmitBatch ingests a CSV stream best-effort: rows are classified and
// persisted strictly in file order, one at a time; a bad row is recorded in
// the failure manifest and processing continues. Rows persisted before a
// failure stay persisted.
func (s *Service) SubmitBatch(ctx context.Context, filename string, r io.Reader) (*BatchResult, error) {
	columns, rows, err := ParseRows(r)
	if err != nil {
		return nil, ValidationError{reason: err}
	}
	if !hasColumn(columns, textColumn) {
		return nil, validationErrorf("csv must include a %q column", textColumn)
	}
	if len(rows) == 0 {
		return nil, validationErrorf("csv contains no data rows")
	}

	result := &BatchResult{
		Records:  make([]Record, 0, len(rows)),
		Failures: []RowFailure{},
	}

	for i, row := range rows {
		rowNum := i + 1
		text := row[textColumn]
		if strings.TrimSpace(text) == "" {
			result.Failures = append(result.Failures, RowFailure{Row: rowNum, Reason: "empty text value"})
			continue
		}

		label := s.labeler.Label(ctx, text)

		rec := &Record{
			ID:     uuid.New().String(),
			Text:   text,
			Label:  label,
			Status: StatusPending,
		}

		if err := s.store.Create(ctx, rec); err != nil {
			logger.Log.WithError(err).WithField("row", rowNum).Error("failed to persist batch row")
			result.Failures = append(result.Failures, RowFailure{Row: rowNum, Reason: err.Error()})
			continue
		}

		result.Records = append(result.Records, *rec)
		s.publish(ctx, "record.created", rec)
	}

	upload := &Upload{
		ID:        uuid.New().String(),
		Filename:  filename,
		Rows:      len(rows),
		Succeeded: len(result.Records),
		Failed:    len(result.Failures),
	}
	if len(result.Failures) > 0 {
		failures := make([]interface{}, 0, len(result.Failures))
		for _, f := range result.Failures {
			failures = append(failures, map[string]interface{}{"row": f.Row, "reason": f.Reason})
		}
		upload.Summary = datatypes.JSONMap{"failures": failures}
	}

	if err := s.store.CreateUpload(ctx, upload); err != nil {
		// The records themselves are committed; losing the manifest is not
		// worth failing the whole request over.
		logger.Log.WithError(err).Warn("failed to persist upload manifest")
	} else {
		result.Upload = upload
	}

	return result, nil
}

// List returns every record, newest first.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.store.List(ctx)
}

// Update applies a partial update to a record. Status values outside the
// enumeration and empty label overrides are rejected; created_at is
// immutable.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Record, error) {
	updates := map[string]interface{}{}

	if req.Label != nil {
		if strings.TrimSpace(*req.Label) == "" {
			return nil, validationErrorf("label cannot be empty")
		}
		updates["label"] = *req.Label
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, validationErrorf("invalid status %q", *req.Status)
		}
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return s.store.Get(ctx, id)
	}

	rec, err := s.store.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "record.updated", rec)
	return rec, nil
}

// Stats counts records per status bucket.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.store.CountByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := s.store.CountByStatus(ctx, StatusApproved)
	if err != nil {
		return nil, err
	}
	edited, err := s.store.CountByStatus(ctx, StatusEdited)
	if err != nil {
		return nil, err
	}

	return &Stats{Total: total, Pending: pending, Approved: approved, Edited: edited}, nil
}

// ListUploads returns batch manifests, newest first.
func (s *Service) ListUploads(ctx context.Context) ([]Upload, error) {
	return s.store.ListUploads(ctx)
}

func (s *Service) publish(ctx context.Context, eventType string, rec *Record) {
	if s.producer == nil {
		return
	}
	data := map[string]interface{}{
		"record_id": rec.ID,
		"label":     rec.Label,
		"status":    rec.Status,
	}
	if err := s.producer.PublishEvent(ctx, eventType, "labeler-service", data); err != nil {
		logger.WithField("record_id", rec.ID).WithError(err).Warn("failed to publish label event")
	}
}
