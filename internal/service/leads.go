package service

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/octobees/lead-intake/api/internal/dto"
	"github.com/octobees/lead-intake/api/internal/entity"
	"github.com/octobees/lead-intake/api/internal/logging"
)

// LeadCollection is the document collection leads are written to.
const LeadCollection = "lead"

// InvalidContactMessage is returned to callers whose contact fails both shape checks.
const InvalidContactMessage = "Contact must be a valid email or phone number"

// DocumentStore persists arbitrary documents into a named collection.
type DocumentStore interface {
	InsertOne(ctx context.Context, collection string, document any) (uuid.UUID, error)
}

// LeadNotifier schedules a notification for a captured lead without blocking.
type LeadNotifier interface {
	Dispatch(lead entity.Lead)
}

// ValidationError indicates that the submitted payload was rejected.
type ValidationError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// CaptureResult reports what happened to a lead after it passed validation.
// Persistence failures are recorded here and logged, never returned as errors.
type CaptureResult struct {
	Lead       entity.Lead
	DocumentID uuid.UUID
	Persisted  bool
	PersistErr error
}

// LeadsService runs the intake flow: validate, persist, notify.
type LeadsService struct {
	store    DocumentStore
	notifier LeadNotifier
	logger   *logging.Logger
}

// NewLeadsService wires the intake flow. store and notifier may be nil.
func NewLeadsService(store DocumentStore, notifier LeadNotifier, logger *logging.Logger) *LeadsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadsService{store: store, notifier: notifier, logger: logger}
}

// Capture validates the request and records the lead. Only ValidationError is
// ever returned; store and notification failures are absorbed.
func (s *LeadsService) Capture(ctx context.Context, req dto.LeadRequest) (CaptureResult, error) {
	contact := TrimContact(req.Contact)
	if !IsValidContact(contact) {
		return CaptureResult{}, ValidationError{Status: http.StatusBadRequest, Message: InvalidContactMessage}
	}

	lead := entity.NewLead(req.Name, req.Brand, contact)
	// Name and brand must be non-empty after trimming. The contact is checked
	// first, so an invalid contact always wins with a 400.
	if lead.Name == "" {
		return CaptureResult{}, ValidationError{Status: http.StatusUnprocessableEntity, Message: "name is required"}
	}
	if lead.Brand == "" {
		return CaptureResult{}, ValidationError{Status: http.StatusUnprocessableEntity, Message: "brand is required"}
	}

	result := CaptureResult{Lead: lead}
	if s.store == nil {
		result.PersistErr = errStoreNotConfigured
	} else {
		id, err := s.store.InsertOne(ctx, LeadCollection, lead)
		result.DocumentID = id
		result.Persisted = err == nil
		result.PersistErr = err
	}

	if result.PersistErr != nil {
		s.logger.Error("lead insert failed", "collection", LeadCollection, "source", lead.Source, "error", result.PersistErr)
	} else {
		s.logger.Info("lead stored", "collection", LeadCollection, "document_id", result.DocumentID.String())
	}

	if s.notifier != nil {
		s.notifier.Dispatch(lead)
	}

	return result, nil
}
