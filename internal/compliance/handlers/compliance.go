package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gartstein/corpsec/internal/compliance/documents"
	e "github.com/gartstein/corpsec/internal/compliance/errors"
	"github.com/gartstein/corpsec/internal/compliance/metrics"
	"github.com/gartstein/corpsec/internal/compliance/models"
	"github.com/gartstein/corpsec/internal/compliance/reports"
	"github.com/gartstein/corpsec/internal/compliance/validation"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CompanyStore is the store operation set the HTTP routes drive.
type CompanyStore interface {
	State() models.CompanyState
	SetCompanyProfile(ctx context.Context, details models.CompanyProfile) (models.CompanyState, error)

	AddDirector(ctx context.Context, d models.Director) (models.CompanyState, error)
	UpdateDirector(ctx context.Context, id string, d models.Director) (models.CompanyState, error)
	RemoveDirector(ctx context.Context, id string) (models.CompanyState, error)

	AddMember(ctx context.Context, m models.Member) (models.CompanyState, error)
	UpdateMember(ctx context.Context, id string, m models.Member) (models.CompanyState, error)
	RemoveMember(ctx context.Context, id string) (models.CompanyState, error)

	AddMeeting(ctx context.Context, m models.Meeting) (models.CompanyState, error)
	UpdateMeeting(ctx context.Context, id string, m models.Meeting) (models.CompanyState, error)
	RemoveMeeting(ctx context.Context, id string) (models.CompanyState, error)

	AddFiling(ctx context.Context, f models.Filing) (models.CompanyState, error)
	UpdateFiling(ctx context.Context, id string, f models.Filing) (models.CompanyState, error)
	RemoveFiling(ctx context.Context, id string) (models.CompanyState, error)
}

// DocumentGenerator renders documents from a state snapshot.
type DocumentGenerator interface {
	Generate(state models.CompanyState, req documents.Request) (documents.Attachment, error)
}

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// ComplianceHandler maps HTTP routes onto the company store, the reports
// and the document renderer.
type ComplianceHandler struct {
	store     CompanyStore
	documents DocumentGenerator
	metrics   *metrics.Store
	clock     func() time.Time
	logger    *zap.Logger
}

// NewComplianceHandler constructs a ComplianceHandler. m may be nil.
func NewComplianceHandler(store CompanyStore, docs DocumentGenerator, m *metrics.Store, logger *zap.Logger) *ComplianceHandler {
	return &ComplianceHandler{
		store:     store,
		documents: docs,
		metrics:   m,
		clock:     time.Now,
		logger:    logger.Named("http_handler"),
	}
}

// Summary is the body of GET /v1/reports/summary.
type Summary struct {
	reports.Summary
	Violations []validation.Violation `json:"violations"`
}

// Register adds every route to mux.
func (h *ComplianceHandler) Register(mux *runtime.ServeMux) error {
	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodGet, "/v1/state", h.getState},
		{http.MethodPut, "/v1/profile", h.setProfile},

		{http.MethodPost, "/v1/directors", create(h, h.store.AddDirector)},
		{http.MethodPut, "/v1/directors/{id}", update(h, h.store.UpdateDirector)},
		{http.MethodDelete, "/v1/directors/{id}", remove(h, h.store.RemoveDirector)},

		{http.MethodPost, "/v1/members", create(h, h.store.AddMember)},
		{http.MethodPut, "/v1/members/{id}", update(h, h.store.UpdateMember)},
		{http.MethodDelete, "/v1/members/{id}", remove(h, h.store.RemoveMember)},

		{http.MethodPost, "/v1/meetings", create(h, func(ctx context.Context, req meetingRequest) (models.CompanyState, error) {
			return h.store.AddMeeting(ctx, req.model())
		})},
		{http.MethodPut, "/v1/meetings/{id}", update(h, func(ctx context.Context, id string, req meetingRequest) (models.CompanyState, error) {
			return h.store.UpdateMeeting(ctx, id, req.model())
		})},
		{http.MethodDelete, "/v1/meetings/{id}", remove(h, h.store.RemoveMeeting)},

		{http.MethodPost, "/v1/filings", create(h, h.store.AddFiling)},
		{http.MethodPut, "/v1/filings/{id}", update(h, h.store.UpdateFiling)},
		{http.MethodDelete, "/v1/filings/{id}", remove(h, h.store.RemoveFiling)},

		{http.MethodGet, "/v1/reports/summary", h.getSummary},
		{http.MethodGet, "/v1/documents/{kind}", h.getDocument},
	}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.pattern, rt.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", rt.method, rt.pattern, err)
		}
	}
	return nil
}

func (h *ComplianceHandler) getState(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	h.writeJSON(w, http.StatusOK, h.store.State())
}

func (h *ComplianceHandler) setProfile(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var profile models.CompanyProfile
	if err := decode(w, r, &profile); err != nil {
		h.writeError(w, err)
		return
	}
	state, err := h.store.SetCompanyProfile(r.Context(), profile)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, state)
}

func create[T any](h *ComplianceHandler, add func(context.Context, T) (models.CompanyState, error)) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		var rec T
		if err := decode(w, r, &rec); err != nil {
			h.writeError(w, err)
			return
		}
		state, err := add(r.Context(), rec)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusCreated, state)
	}
}

func update[T any](h *ComplianceHandler, upd func(context.Context, string, T) (models.CompanyState, error)) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		var rec T
		if err := decode(w, r, &rec); err != nil {
			h.writeError(w, err)
			return
		}
		state, err := upd(r.Context(), params["id"], rec)
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, state)
	}
}

func remove(h *ComplianceHandler, del func(context.Context, string) (models.CompanyState, error)) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		state, err := del(r.Context(), params["id"])
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, state)
	}
}

func (h *ComplianceHandler) getSummary(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	state := h.store.State()
	violations := validation.Policy(state)
	if violations == nil {
		violations = []validation.Violation{}
	}
	h.writeJSON(w, http.StatusOK, Summary{
		Summary:    reports.Build(state, h.clock()),
		Violations: violations,
	})
}

func (h *ComplianceHandler) getDocument(w http.ResponseWriter, r *http.Request, params map[string]string) {
	doc, err := documents.ParseDocument(params["kind"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	query := r.URL.Query()
	format, err := documents.ParseFormat(query.Get("format"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	attachment, err := h.documents.Generate(h.store.State(), documents.Request{
		Document:  doc,
		MeetingID: query.Get("meeting_id"),
		Format:    format,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.metrics.IncRender(string(attachment.Kind))

	w.Header().Set("Content-Type", attachment.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(attachment.Body); err != nil {
		h.logger.Warn("Failed to write document", zap.Error(err), zap.String("file", attachment.FileName))
	}
}

// meetingRequest accepts the agenda either as a list or as the multi-line
// text typed into the meeting form.
type meetingRequest struct {
	models.Meeting
	Agenda agenda `json:"agenda"`
}

func (m meetingRequest) model() models.Meeting {
	meeting := m.Meeting
	meeting.Agenda = []string(m.Agenda)
	return meeting
}

type agenda []string

func (a *agenda) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*a = models.ParseAgenda(text)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.New("agenda must be a string or a list of strings")
	}
	*a = models.ParseAgenda(strings.Join(items, "\n"))
	return nil
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", e.ErrInvalidInput, err)
	}
	return nil
}

func (h *ComplianceHandler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to write response", zap.Error(err))
	}
}

func (h *ComplianceHandler) writeError(w http.ResponseWriter, err error) {
	st := h.mapServiceError(err)
	h.writeJSON(w, runtime.HTTPStatusFromCode(st.Code()), map[string]string{"error": st.Message()})
}

// mapServiceError maps domain or storage errors to gRPC status codes.
func (h *ComplianceHandler) mapServiceError(err error) *status.Status {
	switch {
	case errors.Is(err, e.ErrNotFound):
		return status.New(codes.NotFound, err.Error())
	case errors.Is(err, e.ErrInvalidInput):
		return status.New(codes.InvalidArgument, err.Error())
	case errors.Is(err, e.ErrPersistence):
		h.logger.Error("Storage unavailable", zap.Error(err))
		return status.New(codes.Unavailable, err.Error())
	default:
		h.logger.Error("Internal server error", zap.Error(err))
		return status.New(codes.Internal, fmt.Sprintf("internal server error: %v", err))
	}
}
