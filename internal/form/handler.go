package form

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"acdata/internal/config"
	"acdata/internal/extractor"
	"acdata/internal/model"
	"acdata/internal/observability"
	"acdata/internal/specs"
)

//go:embed templates/*.html
var templateFiles embed.FS

const (
	sessionCookie  = "ac_session"
	maxExtractBody = 1 << 20
)

type Lookuper interface {
	Lookup(ctx context.Context, modelName string) (specs.Result, error)
	Remember(ctx context.Context, modelName string, data model.TechnicalData)
}

type Handler struct {
	specs     Lookuper
	store     StateStore
	templates *template.Template
}

type bounds struct {
	MinConsumption, MaxConsumption float64
	MinCooling, MaxCooling         float64
}

type pageData struct {
	State      model.FormState
	Notice     Notice
	Raw        string
	ShowManual bool
	Manual     model.ManualInput
	Bounds     bounds
}

type extractRequest struct {
	Text string `json:"text"`
}

type extractResponse struct {
	Data    model.TechnicalData `json:"data"`
	Path    extractor.Path      `json:"path"`
	Missing []string            `json:"missing"`
	Issues  []string            `json:"issues,omitempty"`
}

func NewHandler(lookup Lookuper, store StateStore) (*Handler, error) {
	funcs := template.FuncMap{
		"kw": func(v *float64) string {
			if v == nil {
				return "-"
			}
			return strconv.FormatFloat(*v, 'f', -1, 64) + " kW"
		},
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{specs: lookup, store: store, templates: tmpl}, nil
}

// Routes builds the chi router of the form.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", h.handleIndex)
	r.Post("/lookup", h.handleLookup)
	r.Post("/manual", h.handleManual)
	r.Post("/reset", h.handleReset)

	r.Get("/api/state", h.handleState)
	r.Post("/api/extract", h.handleExtract)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	return r
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	state := h.loadState(r.Context(), id)
	h.render(w, http.StatusOK, state, Notice{}, "")
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	logger := config.ComponentLogger("form")
	id := sessionID(w, r)
	state := h.loadState(r.Context(), id)
	modelName := strings.TrimSpace(r.FormValue("model"))

	res, err := h.specs.Lookup(r.Context(), modelName)
	if err != nil && !errors.Is(err, specs.ErrNotConfigured) {
		logger.Error().Err(err).Str("model_name", modelName).Msg("lookup failed")
	}

	next, notice := ApplyLookup(state, modelName, res, err)
	h.saveState(r.Context(), id, next)
	h.render(w, http.StatusOK, next, notice, res.Raw)
}

func (h *Handler) handleManual(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	state := h.loadState(r.Context(), id)
	modelName := r.FormValue("model")

	in, err := parseManual(r)
	if err == nil {
		var next model.FormState
		next, err = ApplyManual(state, modelName, in)
		if err == nil {
			observability.ManualEntriesTotal.Inc()
			h.specs.Remember(r.Context(), next.ModelName, *next.Data)
			h.saveState(r.Context(), id, next)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	h.render(w, http.StatusUnprocessableEntity, state, Notice{Level: NoticeError, Message: err.Error()}, "")
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	if err := h.store.Delete(r.Context(), id); err != nil {
		l := config.ComponentLogger("form")
		l.Warn().Err(err).Msg("failed to reset session")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	writeJSON(w, http.StatusOK, h.loadState(r.Context(), id))
}

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxExtractBody)).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	data, report := extractor.ExtractWithReport(req.Text)
	observability.ExtractionsTotal.WithLabelValues(string(report.Path)).Inc()

	writeJSON(w, http.StatusOK, extractResponse{
		Data:    data,
		Path:    report.Path,
		Missing: data.Missing(),
		Issues:  report.Issues,
	})
}

func (h *Handler) render(w http.ResponseWriter, status int, state model.FormState, notice Notice, raw string) {
	data := pageData{
		State:      state,
		Notice:     notice,
		Raw:        raw,
		ShowManual: !state.Validated,
		Manual:     ManualDefaults(state),
		Bounds: bounds{
			MinConsumption: MinConsumptionKW,
			MaxConsumption: MaxConsumptionKW,
			MinCooling:     MinCoolingKW,
			MaxCooling:     MaxCoolingKW,
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		l := config.ComponentLogger("form")
		l.Error().Err(err).Msg("failed to render page")
	}
}

func (h *Handler) loadState(ctx context.Context, id string) model.FormState {
	state, err := h.store.Load(ctx, id)
	if err != nil {
		l := config.ComponentLogger("form")
		l.Warn().Err(err).Str("session_id", id).Msg("failed to load session")
		return model.FormState{}
	}
	return state
}

func (h *Handler) saveState(ctx context.Context, id string, state model.FormState) {
	if err := h.store.Save(ctx, id, state); err != nil {
		l := config.ComponentLogger("form")
		l.Warn().Err(err).Str("session_id", id).Msg("failed to save session")
	}
}

func parseManual(r *http.Request) (model.ManualInput, error) {
	consumption, err := parseKW(r.FormValue("consumption_kw"))
	if err != nil {
		return model.ManualInput{}, fmt.Errorf("%w: consumption is not a number", ErrInvalidInput)
	}
	cooling, err := parseKW(r.FormValue("cooling_power_kw"))
	if err != nil {
		return model.ManualInput{}, fmt.Errorf("%w: cooling power is not a number", ErrInvalidInput)
	}

	switch strings.ToLower(r.FormValue("inverter")) {
	case "yes", "true", "on", "1":
		return model.ManualInput{ConsumptionKW: consumption, CoolingPowerKW: cooling, Inverter: true}, nil
	case "no", "false", "off", "0":
		return model.ManualInput{ConsumptionKW: consumption, CoolingPowerKW: cooling, Inverter: false}, nil
	default:
		return model.ManualInput{}, fmt.Errorf("%w: inverter must be yes or no", ErrInvalidInput)
	}
}

func parseKW(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

// sessionID reads the session cookie, issuing a new one when absent.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		l := config.ComponentLogger("http")
		l.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
