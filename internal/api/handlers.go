package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/tracksheet/internal/app"
	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/heatmap"
	"github.com/alexanderramin/tracksheet/internal/service"
	"github.com/alexanderramin/tracksheet/internal/theme"
)

// Services groups the use cases the API exposes.
type Services struct {
	Dashboards service.DashboardService
	Activities service.ActivityService
	Taxonomies service.TaxonomyService
	Reports    service.ReportService
	Analysis   service.AnalysisService
}

// Handler implements the API handlers.
type Handler struct {
	svc          Services
	logger       *slog.Logger
	defaultTheme string
	version      string
}

// NewHandler creates a Handler. defaultTheme is used when a request does not
// name one.
func NewHandler(svc Services, logger *slog.Logger, defaultTheme, version string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultTheme == "" {
		defaultTheme = theme.DefaultKey
	}
	return &Handler{svc: svc, logger: logger, defaultTheme: defaultTheme, version: version}
}

type ctxKey struct{}

// dashboardCtx resolves the {dashboard} reference once per request.
func (h *Handler) dashboardCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := h.svc.Dashboards.Resolve(r.Context(), chi.URLParam(r, "dashboard"))
		if err != nil {
			MapError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, d)))
	})
}

func dashboardFrom(r *http.Request) *domain.Dashboard {
	return r.Context().Value(ctxKey{}).(*domain.Dashboard)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return false
	}
	return true
}

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Dashboards int    `json:"dashboards"`
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Dashboards.List(r.Context())
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: h.version, Dashboards: len(list)})
}

// ListThemes handles GET /api/v1/themes
func (h *Handler) ListThemes(w http.ResponseWriter, r *http.Request) {
	keys := theme.Keys()
	out := make([]theme.Theme, 0, len(keys))
	for _, k := range keys {
		t, _ := theme.Lookup(k)
		out = append(out, t)
	}
	writeJSON(w, http.StatusOK, out)
}

// ListDashboards handles GET /api/v1/dashboards
func (h *Handler) ListDashboards(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Dashboards.List(r.Context())
	if err != nil {
		MapError(w, r, err)
		return
	}
	if list == nil {
		list = []*domain.Dashboard{}
	}
	writeJSON(w, http.StatusOK, list)
}

type createDashboardRequest struct {
	Name string `json:"name"`
}

// CreateDashboard handles POST /api/v1/dashboards
func (h *Handler) CreateDashboard(w http.ResponseWriter, r *http.Request) {
	var req createDashboardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := h.svc.Dashboards.Create(r.Context(), req.Name)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// GetDashboard handles GET /api/v1/dashboards/{dashboard}
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dashboardFrom(r))
}

// DeleteDashboard handles DELETE /api/v1/dashboards/{dashboard}
func (h *Handler) DeleteDashboard(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Dashboards.Delete(r.Context(), dashboardFrom(r).ID); err != nil {
		MapError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListActivities handles GET /api/v1/dashboards/{dashboard}/activities
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Activities.List(r.Context(), dashboardFrom(r).ID)
	if err != nil {
		MapError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Activity{}
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateActivity handles POST /api/v1/dashboards/{dashboard}/activities
func (h *Handler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := h.svc.Activities.Add(r.Context(), dashboardFrom(r).ID, req.toActivity(""))
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// UpdateActivity handles PUT /api/v1/dashboards/{dashboard}/activities/{activity}
// The body replaces the stored record; its id field is ignored.
func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	out, err := h.svc.Activities.Update(r.Context(), dashboardFrom(r).ID, req.toActivity(chi.URLParam(r, "activity")))
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteActivity handles DELETE /api/v1/dashboards/{dashboard}/activities/{activity}
func (h *Handler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Activities.Delete(r.Context(), dashboardFrom(r).ID, chi.URLParam(r, "activity")); err != nil {
		MapError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TaxonomyResponse lists the resolved labels of one kind next to the custom
// entries that extend the built-ins.
type TaxonomyResponse struct {
	Kind     domain.TaxonomyKind    `json:"kind"`
	Resolved []string               `json:"resolved"`
	Custom   []domain.TaxonomyEntry `json:"custom"`
}

func taxonomyKind(w http.ResponseWriter, r *http.Request) (domain.TaxonomyKind, bool) {
	kind := domain.TaxonomyKind(chi.URLParam(r, "kind"))
	if !domain.ValidTaxonomyKinds[kind] {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("unknown taxonomy kind %q (expected status or risk)", kind))
		return "", false
	}
	return kind, true
}

// GetTaxonomy handles GET /api/v1/dashboards/{dashboard}/taxonomies/{kind}
func (h *Handler) GetTaxonomy(w http.ResponseWriter, r *http.Request) {
	kind, ok := taxonomyKind(w, r)
	if !ok {
		return
	}
	id := dashboardFrom(r).ID
	customs, err := h.svc.Taxonomies.Customs(r.Context(), id, kind)
	if err != nil {
		MapError(w, r, err)
		return
	}
	resolved, err := h.svc.Taxonomies.Resolve(r.Context(), id, kind)
	if err != nil {
		MapError(w, r, err)
		return
	}
	if customs == nil {
		customs = []domain.TaxonomyEntry{}
	}
	writeJSON(w, http.StatusOK, TaxonomyResponse{Kind: kind, Resolved: resolved, Custom: customs})
}

// AddTaxonomyEntry handles POST /api/v1/dashboards/{dashboard}/taxonomies/{kind}
func (h *Handler) AddTaxonomyEntry(w http.ResponseWriter, r *http.Request) {
	kind, ok := taxonomyKind(w, r)
	if !ok {
		return
	}
	var e domain.TaxonomyEntry
	if !decodeJSON(w, r, &e) {
		return
	}
	out, err := h.svc.Taxonomies.Add(r.Context(), dashboardFrom(r).ID, kind, e)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// reportRequest builds a ReportRequest from the query string:
// search, status, responsible, start, end, period and today.
func reportRequest(r *http.Request, dashboardID string) (app.ReportRequest, error) {
	q := r.URL.Query()
	req := app.NewReportRequest(dashboardID)
	req.Criteria.SearchTerm = q.Get("search")
	if v := q.Get("status"); v != "" {
		req.Criteria.StatusFilter = v
	}
	if v := q.Get("responsible"); v != "" {
		req.Criteria.ResponsibleFilter = v
	}
	req.Period = strings.ToLower(strings.TrimSpace(q.Get("period")))

	for _, p := range []struct {
		param string
		dst   **domain.Date
	}{
		{"start", &req.Criteria.StartDate},
		{"end", &req.Criteria.EndDate},
		{"today", &req.Today},
	} {
		v := q.Get(p.param)
		if v == "" {
			continue
		}
		d, err := domain.ParseDate(v)
		if err != nil {
			return req, fmt.Errorf("invalid %s date %q: expected YYYY-MM-DD", p.param, v)
		}
		*p.dst = &d
	}
	return req, nil
}

func (h *Handler) buildReport(w http.ResponseWriter, r *http.Request) (*app.ReportResponse, bool) {
	req, err := reportRequest(r, dashboardFrom(r).ID)
	if err != nil {
		WriteProblem(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}
	resp, err := h.svc.Reports.Build(r.Context(), req)
	if err != nil {
		MapError(w, r, err)
		return nil, false
	}
	return resp, true
}

// Report handles GET /api/v1/dashboards/{dashboard}/report
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) theme(w http.ResponseWriter, r *http.Request) (theme.Theme, bool) {
	key := r.URL.Query().Get("theme")
	if key == "" {
		key = h.defaultTheme
	}
	t, err := theme.Lookup(key)
	if err != nil {
		WriteProblem(w, r, http.StatusBadRequest, err.Error())
		return theme.Theme{}, false
	}
	return t, true
}

// HeatmapResponse is the discipline x responsible matrix with cell colors
// resolved for one theme.
type HeatmapResponse struct {
	Theme        string             `json:"theme"`
	Disciplines  []string           `json:"disciplines"`
	Responsibles []string           `json:"responsibles"`
	MaxCount     int                `json:"maxCount"`
	Cells        [][]heatmap.Swatch `json:"cells"`
}

// Heatmap handles GET /api/v1/dashboards/{dashboard}/heatmap
func (h *Handler) Heatmap(w http.ResponseWriter, r *http.Request) {
	t, ok := h.theme(w, r)
	if !ok {
		return
	}
	resp, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	m := resp.Matrix
	writeJSON(w, http.StatusOK, HeatmapResponse{
		Theme:        t.Key,
		Disciplines:  m.Disciplines,
		Responsibles: m.Responsibles,
		MaxCount:     m.MaxCount,
		Cells:        heatmap.Shade(m, t.HeatmapBase(), t.HeatmapAccent()),
	})
}

// BadgesResponse maps every resolved label to its badge colors.
type BadgesResponse struct {
	Theme    string                 `json:"theme"`
	Statuses map[string]theme.Badge `json:"statuses"`
	Risks    map[string]theme.Badge `json:"risks"`
}

// Badges handles GET /api/v1/dashboards/{dashboard}/badges
func (h *Handler) Badges(w http.ResponseWriter, r *http.Request) {
	t, ok := h.theme(w, r)
	if !ok {
		return
	}
	id := dashboardFrom(r).ID
	statuses, err := h.svc.Taxonomies.Customs(r.Context(), id, domain.TaxonomyStatus)
	if err != nil {
		MapError(w, r, err)
		return
	}
	risks, err := h.svc.Taxonomies.Customs(r.Context(), id, domain.TaxonomyRisk)
	if err != nil {
		MapError(w, r, err)
		return
	}
	p := theme.Palette{Theme: t, CustomStatuses: statuses, CustomRisks: risks}

	resp := BadgesResponse{Theme: t.Key, Statuses: map[string]theme.Badge{}, Risks: map[string]theme.Badge{}}
	for _, s := range domain.TaxonomyStatus.BuiltIns() {
		resp.Statuses[s] = p.StatusBadge(s)
	}
	for _, c := range statuses {
		resp.Statuses[c.Name] = p.StatusBadge(c.Name)
	}
	for _, s := range domain.TaxonomyRisk.BuiltIns() {
		resp.Risks[s] = p.RiskBadge(s)
	}
	for _, c := range risks {
		resp.Risks[c.Name] = p.RiskBadge(c.Name)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Analysis handles GET /api/v1/dashboards/{dashboard}/analysis
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	resp, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	a, err := h.svc.Analysis.AnalyzeReport(r.Context(), resp)
	if err != nil {
		MapError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
