package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/tracksheet/internal/app"
	"github.com/alexanderramin/tracksheet/internal/repository"
	"github.com/alexanderramin/tracksheet/internal/service"
	"github.com/alexanderramin/tracksheet/internal/taxonomy"
)

// Problem is an RFC 7807 Problem Details body.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
	// Code carries the machine-readable reason of a domain rejection.
	Code string `json:"code,omitempty"`
}

const problemBase = "https://tracksheet.dev/errors/"

var problemTypes = map[int]struct {
	slug  string
	title string
}{
	http.StatusBadRequest:          {"bad-request", "Bad Request"},
	http.StatusNotFound:            {"not-found", "Not Found"},
	http.StatusConflict:            {"conflict", "Conflict"},
	http.StatusUnprocessableEntity: {"validation-error", "Validation Error"},
	http.StatusInternalServerError: {"internal-error", "Internal Server Error"},
}

// WriteProblem writes a Problem Details response.
func WriteProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeProblem(w, r, status, detail, "")
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, detail, code string) {
	pt, ok := problemTypes[status]
	if !ok {
		pt.slug, pt.title = "unknown", http.StatusText(status)
	}
	p := Problem{
		Type:     problemBase + pt.slug,
		Title:    pt.title,
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
		Code:     code,
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode problem response", "error", err)
	}
}

// MapError converts service errors to Problem Details responses. Unknown
// errors never leak their text to the client.
func MapError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		terr *taxonomy.Error
		rerr *app.ReportError
		verr *service.ValidationError
	)
	switch {
	case errors.As(err, &terr):
		writeProblem(w, r, http.StatusUnprocessableEntity, terr.Message, string(terr.Code))
	case errors.As(err, &rerr):
		status := http.StatusBadRequest
		if rerr.Code == app.ReportErrDashboardNotFound {
			status = http.StatusNotFound
		}
		writeProblem(w, r, status, rerr.Message, string(rerr.Code))
	case errors.As(err, &verr):
		WriteProblem(w, r, http.StatusUnprocessableEntity, verr.Message)
	case errors.Is(err, repository.ErrNotFound):
		WriteProblem(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrConflict):
		WriteProblem(w, r, http.StatusConflict, err.Error())
	default:
		slog.Error("unhandled api error", "error", err, "path", r.URL.Path)
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
	}
}
