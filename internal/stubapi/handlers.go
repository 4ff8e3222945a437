package stubapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxUploadBytes = 32 << 20

type serviceHandler struct {
	store *followUpStore
}

func (h *serviceHandler) Routes(router chi.Router) {
	router.Get("/health", h.health)
	router.Handle("/metrics", promhttp.Handler())

	router.Post("/audit/flux", h.flux)
	router.Post("/audit/trial-balance", h.trialBalance)
	router.Post("/audit/je-testing", h.jeTesting)
	router.Post("/audit/ar-aging", h.arAging)
	router.Post("/audit/bank-reconciliation", h.bankReconciliation)

	router.Get("/benchmarks/industries", h.industries)
	router.Post("/benchmarks/compare", h.compareBenchmarks)

	router.Get("/followups", h.listFollowUps)
	router.Patch("/followups/{id}", h.updateFollowUp)
	router.Post("/followups/{id}/comments", h.addComment)

	router.Post("/export/{kind}", h.export)
}

func respondOK(w http.ResponseWriter, r *http.Request, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "encoding response")
		return
	}
	render.JSON(w, r, api.Envelope{Ok: true, Data: raw})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, api.Envelope{Ok: false, Error: message})
}

func (h *serviceHandler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// uploadedFile pulls one named file part out of the multipart form and
// returns its filename and content.
func uploadedFile(r *http.Request, field string) (string, []byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", nil, fmt.Errorf("request is not valid multipart form data")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("no file uploaded: field %q is required", field)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("reading uploaded file")
	}
	return header.Filename, content, nil
}

func (h *serviceHandler) flux(w http.ResponseWriter, r *http.Request) {
	filename, content, err := uploadedFile(r, "file")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	threshold := 10.0
	if raw := r.FormValue("threshold_pct"); raw != "" {
		threshold, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "threshold_pct must be a number")
			return
		}
	}

	respondOK(w, r, fabricateFlux(filename, content, threshold))
}

func (h *serviceHandler) trialBalance(w http.ResponseWriter, r *http.Request) {
	filename, content, err := uploadedFile(r, "file")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := fabricateTrialBalance(filename, content)
	if err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondOK(w, r, result)
}

func (h *serviceHandler) jeTesting(w http.ResponseWriter, r *http.Request) {
	filename, content, err := uploadedFile(r, "file")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(w, r, fabricateJETesting(filename, content))
}

func (h *serviceHandler) arAging(w http.ResponseWriter, r *http.Request) {
	filename, content, err := uploadedFile(r, "file")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(w, r, fabricateARAging(filename, content))
}

func (h *serviceHandler) bankReconciliation(w http.ResponseWriter, r *http.Request) {
	ledgerName, ledger, err := uploadedFile(r, "ledger")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	statementName, statement, err := uploadedFile(r, "statement")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(w, r, fabricateBankReconciliation(ledgerName, ledger, statementName, statement))
}

func (h *serviceHandler) industries(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, industryCatalog)
}

func (h *serviceHandler) compareBenchmarks(w http.ResponseWriter, r *http.Request) {
	var request struct {
		IndustryCode string             `json:"industry_code"`
		FiscalYear   int                `json:"fiscal_year"`
		Metrics      map[string]float64 `json:"metrics"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondError(w, r, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if request.IndustryCode == "" {
		respondError(w, r, http.StatusBadRequest, "industry_code is required")
		return
	}
	respondOK(w, r, fabricateBenchmarks(request.IndustryCode, request.FiscalYear, request.Metrics))
}

func (h *serviceHandler) listFollowUps(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, h.store.List())
}

func (h *serviceHandler) updateFollowUp(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var update api.FollowUpUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, r, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	item, ok := h.store.Update(id, update)
	if !ok {
		respondError(w, r, http.StatusNotFound, fmt.Sprintf("follow-up %s not found", id))
		return
	}
	respondOK(w, r, item)
}

func (h *serviceHandler) addComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var comment struct {
		Author string `json:"author"`
		Body   string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
		respondError(w, r, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if comment.Author == "" {
		comment.Author = identityFromRequest(r)
	}
	if strings.TrimSpace(comment.Body) == "" {
		respondError(w, r, http.StatusBadRequest, "comment body is required")
		return
	}

	item, ok := h.store.AddComment(id, comment.Author, comment.Body)
	if !ok {
		respondError(w, r, http.StatusNotFound, fmt.Sprintf("follow-up %s not found", id))
		return
	}
	respondOK(w, r, item)
}

func (h *serviceHandler) export(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	var request struct {
		Tool string `json:"tool"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Tool == "" {
		respondError(w, r, http.StatusBadRequest, "tool is required")
		return
	}

	blob, contentType, err := fabricateExport(kind, request.Tool)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s_report.%s", request.Tool, kind)))
	_, _ = w.Write(blob)
}
