package report

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/LumpsRGood/tablet-use-app/pkg/adapters"
	"github.com/LumpsRGood/tablet-use-app/pkg/metrics"
	"github.com/LumpsRGood/tablet-use-app/pkg/models/api"
	"github.com/LumpsRGood/tablet-use-app/pkg/models/domain"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/config"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/ingest"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/report"
)

// ExportFilename is the download name clients receive for the CSV export.
const ExportFilename = "processed_report.csv"

// uploadField is the multipart form field carrying the source file.
const uploadField = "file"

// maxUploadBytes bounds the accepted request body. Sales exports are small;
// anything past this is not one.
const maxUploadBytes = 32 << 20

type Handler struct {
	processor report.Processor
	mappings  config.Registry
	metrics   *metrics.Manager
}

func NewHandler(processor report.Processor, mappings config.Registry, metrics *metrics.Manager) *Handler {
	return &Handler{
		processor: processor,
		mappings:  mappings,
		metrics:   metrics,
	}
}

// CreateReport ingests the uploaded export and responds with the full report,
// staff rows sorted, overall summary split out.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	raws, ok := h.decodeUpload(w, r)
	if !ok {
		return
	}

	rep, _ := h.runPipeline(raws)
	response := adapters.MapReportDomainToApi(uuid.NewString(), rep)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().
			Err(err).
			Str("report_id", response.ID).
			Msg("failed to encode report")
	}
}

// ExportReport ingests the uploaded export and responds with the flat CSV
// rendition as a file download.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	raws, ok := h.decodeUpload(w, r)
	if !ok {
		return
	}

	_, table := h.runPipeline(raws)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFilename+`"`)
	if err := report.EncodeCSV(w, table); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to write export")
	}
}

// ListProfiles responds with the mapping profile names uploads may name via
// the profile query parameter.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	profiles, err := h.mappings.Profiles(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.Profiles{Profiles: profiles}); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode profiles")
	}
}

// decodeUpload resolves the mapping profile and decodes the uploaded file.
// On failure it writes the error response and reports false; every failure
// here is the client's, either a bad request shape or a structurally invalid
// file, and no partial result survives.
func (h *Handler) decodeUpload(w http.ResponseWriter, r *http.Request) ([]domain.RawRecord, bool) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	mapping, err := h.mappings.Mapping(ctx, r.URL.Query().Get("profile"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile(uploadField)
	if err != nil {
		http.Error(w, `expected a file upload in form field "`+uploadField+`"`, http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	raws, err := ingest.NewDecoder(mapping).Decode(file)
	if err != nil {
		h.metrics.RecordUploadRejected()
		logger.Warn().
			Err(err).
			Str("profile", mapping.Name).
			Msg("rejected upload")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return raws, true
}

func (h *Handler) runPipeline(raws []domain.RawRecord) (domain.Report, domain.ExportTable) {
	start := time.Now()
	rep, table := h.processor.Process(raws)
	h.metrics.RecordReport(len(raws), time.Since(start))
	return rep, table
}
