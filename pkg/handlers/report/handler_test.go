package report

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LumpsRGood/tablet-use-app/pkg/metrics"
	"github.com/LumpsRGood/tablet-use-app/pkg/models/api"
	"github.com/LumpsRGood/tablet-use-app/pkg/models/domain"
	"github.com/LumpsRGood/tablet-use-app/pkg/services/config"
	svc "github.com/LumpsRGood/tablet-use-app/pkg/services/report"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(raws []domain.RawRecord) (domain.Report, domain.ExportTable) {
	args := m.Called(raws)
	return args.Get(0).(domain.Report), args.Get(1).(domain.ExportTable)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func multipartBody(t *testing.T, field, content string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, "report.csv")
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func newTestHandler(processor svc.Processor) *Handler {
	return NewHandler(processor, config.NewDefaultRegistry(), metrics.NewManager())
}

const sampleCSV = "Device Orders Report,Staff Customer,Base (Including Disc.)\n" +
	"handheld,Alice,10.00\n" +
	"pos,Alice,5.00\n"

func sampleRaws() []domain.RawRecord {
	return []domain.RawRecord{
		{Staff: "Alice", Device: "handheld", Base: "10.00"},
		{Staff: "Alice", Device: "pos", Base: "5.00"},
	}
}

func sampleReport(t *testing.T) (domain.Report, domain.ExportTable) {
	t.Helper()
	rep := domain.Report{Rows: []domain.ReportRow{
		{
			StaffSummary: domain.StaffSummary{
				Staff:      "Alice",
				Handheld:   dec(t, "10.00"),
				POS:        dec(t, "5.00"),
				Percentage: dec(t, "66.67"),
			},
			Tier: domain.TierMid,
		},
		{
			StaffSummary: domain.StaffSummary{
				Staff:      domain.OverallStaffLabel,
				Handheld:   dec(t, "10.00"),
				POS:        dec(t, "5.00"),
				Percentage: dec(t, "66.67"),
			},
			Tier: domain.TierSummary,
		},
	}}
	return rep, svc.Export(rep)
}

func TestCreateReport(t *testing.T) {
	processor := new(mockProcessor)
	rep, table := sampleReport(t)
	processor.On("Process", sampleRaws()).Return(rep, table)

	body, contentType := multipartBody(t, uploadField, sampleCSV)
	req := httptest.NewRequest("POST", "/api/v1/reports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestHandler(processor).CreateReport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var response api.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

	_, err := uuid.Parse(response.ID)
	assert.NoError(t, err)

	require.Len(t, response.Rows, 1)
	assert.Equal(t, "Alice", response.Rows[0].Staff)
	assert.Equal(t, 66.67, response.Rows[0].Percentage)
	assert.Equal(t, "66.67%", response.Rows[0].PercentageDisplay)
	assert.Equal(t, "10.00", response.Rows[0].HandheldDisplay)
	assert.Equal(t, api.TierMid, response.Rows[0].Tier)

	assert.Equal(t, "Overall Total", response.Overall.Staff)
	assert.Equal(t, api.TierSummary, response.Overall.Tier)

	processor.AssertExpectations(t)
}

func TestCreateReportMissingFileField(t *testing.T) {
	processor := new(mockProcessor)

	body, contentType := multipartBody(t, "upload", sampleCSV)
	req := httptest.NewRequest("POST", "/api/v1/reports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestHandler(processor).CreateReport(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `form field "file"`)
	processor.AssertNotCalled(t, "Process", mock.Anything)
}

func TestCreateReportStructurallyInvalidFile(t *testing.T) {
	processor := new(mockProcessor)

	body, contentType := multipartBody(t, uploadField, "Totally,Different,Columns\n1,2,3\n")
	req := httptest.NewRequest("POST", "/api/v1/reports", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestHandler(processor).CreateReport(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required column(s)")
	processor.AssertNotCalled(t, "Process", mock.Anything)
}

func TestCreateReportUnknownProfile(t *testing.T) {
	processor := new(mockProcessor)

	body, contentType := multipartBody(t, uploadField, sampleCSV)
	req := httptest.NewRequest("POST", "/api/v1/reports?profile=legacy", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestHandler(processor).CreateReport(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `mapping profile "legacy" not found`)
	processor.AssertNotCalled(t, "Process", mock.Anything)
}

func TestExportReport(t *testing.T) {
	processor := new(mockProcessor)
	rep, table := sampleReport(t)
	processor.On("Process", sampleRaws()).Return(rep, table)

	body, contentType := multipartBody(t, uploadField, sampleCSV)
	req := httptest.NewRequest("POST", "/api/v1/reports/export", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestHandler(processor).ExportReport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="processed_report.csv"`, rec.Header().Get("Content-Disposition"))

	want := "Staff Customer,Handheld Total,POS Total,Percentage Handheld Use\n" +
		"Alice,10.00,5.00,66.67%\n" +
		"Overall Total,10.00,5.00,66.67%\n"
	assert.Equal(t, want, rec.Body.String())

	processor.AssertExpectations(t)
}

func TestListProfiles(t *testing.T) {
	processor := new(mockProcessor)

	req := httptest.NewRequest("GET", "/api/v1/profiles", nil)
	rec := httptest.NewRecorder()

	newTestHandler(processor).ListProfiles(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response api.Profiles
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, []string{"default"}, response.Profiles)
}
