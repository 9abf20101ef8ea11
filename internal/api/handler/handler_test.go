package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/ingest"
	"mini-mcu/internal/service"
	"mini-mcu/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock MasterUploadService ──

type mockMasterUploadService struct {
	result   *dto.MasterUploadResult
	err      error
	gotFile  service.UploadFile
	gotBytes []byte
}

func (m *mockMasterUploadService) Upload(_ context.Context, f service.UploadFile) (*dto.MasterUploadResult, error) {
	m.gotFile = f
	m.gotBytes, _ = io.ReadAll(f.Reader)
	return m.result, m.err
}
func (m *mockMasterUploadService) Reconcile(_ context.Context, _ *ingest.Workbook, _ string) (*ingest.Report, *service.MasterCounts) {
	return ingest.NewReport(), &service.MasterCounts{}
}

// ── Mock CheckupUploadService ──

type mockCheckupUploadService struct {
	result     *dto.CheckupUploadResult
	err        error
	gotFile    service.UploadFile
	gotVariant ingest.Variant
}

func (m *mockCheckupUploadService) Upload(_ context.Context, f service.UploadFile, v ingest.Variant) (*dto.CheckupUploadResult, error) {
	m.gotFile = f
	m.gotVariant = v
	return m.result, m.err
}
func (m *mockCheckupUploadService) Reconcile(_ context.Context, _ *ingest.Workbook, _ ingest.Variant) (*ingest.Report, []int64) {
	return ingest.NewReport(), nil
}

// ── Mock UploadLogService ──

type mockUploadLogService struct {
	listResult  []dto.UploadLogSummary
	gotKind     string
	getResult   *dto.UploadLogDetail
	undoResult  *dto.UndoResult
	manyResult  []dto.UndoResult
	gotNames    []string
	purgeResult *dto.PurgeResult
	err         error
}

func (m *mockUploadLogService) List(_ context.Context, kind string) ([]dto.UploadLogSummary, error) {
	m.gotKind = kind
	return m.listResult, m.err
}
func (m *mockUploadLogService) Get(_ context.Context, _ string) (*dto.UploadLogDetail, error) {
	return m.getResult, m.err
}
func (m *mockUploadLogService) Undo(_ context.Context, _ string) (*dto.UndoResult, error) {
	return m.undoResult, m.err
}
func (m *mockUploadLogService) UndoMany(_ context.Context, names []string) ([]dto.UndoResult, error) {
	m.gotNames = names
	return m.manyResult, m.err
}
func (m *mockUploadLogService) PurgeCheckupLogs(_ context.Context) (*dto.PurgeResult, error) {
	return m.purgeResult, m.err
}

// ── Mock EmployeeService ──

type mockEmployeeService struct {
	getResult    *dto.EmployeeResponse
	listResult   []dto.EmployeeResponse
	updateResult *dto.ManualEditResult
	gotCaller    service.Caller
	gotUpdate    *dto.UpdateEmployeeRequest
	err          error
}

func (m *mockEmployeeService) Get(_ context.Context, _ string) (*dto.EmployeeResponse, error) {
	return m.getResult, m.err
}
func (m *mockEmployeeService) List(_ context.Context, _ *dto.EmployeeListRequest) ([]dto.EmployeeResponse, error) {
	return m.listResult, m.err
}
func (m *mockEmployeeService) Update(_ context.Context, _ string, req *dto.UpdateEmployeeRequest, caller service.Caller) (*dto.ManualEditResult, error) {
	m.gotUpdate = req
	m.gotCaller = caller
	return m.updateResult, m.err
}

// ── Mock CheckupService ──

type mockCheckupService struct {
	createResult  *dto.CreateCheckupResult
	historyResult []dto.CheckupView
	latestResult  *dto.CheckupView
	err           error
}

func (m *mockCheckupService) CreateManual(_ context.Context, _ string, _ *dto.CreateCheckupRequest, _ service.Caller) (*dto.CreateCheckupResult, error) {
	return m.createResult, m.err
}
func (m *mockCheckupService) History(_ context.Context, _ string) ([]dto.CheckupView, error) {
	return m.historyResult, m.err
}
func (m *mockCheckupService) Latest(_ context.Context, _ string) (*dto.CheckupView, error) {
	return m.latestResult, m.err
}

// ── Mock DashboardService ──

type mockDashboardService struct {
	rows      []dto.WellUnwellRow
	expiry    *dto.MCUExpiryResponse
	gotWindow int
	err       error
}

func (m *mockDashboardService) WellUnwell(_ context.Context, _ *dto.WellUnwellRequest) ([]dto.WellUnwellRow, error) {
	return m.rows, m.err
}
func (m *mockDashboardService) MCUExpiry(_ context.Context, windowDays int) (*dto.MCUExpiryResponse, error) {
	m.gotWindow = windowDays
	return m.expiry, m.err
}

// ── Mock TemplateService ──

type mockTemplateService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockTemplateService) CheckupTemplate(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func withAuth(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("role", role)
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func multipartBody(t *testing.T, filename string, content []byte) (io.Reader, string) {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write(content)
	mw.Close()
	return body, mw.FormDataContentType()
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ═══════════════════════════════════════════════════════════
// UploadHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUploadHandler_UploadMaster_Success(t *testing.T) {
	master := &mockMasterUploadService{result: &dto.MasterUploadResult{Inserted: 2, TotalRows: 2}}
	h := NewUploadHandler(master, &mockCheckupUploadService{})

	r := gin.New()
	r.POST("/uploads/master", withAuth("manager"), h.UploadMaster)

	body, ct := multipartBody(t, "master.xlsx", []byte("xlsx-bytes"))
	req := httptest.NewRequest("POST", "/uploads/master", body)
	req.Header.Set("Content-Type", ct)
	w := serve(r, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if master.gotFile.Name != "master.xlsx" || master.gotFile.Actor != "test-user-id" {
		t.Errorf("unexpected upload file %+v", master.gotFile)
	}
	if string(master.gotBytes) != "xlsx-bytes" {
		t.Errorf("file content not forwarded, got %q", master.gotBytes)
	}
}

func TestUploadHandler_UploadMaster_MissingFile(t *testing.T) {
	h := NewUploadHandler(&mockMasterUploadService{}, &mockCheckupUploadService{})

	r := gin.New()
	r.POST("/uploads/master", withAuth("manager"), h.UploadMaster)
	w := serve(r, httptest.NewRequest("POST", "/uploads/master", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 20001 {
		t.Errorf("expected code 20001, got %d", resp.Code)
	}
}

func TestUploadHandler_UploadCheckups_Variant(t *testing.T) {
	checkups := &mockCheckupUploadService{result: &dto.CheckupUploadResult{Variant: "anthropometric"}}
	h := NewUploadHandler(&mockMasterUploadService{}, checkups)

	r := gin.New()
	r.POST("/uploads/checkups", withAuth("nurse"), h.UploadCheckups)

	body, ct := multipartBody(t, "c.xlsx", []byte("x"))
	req := httptest.NewRequest("POST", "/uploads/checkups?variant=Anthropometric", body)
	req.Header.Set("Content-Type", ct)
	w := serve(r, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if checkups.gotVariant != ingest.VariantAnthropometric {
		t.Errorf("expected anthropometric, got %s", checkups.gotVariant)
	}
}

func TestUploadHandler_UploadCheckups_InvalidVariant(t *testing.T) {
	h := NewUploadHandler(&mockMasterUploadService{}, &mockCheckupUploadService{})

	r := gin.New()
	r.POST("/uploads/checkups", withAuth("nurse"), h.UploadCheckups)

	body, ct := multipartBody(t, "c.xlsx", []byte("x"))
	req := httptest.NewRequest("POST", "/uploads/checkups?variant=fancy", body)
	req.Header.Set("Content-Type", ct)
	w := serve(r, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 20002 {
		t.Errorf("expected code 20002, got %d", resp.Code)
	}
}

func TestUploadHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"unreadable", service.ErrWorkbookUnreadable, http.StatusUnprocessableEntity, 20003},
		{"empty", service.ErrEmptyWorkbook, http.StatusUnprocessableEntity, 20004},
		{"internal", errors.New("boom"), http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUploadHandler(&mockMasterUploadService{}, &mockCheckupUploadService{err: tt.err})
			r := gin.New()
			r.POST("/uploads/checkups", withAuth("nurse"), h.UploadCheckups)

			body, ct := multipartBody(t, "c.xlsx", []byte("x"))
			req := httptest.NewRequest("POST", "/uploads/checkups", body)
			req.Header.Set("Content-Type", ct)
			w := serve(r, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestUploadHandler_Unauthenticated(t *testing.T) {
	h := NewUploadHandler(&mockMasterUploadService{}, &mockCheckupUploadService{})

	r := gin.New()
	r.POST("/uploads/master", h.UploadMaster)
	w := serve(r, httptest.NewRequest("POST", "/uploads/master", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UploadLogHandler Tests
// ═══════════════════════════════════════════════════════════

func TestUploadLogHandler_ListLogs(t *testing.T) {
	mock := &mockUploadLogService{listResult: []dto.UploadLogSummary{{Name: "checkups-1.json"}}}
	h := NewUploadLogHandler(mock)

	r := gin.New()
	r.GET("/upload-logs", h.ListLogs)

	if w := serve(r, httptest.NewRequest("GET", "/upload-logs?kind=checkups", nil)); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.gotKind != "checkups" {
		t.Errorf("kind not forwarded, got %q", mock.gotKind)
	}
	if w := serve(r, httptest.NewRequest("GET", "/upload-logs?kind=other", nil)); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown kind, got %d", w.Code)
	}
}

func TestUploadLogHandler_UndoLogs(t *testing.T) {
	mock := &mockUploadLogService{manyResult: []dto.UndoResult{{Name: "a.json", Deleted: 3}}}
	h := NewUploadLogHandler(mock)

	r := gin.New()
	r.POST("/upload-logs/undo", h.UndoLogs)

	req := httptest.NewRequest("POST", "/upload-logs/undo", jsonBody(dto.UndoUploadsRequest{Names: []string{"a.json"}}))
	req.Header.Set("Content-Type", "application/json")
	if w := serve(r, req); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if len(mock.gotNames) != 1 || mock.gotNames[0] != "a.json" {
		t.Errorf("names not forwarded, got %v", mock.gotNames)
	}

	empty := httptest.NewRequest("POST", "/upload-logs/undo", jsonBody(map[string]any{"names": []string{}}))
	empty.Header.Set("Content-Type", "application/json")
	if w := serve(r, empty); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty names, got %d", w.Code)
	}
}

func TestUploadLogHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"not found", service.ErrUploadLogNotFound, http.StatusNotFound, 21001},
		{"master log", service.ErrUploadLogNotUndoable, http.StatusConflict, 21002},
		{"bad name", service.ErrInvalidLogName, http.StatusBadRequest, 21003},
		{"internal", errors.New("disk"), http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUploadLogHandler(&mockUploadLogService{err: tt.err})
			r := gin.New()
			r.DELETE("/upload-logs/:name", h.UndoLog)

			w := serve(r, httptest.NewRequest("DELETE", "/upload-logs/master-1.json", nil))
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// EmployeeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEmployeeHandler_UpdateEmployee_Success(t *testing.T) {
	emp := &mockEmployeeService{updateResult: &dto.ManualEditResult{ChangedFields: []string{"jabatan"}}}
	h := NewEmployeeHandler(emp, &mockCheckupService{})

	r := gin.New()
	r.PATCH("/employees/:uid", withAuth("nurse"), h.UpdateEmployee)

	req := httptest.NewRequest("PATCH", "/employees/E1", jsonBody(map[string]string{"jabatan": "lead"}))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if emp.gotCaller != (service.Caller{ID: "test-user-id", Role: "nurse"}) {
		t.Errorf("unexpected caller %+v", emp.gotCaller)
	}
	if emp.gotUpdate.Jabatan == nil || *emp.gotUpdate.Jabatan != "lead" || emp.gotUpdate.Nama != nil {
		t.Errorf("unexpected request %+v", emp.gotUpdate)
	}
}

func TestEmployeeHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"not found", service.ErrEmployeeNotFound, http.StatusNotFound, 22001},
		{"nothing", service.ErrNoFieldsToUpdate, http.StatusBadRequest, 22002},
		{"date", service.ErrInvalidDate, http.StatusBadRequest, 22003},
		{"derajat", service.ErrInvalidDerajat, http.StatusBadRequest, 22005},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewEmployeeHandler(&mockEmployeeService{err: tt.err}, &mockCheckupService{})
			r := gin.New()
			r.PATCH("/employees/:uid", withAuth("master"), h.UpdateEmployee)

			req := httptest.NewRequest("PATCH", "/employees/E1", jsonBody(map[string]string{"nama": "x"}))
			req.Header.Set("Content-Type", "application/json")
			w := serve(r, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestEmployeeHandler_CreateCheckup(t *testing.T) {
	checkups := &mockCheckupService{createResult: &dto.CreateCheckupResult{Checkup: dto.CheckupView{CheckupID: 7}}}
	h := NewEmployeeHandler(&mockEmployeeService{}, checkups)

	r := gin.New()
	r.POST("/employees/:uid/checkups", withAuth("nurse"), h.CreateCheckup)

	req := httptest.NewRequest("POST", "/employees/E1/checkups", jsonBody(map[string]any{"gula_darah_puasa": 101}))
	req.Header.Set("Content-Type", "application/json")
	if w := serve(r, req); w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}

	bad := httptest.NewRequest("POST", "/employees/E1/checkups", jsonBody(map[string]any{"umur": 500}))
	bad.Header.Set("Content-Type", "application/json")
	if w := serve(r, bad); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out of range age, got %d", w.Code)
	}
}

func TestEmployeeHandler_LatestCheckup(t *testing.T) {
	h := NewEmployeeHandler(&mockEmployeeService{}, &mockCheckupService{err: service.ErrCheckupNotFound})

	r := gin.New()
	r.GET("/employees/:uid/checkups", h.ListCheckups)
	w := serve(r, httptest.NewRequest("GET", "/employees/E1/checkups?latest=true", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// DashboardHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDashboardHandler_Summary_BadMonth(t *testing.T) {
	h := NewDashboardHandler(&mockDashboardService{})

	r := gin.New()
	r.GET("/dashboard/summary", h.Summary)
	w := serve(r, httptest.NewRequest("GET", "/dashboard/summary?month=2024-13", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestDashboardHandler_MCUExpiry(t *testing.T) {
	mock := &mockDashboardService{expiry: &dto.MCUExpiryResponse{WindowDays: 60}}
	h := NewDashboardHandler(mock)

	r := gin.New()
	r.GET("/dashboard/mcu-expiry", h.MCUExpiry)
	w := serve(r, httptest.NewRequest("GET", "/dashboard/mcu-expiry?window_days=60", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.gotWindow != 60 {
		t.Errorf("window not forwarded, got %d", mock.gotWindow)
	}
}

// ═══════════════════════════════════════════════════════════
// TemplateHandler / MetricsHandler Tests
// ═══════════════════════════════════════════════════════════

func TestTemplateHandler_Download(t *testing.T) {
	h := NewTemplateHandler(&mockTemplateService{buf: bytes.NewBufferString("xlsx"), filename: "checkup_template_all_20240615.xlsx"})

	r := gin.New()
	r.GET("/templates/checkup", h.CheckupTemplate)
	w := serve(r, httptest.NewRequest("GET", "/templates/checkup", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename*=UTF-8''checkup_template_all_20240615.xlsx" {
		t.Errorf("unexpected disposition %q", cd)
	}
}

func TestMetricsHandler_Status(t *testing.T) {
	h := NewMetricsHandler(service.NewMetricsService())

	r := gin.New()
	r.POST("/metrics/status", h.Status)
	req := httptest.NewRequest("POST", "/metrics/status", jsonBody(map[string]float64{"bmi": 31}))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Data dto.StatusResponse `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Data.Status != ingest.StatusUnwell || body.Data.BMICategory != ingest.BMIObese {
		t.Errorf("unexpected result %+v", body.Data)
	}
}

// ═══════════════════════════════════════════════════════════
// LokasiHandler Tests
// ═══════════════════════════════════════════════════════════

type mockLokasiService struct {
	list      []dto.LokasiResponse
	createErr error
	deleteErr error
	gotNama   string
}

func (m *mockLokasiService) List(_ context.Context) ([]dto.LokasiResponse, error) {
	return m.list, nil
}
func (m *mockLokasiService) Create(_ context.Context, req *dto.CreateLokasiRequest) (*dto.LokasiResponse, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &dto.LokasiResponse{Nama: req.Nama}, nil
}
func (m *mockLokasiService) Delete(_ context.Context, nama string) error {
	m.gotNama = nama
	return m.deleteErr
}

func TestLokasiHandler_Create(t *testing.T) {
	h := NewLokasiHandler(&mockLokasiService{})

	r := gin.New()
	r.POST("/lokasi", h.CreateLokasi)
	req := httptest.NewRequest("POST", "/lokasi", jsonBody(map[string]string{"nama": "Site A"}))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestLokasiHandler_CreateMissingName(t *testing.T) {
	h := NewLokasiHandler(&mockLokasiService{})

	r := gin.New()
	r.POST("/lokasi", h.CreateLokasi)
	req := httptest.NewRequest("POST", "/lokasi", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")
	w := serve(r, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 10001 {
		t.Errorf("expected code 10001, got %d", resp.Code)
	}
}

func TestLokasiHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"not found", service.ErrLokasiNotFound, http.StatusNotFound, 25001},
		{"invalid", service.ErrLokasiInvalid, http.StatusBadRequest, 25002},
		{"internal", errors.New("boom"), http.StatusInternalServerError, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockLokasiService{deleteErr: tt.err}
			h := NewLokasiHandler(mock)

			r := gin.New()
			r.DELETE("/lokasi/:nama", h.DeleteLokasi)
			w := serve(r, httptest.NewRequest("DELETE", "/lokasi/Site%20A", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
			if mock.gotNama != "Site A" {
				t.Errorf("path param not decoded, got %q", mock.gotNama)
			}
		})
	}
}
