package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KDZFoundation/agrooptima/internal/config"
	"github.com/KDZFoundation/agrooptima/internal/hierarchy"
	"github.com/KDZFoundation/agrooptima/internal/model"
	"github.com/KDZFoundation/agrooptima/internal/ratecatalog"
	"github.com/KDZFoundation/agrooptima/internal/retriever"
	"github.com/KDZFoundation/agrooptima/internal/store"
)

func testRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := config.DefaultConfig()
	catalog := ratecatalog.New(ratecatalog.Seed())
	ret := retriever.New(st, cfg.Retriever.ChunkSize, cfg.Retriever.ChunkOverlap, nil)
	ann := hierarchy.NewAnnotator(ret, 0, 0, nil)

	h := NewHandler(st, cfg, catalog, ret, ann, nil)
	h.saveConfig = func(*config.AppConfig) error { return nil }

	router := gin.New()
	h.RegisterRoutes(router.Group("/api"))
	return router, st
}

func seedFarm(t *testing.T, st *store.Store) {
	t.Helper()
	if err := st.UpsertFarmer(&model.FarmerClient{
		ProducerID: "123456789",
		FirstName:  "Jan",
		LastName:   "Kowalski",
		FarmName:   "Gospodarstwo Kowalski",
		TotalArea:  10,
		Status:     "ACTIVE",
	}); err != nil {
		t.Fatalf("UpsertFarmer: %v", err)
	}
	if err := st.InsertField("123456789", &model.Field{
		ID: "f1", Name: "Za stodołą", RegistrationNumber: "15/3",
		Commune: "Brodnica", Area: 3, EligibleArea: 3,
	}); err != nil {
		t.Fatalf("InsertField: %v", err)
	}
	if err := st.UpsertHistoryEntry("f1", &model.HistoryEntry{
		Year: 2025, Crop: "Pszenica ozima", Area: 3,
		AppliedEcoSchemes: []string{"E_MPW"},
	}); err != nil {
		t.Fatalf("UpsertHistoryEntry: %v", err)
	}
	if err := st.InsertDocument(&model.FarmerDocument{
		ID: "d1", FarmerID: "123456789", Name: "wniosek_2025.pdf",
		Type: "PDF", Category: model.DocCategoryApplication, CampaignYear: "2025",
	}); err != nil {
		t.Fatalf("InsertDocument: %v", err)
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStatusEmptyInstance(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Initialized {
		t.Error("expected uninitialized instance")
	}
	if len(resp.CampaignYears) == 0 {
		t.Error("expected seeded campaign years")
	}
}

func TestFarmerLifecycle(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/farmers", map[string]interface{}{
		"producerId": "123456789",
		"firstName":  "Jan",
		"lastName":   "Kowalski",
		"totalArea":  12.5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create farmer: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/farmers/123456789", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get farmer: %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/farmers/999999999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing farmer: %d, want 404", w.Code)
	}
}

func TestFarmerValidation(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/farmers", map[string]interface{}{
		"producerId": "12AB",
		"firstName":  "Jan",
		"lastName":   "Kowalski",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric producer id accepted: %d", w.Code)
	}
}

func TestFieldAndHistoryEndpoints(t *testing.T) {
	router, st := testRouter(t)
	seedFarm(t, st)

	w := doJSON(t, router, http.MethodPost, "/api/farmers/123456789/fields", map[string]interface{}{
		"registrationNumber": "16/1",
		"area":               1.5,
		"eligibleArea":       1.5,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create field: %d %s", w.Code, w.Body.String())
	}
	var created model.Field
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, router, http.MethodPut, "/api/fields/"+created.ID+"/history", map[string]interface{}{
		"year": 2025,
		"crop": "Owies",
		"area": 1.5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("upsert history: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodDelete, "/api/fields/"+created.ID+"/history/2025", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete history: %d", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, "/api/fields/"+created.ID+"/history/2025", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: %d, want 404", w.Code)
	}
}

func TestGetReport(t *testing.T) {
	router, st := testRouter(t)
	seedFarm(t, st)

	w := doJSON(t, router, http.MethodGet, "/api/farmers/123456789/report?year=2025", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("report: %d %s", w.Code, w.Body.String())
	}
	var report model.FarmAnalysisReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Year != 2025 {
		t.Errorf("year = %d", report.Year)
	}
	calc, ok := report.EcoSchemes["E_MPW"]
	if !ok {
		t.Fatal("E_MPW bucket missing")
	}
	if calc.TotalPoints != 15 {
		t.Errorf("TotalPoints = %v, want 15 (3 ha x 5 pts)", calc.TotalPoints)
	}
}

func TestReportReflectsPolicyPatch(t *testing.T) {
	router, st := testRouter(t)
	seedFarm(t, st)

	w := doJSON(t, router, http.MethodPatch, "/api/config", map[string]interface{}{
		"pointValuePln": 200.0,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch config: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/farmers/123456789/report?year=2025", nil)
	var report model.FarmAnalysisReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.EcoSchemes["E_MPW"].EstimatedValue != 3000 {
		t.Errorf("EstimatedValue = %v, want 3000 after point value change",
			report.EcoSchemes["E_MPW"].EstimatedValue)
	}
}

func TestConfigPatchRejectsInvalidValues(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(t, router, http.MethodPatch, "/api/config", map[string]interface{}{
		"eurToPln": -1.0,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative eurToPln accepted: %d", w.Code)
	}
}

func TestGetHierarchy(t *testing.T) {
	router, st := testRouter(t)
	seedFarm(t, st)

	w := doJSON(t, router, http.MethodGet, "/api/farmers/123456789/hierarchy?year=2025", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("hierarchy: %d %s", w.Code, w.Body.String())
	}
	var graph model.HierarchyGraph
	if err := json.Unmarshal(w.Body.Bytes(), &graph); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(graph.Nodes) == 0 {
		t.Fatal("empty graph")
	}
	if graph.Nodes[0].ID != "camp_2025_123456789" {
		t.Errorf("root id = %q", graph.Nodes[0].ID)
	}
}

func TestHierarchySurvivesDocumentQueryFailure(t *testing.T) {
	router, st := testRouter(t)
	seedFarm(t, st)

	if err := st.Exec(`DROP TABLE documents`); err != nil {
		t.Fatalf("drop documents: %v", err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/farmers/123456789/hierarchy?year=2025", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("hierarchy without documents: %d %s", w.Code, w.Body.String())
	}
	var graph model.HierarchyGraph
	if err := json.Unmarshal(w.Body.Bytes(), &graph); err != nil {
		t.Fatalf("decode: %v", err)
	}
	app := graph.Node("doc_camp_2025_123456789")
	if app == nil {
		t.Fatal("application node missing")
	}
	if app.Status != model.StatusError {
		t.Errorf("application node status = %q, want ERROR when documents are unavailable", app.Status)
	}
}

func TestGetHierarchyWithEvidence(t *testing.T) {
	router, st := testRouter(t)
	seedFarm(t, st)

	w := doJSON(t, router, http.MethodGet, "/api/farmers/123456789/hierarchy?year=2025&evidence=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("hierarchy with evidence: %d %s", w.Code, w.Body.String())
	}
}

func TestReportExportDownload(t *testing.T) {
	router, st := testRouter(t)
	seedFarm(t, st)

	w := doJSON(t, router, http.MethodGet, "/api/farmers/123456789/report/export?year=2025", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("empty workbook body")
	}
}

func TestIndexDocumentAndSearch(t *testing.T) {
	router, st := testRouter(t)
	seedFarm(t, st)

	w := doJSON(t, router, http.MethodPost, "/api/farmers/123456789/documents", map[string]interface{}{
		"name":    "wniosek_uzupelnienie.pdf",
		"content": "Wniosek o płatności. Deklarowane ekoschematy obejmują międzyplony ozime na działce 15/3.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("index document: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/search?q=międzyplony+ozime", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search: %d", w.Code)
	}
	var chunks []model.KnowledgeChunk
	if err := json.Unmarshal(w.Body.Bytes(), &chunks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(chunks) == 0 {
		t.Error("expected at least one match")
	}
}

func TestImportEndpoint(t *testing.T) {
	router, st := testRouter(t)
	seedFarm(t, st)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "ewidencja.csv")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write([]byte("Nazwa;Numer;Powierzchnia;PEG\nŁąka;17/2;2,50;2,50\n"))
	mw.WriteField("template", "tpl_simple")
	mw.WriteField("year", "2025")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/farmers/123456789/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("import: %d %s", w.Code, w.Body.String())
	}

	fields, err := st.GetFields("123456789")
	if err != nil {
		t.Fatalf("GetFields: %v", err)
	}
	if len(fields) != 2 {
		t.Errorf("expected imported parcel added, got %d fields", len(fields))
	}

	w = doJSON(t, router, http.MethodGet, "/api/import/log", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("import log: %d", w.Code)
	}
	var log []store.ImportLogEntry
	if err := json.Unmarshal(w.Body.Bytes(), &log); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(log) != 1 {
		t.Errorf("expected 1 log entry, got %d", len(log))
	}
}

func TestRatesByYear(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/rates?year=2025", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("rates: %d", w.Code)
	}
	var rates []model.SubsidyRate
	if err := json.Unmarshal(w.Body.Bytes(), &rates); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rates) == 0 {
		t.Fatal("expected seeded 2025 rates")
	}
	for _, r := range rates {
		if r.Year != 2025 {
			t.Errorf("rate %s has year %d", r.ID, r.Year)
		}
	}
}

func TestRatesUnseededYearReturnsEmptyArray(t *testing.T) {
	router, _ := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/rates?year=1999", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("rates: %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %q", body)
	}
}
