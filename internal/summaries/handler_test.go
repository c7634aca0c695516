package summaries_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"

	"arvr-research-backend/internal/documents"
	"arvr-research-backend/internal/llm"
	"arvr-research-backend/internal/sheets"
	"arvr-research-backend/internal/shared/config"
	"arvr-research-backend/internal/shared/server"
	"arvr-research-backend/internal/shared/storage/object/local"
	"arvr-research-backend/internal/summaries"
)

type fixedLLM struct {
	text string
	err  error
}

func (f fixedLLM) Summarize(ctx context.Context, input llm.SummarizeInput) (llm.Result, error) {
	if f.err != nil {
		return llm.Result{}, f.err
	}
	return llm.Result{Text: f.text}, nil
}

type recordingAppender struct {
	rows []sheets.Row
}

func (r *recordingAppender) AppendRow(ctx context.Context, row sheets.Row) (sheets.AppendResult, error) {
	r.rows = append(r.rows, row)
	return sheets.AppendResult{
		SpreadsheetID:  "sheet-1",
		WorksheetTitle: "Sheet1",
		Timestamp:      time.Now().UTC().Format(sheets.TimestampLayout),
	}, nil
}

const handlerModelResponse = `Existing AR/VR Solutions:
- Overlay system

Problems to be Solved:
- Depth perception

Proposed Problem Statement:
Improve depth cues in AR-guided surgery.`

func newRouterWithDocument(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	store := local.New(t.TempDir())
	docRepo := documents.NewMemoryRepo()

	pdfDoc := fpdf.New("P", "mm", "A4", "")
	pdfDoc.AddPage()
	pdfDoc.SetFont("Arial", "", 12)
	pdfDoc.Cell(40, 10, "HandlerPage")
	var buf bytes.Buffer
	if err := pdfDoc.Output(&buf); err != nil {
		t.Fatalf("build pdf: %v", err)
	}

	key, size, _, err := store.Save(ctx, "paper.pdf", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("save pdf: %v", err)
	}
	doc := documents.Document{
		ID:         "doc-1",
		FileName:   "paper.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  size,
		StorageKey: key,
		CreatedAt:  time.Now().UTC(),
	}
	if err := docRepo.Create(ctx, doc); err != nil {
		t.Fatalf("create document: %v", err)
	}

	svc := &summaries.Service{
		Repo:             summaries.NewMemoryRepo(),
		DocRepo:          docRepo,
		Store:            store,
		LLM:              fixedLLM{text: handlerModelResponse},
		Sheet:            &recordingAppender{},
		DocumentBaseLink: "https://drive.example.com/folder",
	}

	router := server.NewRouter(server.RouterDeps{
		Config:           config.Config{CORSAllowOrigin: []string{"http://localhost:5173"}},
		SummariesHandler: summaries.NewHandler(svc),
	})
	return router, doc.ID
}

func TestProcessEndpoint(t *testing.T) {
	router, docID := newRouterWithDocument(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+docID+"/process", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		SummaryID        string `json:"summaryId"`
		DocumentID       string `json:"documentId"`
		DocumentName     string `json:"documentName"`
		Status           string `json:"status"`
		Progress         int    `json:"progress"`
		ProblemStatement string `json:"problemStatement"`
		WorksheetTitle   string `json:"worksheetTitle"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.SummaryID == "" {
		t.Fatal("expected summaryId")
	}
	if body.DocumentID != docID {
		t.Fatalf("documentId = %q", body.DocumentID)
	}
	if body.DocumentName != "paper" {
		t.Fatalf("documentName = %q", body.DocumentName)
	}
	if body.Status != summaries.StatusCompleted {
		t.Fatalf("status = %q", body.Status)
	}
	if body.Progress != summaries.ProgressDone {
		t.Fatalf("progress = %d", body.Progress)
	}
	if body.WorksheetTitle != "Sheet1" {
		t.Fatalf("worksheetTitle = %q", body.WorksheetTitle)
	}

	// The run is queryable afterwards.
	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/summaries", nil)
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)
	if respList.Code != http.StatusOK {
		t.Fatalf("list status = %d", respList.Code)
	}
	var listed []struct {
		SummaryID string `json:"summaryId"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].SummaryID != body.SummaryID {
		t.Fatalf("unexpected list: %+v", listed)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/summaries/"+body.SummaryID, nil)
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusOK {
		t.Fatalf("get status = %d", respGet.Code)
	}
}

func TestProcessEndpointUnknownDocument(t *testing.T) {
	router, _ := newRouterWithDocument(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/nope/process", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestSummariesGetUnknown(t *testing.T) {
	router, _ := newRouterWithDocument(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/summaries/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
