package extract

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"

	"arvr-research-backend/internal/shared/storage/object/local"
)

func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Arial", "", 12)
	for _, page := range pages {
		doc.AddPage()
		doc.Cell(40, 10, page)
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("build pdf: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextFromBytesPageOrder(t *testing.T) {
	data := buildPDF(t, "AlphaPageOne", "BetaPageTwo")

	text, err := ExtractTextFromBytes(context.Background(), data, "application/pdf")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	first := strings.Index(text, "AlphaPageOne")
	second := strings.Index(text, "BetaPageTwo")
	if first < 0 || second < 0 {
		t.Fatalf("missing page text in %q", text)
	}
	if first > second {
		t.Fatalf("pages out of order in %q", text)
	}
}

func TestExtractTextFromBytesCorruptPDF(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("%PDF-1.4 not really"), "application/pdf")
	if !errors.Is(err, ErrInvalidPDF) {
		t.Fatalf("expected ErrInvalidPDF, got %v", err)
	}
}

func TestExtractTextFromBytesUnsupportedMime(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), []byte("plain text"), "text/plain")
	if err == nil {
		t.Fatal("expected error for non-pdf mime")
	}
	if !strings.Contains(err.Error(), "unsupported mime type: text/plain") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractTextFromBytesMimeParameters(t *testing.T) {
	data := buildPDF(t, "SinglePage")
	if _, err := ExtractTextFromBytes(context.Background(), data, "Application/PDF; charset=binary"); err != nil {
		t.Fatalf("expected parameterized pdf mime to be accepted, got %v", err)
	}
}

func TestExtractTextPersistsDerivedCopy(t *testing.T) {
	ctx := context.Background()
	store := local.New(t.TempDir())

	data := buildPDF(t, "StoredPageText")
	key, _, _, err := store.Save(ctx, "study.pdf", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	text, err := ExtractText(ctx, store, key, "application/pdf")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "StoredPageText") {
		t.Fatalf("missing page text in %q", text)
	}

	body, err := store.Open(ctx, key+".extracted.txt")
	if err != nil {
		t.Fatalf("open derived copy: %v", err)
	}
	defer body.Close()
	stored, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read derived copy: %v", err)
	}
	if string(stored) != text {
		t.Fatalf("derived copy %q differs from extracted text %q", stored, text)
	}
}
