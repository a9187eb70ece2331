package handlers_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/printbridge/printbridge/api"
	"github.com/printbridge/printbridge/api/handlers"
	"github.com/printbridge/printbridge/api/models"
	"github.com/printbridge/printbridge/ledger"
	"github.com/printbridge/printbridge/printer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSpooler struct {
	printers       []string
	defaultPrinter string

	mu     sync.Mutex
	prints int
}

func (f *fakeSpooler) Printers() ([]string, error) { return f.printers, nil }

func (f *fakeSpooler) DefaultPrinter() (string, error) {
	if f.defaultPrinter == "" {
		return "", errors.New("no default printer configured")
	}
	return f.defaultPrinter, nil
}

func (f *fakeSpooler) PaperSizes(string) ([]printer.PaperSize, error) {
	return []printer.PaperSize{{Name: "31mm x 56mm Label"}}, nil
}

func (f *fakeSpooler) Print(string, string, printer.PrintOptions) error {
	f.mu.Lock()
	f.prints++
	f.mu.Unlock()
	return nil
}

func (f *fakeSpooler) printCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prints
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeSpooler, *ledger.Ledger) {
	t.Helper()

	spooler := &fakeSpooler{
		printers:       []string{"Zebra-ZD410", "Office-Laser"},
		defaultPrinter: "Zebra-ZD410",
	}
	jobs := ledger.New(0)
	label := printer.LabelSpec{WidthIn: "1.25", HeightIn: "2.25", WidthMM: "31", HeightMM: "56"}
	executor := printer.NewExecutor(spooler, jobs, label, 203, t.TempDir(), hclog.NewNullLogger())
	handler := handlers.NewHandler(executor, spooler, jobs, hclog.NewNullLogger())

	return api.SetupRouter(handler), spooler, jobs
}

func encodedLabel(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 254, 457))

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestPrintEndpoint_Success(t *testing.T) {
	router, spooler, jobs := newTestRouter(t)

	body, _ := json.Marshal(models.PrintRequest{ImageData: encodedLabel(t), PrinterName: "Office-Laser"})
	req := httptest.NewRequest(http.MethodPost, "/print", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result models.PrintResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if !result.Success || result.PrinterName != "Office-Laser" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if spooler.printCount() != 1 {
		t.Fatalf("expected 1 print, got %d", spooler.printCount())
	}
	if jobs.Len() != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", jobs.Len())
	}
}

func TestPrintEndpoint_MissingImage(t *testing.T) {
	router, spooler, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/print", bytes.NewReader([]byte(`{"printerName":"Office-Laser"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if spooler.printCount() != 0 {
		t.Fatalf("no print may be attempted without a payload")
	}
}

func TestPrintEndpoint_MalformedBody(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/print", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPrintEndpoint_DecodeFailureIsStructured(t *testing.T) {
	router, _, jobs := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/print", bytes.NewReader([]byte(`{"imageBytes":"definitely not an image"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("pipeline failures must still be structured 200 results, got %d", rec.Code)
	}

	var result models.PrintResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.Success || result.ErrorMessage == "" {
		t.Fatalf("expected a failed result with a message, got %+v", result)
	}
	if jobs.Len() != 1 {
		t.Fatalf("expected the failure to be ledgered, got %d entries", jobs.Len())
	}
}

func TestPrintersEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/printers", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Printers       []string `json:"printers"`
		DefaultPrinter string   `json:"defaultPrinter"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(body.Printers) != 2 || body.Printers[0] != "Zebra-ZD410" {
		t.Fatalf("unexpected enumeration: %+v", body.Printers)
	}
	if body.DefaultPrinter != "Zebra-ZD410" {
		t.Fatalf("unexpected default: %q", body.DefaultPrinter)
	}
}

func TestJobsEndpoint_OldestFirst(t *testing.T) {
	router, _, _ := newTestRouter(t)
	encoded := encodedLabel(t)

	for _, name := range []string{"Zebra-ZD410", "Office-Laser"} {
		body, _ := json.Marshal(models.PrintRequest{ImageData: encoded, PrinterName: name})
		req := httptest.NewRequest(http.MethodPost, "/print", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("print failed: %d", rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs", nil))

	var entries []models.PrintJob
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("unmarshal jobs: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].PrinterName != "Zebra-ZD410" || entries[1].PrinterName != "Office-Laser" {
		t.Fatalf("expected completion order, got %+v", entries)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
