package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriterCapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK) // second call must be ignored

	if rw.statusCode != http.StatusTeapot {
		t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusTeapot)
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("Recorded code = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestResponseWriterCountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	if _, err := rw.Write([]byte("hello ")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if _, err := rw.Write([]byte("world")); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	if rw.bytesWritten != 11 {
		t.Errorf("bytesWritten = %d, want 11", rw.bytesWritten)
	}
	if rw.statusCode != http.StatusOK {
		t.Errorf("Implicit status = %d, want 200", rw.statusCode)
	}
}

func TestSanitizeLogField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "/api/convert", "/api/convert"},
		{"Newline", "/a\nb", "/a b"},
		{"CarriageReturn", "/a\rb", "/a b"},
		{"NullByte", "/a\x00b", "/ab"},
		{"ANSIEscape", "/a\x1b[31mb", "/a[31mb"},
		{"TabKept", "/a\tb", "/a\tb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLogField(tt.in); got != tt.want {
				t.Errorf("sanitizeLogField(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	handler := Logger(DefaultLoggingConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		if _, err := w.Write([]byte("ok")); err != nil {
			t.Errorf("Write error: %v", err)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/formats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusAccepted)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("Body = %q, want ok", rec.Body.String())
	}
}

func TestMetricsSkipsConfiguredPaths(t *testing.T) {
	called := false
	handler := Metrics(DefaultMetricsConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("Skipped path must still reach the next handler")
	}
}

func TestMetricsRecordsRequest(t *testing.T) {
	handler := Metrics(DefaultMetricsConfig())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/convert", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusCreated)
	}
}
