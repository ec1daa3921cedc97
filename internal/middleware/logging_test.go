package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("passes through status and body", func(t *testing.T) {
		var called bool
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":1}`))
		})

		handler := Logger(inner)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/companies", nil))

		if !called {
			t.Error("next handler should have been called")
		}
		if rr.Code != http.StatusCreated {
			t.Errorf("status: got %d, want 201", rr.Code)
		}
		if rr.Body.String() != `{"id":1}` {
			t.Errorf("body: got %q", rr.Body.String())
		}
	})

	t.Run("passes through error status", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		handler := Logger(inner)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/companies/99", nil))

		if rr.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rr.Code)
		}
	})

	t.Run("defaults to 200 when handler only writes", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})

		handler := Logger(inner)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/categories", nil))

		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})
}

func TestStatusRecorder(t *testing.T) {
	t.Run("first WriteHeader wins", func(t *testing.T) {
		rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
		rec.WriteHeader(http.StatusBadRequest)
		rec.WriteHeader(http.StatusInternalServerError)
		if rec.status != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.status)
		}
	})

	t.Run("Write counts bytes and defaults status", func(t *testing.T) {
		rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
		rec.Write([]byte("hello"))
		rec.Write([]byte(" world"))
		if rec.status != http.StatusOK {
			t.Errorf("status: got %d, want 200", rec.status)
		}
		if rec.bytes != 11 {
			t.Errorf("bytes: got %d, want 11", rec.bytes)
		}
	})

	t.Run("Write keeps explicit status", func(t *testing.T) {
		rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
		rec.WriteHeader(http.StatusCreated)
		rec.Write([]byte("created"))
		if rec.status != http.StatusCreated {
			t.Errorf("status: got %d, want 201", rec.status)
		}
	})
}
