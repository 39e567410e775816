package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/errors"
)

func TestFetchAllFollowsPageTokens(t *testing.T) {
	pages := map[string]string{
		"":   `{"skus":[{"id":"a"},{"id":"b"}],"nextPageToken":"p2"}`,
		"p2": `{"skus":[{"id":"c"}],"nextPageToken":"p3"}`,
		"p3": `{"skus":[{"id":"d"}]}`,
	}
	var seenTokens []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/billing/v1/skus" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("pageSize"); got != "2" {
			t.Errorf("pageSize = %q", got)
		}
		token := r.URL.Query().Get("pageToken")
		seenTokens = append(seenTokens, token)
		w.Write([]byte(pages[token]))
	}))
	defer srv.Close()

	f := New(Config{Endpoint: srv.URL + "/", Token: "secret", PageSize: 2})
	skus, err := f.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	var ids []string
	for _, raw := range skus {
		var sku struct{ ID string }
		if err := json.Unmarshal(raw, &sku); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, sku.ID)
	}
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", "p2", "p3"}, seenTokens); diff != "" {
		t.Errorf("page tokens (-want +got):\n%s", diff)
	}
}

func TestFetchAllRequiresToken(t *testing.T) {
	_, err := New(Config{Endpoint: "http://127.0.0.1:1"}).FetchAll(context.Background())
	if !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("err = %v, want config error", err)
	}
}

func TestFetchAllReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token expired", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(Config{Endpoint: srv.URL, Token: "t"}).FetchAll(context.Background())
	if !errors.IsType(err, errors.TypeNetwork) {
		t.Fatalf("err = %v, want network error", err)
	}
	var e *errors.Error
	if !asError(err, &e) {
		t.Fatalf("err = %T, want *errors.Error", err)
	}
	if e.Context["body"] != "token expired" {
		t.Errorf("context = %v", e.Context)
	}
}

func TestFetchAllRejectsRepeatedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"skus":[],"nextPageToken":"same"}`))
	}))
	defer srv.Close()

	_, err := New(Config{Endpoint: srv.URL, Token: "t"}).FetchAll(context.Background())
	if !errors.IsType(err, errors.TypeNetwork) {
		t.Fatalf("err = %v, want network error", err)
	}
}

func TestFetchAllMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"skus":`))
	}))
	defer srv.Close()

	_, err := New(Config{Endpoint: srv.URL, Token: "t"}).FetchAll(context.Background())
	if !errors.IsType(err, errors.TypeParsing) {
		t.Fatalf("err = %v, want parsing error", err)
	}
}

func TestWriteToAndSave(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"skus":[{"id":"x","name":"CPU"}]}`))
	}))
	defer srv.Close()
	f := New(Config{Endpoint: srv.URL, Token: "t"})

	var buf bytes.Buffer
	n, err := f.WriteTo(context.Background(), &buf)
	if err != nil || n != 1 {
		t.Fatalf("WriteTo = %d, %v", n, err)
	}
	var doc struct {
		SKUs []map[string]string `json:"skus"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]map[string]string{{"id": "x", "name": "CPU"}}, doc.SKUs); diff != "" {
		t.Errorf("document (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "sku.json")
	if _, err := f.Save(context.Background(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	saved, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(saved, buf.Bytes()) {
		t.Errorf("saved file differs from WriteTo output")
	}
}

func TestSaveKeepsFileOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "sku.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(Config{Endpoint: srv.URL, Token: "t"}).Save(context.Background(), path); err == nil {
		t.Fatal("expected error")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "old" {
		t.Errorf("file = %q, want untouched", data)
	}
}

func asError(err error, target **errors.Error) bool {
	e, ok := err.(*errors.Error)
	if ok {
		*target = e
	}
	return ok
}
