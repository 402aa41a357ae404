package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basel-ax/cursorsmith/internal/domain"
)

type fakeGenerator struct {
	set   domain.CursorSet
	err   error
	theme string
}

func (f *fakeGenerator) Generate(ctx context.Context, theme string) (domain.CursorSet, error) {
	f.theme = theme
	return f.set, f.err
}

func newTestServer(gen *fakeGenerator) http.Handler {
	gin.SetMode(gin.TestMode)
	return New(gen, log.New(io.Discard, "", 0)).Handler()
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func loadingAndTyping() domain.CursorSet {
	var set domain.CursorSet
	set[domain.VariantLoading] = &domain.ProcessedImage{Variant: domain.VariantLoading, PNG: []byte("l")}
	set[domain.VariantTyping] = &domain.ProcessedImage{Variant: domain.VariantTyping, PNG: []byte("t")}
	return set
}

func TestGenerateReturnsAllSlots(t *testing.T) {
	gen := &fakeGenerator{set: loadingAndTyping()}
	rec := post(t, newTestServer(gen), "/api/cursors", `{"theme":"pink donut"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pink donut", gen.theme)

	var resp struct {
		Cursors map[string]*string `json:"cursors"`
		Count   int                `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Cursors, domain.VariantCount)
	require.NotNil(t, resp.Cursors["loading"])
	assert.Equal(t, "data:image/png;base64,bA==", *resp.Cursors["loading"])
	assert.Nil(t, resp.Cursors["normal"])
	assert.Nil(t, resp.Cursors["clicking"])
}

func TestGenerateErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"missing theme", `{}`, nil, http.StatusBadRequest},
		{"malformed body", `{`, nil, http.StatusBadRequest},
		{"blocked theme", `{"theme":"x"}`, domain.ErrThemeNotAllowed, http.StatusBadRequest},
		{"no results", `{"theme":"x"}`, domain.ErrNoResults, http.StatusUnprocessableEntity},
		{"unexpected", `{"theme":"x"}`, errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, newTestServer(&fakeGenerator{err: tt.err}), "/api/cursors", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestGenerateArchive(t *testing.T) {
	rec := post(t, newTestServer(&fakeGenerator{set: loadingAndTyping()}), "/api/cursors/archive", `{"theme":"pink donut"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pixel-cursor-set.zip")

	body := rec.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"pixel-cursor-set/loading.png", "pixel-cursor-set/typing.png"}, names)
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	newTestServer(&fakeGenerator{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
