package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kmabtech/web/internal/pkg/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFacade(t *testing.T, handler http.HandlerFunc) *Facade {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(apiclient.New(srv.URL))
}

func TestLoginReturnsToken(t *testing.T) {
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Auth/login", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@kmab.com", req["email"])
		_, _ = w.Write([]byte(`{"token":"jwt-token"}`))
	})

	token, err := f.Login(context.Background(), "admin@kmab.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
}

func TestLoginRejectedCredentials(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized} {
		f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		_, err := f.Login(context.Background(), "x@y.z", "bad")
		assert.ErrorIs(t, err, ErrInvalidCredentials, "status %d", status)
	}
}

func TestLoginUnreachableBackend(t *testing.T) {
	// A closed server produces a transport error, not an HTTP status.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	f := New(apiclient.New(srv.URL))

	_, err := f.Login(context.Background(), "x@y.z", "pw")
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveAssetURL(t *testing.T) {
	f := New(apiclient.New("https://backend.example.com"))

	assert.Equal(t, "", f.ResolveAssetURL(""))
	assert.Equal(t, "https://cdn.example.com/a.png", f.ResolveAssetURL("https://cdn.example.com/a.png"))
	assert.Equal(t, "http://cdn.example.com/a.png", f.ResolveAssetURL("http://cdn.example.com/a.png"))
	assert.Equal(t, "https://backend.example.com/uploads/a.png", f.ResolveAssetURL("/uploads/a.png"))
	assert.Equal(t, "https://backend.example.com/uploads/a.png", f.ResolveAssetURL("uploads/a.png"))
}

func TestListReferencesSortedByOrder(t *testing.T) {
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/References", r.URL.Path)
		refs := []Reference{
			{ID: 1, CompanyName: "C", Order: 3},
			{ID: 2, CompanyName: "A", Order: 1},
			{ID: 3, CompanyName: "B", Order: 2},
			{ID: 4, CompanyName: "B2", Order: 2},
		}
		_ = json.NewEncoder(w).Encode(refs)
	})

	refs, err := f.ListReferences(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 4)
	assert.Equal(t, []int{1, 2, 2, 3}, []int{refs[0].Order, refs[1].Order, refs[2].Order, refs[3].Order})
	// Stable sort keeps arrival order for equal keys.
	assert.Equal(t, "B", refs[1].CompanyName)
	assert.Equal(t, "B2", refs[2].CompanyName)
}

func TestGetProductNotFound(t *testing.T) {
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := f.GetProduct(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBlogPostNotFound(t *testing.T) {
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := f.GetBlogPost(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProductServerErrorIsNotNotFound(t *testing.T) {
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := f.GetProduct(context.Background(), 42)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, apiclient.IsStatus(err, http.StatusInternalServerError))
}

func TestUploadImage(t *testing.T) {
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "icon.svg", header.Filename)
		_, _ = w.Write([]byte(`{"url":"/uploads/icon.svg"}`))
	})

	url, err := f.UploadImage(context.Background(), "icon.svg", strings.NewReader("svg"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/icon.svg", url)
}

func TestUpdateProductHitsIDPath(t *testing.T) {
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/Products/7", r.URL.Path)
		var p Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		_ = json.NewEncoder(w).Encode(p)
	})

	out, err := f.UpdateProduct(context.Background(), 7, Product{ID: 7, Name: "PLA Filament"})
	require.NoError(t, err)
	assert.Equal(t, "PLA Filament", out.Name)
}

func TestGetDashboardStats(t *testing.T) {
	f := newTestFacade(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard", r.URL.Path)
		_, _ = w.Write([]byte(`{"serviceCount":2,"referenceCount":5,"blogCount":1,"messageCount":9,"productCount":12}`))
	})

	stats, err := f.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.ProductCount)
	assert.Equal(t, 9, stats.MessageCount)
}
