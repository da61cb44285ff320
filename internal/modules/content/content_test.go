package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kmabtech/web/internal/backend"
	"github.com/kmabtech/web/internal/pkg/apiclient"
	"github.com/kmabtech/web/internal/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRefreshAllFillsEveryLoader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/Services":
			_ = json.NewEncoder(w).Encode([]backend.Service{{ID: 1, TitleTr: "Tasarım"}})
		case "/api/References":
			_ = json.NewEncoder(w).Encode([]backend.Reference{{ID: 1, Order: 2}, {ID: 2, Order: 1}})
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	store := NewStore(backend.New(apiclient.New(srv.URL)), zap.NewNop(), nil)
	require.NoError(t, store.RefreshAll(context.Background()))

	assert.Equal(t, loader.StateSuccess, store.Services.Snapshot().State)
	assert.Equal(t, loader.StateSuccess, store.Products.Snapshot().State)

	refs := store.References.Snapshot().Data
	require.Len(t, refs, 2)
	assert.Equal(t, 2, refs[0].ID, "references arrive pre-sorted by order")
}

func TestRefreshAllReportsFirstFailureButContinues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/Services" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	store := NewStore(backend.New(apiclient.New(srv.URL)), zap.NewNop(), nil)
	err := store.RefreshAll(context.Background())
	require.Error(t, err)

	assert.Equal(t, loader.StateError, store.Services.Snapshot().State)
	assert.Equal(t, loader.StateSuccess, store.Products.Snapshot().State)
	assert.Equal(t, loader.StateSuccess, store.BlogPosts.Snapshot().State)
}
