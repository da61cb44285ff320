package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kmabtech/web/internal/backend"
	"github.com/kmabtech/web/internal/modules/admin/crud"
	"github.com/kmabtech/web/internal/modules/content"
	"github.com/kmabtech/web/internal/pkg/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRemoveLocalLeavesHandedOutSnapshotsIntact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/Services" {
			_ = json.NewEncoder(w).Encode([]backend.Service{
				{ID: 1, TitleTr: "Tasarım"},
				{ID: 2, TitleTr: "Baskı"},
				{ID: 3, TitleTr: "Danışmanlık"},
			})
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	store := content.NewStore(backend.New(apiclient.New(srv.URL)), zap.NewNop(), nil)

	ctx := context.Background()
	held, err := store.Services.Get(ctx)
	require.NoError(t, err)
	require.Len(t, held, 3)

	var services crud.Resource
	for _, res := range Resources(store) {
		if res.Name == "services" {
			services = res
		}
	}
	require.NotEmpty(t, services.Name)

	services.RemoveLocal(2)

	now, err := store.Services.Get(ctx)
	require.NoError(t, err)
	require.Len(t, now, 2)
	assert.Equal(t, 1, now[0].ID)
	assert.Equal(t, 3, now[1].ID)

	// A slice handed out before the delete may still be mid-render in a
	// concurrent request; its contents must not change underneath it.
	require.Len(t, held, 3)
	assert.Equal(t, 1, held[0].ID)
	assert.Equal(t, 2, held[1].ID)
	assert.Equal(t, 3, held[2].ID)
}

func TestExcerptTrimsOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("ş", 100)
	got := excerpt(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 81, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))

	short := "kısa açıklama"
	assert.Equal(t, short, excerpt(short))
}
