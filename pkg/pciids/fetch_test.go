package pciids_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pciids/pkg/pciids"
	"github.com/joshuapare/pciids/pkg/types"
)

func TestFetch(t *testing.T) {
	data := loadFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2.2/pci.ids" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	t.Run("ok", func(t *testing.T) {
		db, err := pciids.Fetch(context.Background(), srv.Client(), srv.URL+"/v2.2/pci.ids", nil)
		require.NoError(t, err)
		info := db.DeviceInfo(0x1002, 0x67df, 0x1da2, 0xe387)
		require.NotNil(t, info.SubdeviceName)
		require.Equal(t, "Radeon RX 580 Pulse 4GB", *info.SubdeviceName)
	})

	t.Run("non-2xx is an io error", func(t *testing.T) {
		_, err := pciids.Fetch(context.Background(), srv.Client(), srv.URL+"/missing", nil)
		require.ErrorIs(t, err, types.ErrIO)
		require.Contains(t, err.Error(), "404")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := pciids.Fetch(ctx, srv.Client(), srv.URL+"/v2.2/pci.ids", nil)
		require.ErrorIs(t, err, context.Canceled)
		kind, ok := types.KindOf(err)
		require.True(t, ok)
		require.Equal(t, types.ErrKindIO, kind)
	})
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>\n"))
	}))
	defer srv.Close()

	_, err := pciids.Fetch(context.Background(), srv.Client(), srv.URL, nil)
	require.Error(t, err)
	kind, ok := types.KindOf(err)
	require.True(t, ok)
	require.Equal(t, types.ErrKindParse, kind)
}
