package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/auditlens/auditlens/internal/followup"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	reader, writer, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = writer
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, writer.Close())
	out, err := io.ReadAll(reader)
	require.NoError(t, err)
	return string(out)
}

func registerServer(t *testing.T, items []api.FollowUpItem) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := json.Marshal(items)
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(api.Envelope{Ok: true, Data: data}))
	}))
	t.Cleanup(server.Close)
	return server
}

func listedIDs(t *testing.T, o *FollowUpsListOptions) []string {
	t.Helper()
	out := captureStdout(t, func() {
		require.NoError(t, o.Run(context.Background(), nil))
	})

	var visible []api.FollowUpItem
	require.NoError(t, json.Unmarshal([]byte(out), &visible))
	ids := make([]string, 0, len(visible))
	for _, item := range visible {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestListHonorsDirectionOnTheDefaultSortKey(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	server := registerServer(t, []api.FollowUpItem{
		{ID: "f-old", Description: "oldest item", Severity: api.SeverityLow, Disposition: api.DispositionOpen, CreatedAt: base},
		{ID: "f-new", Description: "newest item", Severity: api.SeverityLow, Disposition: api.DispositionOpen, CreatedAt: base.Add(time.Hour)},
	})

	o := &FollowUpsListOptions{
		GlobalOptions: GlobalOptions{ServerURL: server.URL},
		SortKey:       string(followup.SortCreatedAt),
		Descending:    true,
		Output:        "json",
	}
	assert.Equal(t, []string{"f-new", "f-old"}, listedIDs(t, o))

	o.Descending = false
	assert.Equal(t, []string{"f-old", "f-new"}, listedIDs(t, o))
}
