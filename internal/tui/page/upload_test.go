package page

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepretrieve/deepretrieve/internal/api"
	"github.com/deepretrieve/deepretrieve/internal/monitor"
	"github.com/deepretrieve/deepretrieve/internal/session"
	"github.com/deepretrieve/deepretrieve/internal/storage"
	"github.com/deepretrieve/deepretrieve/internal/tui/theme"
)

// runUpload executes a submit command and returns its result message.
func runUpload(t *testing.T, cmd tea.Cmd) uploadResultMsg {
	t.Helper()
	require.NotNil(t, cmd)

	msgs := []tea.Msg{cmd()}
	for len(msgs) > 0 {
		msg := msgs[0]
		msgs = msgs[1:]
		switch m := msg.(type) {
		case uploadResultMsg:
			return m
		case tea.BatchMsg:
			for _, c := range m {
				msgs = append(msgs, c())
			}
		}
	}
	t.Fatal("no upload result message produced")
	return uploadResultMsg{}
}

func TestUploadPageRetryAfterFailure(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "extraction crashed"})
			return
		}
		json.NewEncoder(w).Encode(api.UploadResponse{Success: true})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	client := api.NewClient(srv.URL)
	store := storage.NewMemStore()
	up := session.NewUploadSession(client, store, func() monitor.Status { return monitor.StatusOnline }, time.Second)
	p := NewUploadPage(theme.NewDefaultTheme(), up, monitor.New(client, time.Minute, time.Second))

	p.pathInput.SetValue(path)
	require.Nil(t, p.handleEnter())
	require.Equal(t, session.PhaseSelected, up.Phase())
	assert.Empty(t, p.pathInput.Value(), "selection consumes the typed path")

	result := runUpload(t, p.handleEnter())
	assert.False(t, result.navigated)
	require.Equal(t, session.PhaseFailed, up.Phase())
	assert.Contains(t, ansi.Strip(p.View()), "enter to retry")

	// Enter on the failed card resubmits the retained file without retyping.
	result = runUpload(t, p.handleEnter())
	assert.True(t, result.navigated)
	assert.Equal(t, int64(2), attempts.Load())
	assert.Equal(t, session.PhaseEmpty, up.Phase())

	name, err := store.Get(storage.KeyLastDocument)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", name)
}

func TestUploadPageFailedCardAcceptsNewPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	first := filepath.Join(dir, "a.pdf")
	second := filepath.Join(dir, "b.pdf")
	require.NoError(t, os.WriteFile(first, []byte("%PDF-1.4"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("%PDF-1.4"), 0644))

	client := api.NewClient(srv.URL)
	up := session.NewUploadSession(client, storage.NewMemStore(), func() monitor.Status { return monitor.StatusOnline }, time.Second)
	p := NewUploadPage(theme.NewDefaultTheme(), up, monitor.New(client, time.Minute, time.Second))

	p.pathInput.SetValue(first)
	require.Nil(t, p.handleEnter())
	runUpload(t, p.handleEnter())
	require.Equal(t, session.PhaseFailed, up.Phase())

	// Typing a different path on the failed card replaces the file.
	p.pathInput.SetValue(second)
	require.Nil(t, p.handleEnter())
	require.Equal(t, session.PhaseSelected, up.Phase())
	require.NotNil(t, up.File())
	assert.Equal(t, "b.pdf", up.File().Name)
}

func TestUploadPageViewShowsOfflineWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	client := api.NewClient("http://127.0.0.1:0")
	up := session.NewUploadSession(client, storage.NewMemStore(), func() monitor.Status { return monitor.StatusOffline }, time.Second)
	p := NewUploadPage(theme.NewDefaultTheme(), up, monitor.New(client, time.Minute, time.Second))

	p.pathInput.SetValue(path)
	require.Nil(t, p.handleEnter())

	view := ansi.Strip(p.View())
	if !strings.Contains(view, "offline") {
		t.Errorf("offline warning missing from view: %q", view)
	}
}
