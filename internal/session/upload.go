// Package session holds the client-side controllers: the upload lifecycle,
// the chat transcript and the retrieval-sources relay. The controllers own
// all observable state; the TUI and CLI commands only render it.
package session

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/deepretrieve/deepretrieve/internal/api"
	"github.com/deepretrieve/deepretrieve/internal/monitor"
	"github.com/deepretrieve/deepretrieve/internal/storage"
)

// Phase is the upload lifecycle state. There is no succeeded phase: a
// successful upload resets the session and hands off to the chat view.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseSelected
	PhaseUploading
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSelected:
		return "selected"
	case PhaseUploading:
		return "uploading"
	case PhaseFailed:
		return "failed"
	default:
		return "empty"
	}
}

// Candidate is a user-selected file awaiting transfer.
type Candidate struct {
	Name string
	Size int64
	MIME string
	Path string
}

// NewCandidate builds a candidate from a local path, deriving size and MIME
// type from the filesystem.
func NewCandidate(path string) (Candidate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Candidate{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Candidate{}, fmt.Errorf("%s is a directory", path)
	}

	return Candidate{
		Name: filepath.Base(path),
		Size: info.Size(),
		MIME: DetectMIME(path),
		Path: path,
	}, nil
}

// DetectMIME derives a MIME type from the file extension.
func DetectMIME(path string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if t == "" {
		return "application/octet-stream"
	}
	// Drop any charset parameter.
	if i := strings.Index(t, ";"); i >= 0 {
		t = t[:i]
	}
	return t
}

// AllowedType reports whether a MIME type passes the upload filter. PDF and
// any image type are accepted; everything else is silently rejected.
func AllowedType(mimeType string) bool {
	return mimeType == "application/pdf" || strings.HasPrefix(mimeType, "image/")
}

// UploadSession drives one file from selection through upload. A successful
// submit records the document name in the local store and signals that the
// caller should navigate to the chat view.
type UploadSession struct {
	mu      sync.Mutex
	phase   Phase
	file    *Candidate
	lastErr string

	client  *api.Client
	store   storage.Store
	status  func() monitor.Status
	timeout time.Duration
}

// NewUploadSession wires an upload controller. status gates submission:
// no request is issued unless it reports StatusOnline.
func NewUploadSession(client *api.Client, store storage.Store, status func() monitor.Status, timeout time.Duration) *UploadSession {
	return &UploadSession{
		phase:   PhaseEmpty,
		client:  client,
		store:   store,
		status:  status,
		timeout: timeout,
	}
}

// Select accepts a candidate file if its MIME type passes the filter,
// moving to PhaseSelected. A rejected candidate leaves state unchanged and
// surfaces no error. Selecting over a failed or selected file replaces it.
func (s *UploadSession) Select(c Candidate) bool {
	if !AllowedType(c.MIME) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseUploading {
		return false
	}
	s.file = &c
	s.phase = PhaseSelected
	s.lastErr = ""
	return true
}

// Remove clears the selected file. A no-op when nothing is selected or an
// upload is in flight.
func (s *UploadSession) Remove() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseSelected && s.phase != PhaseFailed {
		return
	}
	s.file = nil
	s.phase = PhaseEmpty
	s.lastErr = ""
}

// Submit uploads the selected file. It returns true when the upload
// succeeded and the caller should navigate to the chat view. It is a no-op
// unless the phase is Selected and the backend is online.
func (s *UploadSession) Submit(ctx context.Context) bool {
	s.mu.Lock()
	if s.phase != PhaseSelected || s.status() != monitor.StatusOnline {
		s.mu.Unlock()
		return false
	}
	file := *s.file
	s.phase = PhaseUploading
	s.mu.Unlock()

	err := s.upload(ctx, file)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.phase = PhaseFailed
		s.lastErr = err.Error()
		return false
	}

	// Success: the chat view reads the document name from the store.
	if err := s.store.Set(storage.KeyLastDocument, file.Name); err != nil {
		s.phase = PhaseFailed
		s.lastErr = fmt.Sprintf("saving document name: %v", err)
		return false
	}
	s.file = nil
	s.phase = PhaseEmpty
	s.lastErr = ""
	return true
}

func (s *UploadSession) upload(ctx context.Context, file Candidate) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer f.Close()

	uploadCtx, cancel := api.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err = s.client.Upload(uploadCtx, file.Name, f)
	return err
}

// Phase returns the current lifecycle phase.
func (s *UploadSession) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// File returns a copy of the selected candidate, or nil when empty.
func (s *UploadSession) File() *Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	c := *s.file
	return &c
}

// Err returns the human-readable failure message, empty unless PhaseFailed.
func (s *UploadSession) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
