package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/deepretrieve/deepretrieve/internal/api"
	"github.com/deepretrieve/deepretrieve/internal/monitor"
	"github.com/deepretrieve/deepretrieve/internal/session"
	"github.com/deepretrieve/deepretrieve/internal/storage"
)

var flagWatch string

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document to the backend",
	Long: `Upload a single PDF or image document and record it as the active
document for the chat workspace.

With --watch, a directory is watched instead and every supported file
dropped into it is uploaded as it appears, like a drag-and-drop target.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagWatch != "" {
			return watchAndUpload(cmd.Context(), flagWatch)
		}
		if len(args) != 1 {
			return fmt.Errorf("either a file argument or --watch is required")
		}
		return uploadOne(cmd.Context(), args[0])
	},
}

func newUploadSession() (*session.UploadSession, *monitor.Monitor, error) {
	client := api.NewClient(cfg.BackendURL)
	store, err := storage.NewDefaultFileStore()
	if err != nil {
		return nil, nil, fmt.Errorf("open local store: %w", err)
	}
	mon := monitor.New(client, cfg.PollInterval, cfg.PingTimeout)
	return session.NewUploadSession(client, store, mon.Status, cfg.UploadTimeout), mon, nil
}

func uploadOne(ctx context.Context, path string) error {
	upload, mon, err := newUploadSession()
	if err != nil {
		return err
	}

	// One-shot commands check availability once instead of polling.
	if mon.Retry(ctx) != monitor.StatusOnline {
		return fmt.Errorf("backend at %s is offline", cfg.BackendURL)
	}

	candidate, err := session.NewCandidate(path)
	if err != nil {
		return err
	}
	if !upload.Select(candidate) {
		return fmt.Errorf("unsupported file type %q (PDF and images only)", candidate.MIME)
	}

	logger.Info("uploading", "file", candidate.Name, "size", candidate.Size)
	if !upload.Submit(ctx) {
		return fmt.Errorf("upload failed: %s", upload.Err())
	}

	fmt.Printf("Uploaded %s. Run `deepretrieve` to start chatting.\n", candidate.Name)
	return nil
}

// watchAndUpload uploads every supported file created under dir until
// interrupted.
func watchAndUpload(ctx context.Context, dir string) error {
	upload, mon, err := newUploadSession()
	if err != nil {
		return err
	}

	pollCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	mon.Start(pollCtx)
	defer mon.Stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	fmt.Printf("Watching %s for documents. Ctrl+C to stop.\n", dir)
	for {
		select {
		case <-pollCtx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			candidate, err := session.NewCandidate(event.Name)
			if err != nil {
				continue
			}
			// Unsupported drops are skipped silently, like the TUI.
			if !upload.Select(candidate) {
				continue
			}
			if upload.Submit(pollCtx) {
				logger.Info("uploaded", "file", candidate.Name)
				fmt.Printf("Uploaded %s\n", candidate.Name)
			} else {
				logger.Warn("upload failed", "file", candidate.Name, "error", upload.Err())
				fmt.Printf("Failed to upload %s: %s\n", candidate.Name, upload.Err())
				upload.Remove()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

func init() {
	uploadCmd.Flags().StringVar(&flagWatch, "watch", "", "watch a directory and upload new documents")
	rootCmd.AddCommand(uploadCmd)
}
