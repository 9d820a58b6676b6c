package strobe

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
)

// FileSource watches a file and emits its contents as a Source[[]byte].
// The current contents are emitted immediately on Subscribe; every write or
// create re-emits. Combine with Decode to get typed values.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Subscribe begins watching the file.
func (s *FileSource) Subscribe(ctx context.Context) (<-chan Emission[[]byte], error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := watcher.Add(s.path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch file %s: %w", s.path, err)
	}

	out := make(chan Emission[[]byte])

	go func() {
		defer close(out)
		defer watcher.Close()

		// Emit initial contents
		if data, err := os.ReadFile(s.path); err == nil {
			select {
			case out <- Emission[[]byte]{Value: data}:
			case <-ctx.Done():
				return
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// Only emit on write or create events
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				data, err := os.ReadFile(s.path)
				if err != nil {
					continue
				}

				select {
				case out <- Emission[[]byte]{Value: data}:
				case <-ctx.Done():
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Continue watching despite transient fsnotify errors
			}
		}
	}()

	return out, nil
}
