package ingest

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/nxadm/tail"
)

// RawLine represents a raw line from a log source
type RawLine struct {
	Source    string
	Timestamp int64 // wall clock arrival
	Content   string
}

// Ingester defines the interface for log sources
type Ingester interface {
	Start(ctx context.Context) (<-chan RawLine, error)
	Stop() error
}

// Options controls how a file is tailed
type Options struct {
	Follow    bool // keep reading as the file grows, reopen on rotation
	Poll      bool // stat polling instead of inotify (docker mounts, NFS)
	FromStart bool // with Follow, emit existing content first
}

// FileTailer implements Ingester for a single file
type FileTailer struct {
	path string
	opts Options
	t    *tail.Tail
}

// NewFileTailer creates a new tailer for a path
func NewFileTailer(path string, opts Options) *FileTailer {
	return &FileTailer{
		path: path,
		opts: opts,
	}
}

// Start begins tailing the file and returns a channel of lines.
// The channel closes at EOF when not following, or when ctx is done.
func (f *FileTailer) Start(ctx context.Context) (<-chan RawLine, error) {
	config := tail.Config{
		Follow:    f.opts.Follow,
		ReOpen:    f.opts.Follow,
		MustExist: !f.opts.Follow,
		Poll:      f.opts.Poll,
		Logger:    tail.DiscardingLogger,
	}
	if f.opts.Follow && !f.opts.FromStart {
		config.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	if f.opts.Follow {
		log.Printf("[INGEST] Following %s (waiting if not present)", f.path)
	}

	t, err := tail.TailFile(f.path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to tail file %s: %w", f.path, err)
	}
	f.t = t

	out := make(chan RawLine)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-t.Lines:
				if !ok {
					return
				}
				if line.Err != nil {
					// rotation and truncation surface here; keep going
					log.Printf("[INGEST] %s: %v", f.path, line.Err)
					continue
				}
				select {
				case out <- RawLine{
					Source:    f.path,
					Timestamp: line.Time.Unix(),
					Content:   line.Text,
				}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Stop stops the tailing
func (f *FileTailer) Stop() error {
	if f.t != nil {
		return f.t.Stop()
	}
	return nil
}
