// Package archive keeps a copy of every rendered purchase order PDF.
package archive

import (
	"context"
	"path"
	"strings"

	"github.com/MrJamesThe3rd/poflow/internal/logger"
)

// Backend stores data under key and returns where it went.
type Backend interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

// Archiver saves PDFs best-effort: failures are logged and reported, never
// returned.
type Archiver struct {
	backend   Backend
	log       *logger.Logger
	onFailure func()
}

type Option func(*Archiver)

func WithLogger(l *logger.Logger) Option {
	return func(a *Archiver) { a.log = l }
}

// WithFailureHook runs fn after each failed write, e.g. to count it.
func WithFailureHook(fn func()) Option {
	return func(a *Archiver) { a.onFailure = fn }
}

// New returns an Archiver writing to backend. A nil backend disables
// archiving.
func New(backend Backend, opts ...Option) *Archiver {
	a := &Archiver{backend: backend, log: logger.Nop(), onFailure: func() {}}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

func (a *Archiver) Enabled() bool {
	return a != nil && a.backend != nil
}

// Save stores data at <dir>/<name> and returns the location, or "" when
// archiving is disabled or the write failed.
func (a *Archiver) Save(ctx context.Context, dir, name string, data []byte) string {
	if !a.Enabled() {
		return ""
	}

	key := Key(dir, name)
	ctx = a.log.WithField(ctx, "archive_key", key)

	loc, err := a.backend.Put(ctx, key, data)
	if err != nil {
		a.log.Error(ctx, "failed to archive pdf", err)
		a.onFailure()

		return ""
	}

	a.log.Info(a.log.WithField(ctx, "location", loc), "archived pdf")

	return loc
}

// Key joins dir and name into a slash-separated key that cannot escape the
// archive root.
func Key(dir, name string) string {
	return path.Join(clean(dir), clean(name))
}

func clean(segment string) string {
	segment = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}

		return r
	}, strings.TrimSpace(segment))

	if segment == "" || segment == "." || segment == ".." {
		return "_"
	}

	return segment
}
