// Package snapshot renders a tree into an in-memory document and stores the
// resulting HTML.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// ContentType is the content type of stored snapshots.
const ContentType = "text/html; charset=utf-8"

// Snapshot is the serialized result of mounting a tree.
type Snapshot struct {
	HTML      string
	Mutations int // host calls needed to build the document
	Elements  int
	Texts     int
}

// Render mounts tree into a fresh document and serializes it. The tree is
// unmounted afterwards, so component cleanups run.
func Render(tree *vdom.Node, html dom.HTMLOptions, opts ...vdom.Option) (*Snapshot, error) {
	doc := dom.New()
	rc := vdom.NewContext(doc, opts...)
	root, err := rc.Attach(tree, doc.Body())
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		HTML:      doc.HTML(html),
		Mutations: len(doc.Log()),
		Elements:  doc.Count(dom.OpCreateElement),
		Texts:     doc.Count(dom.OpCreateText),
	}
	if err := root.Unmount(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Key builds a store key of the form <name>/<UTC timestamp>.html.
func Key(name string, t time.Time) string {
	name = strings.Trim(path.Clean("/"+name), "/")
	if name == "" {
		name = "snapshot"
	}
	return name + "/" + t.UTC().Format("20060102T150405Z") + ".html"
}

// Uploader renders snapshots into a Store.
type Uploader struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewUploader creates an uploader. A nil logger uses slog.Default().
func NewUploader(store Store, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{store: store, logger: logger, now: time.Now}
}

// Upload stores snap under a key derived from name and returns the key.
func (u *Uploader) Upload(ctx context.Context, name string, snap *Snapshot) (string, error) {
	key := Key(name, u.now())
	if err := u.store.Put(ctx, key, ContentType, []byte(snap.HTML)); err != nil {
		return "", fmt.Errorf("store snapshot %s: %w", key, err)
	}
	u.logger.Info("snapshot stored",
		"key", key,
		"bytes", len(snap.HTML),
		"elements", snap.Elements,
		"texts", snap.Texts)
	return key, nil
}
