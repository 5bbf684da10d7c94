package locator

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"lieferplaner/internal/catalog"
	"lieferplaner/internal/desktop"
	"lieferplaner/internal/logs"
	"lieferplaner/internal/notify"
	"lieferplaner/internal/scanner"
)

// Reason explains a failed lookup.
type Reason string

const (
	ReasonNotReady Reason = "Z_NOT_READY"
	ReasonNotFound Reason = "NOT_FOUND"
)

// FindResult is the answer to a drawing lookup.
type FindResult struct {
	OK     bool   `json:"ok"`
	Path   string `json:"path,omitempty"`
	Reason Reason `json:"reason,omitempty"`
}

// Opener launches a file in its associated application.
type Opener interface {
	OpenFile(path string) bool
}

const catalogCacheKey = "catalog"

// cachedCatalog is only trusted while the persisted document is unchanged.
type cachedCatalog struct {
	catalog *catalog.Catalog
	stamp   catalog.Stamp
}

// Locator resolves position texts to drawing files below the first reachable
// drawing root.
type Locator struct {
	roots    []string
	access   scanner.AccessFunc
	store    *catalog.Store
	scan     *scanner.Scanner
	notifier notify.Notifier
	prompter desktop.Prompter
	opener   Opener
	appName  string
	now      func() time.Time

	mu    sync.Mutex
	cache *cache.Cache
}

// Option configures a Locator.
type Option func(*Locator)

func WithAccess(access scanner.AccessFunc) Option {
	return func(l *Locator) { l.access = access }
}

func WithScanner(s *scanner.Scanner) Option {
	return func(l *Locator) { l.scan = s }
}

func WithNotifier(n notify.Notifier) Option {
	return func(l *Locator) { l.notifier = n }
}

func WithPrompter(p desktop.Prompter) Option {
	return func(l *Locator) { l.prompter = p }
}

func WithOpener(o Opener) Option {
	return func(l *Locator) { l.opener = o }
}

func WithAppName(name string) Option {
	return func(l *Locator) { l.appName = name }
}

func WithClock(now func() time.Time) Option {
	return func(l *Locator) { l.now = now }
}

// New creates a Locator over the candidate roots, in priority order.
func New(roots []string, store *catalog.Store, opts ...Option) *Locator {
	l := &Locator{
		roots:    roots,
		access:   scanner.StatAccess,
		store:    store,
		scan:     scanner.New(),
		notifier: notify.LogNotifier{},
		opener:   desktop.NewOpener(),
		appName:  "Lieferplaner",
		now:      time.Now,
		cache:    cache.New(cache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Root returns the currently reachable drawing root, or "".
func (l *Locator) Root() string {
	return scanner.ResolveRoot(l.roots, l.access)
}

func (l *Locator) promptRootUnavailable() {
	logs.Logger.Printf("locator: no drawing root reachable among %v", l.roots)
	if l.prompter == nil {
		return
	}
	primary := "the drawing share"
	if len(l.roots) > 0 {
		primary = l.roots[0]
	}
	l.prompter.Prompt(desktop.PromptWarning,
		"Drawing drive not available",
		fmt.Sprintf("Cannot read %s.\nPlease connect the network drive.", primary))
}

// FindDrawing resolves positionText to a drawing path. The root is probed on
// every call; an unreachable root yields ReasonNotReady, a text without a
// usable key or without a match yields ReasonNotFound.
func (l *Locator) FindDrawing(positionText string) FindResult {
	root := l.Root()
	if root == "" {
		l.promptRootUnavailable()
		return FindResult{Reason: ReasonNotReady}
	}

	key := catalog.ExtractSearchKey(positionText)
	if key == "" {
		return FindResult{Reason: ReasonNotFound}
	}

	l.mu.Lock()
	c := l.catalogFor(root)
	l.mu.Unlock()

	m, ok := catalog.Resolve(key, c)
	if !ok {
		logs.Logger.Printf("locator: no drawing for key %q", key)
		return FindResult{Reason: ReasonNotFound}
	}
	logs.Logger.Printf("locator: key %q matched %s via %s", key, m.Entry.Path, m.Matcher)
	return FindResult{OK: true, Path: m.Entry.Path}
}

// OpenDrawing launches path in its default application.
func (l *Locator) OpenDrawing(path string) bool {
	if path == "" || l.opener == nil {
		return false
	}
	return l.opener.OpenFile(path)
}

// Reindex rebuilds the catalog for the current root. With force the persisted
// catalog is discarded first; without it a catalog that is still valid for the
// root is kept. It reports false only when no root is reachable.
func (l *Locator) Reindex(force bool) bool {
	root := l.Root()
	if root == "" {
		l.promptRootUnavailable()
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if force {
		l.cache.Delete(catalogCacheKey)
		if err := l.store.Delete(); err != nil {
			logs.Logger.Printf("locator: %v", err)
		}
		l.rebuild(root)
		return true
	}
	l.catalogFor(root)
	return true
}

// Suggest returns up to limit file names close to the key of positionText. It
// only looks at a catalog already built for the current root.
func (l *Locator) Suggest(positionText string, limit int) []catalog.Entry {
	root := l.Root()
	key := catalog.ExtractSearchKey(positionText)
	if root == "" || key == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	c := l.cached(root)
	if c == nil {
		if c = l.store.Load(); !c.ValidFor(root) {
			return nil
		}
	}
	return catalog.Suggest(key, c, limit)
}

// cached returns the in-memory catalog for root. An entry whose persisted
// document was removed or replaced since it was cached is dropped.
func (l *Locator) cached(root string) *catalog.Catalog {
	v, ok := l.cache.Get(catalogCacheKey)
	if !ok {
		return nil
	}
	entry := v.(cachedCatalog)
	if stamp, ok := l.store.Stamp(); !ok || !stamp.ModTime.Equal(entry.stamp.ModTime) || stamp.Size != entry.stamp.Size {
		l.cache.Delete(catalogCacheKey)
		return nil
	}
	if !entry.catalog.ValidFor(root) {
		return nil
	}
	return entry.catalog
}

func (l *Locator) remember(c *catalog.Catalog, stamp catalog.Stamp, ok bool) {
	if !ok {
		l.cache.Delete(catalogCacheKey)
		return
	}
	l.cache.Set(catalogCacheKey, cachedCatalog{catalog: c, stamp: stamp}, cache.NoExpiration)
}

// catalogFor returns a catalog valid for root, rebuilding when neither the
// in-memory nor the persisted catalog matches it.
func (l *Locator) catalogFor(root string) *catalog.Catalog {
	if c := l.cached(root); c != nil {
		return c
	}
	stamp, persisted := l.store.Stamp()
	if c := l.store.Load(); c.ValidFor(root) {
		l.remember(c, stamp, persisted)
		return c
	} else if c != nil {
		logs.Logger.Printf("locator: catalog was built for %s, current root is %s", c.Root, root)
	}
	return l.rebuild(root)
}

func (l *Locator) rebuild(root string) *catalog.Catalog {
	notify.Show(l.notifier, l.appName, "STEP index is being built (this may take a while) …")

	c := catalog.New(root, l.scan.Scan(root), l.now())
	if err := l.store.Save(c); err != nil {
		logs.Logger.Printf("locator: %v", err)
	}
	stamp, persisted := l.store.Stamp()
	l.remember(c, stamp, persisted)

	notify.Show(l.notifier, l.appName, fmt.Sprintf("STEP index ready: %d files", len(c.Files)))
	return c
}
