package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/akash-new/reviewscout"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultPageBudget is the number of tabs one browser opens before it is
// replaced.
const DefaultPageBudget = 50

// launchFlags keep off-screen tabs rendering at full speed so that lazily
// loaded review widgets finish before the snapshot.
var launchFlags = []flags.Flag{
	"disable-background-timer-throttling",
	"disable-backgrounding-occluded-windows",
	"disable-renderer-backgrounding",
	"disable-dev-shm-usage",
	"disable-hang-monitor",
}

// instance is one running browser and the launcher owning its process.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	opened   int64
}

func startInstance() (*instance, error) {
	l := launcher.New().Leakless(true).Headless(true)
	for _, f := range launchFlags {
		l = l.Set(f)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, reviewscout.Errorf(reviewscout.EINTERNAL, "launching browser: %v", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, reviewscout.Errorf(reviewscout.EINTERNAL, "connecting to browser: %v", err)
	}
	return &instance{browser: b, launcher: l}, nil
}

func (in *instance) stop() error {
	err := in.browser.Close()
	in.launcher.Kill()
	return err
}

// BrowserManager opens tabs in a headless browser and swaps the browser
// for a fresh one once it has opened its page budget, so Chrome's memory
// stays bounded over long pagination runs.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu        sync.Mutex
	current   *instance
	budget    int64
	rotations int
	closed    bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithPageBudget sets how many tabs a browser opens before it is replaced.
// Values below 1 keep DefaultPageBudget.
func WithPageBudget(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		if n > 0 {
			bm.budget = n
		}
	}
}

// NewBrowserManager starts a headless browser. Close must be called when
// the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{budget: DefaultPageBudget}
	for _, opt := range opts {
		opt(bm)
	}

	in, err := startInstance()
	if err != nil {
		return nil, err
	}
	bm.current = in
	return bm, nil
}

// NewPage opens a blank tab bound to ctx. When the current browser has
// spent its budget a replacement is started first; if that fails the old
// browser keeps serving.
func (bm *BrowserManager) NewPage(ctx context.Context) (*rod.Page, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, reviewscout.Errorf(reviewscout.EINVALID, "browser is closed")
	}
	if bm.current.opened >= bm.budget {
		bm.rotate()
	}

	page, err := bm.current.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("opening tab: %w", err)
	}
	bm.current.opened++
	return page.Context(ctx), nil
}

// Must be called with mu held.
func (bm *BrowserManager) rotate() {
	next, err := startInstance()
	if err != nil {
		return
	}
	_ = bm.current.stop()
	bm.current = next
	bm.rotations++
}

// Rotations returns how many times the browser has been replaced.
func (bm *BrowserManager) Rotations() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.rotations
}

// LauncherPID returns the process ID of the current browser launcher, or 0
// once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed {
		return 0
	}
	return bm.current.launcher.PID()
}

// Close stops the browser. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true
	return bm.current.stop()
}
