package vterm

import (
	"time"

	"github.com/andyrewlee/gridterm/internal/logging"
	"github.com/andyrewlee/gridterm/internal/scrollback"
)

const (
	// DefaultScrollback is the number of archived main-buffer rows kept
	DefaultScrollback = 3000
	// DefaultBlinkInterval is the cursor blink half-period
	DefaultBlinkInterval = 530 * time.Millisecond
)

// Size is a terminal size in cells
type Size struct {
	Cols int
	Rows int
}

// Terminal owns a main and an alternate ScreenBuffer, the main buffer's
// scrollback and the state needed to render a viewport. It is not safe for
// concurrent use; callers drive it from a single goroutine.
type Terminal struct {
	cols int
	rows int

	main   *ScreenBuffer
	alt    *ScreenBuffer
	useAlt bool

	scrollback *scrollback.Buffer[Row]
	viewOffset int
	mainSink   RowSink

	// saved is non-nil between entering and leaving the alternate screen
	saved *mainState

	parser *Parser

	observers      []resizeObserver
	nextObserverID int
	app            App

	cursorBlink   bool
	blinkInterval time.Duration
	blinkOn       bool
	lastBlink     time.Time

	redrawPending bool
	onRedraw      func()
	version       uint64
}

// Option configures a Terminal
type Option func(*Terminal)

// WithScrollbackCapacity bounds the number of archived rows
func WithScrollbackCapacity(n int) Option {
	return func(t *Terminal) {
		t.scrollback = scrollback.New[Row](n)
	}
}

// WithCursorBlink enables or disables cursor blinking
func WithCursorBlink(enabled bool) Option {
	return func(t *Terminal) {
		t.cursorBlink = enabled
	}
}

// WithBlinkInterval sets the blink half-period used by Tick
func WithBlinkInterval(d time.Duration) Option {
	return func(t *Terminal) {
		if d > 0 {
			t.blinkInterval = d
		}
	}
}

// WithRedrawHook registers fn to be called whenever a redraw becomes pending
func WithRedrawHook(fn func()) Option {
	return func(t *Terminal) {
		t.onRedraw = fn
	}
}

// New creates a terminal of cols x rows cells
func New(cols, rows int, opts ...Option) *Terminal {
	cols = max(cols, 1)
	rows = max(rows, 1)
	t := &Terminal{
		cols:          cols,
		rows:          rows,
		main:          NewScreenBuffer(cols, rows),
		alt:           NewScreenBuffer(cols, rows),
		scrollback:    scrollback.New[Row](DefaultScrollback),
		cursorBlink:   true,
		blinkInterval: DefaultBlinkInterval,
		blinkOn:       true,
	}
	t.mainSink = t.pushRow
	t.parser = NewParser(t)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Write interprets text: printable characters, C0 controls and CSI
// sequences. It never fails; unsupported sequences are consumed.
func (t *Terminal) Write(text string) {
	if text == "" {
		return
	}
	t.parser.Parse(text)
	t.markDirty()
}

// WriteBytes is Write for byte slices
func (t *Terminal) WriteBytes(data []byte) {
	t.Write(string(data))
}

func (t *Terminal) putChar(r rune) {
	if t.useAlt {
		t.alt.PutChar(r, nil)
		return
	}
	t.main.PutChar(r, t.sinkFor(t.main))
}

// sinkFor returns the scrollback sink when rows leaving b should be
// archived: b is the main buffer, it is active and its region is full.
func (t *Terminal) sinkFor(b *ScreenBuffer) RowSink {
	if b != t.main || t.useAlt || !b.FullScreenRegion() {
		return nil
	}
	return t.mainSink
}

// pushRow archives a row, evicting the oldest when at capacity
func (t *Terminal) pushRow(row Row) {
	if t.scrollback.Push(row) && t.viewOffset > 0 {
		t.viewOffset--
	}
}

// ActiveBuffer returns the buffer that receives writes
func (t *Terminal) ActiveBuffer() *ScreenBuffer {
	if t.useAlt {
		return t.alt
	}
	return t.main
}

// Main returns the main buffer
func (t *Terminal) Main() *ScreenBuffer { return t.main }

// Alt returns the alternate buffer
func (t *Terminal) Alt() *ScreenBuffer { return t.alt }

// InAltScreen reports whether the alternate buffer is active
func (t *Terminal) InAltScreen() bool { return t.useAlt }

// Size returns the current size
func (t *Terminal) Size() Size { return Size{Cols: t.cols, Rows: t.rows} }

// ScrollbackLen returns the number of archived rows
func (t *Terminal) ScrollbackLen() int { return t.scrollback.Len() }

// ScrollbackCap returns the scrollback bound
func (t *Terminal) ScrollbackCap() int { return t.scrollback.Cap() }

// ScrollbackRow returns a copy of archived row i, 0 being the oldest
func (t *Terminal) ScrollbackRow(i int) Row {
	if i < 0 || i >= t.scrollback.Len() {
		return nil
	}
	return t.scrollback.At(i).Clone()
}

// SetScrollbackCapacity changes the scrollback bound, dropping the oldest
// rows that no longer fit.
func (t *Terminal) SetScrollbackCapacity(n int) {
	if dropped := t.scrollback.SetCapacity(n); dropped > 0 {
		t.clampViewOffset()
		t.markDirty()
	}
}

// ViewOffset returns how many rows the viewport is scrolled into history
func (t *Terminal) ViewOffset() int { return t.viewOffset }

// Reset clears both buffers, the scrollback and the alternate-screen state.
// Size, observers and the active app are kept.
func (t *Terminal) Reset() {
	t.main.Reset()
	t.alt.Reset()
	t.useAlt = false
	t.saved = nil
	t.scrollback.Clear()
	t.viewOffset = 0
	t.parser.Reset()
	t.blinkOn = true
	t.markDirty()
}

// Resize changes the size of both buffers, preserving content. Rows dropped
// from the bottom of the main buffer are archived when it is active with a
// full-screen region. The active app and then every observer are notified.
func (t *Terminal) Resize(cols, rows int) {
	cols = max(cols, 1)
	rows = max(rows, 1)
	if cols == t.cols && rows == t.rows {
		return
	}
	prev := Size{Cols: t.cols, Rows: t.rows}

	t.main.ResizeSmart(cols, rows, t.sinkFor(t.main))
	t.alt.ResizeSmart(cols, rows, nil)
	t.cols, t.rows = cols, rows
	t.clampViewOffset()

	logging.Debug("vterm: resize %dx%d -> %dx%d alt=%v", prev.Cols, prev.Rows, cols, rows, t.useAlt)

	ev := ResizeEvent{Cols: cols, Rows: rows, PrevCols: prev.Cols, PrevRows: prev.Rows}
	t.notifyApp(ev)
	t.emitResize(ev)
	t.markDirty()
}

func (t *Terminal) clampViewOffset() {
	t.viewOffset = clamp(t.viewOffset, 0, t.scrollback.Len())
}

// Version increments on every change that affects the rendered frame
func (t *Terminal) Version() uint64 { return t.version }

func (t *Terminal) bumpVersion() {
	t.version++
}

// markDirty records a content change and requests a redraw
func (t *Terminal) markDirty() {
	t.bumpVersion()
	t.requestRedraw()
}

func (t *Terminal) requestRedraw() {
	if t.redrawPending {
		return
	}
	t.redrawPending = true
	if t.onRedraw != nil {
		t.onRedraw()
	}
}
