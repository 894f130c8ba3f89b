// Package bench drives a terminal with synthetic output and reports
// per-frame timings for writes, renders and resizes.
package bench

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andyrewlee/gridterm/internal/ansiseq"
	"github.com/andyrewlee/gridterm/internal/render"
	"github.com/andyrewlee/gridterm/internal/vterm"
)

// Options configures a benchmark run.
type Options struct {
	Cols         int
	Rows         int
	Scrollback   int
	Frames       int
	Warmup       int
	PayloadBytes int
	NewlineEvery int // emit a newline every N frames (0 disables)
	ResizeEvery  int // toggle between full and shrunk size every N frames (0 disables)
}

// DefaultOptions returns a medium-sized workload.
func DefaultOptions() Options {
	return Options{
		Cols:         160,
		Rows:         48,
		Scrollback:   vterm.DefaultScrollback,
		Frames:       300,
		Warmup:       30,
		PayloadBytes: 64,
		NewlineEvery: 1,
		ResizeEvery:  50,
	}
}

// Stats summarizes a set of samples.
type Stats struct {
	Count int
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("n=%d avg=%s p50=%s p95=%s p99=%s min=%s max=%s",
		s.Count, s.Avg, s.P50, s.P95, s.P99, s.Min, s.Max)
}

// Result holds the timings of a run.
type Result struct {
	Options    Options
	Total      time.Duration
	Write      Stats
	Render     Stats
	Resize     Stats
	FPS        float64
	Scrollback int
}

func (r Result) String() string {
	o := r.Options
	var b strings.Builder
	fmt.Fprintf(&b, "size=%dx%d frames=%d warmup=%d payload=%dB newline_every=%d resize_every=%d\n",
		o.Cols, o.Rows, o.Frames, o.Warmup, o.PayloadBytes, o.NewlineEvery, o.ResizeEvery)
	fmt.Fprintf(&b, "total=%s fps=%.2f scrollback=%d\n", r.Total, r.FPS, r.Scrollback)
	fmt.Fprintf(&b, "write:  %s\n", r.Write)
	fmt.Fprintf(&b, "render: %s\n", r.Render)
	fmt.Fprintf(&b, "resize: %s", r.Resize)
	return b.String()
}

// Validate checks the options.
func (o Options) Validate() error {
	switch {
	case o.Cols < 1 || o.Rows < 1:
		return fmt.Errorf("size %dx%d must be positive", o.Cols, o.Rows)
	case o.Frames < 0 || o.Warmup < 0:
		return errors.New("frames and warmup must not be negative")
	case o.Frames+o.Warmup <= 0:
		return errors.New("frames + warmup must be > 0")
	case o.PayloadBytes < 0 || o.NewlineEvery < 0 || o.ResizeEvery < 0:
		return errors.New("payload, newline and resize settings must not be negative")
	}
	return nil
}

// Run executes the workload.
func Run(opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	term := vterm.New(opts.Cols, opts.Rows, vterm.WithScrollbackCapacity(opts.Scrollback))
	payload := Payload(opts.PayloadBytes)
	shrunk := vterm.Size{Cols: max(1, opts.Cols-opts.Cols/4), Rows: max(1, opts.Rows-opts.Rows/4)}
	full := vterm.Size{Cols: opts.Cols, Rows: opts.Rows}

	var writes, renders, resizes []time.Duration
	totalFrames := opts.Warmup + opts.Frames
	startAll := time.Now()
	for i := 0; i < totalFrames; i++ {
		measured := i >= opts.Warmup
		chunk := payload
		if opts.NewlineEvery > 0 && (i+1)%opts.NewlineEvery == 0 {
			chunk += "\r\n"
		}

		start := time.Now()
		term.Write(chunk)
		if measured {
			writes = append(writes, time.Since(start))
		}

		if opts.ResizeEvery > 0 && (i+1)%opts.ResizeEvery == 0 {
			next := shrunk
			if term.Size() == shrunk {
				next = full
			}
			start = time.Now()
			term.Resize(next.Cols, next.Rows)
			if measured {
				resizes = append(resizes, time.Since(start))
			}
		}

		start = time.Now()
		frame := term.Viewport()
		_ = render.ANSI(&frame, true)
		if measured {
			renders = append(renders, time.Since(start))
		}
	}

	res := Result{
		Options:    opts,
		Total:      time.Since(startAll),
		Write:      Summarize(writes),
		Render:     Summarize(renders),
		Resize:     Summarize(resizes),
		Scrollback: term.ScrollbackLen(),
	}
	frameTimes := make([]time.Duration, len(writes))
	for i := range writes {
		frameTimes[i] = writes[i] + renders[i]
	}
	res.FPS = FPS(frameTimes)
	return res, nil
}

// Payload returns n bytes of printable text interleaved with color changes.
func Payload(n int) string {
	if n <= 0 {
		return ""
	}
	const text = "the quick brown fox jumps over the lazy dog "
	var b strings.Builder
	color := ansiseq.Red
	for b.Len() < n {
		b.WriteString(ansiseq.Fg(color))
		b.WriteString(text[:min(len(text), 11)])
		b.WriteString(ansiseq.Reset)
		b.WriteString(text[11:])
		color = ansiseq.Red + (color-ansiseq.Red+1)%6
	}
	return b.String()[:n]
}

// Summarize computes stats over samples.
func Summarize(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return Stats{
		Count: len(durations),
		Avg:   total / time.Duration(len(durations)),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		P50:   percentile(sorted, 0.50),
		P95:   percentile(sorted, 0.95),
		P99:   percentile(sorted, 0.99),
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := int(float64(len(sorted)-1) * p)
	return sorted[min(max(pos, 0), len(sorted)-1)]
}

// FPS converts frame durations into frames per second.
func FPS(durations []time.Duration) float64 {
	var total time.Duration
	for _, d := range durations {
		total += d
	}
	if total <= 0 {
		return 0
	}
	return float64(len(durations)) / total.Seconds()
}
