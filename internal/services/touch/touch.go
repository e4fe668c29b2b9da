package touch

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.td.teradata.com/sandbox/touch-ctl/internal/config"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/logging"
)

var (
	// ErrSourceClosed reports that the touch source failed or was closed
	// while a caller was waiting on it.  The selection in progress aborts;
	// retrying is the caller's business.
	ErrSourceClosed = errors.New("touch source closed")

	// ErrTimeout reports that a configured wait bound elapsed with no
	// sample.  Not fatal; callers may re-poll.
	ErrTimeout = errors.New("touch wait timed out")
)

// Phase classifies a sample within a contact.
type Phase int

const (
	Down Phase = iota
	Move
	Up
)

func (p Phase) String() string {
	switch p {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return fmt.Sprintf("Phase(%d)", p)
	}
}

// Sample is one touch contact in normalized screen coordinates.
type Sample struct {
	X     float64 // 0..1 across the screen
	Y     float64 // 0..1 down the screen
	Phase Phase
}

// RawSample is a contact in a provider's native units, together with the
// provider's extent in the same units.  Dividing out the extent is what
// decouples hit testing from the device resolution.
type RawSample struct {
	X       int
	Y       int
	ExtentX int
	ExtentY int
	Phase   Phase
}

// Source yields raw touch samples from one concrete provider.  ReadSample
// blocks until a sample arrives or the provider fails; Close unblocks a
// pending read.
type Source interface {
	ReadSample() (RawSample, error)
	Close() error
}

// Source kinds accepted by the touch.source configuration key.
const (
	SourceAuto   = "auto"
	SourceTerm   = "term"
	SourceEvent  = "event"
	SourceSerial = "serial"
)

// Selected resolves the configured source kind.  Auto picks the event
// device when it exists and falls back to terminal mouse reports.
func Selected() string {
	if config.CLIConfig == nil || config.CLIConfig.Touch == nil {
		return SourceTerm
	}
	kind := config.CLIConfig.Touch.Source
	if kind == "" || kind == SourceAuto {
		if _, err := os.Stat(config.CLIConfig.Touch.Device); err == nil {
			return SourceEvent
		}
		return SourceTerm
	}
	return kind
}

// Open builds the configured source.  Selection happens once, here; the
// wait loop never inspects provider types.
func Open(log *logging.Log) (Source, error) {
	switch kind := Selected(); kind {
	case SourceTerm:
		return NewTermSource(log)
	case SourceEvent:
		return NewEventSource(config.CLIConfig.Touch.Device, log)
	case SourceSerial:
		return NewSerialSource(log)
	default:
		return nil, fmt.Errorf("unknown touch source [%s]", kind)
	}
}

// Normalizer wraps one Source behind a single blocking wait.  A reader
// goroutine converts raw samples to the normalized range and feeds a
// capacity one channel, so at most one sample is pending and the reader
// queues behind it; the render path is never blocked by decoding.
type Normalizer struct {
	source   Source
	samples  chan Sample
	quit     chan struct{}
	closed   chan struct{}
	downOnce sync.Once
	stopOnce sync.Once
	cause    error
	log      *logging.Log
}

func NewNormalizer(source Source, log *logging.Log) *Normalizer {
	if log == nil {
		log = logging.Discard()
	}
	n := &Normalizer{
		source:  source,
		samples: make(chan Sample, 1),
		quit:    make(chan struct{}),
		closed:  make(chan struct{}),
		log:     log,
	}
	go n.reader()
	return n
}

func (n *Normalizer) reader() {
	for {
		raw, err := n.source.ReadSample()
		if err != nil {
			n.shutdown(err)
			return
		}
		if raw.ExtentX <= 0 || raw.ExtentY <= 0 {
			n.log.Warnf("Dropping sample with unusable extent %dx%d", raw.ExtentX, raw.ExtentY)
			continue
		}
		s := Sample{
			X:     clamp01(float64(raw.X) / float64(raw.ExtentX)),
			Y:     clamp01(float64(raw.Y) / float64(raw.ExtentY)),
			Phase: raw.Phase,
		}
		select {
		case n.samples <- s:
		case <-n.quit:
			return
		}
	}
}

// NextSample blocks until a sample arrives, the source closes, or the
// timeout elapses.  A timeout of zero or less waits forever.
func (n *Normalizer) NextSample(timeout time.Duration) (Sample, error) {
	// A sample buffered before the source closed still counts.
	select {
	case s := <-n.samples:
		return s, nil
	default:
	}

	if timeout <= 0 {
		select {
		case s := <-n.samples:
			return s, nil
		case <-n.closed:
			return Sample{}, n.closedErr()
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case s := <-n.samples:
		return s, nil
	case <-n.closed:
		return Sample{}, n.closedErr()
	case <-timer.C:
		return Sample{}, ErrTimeout
	}
}

// Close tears down the normalizer and the underlying source.  Closing out
// of band is also the one way to abort a NextSample blocked with no timeout.
func (n *Normalizer) Close() error {
	n.stopOnce.Do(func() { close(n.quit) })
	err := n.source.Close()
	n.shutdown(ErrSourceClosed)
	return err
}

// Stop releases the normalizer without closing a caller supplied source.
// A reader blocked inside the source lingers until the source's next sample
// or until its owner closes it.
func (n *Normalizer) Stop() {
	n.stopOnce.Do(func() { close(n.quit) })
	n.shutdown(ErrSourceClosed)
}

func (n *Normalizer) shutdown(cause error) {
	n.downOnce.Do(func() {
		n.cause = cause
		close(n.closed)
	})
}

func (n *Normalizer) closedErr() error {
	if n.cause != nil && !errors.Is(n.cause, ErrSourceClosed) {
		return fmt.Errorf("%w: %v", ErrSourceClosed, n.cause)
	}
	return ErrSourceClosed
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
