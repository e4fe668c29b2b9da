package touch

import "sync"

// Stub is an in-memory Source.  It documents the Source contract and backs
// the package tests: reads drain the queued samples, then block until the
// stub is closed.
type Stub struct {
	ch   chan RawSample
	done chan struct{}
	once sync.Once
}

func NewStub(samples ...RawSample) *Stub {
	s := &Stub{
		ch:   make(chan RawSample, len(samples)+16),
		done: make(chan struct{}),
	}
	for _, raw := range samples {
		s.ch <- raw
	}
	return s
}

// Feed queues another sample.
func (s *Stub) Feed(raw RawSample) {
	s.ch <- raw
}

func (s *Stub) ReadSample() (RawSample, error) {
	// Drain queued samples before honouring the close.
	select {
	case raw := <-s.ch:
		return raw, nil
	default:
	}
	select {
	case raw := <-s.ch:
		return raw, nil
	case <-s.done:
		return RawSample{}, ErrSourceClosed
	}
}

func (s *Stub) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}
