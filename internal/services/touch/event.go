package touch

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.td.teradata.com/sandbox/touch-ctl/internal/services/logging"
)

// Linux evdev plumbing for a single-contact touchscreen on /dev/input/eventN.

const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	btnTouch = 0x14a

	absX = 0x00
	absY = 0x01

	synReport = 0x00
)

type inputEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// ioctl request encoding (Linux _IOC macro)
const (
	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30

	iocRead = 2
)

// EVIOCGABS(abs) = _IOR('E', 0x40 + abs, struct input_absinfo)
func eviocgAbs(code int) uintptr {
	size := uint32(unsafe.Sizeof(absInfo{}))
	return uintptr(iocRead<<iocDirShift | uint32('E')<<iocTypeShift | uint32(0x40+code)<<iocNRShift | size<<iocSizeShift)
}

func getAbsInfo(fd int, code int) (absInfo, error) {
	var info absInfo
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), eviocgAbs(code), uintptr(unsafe.Pointer(&info))); errno != 0 {
		return absInfo{}, errno
	}
	return info, nil
}

// EventSource reads kernel input events from an evdev touchscreen device.
// EV_ABS events carry the axis positions, BTN_TOUCH carries contact, and a
// SYN_REPORT closes each bundle, at which point one sample is emitted.
type EventSource struct {
	f        *os.File
	buf      []byte
	pending  []RawSample
	xRange   absInfo
	yRange   absInfo
	x        int32
	y        int32
	touching bool
	log      *logging.Log
}

const ieSize = int(unsafe.Sizeof(inputEvent{}))

func NewEventSource(device string, log *logging.Log) (*EventSource, error) {
	if log == nil {
		log = logging.Discard()
	}
	f, err := os.Open(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open touch device %s: %w", device, err)
	}

	s := &EventSource{
		f:   f,
		buf: make([]byte, 64*ieSize),
		log: log,
	}

	fd := int(f.Fd())
	if s.xRange, err = getAbsInfo(fd, absX); err != nil {
		s.xRange = absInfo{Minimum: 0, Maximum: 4095}
		log.Warnf("No X axis range from %s, assuming 0-4095: %v", device, err)
	}
	if s.yRange, err = getAbsInfo(fd, absY); err != nil {
		s.yRange = absInfo{Minimum: 0, Maximum: 4095}
		log.Warnf("No Y axis range from %s, assuming 0-4095: %v", device, err)
	}
	s.x = s.xRange.Minimum
	s.y = s.yRange.Minimum
	return s, nil
}

func (s *EventSource) ReadSample() (RawSample, error) {
	for {
		if len(s.pending) > 0 {
			raw := s.pending[0]
			s.pending = s.pending[1:]
			return raw, nil
		}

		n, err := s.f.Read(s.buf)
		if err != nil {
			return RawSample{}, err
		}
		if n%ieSize != 0 {
			s.log.Warnf("Partial event read of %d bytes, discarding", n)
			continue
		}

		events := make([]inputEvent, n/ieSize)
		if err := binary.Read(bytes.NewReader(s.buf[:n]), binary.LittleEndian, &events); err != nil {
			return RawSample{}, err
		}
		s.decode(events)
	}
}

// decode folds a batch of kernel events into samples, one per SYN_REPORT.
func (s *EventSource) decode(events []inputEvent) {
	wasTouching := s.touching
	for _, ev := range events {
		switch ev.Type {
		case evAbs:
			switch ev.Code {
			case absX:
				s.x = ev.Value
			case absY:
				s.y = ev.Value
			}
		case evKey:
			if ev.Code == btnTouch {
				s.touching = ev.Value != 0
			}
		case evSyn:
			if ev.Code != synReport {
				continue
			}
			phase := Move
			switch {
			case s.touching && !wasTouching:
				phase = Down
			case !s.touching && wasTouching:
				phase = Up
			case !s.touching:
				continue // no contact, nothing to report
			}
			wasTouching = s.touching
			s.pending = append(s.pending, RawSample{
				X:       int(s.x - s.xRange.Minimum),
				Y:       int(s.y - s.yRange.Minimum),
				ExtentX: int(s.xRange.Maximum - s.xRange.Minimum),
				ExtentY: int(s.yRange.Maximum - s.yRange.Minimum),
				Phase:   phase,
			})
		}
	}
}

func (s *EventSource) Close() error {
	return s.f.Close()
}
