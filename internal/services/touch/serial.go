package touch

import (
	"fmt"

	srl "go.bug.st/serial"

	"github.td.teradata.com/sandbox/touch-ctl/internal/config"
	"github.td.teradata.com/sandbox/touch-ctl/internal/services/logging"
)

// Serial resistive touch panels report five byte frames: a sync byte with
// the high bit set carrying the proximity flag, then x low, x high, y low,
// y high as seven bit payloads forming twelve bit coordinates.
const (
	frameSize    = 5
	syncBit      = 0x80
	proximityBit = 0x40
	serialExtent = 1 << 12
)

// SerialSource decodes frames from a serial-attached touch panel.
type SerialSource struct {
	port     srl.Port
	frame    []byte
	buf      []byte
	touching bool
	log      *logging.Log
}

func NewSerialSource(log *logging.Log) (*SerialSource, error) {
	if log == nil {
		log = logging.Discard()
	}
	if config.CLIConfig == nil || config.CLIConfig.Serial == nil || config.CLIConfig.Serial.PortName == "" {
		return nil, fmt.Errorf("no touch panel port configured")
	}
	cfg := config.CLIConfig.Serial

	mode := &srl.Mode{
		DataBits: cfg.DataBits,
		BaudRate: cfg.BaudRate,
		StopBits: toStopBits(cfg.StopBits),
		Parity:   toParity(cfg.Parity),
	}
	port, err := srl.Open(cfg.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open touch panel port %s: %w", cfg.PortName, err)
	}

	readSize := cfg.MinimumReadSize
	if readSize < 1 {
		readSize = frameSize
	}
	return &SerialSource{
		port:  port,
		frame: make([]byte, 0, frameSize),
		buf:   make([]byte, readSize),
		log:   log,
	}, nil
}

func (s *SerialSource) ReadSample() (RawSample, error) {
	for {
		n, err := s.port.Read(s.buf)
		if err != nil {
			return RawSample{}, err
		}
		for _, b := range s.buf[:n] {
			raw, ok := s.feed(b)
			if ok {
				return raw, nil
			}
		}
	}
}

// feed pushes one wire byte into the frame assembler.
func (s *SerialSource) feed(b byte) (RawSample, bool) {
	if b&syncBit != 0 {
		if len(s.frame) > 0 {
			s.log.Warnf("Discarding %d bytes of partial frame", len(s.frame))
		}
		s.frame = s.frame[:0]
		s.frame = append(s.frame, b)
		return RawSample{}, false
	}
	if len(s.frame) == 0 {
		// Payload byte with no frame in progress; resync on the next
		// sync byte.
		return RawSample{}, false
	}

	s.frame = append(s.frame, b)
	if len(s.frame) < frameSize {
		return RawSample{}, false
	}

	raw := s.decode()
	s.frame = s.frame[:0]
	return raw, true
}

func (s *SerialSource) decode() RawSample {
	pressed := s.frame[0]&proximityBit != 0
	phase := Up
	switch {
	case pressed && s.touching:
		phase = Move
	case pressed:
		phase = Down
	}
	s.touching = pressed

	return RawSample{
		X:       int(s.frame[1]) | int(s.frame[2])<<7,
		Y:       int(s.frame[3]) | int(s.frame[4])<<7,
		ExtentX: serialExtent,
		ExtentY: serialExtent,
		Phase:   phase,
	}
}

func (s *SerialSource) Close() error {
	return s.port.Close()
}

func toStopBits(value int) srl.StopBits {
	switch value {
	case 1:
		return srl.OneStopBit
	case 2:
		return srl.OnePointFiveStopBits
	case 3:
		return srl.TwoStopBits
	default:
		return srl.OneStopBit
	}
}

func toParity(value int) srl.Parity {
	switch value {
	case 0:
		return srl.NoParity
	case 1:
		return srl.OddParity
	case 2:
		return srl.EvenParity
	case 3:
		return srl.MarkParity
	case 4:
		return srl.SpaceParity
	default:
		return srl.NoParity
	}
}
