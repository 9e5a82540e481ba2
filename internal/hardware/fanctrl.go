package hardware

import (
	"fmt"
	"sync"

	"qc71-service/internal/logger"
	"qc71-service/internal/types"
)

// FanControl cycles the fan/performance profile by rewriting the SILENT,
// TURBO and AUTO bits of the fan control register. The register holds
// other fields (fan level among them) that are preserved verbatim.
//
// Profiles form a ring driven by repeated Cycle calls:
// balanced -> performance -> energy-saver -> balanced.
type FanControl struct {
	io     RegisterIO
	logger *logger.Logger

	// Guards the whole read-modify-write sequence. Cycle can be invoked
	// concurrently from the event dispatcher and from external command
	// channels, and the EC does not arbitrate between our readers.
	mu sync.Mutex
}

func NewFanControl(io RegisterIO, l *logger.Logger) *FanControl {
	return &FanControl{io: io, logger: l}
}

// Cycle reads the fan control register, advances the profile ring and
// writes the new value back. It returns the resulting profile and the
// register value that was written. A failed register read aborts with no
// write and no other side effect.
func (f *FanControl) Cycle() (types.Profile, byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := f.io.ReadByte(FanCtrlAddr)
	if err != nil {
		return "", 0, fmt.Errorf("fan control register read failed: %w", err)
	}

	f.logger.Debugf("current fan control register: %#02x", raw)

	performanceBits := FanCtrlSilentMode | FanCtrlTurbo
	current := raw & performanceBits
	next := raw&^performanceBits | FanCtrlAuto

	var profile types.Profile
	switch current {
	case 0:
		next |= FanCtrlTurbo
		profile = types.ProfilePerformance

	case FanCtrlSilentMode:
		profile = types.ProfileBalanced

	case FanCtrlTurbo:
		next |= FanCtrlSilentMode
		profile = types.ProfileEnergySaver

	default:
		// SILENT|TURBO is not a state the firmware is known to produce;
		// collapse back to balanced.
		profile = types.ProfileBalanced
	}

	f.logger.Infof("Setting profile to: %s", profile)

	if err := f.io.WriteByte(FanCtrlAddr, next); err != nil {
		return "", 0, fmt.Errorf("fan control register write failed: %w", err)
	}

	return profile, next, nil
}
