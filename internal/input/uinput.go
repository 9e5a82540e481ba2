// Package input provides the synthetic input device the dispatcher
// forwards firmware events through, backed by /dev/uinput.
package input

import (
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"qc71-service/internal/logger"
)

const uinputPath = "/dev/uinput"

// sizeof(struct input_event) on 64-bit: two 8-byte time words, type,
// code, value.
const eventSize = 24

// Device is a virtual input device registered with the kernel. Reports
// are fire-and-forget; write errors are surfaced to the caller but carry
// no acknowledgment semantics.
type Device struct {
	file   *os.File
	logger *logger.Logger
	name   string
}

// NewDevice creates and registers a uinput device advertising the given
// key and switch capabilities. Scan codes (EV_MSC/MSC_SCAN) are always
// advertised so unmapped firmware codes can still be surfaced raw.
func NewDevice(name string, keys []uint16, switches []uint16, l *logger.Logger) (*Device, error) {
	file, err := os.OpenFile(uinputPath, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", uinputPath, err)
	}

	d := &Device{file: file, logger: l, name: name}
	if err := d.setup(keys, switches); err != nil {
		file.Close()
		return nil, err
	}

	l.Infof("registered input device %q (%d keys, %d switches)", name, len(keys), len(switches))
	return d, nil
}

func (d *Device) setup(keys []uint16, switches []uint16) error {
	fd := int(d.file.Fd())

	if err := unix.IoctlSetInt(fd, uiSetEvBit, EV_MSC); err != nil {
		return fmt.Errorf("UI_SET_EVBIT EV_MSC failed: %w", err)
	}
	if err := unix.IoctlSetInt(fd, uiSetMscBit, MSC_SCAN); err != nil {
		return fmt.Errorf("UI_SET_MSCBIT failed: %w", err)
	}

	if len(keys) > 0 {
		if err := unix.IoctlSetInt(fd, uiSetEvBit, EV_KEY); err != nil {
			return fmt.Errorf("UI_SET_EVBIT EV_KEY failed: %w", err)
		}
		for _, key := range keys {
			if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(key)); err != nil {
				return fmt.Errorf("UI_SET_KEYBIT %d failed: %w", key, err)
			}
		}
	}

	if len(switches) > 0 {
		if err := unix.IoctlSetInt(fd, uiSetEvBit, EV_SW); err != nil {
			return fmt.Errorf("UI_SET_EVBIT EV_SW failed: %w", err)
		}
		for _, sw := range switches {
			if err := unix.IoctlSetInt(fd, uiSetSwBit, int(sw)); err != nil {
				return fmt.Errorf("UI_SET_SWBIT %d failed: %w", sw, err)
			}
		}
	}

	if _, err := d.file.Write(d.userDev()); err != nil {
		return fmt.Errorf("failed to write uinput device description: %w", err)
	}

	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("UI_DEV_CREATE failed: %w", err)
	}
	return nil
}

// userDev encodes a struct uinput_user_dev: name[80], input_id (bustype,
// vendor, product, version), ff_effects_max, then four [64]int32 abs
// tables we leave zeroed.
func (d *Device) userDev() []byte {
	buf := make([]byte, uinputMaxNameSize+8+4+4*absSize*4)
	copy(buf[:uinputMaxNameSize-1], d.name)
	binary.LittleEndian.PutUint16(buf[80:82], busHost) // bustype
	binary.LittleEndian.PutUint16(buf[82:84], 0x0001)  // vendor
	binary.LittleEndian.PutUint16(buf[84:86], 0x0001)  // product
	binary.LittleEndian.PutUint16(buf[86:88], 1)       // version
	return buf
}

func (d *Device) writeEvents(events ...[3]int32) error {
	buf := make([]byte, eventSize*len(events))
	for i, ev := range events {
		off := i * eventSize
		// time fields left zero, the kernel stamps them
		binary.LittleEndian.PutUint16(buf[off+16:off+18], uint16(ev[0]))
		binary.LittleEndian.PutUint16(buf[off+18:off+20], uint16(ev[1]))
		binary.LittleEndian.PutUint32(buf[off+20:off+24], uint32(ev[2]))
	}
	if _, err := d.file.Write(buf); err != nil {
		return fmt.Errorf("failed to write input events: %w", err)
	}
	return nil
}

// ReportKey emits a key event. With autorelease set, a press is followed
// by an immediate release in the same report batch.
func (d *Device) ReportKey(code uint16, pressed bool, autorelease bool) error {
	value := int32(0)
	if pressed {
		value = 1
	}

	events := [][3]int32{
		{EV_KEY, int32(code), value},
		{EV_SYN, SYN_REPORT, 0},
	}
	if pressed && autorelease {
		events = append(events,
			[3]int32{EV_KEY, int32(code), 0},
			[3]int32{EV_SYN, SYN_REPORT, 0},
		)
	}
	return d.writeEvents(events...)
}

// ReportSwitch emits a switch state change.
func (d *Device) ReportSwitch(sw uint16, value int32) error {
	return d.writeEvents(
		[3]int32{EV_SW, int32(sw), value},
		[3]int32{EV_SYN, SYN_REPORT, 0},
	)
}

// ReportScan surfaces a firmware code with no key mapping as a raw scan
// code event.
func (d *Device) ReportScan(code uint8) error {
	return d.writeEvents(
		[3]int32{EV_MSC, MSC_SCAN, int32(code)},
		[3]int32{EV_SYN, SYN_REPORT, 0},
	)
}

// Close unregisters and releases the device.
func (d *Device) Close() error {
	if err := unix.IoctlSetInt(int(d.file.Fd()), uiDevDestroy, 0); err != nil {
		d.logger.Warnf("UI_DEV_DESTROY failed: %v", err)
	}
	return d.file.Close()
}
