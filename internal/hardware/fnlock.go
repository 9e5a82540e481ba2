package hardware

import "fmt"

// FnLock exposes the Fn lock switch kept in BIOS control register 1.
// State is 0 (off) or 1 (on).
type FnLock struct {
	io RegisterIO
}

func NewFnLock(io RegisterIO) *FnLock {
	return &FnLock{io: io}
}

func (f *FnLock) Get() (int, error) {
	b, err := f.io.ReadByte(BiosCtrl1Addr)
	if err != nil {
		return 0, fmt.Errorf("failed to read Fn lock state: %w", err)
	}
	if b&BiosCtrl1FnLockSwitch != 0 {
		return 1, nil
	}
	return 0, nil
}

func (f *FnLock) Set(value int) error {
	b, err := f.io.ReadByte(BiosCtrl1Addr)
	if err != nil {
		return fmt.Errorf("failed to read BIOS control register: %w", err)
	}

	if value != 0 {
		b |= BiosCtrl1FnLockSwitch
	} else {
		b &^= BiosCtrl1FnLockSwitch
	}

	if err := f.io.WriteByte(BiosCtrl1Addr, b); err != nil {
		return fmt.Errorf("failed to write Fn lock state: %w", err)
	}
	return nil
}
