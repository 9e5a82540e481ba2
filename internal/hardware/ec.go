package hardware

import (
	"fmt"
	"io"
	"os"
)

// RegisterIO gives byte-level access to the embedded controller register
// space. Implementations must return promptly or fail; there is no retry
// policy at this layer.
type RegisterIO interface {
	ReadByte(addr uint16) (byte, error)
	WriteByte(addr uint16, value byte) error
}

// ECRegisterIO reads and writes EC registers through the debugfs file
// provided by the ec_sys kernel module (loaded with write_support=1).
// Each access opens the file, seeks to the register offset and transfers
// a single byte; the kernel serializes the underlying EC transaction.
type ECRegisterIO struct {
	path string
}

func NewECRegisterIO(path string) *ECRegisterIO {
	if path == "" {
		path = ECIOPath
	}
	return &ECRegisterIO{path: path}
}

func (e *ECRegisterIO) ReadByte(addr uint16) (byte, error) {
	f, err := os.Open(e.path)
	if err != nil {
		return 0, fmt.Errorf("failed to open EC io file: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(int64(addr), io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to seek to EC register %#x: %w", addr, err)
	}

	var buf [1]byte
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		return 0, fmt.Errorf("failed to read EC register %#x: %w", addr, err)
	}
	return buf[0], nil
}

func (e *ECRegisterIO) WriteByte(addr uint16, value byte) error {
	f, err := os.OpenFile(e.path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("failed to open EC io file: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(int64(addr), io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to EC register %#x: %w", addr, err)
	}

	if _, err := f.Write([]byte{value}); err != nil {
		return fmt.Errorf("failed to write %#02x to EC register %#x: %w", value, addr, err)
	}
	return nil
}
