package hardware

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestECFile(t *testing.T) (string, *ECRegisterIO) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "io")
	// the real debugfs file is a window over the full EC register space
	if err := os.WriteFile(path, make([]byte, 0x200), 0o600); err != nil {
		t.Fatal(err)
	}
	return path, NewECRegisterIO(path)
}

func TestECRegisterIOReadWrite(t *testing.T) {
	path, ec := newTestECFile(t)

	if err := ec.WriteByte(FanCtrlAddr, 0xa5); err != nil {
		t.Fatalf("WriteByte failed: %v", err)
	}

	got, err := ec.ReadByte(FanCtrlAddr)
	if err != nil {
		t.Fatalf("ReadByte failed: %v", err)
	}
	if got != 0xa5 {
		t.Errorf("read %#02x, want 0xa5", got)
	}

	// only the addressed byte changes
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range data {
		if uint16(i) == FanCtrlAddr {
			continue
		}
		if b != 0 {
			t.Errorf("byte %#x modified to %#02x", i, b)
		}
	}
}

func TestECRegisterIOMissingFile(t *testing.T) {
	ec := NewECRegisterIO(filepath.Join(t.TempDir(), "absent"))

	if _, err := ec.ReadByte(FanCtrlAddr); err == nil {
		t.Error("expected read error for missing file")
	}
	if err := ec.WriteByte(FanCtrlAddr, 0x01); err == nil {
		t.Error("expected write error for missing file")
	}
}

func TestECRegisterIODefaultPath(t *testing.T) {
	ec := NewECRegisterIO("")
	if ec.path != ECIOPath {
		t.Errorf("default path %q, want %q", ec.path, ECIOPath)
	}
}
