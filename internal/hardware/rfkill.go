package hardware

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WifiState reports the rfkill state of the first wlan device: 1 when the
// radio is live, 0 when soft or hard blocked.
func WifiState() (int, error) {
	return WifiStateAt(RfkillClassDir)
}

func WifiStateAt(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read rfkill class dir: %w", err)
	}

	for _, entry := range entries {
		base := filepath.Join(dir, entry.Name())

		typ, err := readSysfsValue(filepath.Join(base, "type"))
		if err != nil || typ != "wlan" {
			continue
		}

		soft, err := readSysfsValue(filepath.Join(base, "soft"))
		if err != nil {
			return 0, fmt.Errorf("failed to read rfkill soft state: %w", err)
		}
		hard, err := readSysfsValue(filepath.Join(base, "hard"))
		if err != nil {
			return 0, fmt.Errorf("failed to read rfkill hard state: %w", err)
		}

		if soft == "0" && hard == "0" {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("no wlan rfkill device under %s", dir)
}

func readSysfsValue(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
