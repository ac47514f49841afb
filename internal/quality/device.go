package quality

import (
	"bufio"
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// defaultCores is assumed when the core count probe is unavailable.
const defaultCores = 4

var mobileUA = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// Device holds the capability signals the startup probe looks at. Zero values
// mean "unknown" and never push a device into the low-end tier.
type Device struct {
	Cores     int     `json:"cores,omitempty"`
	MemoryGB  float64 `json:"memoryGB,omitempty"`
	UserAgent string  `json:"userAgent,omitempty"`
	WebGL2    *bool   `json:"webgl2,omitempty"`
}

// IsMobile reports whether the user agent looks like a phone or tablet.
func (d Device) IsMobile() bool {
	return mobileUA.MatchString(d.UserAgent)
}

// IsLowEnd reports whether the device should get the low-end preset.
func (d Device) IsLowEnd() bool {
	cores := d.Cores
	if cores <= 0 {
		cores = defaultCores
	}
	if cores <= 2 {
		return true
	}
	if d.MemoryGB > 0 && d.MemoryGB <= 2 {
		return true
	}
	return d.WebGL2 != nil && !*d.WebGL2
}

// Classify maps device signals onto a tier. Low-end wins over mobile.
func Classify(d Device) Tier {
	switch {
	case d.IsLowEnd():
		return TierLowEnd
	case d.IsMobile():
		return TierMobile
	default:
		return TierDesktop
	}
}

// ProbeHost reads the signals available to a native process. Graphics
// capability is unknown here and left unset.
func ProbeHost() Device {
	return Device{
		Cores:    runtime.NumCPU(),
		MemoryGB: readMemTotalGB("/proc/meminfo"),
	}
}

// readMemTotalGB returns MemTotal from a meminfo file in GiB, or 0 when the
// file is missing or malformed.
func readMemTotalGB(path string) float64 {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != "MemTotal:" {
			continue
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0
		}
		return kb / (1024 * 1024)
	}
	return 0
}
