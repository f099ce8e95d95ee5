package crawl

import "fmt"

var sizeUnits = []string{"KiB", "MiB", "GiB"}

// DisplayURL shortens an address for terminal output. The scheme is
// dropped, and an address still wider than width has its middle replaced
// by "..." so that the host and the last path segment stay visible.
func DisplayURL(addr string, width int) string {
	if width <= 0 {
		return ""
	}
	for _, scheme := range []string{"https://", "http://"} {
		if len(addr) > len(scheme) && addr[:len(scheme)] == scheme {
			addr = addr[len(scheme):]
			break
		}
	}
	if len(addr) <= width {
		return addr
	}
	if width < 4 {
		return addr[:width]
	}
	head := (width - 3) / 2
	tail := width - 3 - head
	return addr[:head] + "..." + addr[len(addr)-tail:]
}

// FormatSize formats a byte count using binary units.
func FormatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / 1024
	unit := 0
	for v >= 1024 && unit < len(sizeUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", v, sizeUnits[unit])
}
