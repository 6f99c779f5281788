// Package format renders byte counts and durations the way s3drop shows
// them to users: one-decimal binary sizes and coarse duration phrasing.
package format

import "fmt"

// sizeUnits are the binary (1024-based) units used by Size.
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Size formats a byte count with one decimal place, stepping through
// binary units. Values of a petabyte or more stay in PB.
func Size(bytes int64) string {
	v := float64(bytes)
	for _, unit := range sizeUnits {
		if v < 1024.0 {
			return fmt.Sprintf("%.1f %s", v, unit)
		}
		v /= 1024.0
	}
	return fmt.Sprintf("%.1f PB", v)
}

// Duration formats a second count in the coarsest unit that still reads
// naturally: seconds below a minute, whole minutes below an hour, "Nh Nm"
// below a day, "Nd Nh" beyond that. Exact hour and day boundaries drop
// the smaller unit.
func Duration(seconds int64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%d seconds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%d minutes", seconds/60)
	case seconds < 86400:
		hours := seconds / 3600
		minutes := (seconds % 3600) / 60
		if minutes == 0 {
			return fmt.Sprintf("%d hours", hours)
		}
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		days := seconds / 86400
		hours := (seconds % 86400) / 3600
		if hours == 0 {
			return fmt.Sprintf("%d days", days)
		}
		return fmt.Sprintf("%dd %dh", days, hours)
	}
}
