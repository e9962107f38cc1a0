// Package verbose is a process-wide switch for the extra progress
// output the sstvencode/sstvdecode CLIs print under -v.
package verbose

import "log"

var enabled bool

// SetEnabled sets the global verbose logging flag
func SetEnabled(enable bool) {
	enabled = enable
}

// IsEnabled returns whether verbose logging is enabled
func IsEnabled() bool {
	return enabled
}

// Printf prints a verbose log message if verbose logging is enabled
func Printf(format string, args ...interface{}) {
	if enabled {
		log.Printf("[VERBOSE] "+format, args...)
	}
}

// Print prints a verbose log message if verbose logging is enabled
func Print(args ...interface{}) {
	if enabled {
		log.Print(append([]interface{}{"[VERBOSE] "}, args...)...)
	}
}

// Println prints a verbose log message if verbose logging is enabled
func Println(args ...interface{}) {
	if enabled {
		log.Println(append([]interface{}{"[VERBOSE]"}, args...)...)
	}
}

// SyncLine logs a per-line sync trace: the scan line number and the
// sample offset its sync pulse was located at. The decoder calls this
// once per line so a -v run shows where the sync tracker locked on (or
// drifted to) through a whole frame.
func SyncLine(line, offsetSamples int) {
	Printf("line %d: sync at sample %d", line, offsetSamples)
}