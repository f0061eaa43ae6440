package eye

import (
	"fmt"
	"regexp"
	"strings"
)

// Output patterns eye prints on success. They are the CLI's only success
// signal; exit codes are not inspected.
const (
	// ConfigLoadedMarker appears in `eye load` output when the config loaded
	ConfigLoadedMarker = "Config loaded"

	// startSentFormat and stopSentFormat are completed with the target
	startSentFormat = "command :start sent to [%s]"
	stopSentFormat  = "command :stop sent to [%s]"
)

// destroyPattern matches `eye q -s` output both when the daemon quit and when
// it was not running.
var destroyPattern = regexp.MustCompile(`(?m)^Eye quit|socket\(.+\) not found`)

// LoadSucceeded reports whether output confirms a config load.
func LoadSucceeded(output string) bool {
	return strings.Contains(output, ConfigLoadedMarker)
}

// StartSucceeded reports whether output confirms a start for application.
func StartSucceeded(output, application string) bool {
	return strings.Contains(output, fmt.Sprintf(startSentFormat, application))
}

// StopSucceeded reports whether output confirms a stop for key.
func StopSucceeded(output, key string) bool {
	return strings.Contains(output, fmt.Sprintf(stopSentFormat, key))
}

// DestroySucceeded reports whether output confirms eye is gone.
func DestroySucceeded(output string) bool {
	return destroyPattern.MatchString(output)
}
