package eye

// Version is the current version of the go-eye library
const Version = "1.0.0"

// VersionInfo contains detailed version information
type VersionInfo struct {
	// Version is the semantic version
	Version string
	// Protocol names the eye CLI output conventions this library parses
	Protocol string
}

// GetVersion returns the current version information
func GetVersion() VersionInfo {
	return VersionInfo{
		Version:  Version,
		Protocol: "eye-cli/info-json",
	}
}
