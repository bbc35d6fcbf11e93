// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"
)

// Triple identifies a target platform for distributed artifacts.
type Triple string

const (
	// Linux targets
	TripleX8664Linux   Triple = "x86_64-linux"
	TripleI686Linux    Triple = "i686-linux"
	TripleAarch64Linux Triple = "aarch64-linux"
	TripleArmv7lLinux  Triple = "armv7l-linux"

	// macOS targets
	TripleX8664Darwin   Triple = "x86_64-darwin"
	TripleAarch64Darwin Triple = "aarch64-darwin"

	// Windows targets
	TripleX8664Windows   Triple = "x86_64-windows"
	TripleAarch64Windows Triple = "aarch64-windows"
)

// AllTriples contains the targets distribution channels commonly publish.
var AllTriples = []Triple{
	TripleX8664Linux,
	TripleI686Linux,
	TripleAarch64Linux,
	TripleArmv7lLinux,
	TripleX8664Darwin,
	TripleAarch64Darwin,
	TripleX8664Windows,
	TripleAarch64Windows,
}

// Detect automatically detects the current target triple.
func Detect() (Triple, error) {
	goos := runtime.GOOS
	goarch := runtime.GOARCH

	switch goos {
	case "linux":
		switch goarch {
		case "amd64":
			return TripleX8664Linux, nil
		case "386":
			return TripleI686Linux, nil
		case "arm64":
			return TripleAarch64Linux, nil
		case "arm":
			return TripleArmv7lLinux, nil
		}
	case "darwin":
		switch goarch {
		case "amd64":
			return TripleX8664Darwin, nil
		case "arm64":
			return TripleAarch64Darwin, nil
		}
	case "windows":
		switch goarch {
		case "amd64":
			return TripleX8664Windows, nil
		case "arm64":
			return TripleAarch64Windows, nil
		}
	}

	return "", fmt.Errorf("unsupported platform: %s/%s", goos, goarch)
}

// String returns the triple as a plain string.
func (t Triple) String() string {
	return string(t)
}
