// pkg/dist/types.go
package dist

import (
	"fmt"

	"github.com/toolup-dev/toolup/pkg/platform"
)

// Descriptor names a distributable toolchain: a release channel plus the
// target triple its artifacts are built for.
type Descriptor struct {
	Channel string
	Target  platform.Triple
}

// Name returns the toolchain name a descriptor resolves to.
func (d Descriptor) Name() string {
	return d.Channel
}

// ManifestURL returns the channel manifest location under a distribution
// root.
func (d Descriptor) ManifestURL(root string) string {
	return fmt.Sprintf("%s/channel-%s.toml", root, d.Channel)
}

// Profile selects which components a fresh install gets by default.
type Profile string

const (
	ProfileMinimal Profile = "minimal"
	ProfileDefault Profile = "default"
	ProfileFull    Profile = "full"
)

// ParseProfile validates a profile name.
func ParseProfile(s string) (Profile, error) {
	switch Profile(s) {
	case ProfileMinimal, ProfileDefault, ProfileFull:
		return Profile(s), nil
	case "":
		return ProfileDefault, nil
	}
	return "", fmt.Errorf("unknown profile %q (expected minimal, default or full)", s)
}
