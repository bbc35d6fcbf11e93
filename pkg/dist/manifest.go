// pkg/dist/manifest.go
package dist

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"zombiezen.com/go/nix/nixbase32"

	"github.com/toolup-dev/toolup/pkg/platform"
)

// Manifest describes one release of a channel: its date, version, profile
// definitions and the downloadable artifact for each component/target pair.
type Manifest struct {
	Date       string              `toml:"date"`
	Version    string              `toml:"version"`
	Profiles   map[string][]string `toml:"profiles"`
	Components []ManifestComponent `toml:"component"`
}

// ManifestComponent is one downloadable artifact.
type ManifestComponent struct {
	Name   string `toml:"name"`
	Target string `toml:"target"`
	URL    string `toml:"url"`
	Hash   string `toml:"hash"` // sha256, hex
}

// ParseManifest decodes a channel manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing channel manifest: %w", err)
	}
	if m.Version == "" {
		return nil, fmt.Errorf("channel manifest has no version")
	}
	return &m, nil
}

// Fingerprint derives the opaque update hash for a manifest payload.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return nixbase32.EncodeToString(sum[:])
}

// Lookup finds the artifact for a component on a target.
func (m *Manifest) Lookup(name string, target platform.Triple) (ManifestComponent, bool) {
	for _, c := range m.Components {
		if c.Name == name && c.Target == string(target) {
			return c, true
		}
	}
	return ManifestComponent{}, false
}

// ProfileComponents returns the component names a profile selects.
func (m *Manifest) ProfileComponents(p Profile) ([]string, error) {
	names, ok := m.Profiles[string(p)]
	if !ok {
		return nil, fmt.Errorf("channel manifest does not define profile %q", p)
	}
	return names, nil
}

// ResolveURL makes an artifact URL absolute against the distribution root.
func ResolveURL(root, url string) string {
	if strings.Contains(url, "://") {
		return url
	}
	return root + "/" + url
}
