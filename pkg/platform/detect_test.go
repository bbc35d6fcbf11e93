// pkg/platform/detect_test.go
package platform

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCurrentPlatform(t *testing.T) {
	triple, err := Detect()
	require.NoError(t, err)

	switch runtime.GOOS {
	case "linux":
		assert.True(t, strings.HasSuffix(string(triple), "-linux"), triple)
	case "darwin":
		assert.True(t, strings.HasSuffix(string(triple), "-darwin"), triple)
	case "windows":
		assert.True(t, strings.HasSuffix(string(triple), "-windows"), triple)
	}
	assert.Contains(t, AllTriples, triple)
}
