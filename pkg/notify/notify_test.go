// pkg/notify/notify_test.go
package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilSinkDiscards(t *testing.T) {
	var s Sink
	assert.NotPanics(t, func() {
		s.Send(InstallingToolchain("stable"))
	})
}

func TestPanickingSinkIsContained(t *testing.T) {
	s := Sink(func(Event) {
		panic("broken sink")
	})
	assert.NotPanics(t, func() {
		s.Send(InstalledToolchain("stable"))
	})
}

func TestEventsDeliveredInOrder(t *testing.T) {
	var got []Kind
	s := Sink(func(e Event) {
		got = append(got, e.Kind)
	})

	s.Send(InstallingToolchain("stable"))
	s.Send(ToolchainDirectory("stable", "/path"))
	s.Send(InstalledToolchain("stable"))

	assert.Equal(t, []Kind{KindInstallingToolchain, KindToolchainDirectory, KindInstalledToolchain}, got)
}

func TestEventPayloads(t *testing.T) {
	e := DownloadProgress("https://example.com/a", 10, 100)
	assert.Equal(t, KindDownloadProgress, e.Kind)
	assert.Equal(t, int64(10), e.Written)
	assert.Equal(t, int64(100), e.Total)

	e = Extracting("/src.tar.gz", "/dst")
	assert.Equal(t, "/src.tar.gz", e.Source)
	assert.Equal(t, "/dst", e.Path)
}
