// pkg/notify/notify.go
package notify

// Kind identifies a lifecycle event emitted during install and uninstall
// operations.
type Kind int

const (
	// KindInstallingToolchain is emitted before a fresh install begins
	KindInstallingToolchain Kind = iota
	// KindUpdatingToolchain is emitted before an install over existing state
	KindUpdatingToolchain
	// KindToolchainDirectory reports the resolved target directory
	KindToolchainDirectory
	// KindInstalledToolchain is emitted after an install changed state
	KindInstalledToolchain
	// KindUpdateHashMatches is emitted when the prior hash still matches
	KindUpdateHashMatches
	// KindRemoving is emitted before a recursive path removal
	KindRemoving
	// KindCopying is emitted before a recursive directory copy
	KindCopying
	// KindLinking is emitted before a symlink is created
	KindLinking
	// KindExtracting is emitted before an archive is unpacked
	KindExtracting
	// KindInstallingComponent is emitted per component staged into a transaction
	KindInstallingComponent
	// KindDownloading is emitted when an artifact download starts
	KindDownloading
	// KindDownloadProgress reports bytes transferred so far
	KindDownloadProgress
	// KindVerifying is emitted before a checksum check
	KindVerifying
	// KindResolvingChannel is emitted before a channel manifest fetch
	KindResolvingChannel
	// KindWritingHash is emitted when the update hash file is persisted
	KindWritingHash
)

// Event is the payload delivered to a Sink. Only the fields relevant to the
// event kind are populated.
type Event struct {
	Kind      Kind
	Toolchain string
	Path      string
	Source    string
	Component string
	URL       string
	Written   int64
	Total     int64
}

// Sink receives lifecycle events. It is advisory and fire-and-forget: a sink
// must not block, and nothing a sink does can fail the operation that emitted
// the event.
type Sink func(Event)

// Send delivers an event to the sink. A nil sink discards the event, and a
// panicking sink is contained here rather than surfaced to the caller.
func (s Sink) Send(e Event) {
	if s == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	s(e)
}

func InstallingToolchain(name string) Event {
	return Event{Kind: KindInstallingToolchain, Toolchain: name}
}

func UpdatingToolchain(name string) Event {
	return Event{Kind: KindUpdatingToolchain, Toolchain: name}
}

func ToolchainDirectory(name, path string) Event {
	return Event{Kind: KindToolchainDirectory, Toolchain: name, Path: path}
}

func InstalledToolchain(name string) Event {
	return Event{Kind: KindInstalledToolchain, Toolchain: name}
}

func UpdateHashMatches(name string) Event {
	return Event{Kind: KindUpdateHashMatches, Toolchain: name}
}

func Removing(path string) Event {
	return Event{Kind: KindRemoving, Path: path}
}

func Copying(src, dst string) Event {
	return Event{Kind: KindCopying, Source: src, Path: dst}
}

func Linking(src, dst string) Event {
	return Event{Kind: KindLinking, Source: src, Path: dst}
}

func Extracting(src, dst string) Event {
	return Event{Kind: KindExtracting, Source: src, Path: dst}
}

func InstallingComponent(name, prefix string) Event {
	return Event{Kind: KindInstallingComponent, Component: name, Path: prefix}
}

func Downloading(url string, total int64) Event {
	return Event{Kind: KindDownloading, URL: url, Total: total}
}

func DownloadProgress(url string, written, total int64) Event {
	return Event{Kind: KindDownloadProgress, URL: url, Written: written, Total: total}
}

func Verifying(path string) Event {
	return Event{Kind: KindVerifying, Path: path}
}

func ResolvingChannel(url string) Event {
	return Event{Kind: KindResolvingChannel, URL: url}
}

func WritingHash(path string) Event {
	return Event{Kind: KindWritingHash, Path: path}
}
