// pkg/notify/log.go
package notify

import "github.com/rs/zerolog"

// Logging returns a sink that renders events through the given zerolog
// logger. Progress events log at trace level so that byte-count spam stays
// out of normal output.
func Logging(logger zerolog.Logger) Sink {
	return func(e Event) {
		switch e.Kind {
		case KindInstallingToolchain:
			logger.Info().Str("toolchain", e.Toolchain).Msg("installing toolchain")
		case KindUpdatingToolchain:
			logger.Info().Str("toolchain", e.Toolchain).Msg("updating toolchain")
		case KindToolchainDirectory:
			logger.Debug().Str("toolchain", e.Toolchain).Str("path", e.Path).Msg("toolchain directory")
		case KindInstalledToolchain:
			logger.Info().Str("toolchain", e.Toolchain).Msg("toolchain installed")
		case KindUpdateHashMatches:
			logger.Info().Str("toolchain", e.Toolchain).Msg("update hash matches, nothing to do")
		case KindRemoving:
			logger.Debug().Str("path", e.Path).Msg("removing directory")
		case KindCopying:
			logger.Debug().Str("src", e.Source).Str("dst", e.Path).Msg("copying directory")
		case KindLinking:
			logger.Debug().Str("src", e.Source).Str("dst", e.Path).Msg("creating symlink")
		case KindExtracting:
			logger.Info().Str("src", e.Source).Str("dst", e.Path).Msg("extracting archive")
		case KindInstallingComponent:
			logger.Info().Str("component", e.Component).Msg("installing component")
		case KindDownloading:
			logger.Info().Str("url", e.URL).Int64("bytes", e.Total).Msg("downloading")
		case KindDownloadProgress:
			logger.Trace().Str("url", e.URL).Int64("written", e.Written).Int64("total", e.Total).Msg("download progress")
		case KindVerifying:
			logger.Debug().Str("path", e.Path).Msg("verifying checksum")
		case KindResolvingChannel:
			logger.Debug().Str("url", e.URL).Msg("resolving channel manifest")
		case KindWritingHash:
			logger.Debug().Str("path", e.Path).Msg("writing update hash")
		}
	}
}
