package config

const (
	defaultDataDir               = "~/.local/share/tunetrace"
	defaultLogDir                = "~/.local/share/tunetrace/logs"
	defaultReviewDir             = "~/.local/share/tunetrace/review"
	defaultSearchBinary          = "yt-dlp"
	defaultSearchTimeoutSeconds  = 12
	defaultChannelLimit          = 20
	defaultResultHost            = "https://www.youtube.com"
	defaultWorkers               = 8
	defaultCatalogBaseURL        = "https://api.spotify.com"
	defaultCatalogTokenURL       = "https://accounts.spotify.com/api/token"
	defaultCatalogPageSize       = 100
	defaultCatalogTimeoutSeconds = 15
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ReviewDir: defaultReviewDir,
		},
		Search: Search{
			Binary:         defaultSearchBinary,
			TimeoutSeconds: defaultSearchTimeoutSeconds,
			ChannelLimit:   defaultChannelLimit,
			ResultHost:     defaultResultHost,
		},
		Resolve: Resolve{
			Workers: defaultWorkers,
		},
		Verify: Verify{
			Workers: defaultWorkers,
		},
		Catalog: Catalog{
			BaseURL:        defaultCatalogBaseURL,
			TokenURL:       defaultCatalogTokenURL,
			PageSize:       defaultCatalogPageSize,
			TimeoutSeconds: defaultCatalogTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
