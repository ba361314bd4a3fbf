package config

const (
	defaultConfigPath    = "~/.config/filesort/config.toml"
	projectConfigName    = "filesort.toml"
	defaultSourceDir     = "sample_files"
	defaultOutputDir     = "organized_output"
	defaultLogLevel      = "warn"
	defaultLogFormat     = "console"
	defaultWatchDebounce = 500

	// OthersCategory receives every file whose extension no category claims.
	OthersCategory = "Others"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		SourceDir:     defaultSourceDir,
		OutputDir:     defaultOutputDir,
		AbsolutePaths: true,
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Watch: Watch{
			DebounceMS: defaultWatchDebounce,
		},
	}
}

// DefaultCategories returns a fresh copy of the built-in extension table.
func DefaultCategories() map[string][]string {
	return map[string][]string{
		"Images":    {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"},
		"Documents": {".pdf", ".docx", ".doc", ".txt", ".xlsx", ".csv", ".pptx"},
		"Music":     {".mp3", ".wav", ".ogg"},
		"Videos":    {".mp4", ".mov", ".avi", ".mkv"},
		"Archives":  {".zip", ".tar", ".gz", ".rar"},
		"Scripts":   {".py", ".js", ".sh"},
	}
}
