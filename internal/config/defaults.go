package config

const (
	defaultDataDir   = "~/.local/share/ufm"
	defaultExportDir = "~/.local/share/ufm/exports"
	defaultLogDir    = "~/.local/share/ufm/logs"
	defaultWorkspace = "default"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			ExportDir: defaultExportDir,
			LogDir:    defaultLogDir,
		},
		Library: Library{
			Workspace: defaultWorkspace,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
