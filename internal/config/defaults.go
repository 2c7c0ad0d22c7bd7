package config

const (
	defaultLibraryRoot  = "~/ROMs"
	defaultMovedDirName = "Moved ROMS"
	defaultLogDir       = "~/.local/share/romuless/logs"
	defaultHistoryDB    = "~/.local/share/romuless/history.db"
	defaultReportName   = "rom_sort_log.txt"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryRoot:  defaultLibraryRoot,
			MovedDirName: defaultMovedDirName,
			LogDir:       defaultLogDir,
			HistoryDB:    defaultHistoryDB,
			ReportName:   defaultReportName,
		},
		Sort: Sort{
			KeepLanguages: []string{"en"},
		},
		Scan: Scan{},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
