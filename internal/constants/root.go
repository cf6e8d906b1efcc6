package constants

const (
	AppName           = "riji"
	Version           = "v0.3.0"
	DefaultConfigPath = "~/.config/riji/journal.json"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "riji-"

	// LockFileName is created next to the store while a process owns it
	LockFileName = "riji.lock"

	// PreviewLength is the number of runes shown for content in list views
	PreviewLength = 100

	// DefaultSearchLimit caps ranked search results
	DefaultSearchLimit = 20
)
