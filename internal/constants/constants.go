package constants

// Application naming
const (
	AppName             = "jot"
	DefaultDatabaseName = "notes.db"
	ConfigFileName      = "config.yaml"
	EnvPrefix           = "JOT"
)

// Delete modes
const (
	// DeleteByContent removes every note sharing the selected note's title and content.
	DeleteByContent = "content"
	// DeleteByID removes only the selected row.
	DeleteByID = "id"
)

// Display
const (
	SeparatorWidth = 60
	PreviewLength  = 150
)

// File permissions
const (
	ConfigFileMode = 0600 // Secure file permissions for config
	DirMode        = 0755
)
