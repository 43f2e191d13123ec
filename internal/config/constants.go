package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./list2letterboxd.db"

	// DefaultEnvFile is loaded into the environment before configuration is read
	DefaultEnvFile = ".env"

	// DefaultRetentionSchedule runs the retention purge daily at 03:00
	DefaultRetentionSchedule = "0 3 * * *"
)
