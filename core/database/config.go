package database

// Config holds configuration for the database connection.
// The database is only used when the catalog persistence driver is set
// to "database"; the default file driver needs none of this.
type Config struct {
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Path is the SQLite database file path (":memory:" for in-memory).
	Path string `mapstructure:"path" default:"barkeep.db"`
	// Host is the MySQL host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the MySQL port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the MySQL user.
	User string `mapstructure:"user" default:"root"`
	// Password is the MySQL password.
	Password string `mapstructure:"password" default:""`
	// Name is the MySQL database name.
	Name string `mapstructure:"name" default:"barkeep"`
	// TimeoutSeconds bounds connection setup and I/O for MySQL.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
