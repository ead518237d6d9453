package sqldb

import "fmt"

// Dialect holds the SQL that differs between database servers.
type Dialect struct {
	Name   string // dialect name used in configuration
	Driver string // database/sql driver name
	Schema string
	Select string
	Upsert string
}

var dialects = map[string]Dialect{
	"mysql": {
		Name:   "mysql",
		Driver: "mysql",
		Schema: `CREATE TABLE IF NOT EXISTS jot_slots (
	slot_key   VARCHAR(255) NOT NULL PRIMARY KEY,
	slot_value MEDIUMTEXT NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		Select: `SELECT slot_value FROM jot_slots WHERE slot_key = ?`,
		Upsert: `INSERT INTO jot_slots (slot_key, slot_value) VALUES (?, ?)
	ON DUPLICATE KEY UPDATE slot_value = VALUES(slot_value)`,
	},
	"postgres": {
		Name:   "postgres",
		Driver: "pgx",
		Schema: `CREATE TABLE IF NOT EXISTS jot_slots (
	slot_key   TEXT PRIMARY KEY,
	slot_value TEXT NOT NULL
)`,
		Select: `SELECT slot_value FROM jot_slots WHERE slot_key = $1`,
		Upsert: `INSERT INTO jot_slots (slot_key, slot_value) VALUES ($1, $2)
	ON CONFLICT (slot_key) DO UPDATE SET slot_value = EXCLUDED.slot_value`,
	},
	// sqlite expects the caller to register a database/sql driver named "sqlite".
	"sqlite": {
		Name:   "sqlite",
		Driver: "sqlite",
		Schema: `CREATE TABLE IF NOT EXISTS jot_slots (
	slot_key   TEXT PRIMARY KEY,
	slot_value TEXT NOT NULL
)`,
		Select: `SELECT slot_value FROM jot_slots WHERE slot_key = ?`,
		Upsert: `INSERT INTO jot_slots (slot_key, slot_value) VALUES (?, ?)
	ON CONFLICT (slot_key) DO UPDATE SET slot_value = excluded.slot_value`,
	},
}

// LookupDialect returns the dialect registered under name.
func LookupDialect(name string) (Dialect, error) {
	d, ok := dialects[name]
	if !ok {
		return Dialect{}, fmt.Errorf("sqldb: unknown dialect %q", name)
	}
	return d, nil
}
