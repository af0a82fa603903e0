package sqlalias

type Engine int

const (
	EngineUnknown Engine = iota
	EngineMySQL
	EnginePostgreSQL
	EngineSQLite
)

func (e Engine) String() string {
	switch e {
	case EngineMySQL:
		return "MySQL Engine"
	case EnginePostgreSQL:
		return "PostgreSQL Engine"
	case EngineSQLite:
		return "SQLite Engine"
	default:
		return "Unknown Engine"
	}
}

// aliasLength returns the maximum identifier length the engine accepts for table aliases
func (e Engine) aliasLength() int {
	switch e {
	case EnginePostgreSQL:
		// NAMEDATALEN - 1
		return 63
	default:
		return 64
	}
}

// ParseEngine resolves an engine from its short name (mysql, postgres, sqlite)
func ParseEngine(name string) Engine {
	switch name {
	case "mysql", "mariadb", "tidb":
		return EngineMySQL
	case "postgres", "postgresql", "pgsql", "pg", "cockroach":
		return EnginePostgreSQL
	case "sqlite", "sqlite3":
		return EngineSQLite
	default:
		return EngineUnknown
	}
}
