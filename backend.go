package sqlalias

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
)

// Connection is what the aliasing core needs to know about the database it is generating
// SQL for. Implementations must be cheap and free of side effects.
type Connection interface {
	// QuoteTableName quotes a table name (possibly schema qualified) for the backend
	QuoteTableName(name string) string
	// TableAliasLength is the maximum length of an alias accepted by the backend
	TableAliasLength() int
	// TableAliasFor normalizes an alias candidate into something the backend accepts
	TableAliasFor(candidate string) string
}

// Backend is a Connection for a given Engine. It never opens a connection to the database.
type Backend struct {
	engine      Engine
	aliasLength int    // 0 means engine default
	database    string // database name from the DSN, if any
}

var _ Connection = (*Backend)(nil)

// New returns a Backend matching the provided dsn. The dsn is parsed in order to detect the
// engine, but no connection is made.
func New(dsn string) (*Backend, error) {
	switch {
	case strings.HasPrefix(dsn, "postgresql://"), strings.HasPrefix(dsn, "postgres://"):
		cfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid postgresql dsn: %w", err)
		}
		return &Backend{engine: EnginePostgreSQL, database: cfg.Database}, nil
	case dsn == ":memory:", strings.HasPrefix(dsn, "file:"), strings.HasPrefix(dsn, "sqlite://"):
		return &Backend{engine: EngineSQLite}, nil
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	return &Backend{engine: EngineMySQL, database: cfg.DBName}, nil
}

// NewEngine returns a Backend for the given engine with its default settings
func NewEngine(e Engine) *Backend {
	return &Backend{engine: e}
}

func (be *Backend) Engine() Engine {
	if be == nil {
		return EngineUnknown
	}
	return be.engine
}

// Database returns the database name found in the dsn, if any
func (be *Backend) Database() string {
	if be == nil {
		return ""
	}
	return be.database
}

// SetTableAliasLength overrides the engine's maximum alias length. Passing zero restores the default.
func (be *Backend) SetTableAliasLength(n int) {
	if be == nil {
		return
	}
	be.aliasLength = n
}

func (be *Backend) TableAliasLength() int {
	if be != nil && be.aliasLength > 0 {
		return be.aliasLength
	}
	return be.Engine().aliasLength()
}

func (be *Backend) QuoteTableName(name string) string {
	switch be.Engine() {
	case EngineMySQL:
		return quoteMySQL(name)
	case EnginePostgreSQL:
		return pgx.Identifier(strings.Split(name, ".")).Sanitize()
	default:
		return quoteQualified(name)
	}
}

// TableAliasFor truncates candidate to the maximum alias length and replaces dots so that a
// schema qualified name can be used as an alias.
func (be *Backend) TableAliasFor(candidate string) string {
	r := []rune(candidate)
	if max := be.TableAliasLength(); len(r) > max {
		r = r[:max]
	}
	return strings.ReplaceAll(string(r), ".", "_")
}

func (be *Backend) String() string {
	return be.Engine().String()
}
