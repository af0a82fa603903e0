// Command sqlalias shows the aliases an alias strategy gives to the tables of a join plan, and
// the query they produce.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/KarpelesLab/sqlalias"
	"github.com/spf13/pflag"
	_ "modernc.org/sqlite"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "sqlalias: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, args, err := loadConfig(args)
	if err != nil {
		return err
	}
	logger := cfg.Logger()
	sqlalias.SetLogger(logger)

	if len(args) != 1 {
		return errors.New("expected exactly one plan file (use - for stdin)")
	}
	in := stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	plan, err := ReadPlan(in)
	if err != nil {
		return err
	}

	res, err := process(ctx, cfg, plan, logger)
	if err != nil {
		return err
	}
	return writeResult(stdout, cfg.Format, res)
}

func backend(cfg *Config) (*sqlalias.Backend, error) {
	var be *sqlalias.Backend
	if cfg.DSN != "" {
		var err error
		be, err = sqlalias.New(cfg.DSN)
		if err != nil {
			return nil, err
		}
	} else {
		e := sqlalias.ParseEngine(cfg.Engine)
		if e == sqlalias.EngineUnknown {
			return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
		}
		be = sqlalias.NewEngine(e)
	}
	be.SetTableAliasLength(cfg.AliasLength)
	return be, nil
}

// process aliases the tables of plan and renders the resulting query
func process(ctx context.Context, cfg *Config, plan *Plan, logger *slog.Logger) (*Result, error) {
	be, err := backend(cfg)
	if err != nil {
		return nil, err
	}
	kind, err := sqlalias.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	jt, err := plan.Tree()
	if err != nil {
		return nil, err
	}

	s, err := sqlalias.CreateKind(kind, be, jt.Root, jt.Joins, plan.Seed())
	if err != nil {
		return nil, err
	}
	if err := jt.Assign(s); err != nil {
		return nil, err
	}

	q, err := jt.Query(be)
	if err != nil {
		return nil, err
	}
	q.Select(plan.Select...)
	query, err := q.Render(be)
	if err != nil {
		return nil, err
	}
	logger.Info("aliases assigned", "strategy", kind.String(), "engine", be.String(), "names", s.Tracker().Len())

	tables, err := collectTables(jt)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Strategy: kind.String(),
		Engine:   be.String(),
		Query:    query,
		Tables:   tables,
		Tracker:  s.Tracker(),
	}

	if cfg.Execute {
		if be.Engine() != sqlalias.EngineSQLite {
			return nil, fmt.Errorf("--execute needs the sqlite engine, not %s", be)
		}
		n, err := execute(ctx, plan.Schema, q, be)
		if err != nil {
			return nil, err
		}
		res.Rows = &n
	}
	return res, nil
}

// execute creates the plan schema in an in-memory SQLite database and runs q against it,
// returning the number of rows.
func execute(ctx context.Context, schema []string, q *sqlalias.SelectQuery, be *sqlalias.Backend) (int, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return 0, err
	}
	defer db.Close()
	// each connection has its own in-memory database
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return 0, &sqlalias.Error{Query: stmt, Err: err}
		}
	}

	rows, err := q.RunQuery(ctx, be, db)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n += 1
	}
	return n, rows.Err()
}
