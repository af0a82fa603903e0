package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/KarpelesLab/pjson"
	"github.com/KarpelesLab/sqlalias"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Result is the outcome of aliasing a plan
type Result struct {
	Strategy string                 `json:"strategy"`
	Engine   string                 `json:"engine"`
	Query    string                 `json:"query"`
	Tables   []*TableResult         `json:"tables"`
	Tracker  *sqlalias.AliasTracker `json:"tracker"`
	Rows     *int                   `json:"rows,omitempty"` // set when the query was executed
}

type TableResult struct {
	Path        string                 `json:"path"`
	Association string                 `json:"association"`
	Kind        string                 `json:"kind"`
	Table       *sqlalias.AliasedTable `json:"table"`
}

func collectTables(jt *sqlalias.JoinTree) ([]*TableResult, error) {
	var res []*TableResult
	paths := make(map[*sqlalias.JoinNode]string)

	err := jt.Walk(func(parent, node *sqlalias.JoinNode) error {
		path := node.Reflection.Name()
		if parent != nil {
			path = paths[parent] + "." + path
		}
		paths[node] = path
		res = append(res, &TableResult{
			Path:        path,
			Association: node.Reflection.Name(),
			Kind:        node.Kind.String(),
			Table:       node.Table,
		})
		return nil
	})
	return res, err
}

func writeResult(w io.Writer, format string, r *Result) error {
	switch format {
	case "sql":
		_, err := fmt.Fprintln(w, r.Query)
		return err
	case "json":
		buf, err := pjson.Marshal(r)
		if err != nil {
			return err
		}
		var out bytes.Buffer
		if err := json.Indent(&out, buf, "", "  "); err != nil {
			return err
		}
		out.WriteByte('\n')
		_, err = out.WriteTo(w)
		return err
	default:
		return writeTable(w, r)
	}
}

func writeTable(w io.Writer, r *Result) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("%s (%s)", r.Strategy, r.Engine))
	t.AppendHeader(table.Row{"Path", "Join", "Table", "Alias"})
	for _, tr := range r.Tables {
		t.AppendRow(table.Row{tr.Path, tr.Kind, tr.Table.Table, tr.Table.Alias})
	}
	footer := table.Row{"", "", "", fmt.Sprintf("%d names used", r.Tracker.Len())}
	if r.Rows != nil {
		footer[0] = fmt.Sprintf("%d rows", *r.Rows)
	}
	t.AppendFooter(footer)
	t.Render()

	_, err := fmt.Fprintln(w, strings.TrimSpace(r.Query))
	return err
}
