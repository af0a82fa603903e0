package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KarpelesLab/sqlalias"
	"gopkg.in/yaml.v3"
)

// Plan describes a query: the root table, the joins it already has and the associations to
// join on top of it.
type Plan struct {
	Root         string             `yaml:"root"`
	Select       []string           `yaml:"select"`
	Joins        []*JoinEntry        `yaml:"joins"`
	Reserved     []string           `yaml:"reserved"` // names that must not be used as aliases
	Associations []*AssociationEntry `yaml:"associations"`
	Schema       []string           `yaml:"schema"` // statements creating the tables, for --execute
}

// JoinEntry is a join already present in the query, either raw SQL or a structured join
type JoinEntry struct {
	SQL   string `yaml:"sql"`
	Kind  string `yaml:"kind"`
	Table string `yaml:"table"`
	Alias string `yaml:"alias"`
	On    string `yaml:"on"`
}

// UnmarshalYAML accepts a plain string as a raw SQL join
func (j *JoinEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		j.SQL = value.Value
		return nil
	}
	type plain JoinEntry
	return value.Decode((*plain)(j))
}

type AssociationEntry struct {
	Name       string             `yaml:"name"`
	Table      string             `yaml:"table"`
	TableName  string             `yaml:"table_name"` // forced table name for the join
	Kind       string             `yaml:"kind"`
	ForeignKey string             `yaml:"foreign_key"`
	PrimaryKey string             `yaml:"primary_key"`
	OwnerKey   string             `yaml:"owner_key"`
	BelongsTo  bool               `yaml:"belongs_to"`
	Children   []*AssociationEntry `yaml:"children"`
}

func parseKind(s string, def sqlalias.JoinKind) (sqlalias.JoinKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "inner":
		return sqlalias.InnerJoin, nil
	case "left", "left_outer":
		return sqlalias.LeftOuterJoin, nil
	case "right", "right_outer":
		return sqlalias.RightOuterJoin, nil
	case "full", "full_outer":
		return sqlalias.FullOuterJoin, nil
	case "cross":
		return sqlalias.CrossJoin, nil
	default:
		return 0, fmt.Errorf("unknown join kind %q", s)
	}
}

// ReadPlan decodes a YAML plan
func ReadPlan(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty plan")
		}
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	if p.Root == "" {
		return nil, errors.New("plan has no root table")
	}
	return &p, nil
}

func (j *JoinEntry) Fragment() (sqlalias.JoinFragment, error) {
	if j.SQL != "" {
		return sqlalias.Raw(j.SQL), nil
	}
	if j.Table == "" {
		return nil, errors.New("join needs either sql or table")
	}
	kind, err := parseKind(j.Kind, sqlalias.InnerJoin)
	if err != nil {
		return nil, err
	}
	t := sqlalias.T(j.Table)
	if j.Alias != "" {
		t = t.As(j.Alias)
	}
	return sqlalias.Join(kind, t, j.On), nil
}

func (a *AssociationEntry) node() (*sqlalias.JoinNode, error) {
	if a.Name == "" {
		return nil, errors.New("association has no name")
	}
	kind, err := parseKind(a.Kind, sqlalias.LeftOuterJoin)
	if err != nil {
		return nil, fmt.Errorf("association %s: %w", a.Name, err)
	}
	table := a.Table
	if table == "" {
		table = a.Name
	}
	n := &sqlalias.JoinNode{
		Reflection: &sqlalias.Association{
			Assoc:      a.Name,
			Table:      table,
			ForeignKey: a.ForeignKey,
			PrimaryKey: a.PrimaryKey,
			OwnerKey:   a.OwnerKey,
			BelongsTo:  a.BelongsTo,
		},
		TableName: a.TableName,
		Kind:      kind,
	}
	for _, sub := range a.Children {
		child, err := sub.node()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// Tree returns the join tree described by the plan
func (p *Plan) Tree() (*sqlalias.JoinTree, error) {
	jt := &sqlalias.JoinTree{Root: p.Root}
	for n, j := range p.Joins {
		f, err := j.Fragment()
		if err != nil {
			return nil, fmt.Errorf("join %d: %w", n, err)
		}
		jt.Joins = append(jt.Joins, f)
	}
	for _, a := range p.Associations {
		n, err := a.node()
		if err != nil {
			return nil, err
		}
		jt.Children = append(jt.Children, n)
	}
	return jt, nil
}

// Seed returns a tracker with the reserved names of the plan, or nil if there are none
func (p *Plan) Seed() *sqlalias.AliasTracker {
	if len(p.Reserved) == 0 {
		return nil
	}
	t := sqlalias.NewTracker()
	for _, name := range p.Reserved {
		t.Reserve(name, 1)
	}
	return t
}
