package sqlalias

import (
	"errors"
	"fmt"
)

var ErrNoJoinCondition = errors.New("reflection does not provide a join condition")

// JoinNode is an association joined in a JoinTree
type JoinNode struct {
	Reflection Reflection
	TableName  string // overrides the reflection's table name, if set
	Kind       JoinKind
	Children   []*JoinNode

	// Table is the aliased table, set by JoinTree.Assign
	Table *AliasedTable
}

// JoinTree is the tree of associations joined from a root table, along with the joins the
// query already contains (raw SQL or structured) and that aliases must not collide with.
type JoinTree struct {
	Root     string
	Joins    []JoinFragment
	Children []*JoinNode
}

// rootReflection stands for the root table when it is the parent of an association
type rootReflection string

func (rootReflection) Name() string        { return "" }
func (r rootReflection) TableName() string { return string(r) }

// Walk calls fn for each node, parents first, in declaration order. parent is nil for nodes
// joined directly on the root table.
func (jt *JoinTree) Walk(fn func(parent, node *JoinNode) error) error {
	var walk func(parent *JoinNode, nodes []*JoinNode) error
	walk = func(parent *JoinNode, nodes []*JoinNode) error {
		for _, node := range nodes {
			if err := fn(parent, node); err != nil {
				return err
			}
			if err := walk(node, node.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(nil, jt.Children)
}

// Build creates a strategy using the configured strategy name and assigns aliases to the tree
func (jt *JoinTree) Build(c Connection) (Strategy, error) {
	s, err := Create(c, jt.Root, jt.Joins, nil)
	if err != nil {
		return nil, err
	}
	return s, jt.Assign(s)
}

// BuildKind is the same as Build with an explicit strategy
func (jt *JoinTree) BuildKind(kind StrategyKind, c Connection) (Strategy, error) {
	s, err := CreateKind(kind, c, jt.Root, jt.Joins, nil)
	if err != nil {
		return nil, err
	}
	return s, jt.Assign(s)
}

// Assign gives an aliased table to each node of the tree using s
func (jt *JoinTree) Assign(s Strategy) error {
	root := rootReflection(jt.Root)
	return jt.Walk(func(parent, node *JoinNode) error {
		var parentRef Reflection = root
		if parent != nil {
			parentRef = parent.Reflection
		}
		t, err := s.AliasedTable(node.Reflection, parentRef, node.TableName, nil)
		if err != nil {
			return fmt.Errorf("while aliasing %s: %w", reflectionName(node.Reflection), err)
		}
		node.Table = t
		return nil
	})
}

// Fragments returns the joins of the tree, starting with the joins the tree was created with.
// Assign must have been called first.
func (jt *JoinTree) Fragments(c Connection) ([]JoinFragment, error) {
	res := make([]JoinFragment, 0, len(jt.Joins))
	res = append(res, jt.Joins...)
	root := T(jt.Root)

	err := jt.Walk(func(parent, node *JoinNode) error {
		if node.Table == nil {
			return fmt.Errorf("association %s has no table, call Assign first", reflectionName(node.Reflection))
		}
		parentTable := root
		if parent != nil {
			parentTable = parent.Table
		}
		if node.Kind == CrossJoin {
			res = append(res, Join(CrossJoin, node.Table, ""))
			return nil
		}
		cond, ok := node.Reflection.(Conditioner)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNoJoinCondition, reflectionName(node.Reflection))
		}
		res = append(res, Join(node.Kind, node.Table, cond.JoinOn(c, node.Table, parentTable)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Query returns a query selecting from the root table with all the joins of the tree
func (jt *JoinTree) Query(c Connection) (*SelectQuery, error) {
	joins, err := jt.Fragments(c)
	if err != nil {
		return nil, err
	}
	return B().Select().From(T(jt.Root)).Join(joins...), nil
}

func reflectionName(r Reflection) string {
	if isNil(r) {
		return "<nil>"
	}
	return r.Name()
}
