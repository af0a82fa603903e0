package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KarpelesLab/sqlalias"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogPlan = `
root: users
select: ['"users"."id"']
joins:
  - INNER JOIN posts ON posts.user_id = users.id
reserved: [authors_posts]
associations:
  - name: posts
    foreign_key: user_id
    children:
      - name: author
        table: users
        foreign_key: user_id
        belongs_to: true
  - name: comments
    kind: inner
    foreign_key: user_id
schema:
  - CREATE TABLE users (id INTEGER PRIMARY KEY)
  - CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER)
  - CREATE TABLE comments (id INTEGER PRIMARY KEY, user_id INTEGER)
  - INSERT INTO users (id) VALUES (1), (2)
  - INSERT INTO posts (id, user_id) VALUES (1, 1), (2, 1)
  - INSERT INTO comments (id, user_id) VALUES (1, 1)
`

func TestReadPlan(t *testing.T) {
	p, err := ReadPlan(strings.NewReader(blogPlan))
	require.NoError(t, err)
	assert.Equal(t, "users", p.Root)
	require.Len(t, p.Joins, 1)
	assert.Equal(t, "INNER JOIN posts ON posts.user_id = users.id", p.Joins[0].SQL)

	jt, err := p.Tree()
	require.NoError(t, err)
	require.Len(t, jt.Children, 2)
	assert.Equal(t, sqlalias.LeftOuterJoin, jt.Children[0].Kind)
	assert.Equal(t, sqlalias.InnerJoin, jt.Children[1].Kind)
	assert.Equal(t, "posts", jt.Children[0].Reflection.TableName(), "table defaults to the association name")
	assert.Equal(t, "users", jt.Children[0].Children[0].Reflection.TableName())

	seed := p.Seed()
	require.NotNil(t, seed)
	assert.Equal(t, 1, seed.Snapshot()["authors_posts"])
}

func TestReadPlanErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"joins: []",
		"root: users\nunknown: 1",
	} {
		_, err := ReadPlan(strings.NewReader(src))
		assert.Error(t, err, src)
	}

	p, err := ReadPlan(strings.NewReader("root: users\njoins:\n  - kind: left\n"))
	require.NoError(t, err)
	_, err = p.Tree()
	assert.Error(t, err, "join without sql nor table")

	p, err = ReadPlan(strings.NewReader("root: users\nassociations:\n  - name: posts\n    kind: sideways\n"))
	require.NoError(t, err)
	_, err = p.Tree()
	assert.Error(t, err)
}

func TestStructuredJoin(t *testing.T) {
	p, err := ReadPlan(strings.NewReader(`
root: users
joins:
  - {table: posts, alias: p, kind: left, on: p.user_id = users.id}
associations:
  - name: p
    table: posts
    foreign_key: user_id
`))
	require.NoError(t, err)

	cfg := &Config{Strategy: "default", Engine: "mysql", Format: "sql"}
	res, err := process(context.Background(), cfg, p, cfg.Logger())
	require.NoError(t, err)
	// the structured join already uses p, posts is free
	assert.Equal(t, "SELECT * FROM `users` LEFT OUTER JOIN `posts` `p` ON p.user_id = users.id LEFT OUTER JOIN `posts` ON `posts`.`user_id` = `users`.`id`", res.Query)
}

func TestLoadConfig(t *testing.T) {
	cfg, args, err := loadConfig([]string{"plan.yaml"})
	require.NoError(t, err)
	assert.Equal(t, []string{"plan.yaml"}, args)
	assert.Equal(t, "default", cfg.Strategy)
	assert.Equal(t, "table", cfg.Format)

	t.Setenv("SQLALIAS_STRATEGY", "consistent")
	t.Setenv("SQLALIAS_FORMAT", "json")
	cfg, _, err = loadConfig([]string{"--format", "SQL"})
	require.NoError(t, err)
	assert.Equal(t, "consistent", cfg.Strategy, "from environment")
	assert.Equal(t, "sql", cfg.Format, "flags win over environment")

	_, _, err = loadConfig([]string{"--format", "xml"})
	assert.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "sqlalias.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("strategy: table_name\nengine: postgres\nalias_length: 20\n"), 0o600))

	cfg, _, err := loadConfig([]string{"--config", fn, "--engine", "mysql"})
	require.NoError(t, err)
	assert.Equal(t, "table_name", cfg.Strategy)
	assert.Equal(t, "mysql", cfg.Engine)
	assert.Equal(t, 20, cfg.AliasLength)

	_, _, err = loadConfig([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func runPlan(t *testing.T, args ...string) string {
	var out bytes.Buffer
	err := run(context.Background(), append(args, "-"), strings.NewReader(blogPlan), &out)
	require.NoError(t, err)
	return out.String()
}

func TestRunSQL(t *testing.T) {
	out := runPlan(t, "--format", "sql", "--strategy", "default")
	assert.Equal(t, `SELECT "users"."id" FROM "users" INNER JOIN posts ON posts.user_id = users.id `+
		`LEFT OUTER JOIN "posts" "posts_users" ON "posts_users"."user_id" = "users"."id" `+
		`LEFT OUTER JOIN "users" "authors_posts_2" ON "authors_posts_2"."id" = "posts_users"."user_id" `+
		`INNER JOIN "comments" ON "comments"."user_id" = "users"."id"`+"\n", out)
}

func TestRunTable(t *testing.T) {
	out := runPlan(t, "--strategy", "consistent", "--execute")
	assert.Contains(t, out, "posts.author")
	assert.Contains(t, out, "posts_2")

	// go-pretty upper cases titles and footers depending on the style
	lower := strings.ToLower(out)
	assert.Contains(t, lower, "consistent (sqlite engine)")
	// user 1 has 2 posts, joined twice, and 1 comment
	assert.Contains(t, lower, "4 rows")
}

func TestRunJSON(t *testing.T) {
	out := runPlan(t, "--format", "json", "--strategy", "table_name", "--execute")

	var res struct {
		Strategy string `json:"strategy"`
		Query    string `json:"query"`
		Rows     int    `json:"rows"`
		Tables   []struct {
			Path  string `json:"path"`
			Table struct {
				Table string `json:"table"`
				Alias string `json:"alias"`
			} `json:"table"`
		} `json:"tables"`
		Tracker map[string]int `json:"tracker"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "table_name", res.Strategy)
	assert.Equal(t, 4, res.Rows)
	require.Len(t, res.Tables, 3)
	assert.Equal(t, "posts", res.Tables[0].Table.Table)
	assert.Equal(t, "users_posts_2", res.Tables[0].Table.Alias)
	assert.Equal(t, "posts_users_2", res.Tables[1].Table.Alias)
	assert.Equal(t, "", res.Tables[2].Table.Alias)
	assert.Equal(t, 1, res.Tracker["authors_posts"])
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	ctx := context.Background()

	err := run(ctx, nil, strings.NewReader(blogPlan), &out)
	assert.Error(t, err, "no plan")

	err = run(ctx, []string{"--strategy", "fancy", "-"}, strings.NewReader(blogPlan), &out)
	var unknown *sqlalias.UnknownStrategyError
	assert.ErrorAs(t, err, &unknown)

	err = run(ctx, []string{"--engine", "mysql", "--execute", "-"}, strings.NewReader(blogPlan), &out)
	assert.Error(t, err, "execute needs sqlite")

	err = run(ctx, []string{"--engine", "oracle", "-"}, strings.NewReader(blogPlan), &out)
	assert.Error(t, err)
}
