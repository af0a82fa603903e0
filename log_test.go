package sqlalias_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/KarpelesLab/sqlalias"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugLog(t *testing.T) {
	var buf bytes.Buffer
	sqlalias.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { sqlalias.SetLogger(nil) })

	be := sqlalias.NewEngine(sqlalias.EngineSQLite)
	s, err := sqlalias.CreateKind(sqlalias.StrategyDefault, be, "users", nil, nil)
	require.NoError(t, err)
	alias(t, s, assoc("posts", "posts"), nil, "")
	alias(t, s, assoc("posts", "posts"), nil, "")
	alias(t, s, assoc("posts", "posts"), nil, "")

	out := buf.String()
	assert.Contains(t, out, "event=sqlalias:create")
	assert.Contains(t, out, "sqlalias.strategy=default")
	assert.Contains(t, out, "event=sqlalias:collision")
	assert.Contains(t, out, "sqlalias.alias=posts_2")
}
