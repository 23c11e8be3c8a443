package cli

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/regbits/internal/register"
	"github.com/roach88/regbits/internal/testutil"
	"github.com/roach88/regbits/internal/trace"
)

// seedTrace writes a small trace database and returns its path and the
// recorded session ID.
func seedTrace(t *testing.T) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.db")

	store, err := trace.Open(path)
	require.NoError(t, err)
	defer store.Close()

	sess := store.NewSession()
	layout := testutil.StatusLayout()
	r := register.Bind(layout, sess.Wrap("STATUS", register.NewWord(0)))
	r.Modify(layout.MustField("DEAD").Set())
	require.NoError(t, sess.Err())

	return path, sess.ID()
}

func TestTrace_ListSessions(t *testing.T) {
	path, session := seedTrace(t)

	out, err := runCLI(t, "trace", path)
	require.NoError(t, err)
	assert.Contains(t, out, session)
}

func TestTrace_ShowEvents(t *testing.T) {
	path, session := seedTrace(t)

	out, err := runCLI(t, "trace", path, session)
	require.NoError(t, err)
	assert.Contains(t, out, "load")
	assert.Contains(t, out, "store")
	assert.Contains(t, out, "STATUS")
}

func TestTrace_EventsJSON(t *testing.T) {
	path, session := seedTrace(t)

	out, err := runCLI(t, "--format", "json", "trace", path, session)
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   TraceData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Events, 2)
	assert.Equal(t, trace.OpLoad, resp.Data.Events[0].Op)
	assert.Equal(t, trace.OpStore, resp.Data.Events[1].Op)
	assert.Equal(t, uint64(2), resp.Data.Events[1].Value)
}

func TestTrace_MissingDatabase(t *testing.T) {
	_, err := runCLI(t, "trace", filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTrace_UnknownSession(t *testing.T) {
	path, _ := seedTrace(t)

	_, err := runCLI(t, "trace", path, strconv.Itoa(12345))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
