package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagecraft/internal/core/domain"
)

const heroScript = `add section
add heading $last
content $last text="Build the future with us"
lock component-1
`

func TestReplayCmd_Text(t *testing.T) {
	out, _, err := executeWith(t, newTestServices(t), heroScript, "replay")

	require.NoError(t, err)
	assert.Contains(t, out, "component-1")
	assert.Contains(t, out, "  Heading")
	assert.Contains(t, out, "locked")
	assert.Contains(t, out, "Viewport: 100% desktop")
	assert.Contains(t, out, "History:  3/3")
	assert.Contains(t, out, "Selected: component-2")
}

func TestReplayCmd_JSON(t *testing.T) {
	out, _, err := executeWith(t, newTestServices(t), heroScript, "replay", "-", "-o", "json")

	require.NoError(t, err)
	var result replayResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Components, 2)
	assert.Equal(t, "component-1", result.Components[1].Parent())
	assert.Equal(t, domain.HistoryState{Length: 3, Index: 2}, result.History)
	assert.Zero(t, result.Failures)
}

func TestReplayCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.txt")
	require.NoError(t, os.WriteFile(path, []byte("add divider\n"), 0o600))

	out, _, err := execute(t, "replay", path)

	require.NoError(t, err)
	assert.Contains(t, out, "divider")
}

func TestReplayCmd_MissingFile(t *testing.T) {
	_, _, err := execute(t, "replay", filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open script")
}

func TestReplayCmd_EmptyPage(t *testing.T) {
	out, _, err := executeWith(t, newTestServices(t), "# nothing\n", "replay")

	require.NoError(t, err)
	assert.Contains(t, out, "Page is empty.")
}

func TestReplayCmd_Failure(t *testing.T) {
	_, _, err := executeWith(t, newTestServices(t), "add heading\nremove component-9\n", "replay")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplayCmd_KeepGoing(t *testing.T) {
	out, stderr, err := executeWith(t, newTestServices(t), "add heading\nredo\n", "replay", "-k")

	require.NoError(t, err)
	assert.Contains(t, out, "Failures: 1")
	assert.Contains(t, stderr, "warning: line 2: redo")
}

func TestDepthIndex(t *testing.T) {
	root := "a"
	mid := "b"
	doc := domain.Document{Components: []domain.Component{
		{ID: "a"},
		{ID: "b", ParentID: &root},
		{ID: "c", ParentID: &mid},
	}}

	assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2}, depthIndex(doc))
}

func TestDepthIndex_Cycle(t *testing.T) {
	a, b := "a", "b"
	doc := domain.Document{Components: []domain.Component{
		{ID: "a", ParentID: &b},
		{ID: "b", ParentID: &a},
	}}

	assert.NotPanics(t, func() { depthIndex(doc) })
}

func TestFlags(t *testing.T) {
	assert.Equal(t, "", flags(domain.Component{}))
	assert.Equal(t, "locked,hidden", flags(domain.Component{IsLocked: true, IsHidden: true}))
}
