package tracker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expire-issues/expire-issues/internal/types"
)

const (
	firstURL  = "https://github.com/octocat/hello-world/issues/1"
	secondURL = "https://github.com/octocat/hello-world/issues/2"
)

func fixedNow(s string) func() time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func newTestEngine(remote Remote, now string) (*Engine, *[]string, *[]string) {
	var messages, warnings []string
	e := NewEngine(remote)
	e.Now = fixedNow(now)
	e.OnMessage = func(msg string) { messages = append(messages, msg) }
	e.OnWarning = func(msg string) { warnings = append(warnings, msg) }
	return e, &messages, &warnings
}

func TestEngineClosesOnlyExpired(t *testing.T) {
	remote := newMockRemote()
	remote.addIssue("I_1", firstURL, "Out Jan 1", "2020-01-01T00:00:00Z")
	remote.addIssue("I_2", secondURL, "Untitled", "2020-01-01T00:00:00Z")

	engine, messages, warnings := newTestEngine(remote, "2020-02-01T00:00:00Z")
	result, err := engine.Run(context.Background(), []string{firstURL, secondURL})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"I_1"}, remote.closed, "only the first issue gets a close call")
	assert.Equal(t, []string{firstURL, secondURL}, remote.queried)
	assert.Equal(t, RunStats{Checked: 2, Expired: 1, Closed: 1}, result.Stats)

	require.Len(t, result.Items, 2)
	assert.True(t, result.Items[0].Closed)
	assert.Equal(t, "Jan 1", result.Items[0].Expression)
	require.NotNil(t, result.Items[0].Deadline)
	assert.False(t, result.Items[1].Expired)
	assert.Nil(t, result.Items[1].Deadline)

	assert.Len(t, *messages, 2)
	assert.Contains(t, (*messages)[0], "Closed "+firstURL)
	assert.Empty(t, *warnings)
}

func TestEngineNotYetExpired(t *testing.T) {
	remote := newMockRemote()
	remote.addIssue("I_1", firstURL, "Out Jan 31 to Feb 5", "2020-01-23T00:00:00Z")

	engine, messages, _ := newTestEngine(remote, "2020-02-01T00:00:00Z")
	result, err := engine.Run(context.Background(), []string{firstURL})
	require.NoError(t, err)

	assert.Empty(t, remote.closed)
	assert.Equal(t, RunStats{Checked: 1}, result.Stats)
	require.Len(t, *messages, 1)
	assert.Contains(t, (*messages)[0], "has not ended")
}

func TestEngineSingleDateNotPassed(t *testing.T) {
	remote := newMockRemote()
	remote.addIssue("I_1", firstURL, "Out Feb 5", "2020-01-23T00:00:00Z")

	engine, messages, _ := newTestEngine(remote, "2020-02-01T00:00:00Z")
	_, err := engine.Run(context.Background(), []string{firstURL})
	require.NoError(t, err)

	assert.Empty(t, remote.closed)
	require.Len(t, *messages, 1)
	assert.Contains(t, (*messages)[0], "has not passed")
}

func TestEngineCasualRangeStaysOpenUntilEnd(t *testing.T) {
	remote := newMockRemote()
	remote.addIssue("I_1", firstURL, "Out tomorrow through Feb 5", "2020-01-23T00:00:00Z")

	engine, _, _ := newTestEngine(remote, "2020-01-25T00:00:00Z")
	result, err := engine.Run(context.Background(), []string{firstURL})
	require.NoError(t, err)
	assert.Empty(t, remote.closed)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "tomorrow through Feb 5", result.Items[0].Expression)

	engine, _, _ = newTestEngine(remote, "2020-02-06T00:00:00Z")
	_, err = engine.Run(context.Background(), []string{firstURL})
	require.NoError(t, err)
	assert.Equal(t, []string{"I_1"}, remote.closed)
}

func TestEngineDryRun(t *testing.T) {
	remote := newMockRemote()
	remote.addIssue("I_1", firstURL, "Out Jan 1", "2020-01-01T00:00:00Z")

	engine, messages, _ := newTestEngine(remote, "2020-02-01T00:00:00Z")
	engine.DryRun = true
	result, err := engine.Run(context.Background(), []string{firstURL})
	require.NoError(t, err)

	assert.Empty(t, remote.closed, "dry run must not mutate")
	assert.True(t, result.DryRun)
	assert.Equal(t, RunStats{Checked: 1, Expired: 1}, result.Stats)
	require.Len(t, *messages, 1)
	assert.True(t, strings.HasPrefix((*messages)[0], "[dry-run]"))
}

func TestEngineStopsAtFirstError(t *testing.T) {
	missing := "https://github.com/octocat/hello-world/issues/404"

	remote := newMockRemote()
	remote.addIssue("I_1", firstURL, "Out Jan 1", "2020-01-01T00:00:00Z")
	remote.addIssue("I_2", secondURL, "Out Jan 2", "2020-01-01T00:00:00Z")

	engine, _, _ := newTestEngine(remote, "2020-02-01T00:00:00Z")
	result, err := engine.Run(context.Background(), []string{firstURL, missing, secondURL})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, missing)
	assert.Equal(t, []string{"I_1"}, remote.closed, "entries after the failure are not processed")
	assert.Equal(t, []string{firstURL, missing}, remote.queried)
	assert.Equal(t, RunStats{Checked: 1, Expired: 1, Closed: 1}, result.Stats)
}

func TestEngineCloseFailureCountsItem(t *testing.T) {
	remote := newMockRemote()
	remote.addIssue("I_1", firstURL, "Out Jan 1", "2020-01-01T00:00:00Z")
	remote.closeResp["I_1"] = &CloseResponse{Issue: &IssueRef{State: types.StateOpen, URL: firstURL}}

	engine, _, _ := newTestEngine(remote, "2020-02-01T00:00:00Z")
	result, err := engine.Run(context.Background(), []string{firstURL})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCloseFailed))

	require.Len(t, result.Items, 1)
	assert.True(t, result.Items[0].Expired)
	assert.False(t, result.Items[0].Closed)
	assert.Equal(t, RunStats{Checked: 1, Expired: 1}, result.Stats)
}

func TestEngineSkipsBlankEntries(t *testing.T) {
	remote := newMockRemote()
	remote.addIssue("I_1", firstURL, "Untitled", "2020-01-01T00:00:00Z")

	engine, _, _ := newTestEngine(remote, "2020-02-01T00:00:00Z")
	result, err := engine.Run(context.Background(), []string{"", "  " + firstURL + "  ", "\t"})
	require.NoError(t, err)

	assert.Equal(t, []string{firstURL}, remote.queried)
	assert.Equal(t, RunStats{Checked: 1, Skipped: 2}, result.Stats)
}

func TestEngineWarnsOnRedirect(t *testing.T) {
	oldURL := "https://github.com/octocat/old-name/issues/1"

	remote := newMockRemote()
	remote.resources[oldURL] = &Resource{
		TypeName:  TypeIssue,
		ID:        "I_1",
		CreatedAt: "2020-01-01T00:00:00Z",
		Title:     "Untitled",
		URL:       firstURL,
	}

	engine, _, warnings := newTestEngine(remote, "2020-02-01T00:00:00Z")
	_, err := engine.Run(context.Background(), []string{oldURL})
	require.NoError(t, err)

	require.Len(t, *warnings, 1)
	assert.Contains(t, (*warnings)[0], firstURL)
}

func TestEngineCanceledContext(t *testing.T) {
	remote := newMockRemote()
	remote.addIssue("I_1", firstURL, "Out Jan 1", "2020-01-01T00:00:00Z")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine, _, _ := newTestEngine(remote, "2020-02-01T00:00:00Z")
	result, err := engine.Run(ctx, []string{firstURL})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, result.Success)
	assert.Empty(t, remote.queried)
}

func TestEngineEmptyInput(t *testing.T) {
	engine, _, _ := newTestEngine(newMockRemote(), "2020-02-01T00:00:00Z")
	result, err := engine.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, RunStats{}, result.Stats)
}

func TestEngineWarnsOnMalformedURL(t *testing.T) {
	engine, _, warnings := newTestEngine(newMockRemote(), "2020-02-01T00:00:00Z")
	_, err := engine.Run(context.Background(), []string{"github.com/octocat/hello-world/issues/1"})
	require.ErrorIs(t, err, ErrNotFound)

	require.Len(t, *warnings, 1)
	assert.Contains(t, (*warnings)[0], "github.com/octocat/hello-world/issues/1")
}
