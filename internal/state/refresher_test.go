package state

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkin/internal/platform/config"
	"checkin/internal/sheets"
	"checkin/internal/window"
	"checkin/pkg/platform/sentinel"
)

var testLoc = time.FixedZone("UTC-3", -3*3600)

func testConfig() config.Config {
	return config.Config{
		ProfileTables:   []string{"Staffs"},
		RefreshInterval: 10 * time.Millisecond,
		Location:        testLoc,
		Days: []config.Day{
			{
				Window: window.DayWindow{
					Label: "Dia1",
					Start: time.Date(2025, 11, 21, 7, 30, 0, 0, testLoc),
					End:   time.Date(2025, 11, 21, 20, 0, 0, 0, testLoc),
				},
				Table: "Credenciamento Dia 1",
			},
		},
	}
}

func populatedFake() *sheets.Fake {
	fake := sheets.NewFake()
	fake.SetTable("Staffs", [][]string{
		{"CPF", "Nome", "Inscrição"},
		{"12345678901", "Ana Souza", "A42"},
	})
	fake.SetTable("Credenciamento Dia 1", [][]string{
		{"Inscrição", "Nome", "Data", "Hora"},
	})
	return fake
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRefreshOnce_BuildsSnapshot(t *testing.T) {
	container := NewContainer()
	assert.False(t, container.Ready())
	assert.Nil(t, container.Current())

	refresher := NewRefresher(container, populatedFake(), testConfig(), discard(), nil)
	require.NoError(t, refresher.RefreshOnce(context.Background()))

	require.True(t, container.Ready())
	snap := container.Current()
	require.NotNil(t, snap)
	assert.Equal(t, 1, snap.Roster.Len())
	require.Contains(t, snap.Days, "Dia1")
	assert.True(t, snap.Days["Dia1"].Resolved())
}

func TestRefreshOnce_FailureKeepsPreviousSnapshot(t *testing.T) {
	container := NewContainer()
	fake := populatedFake()
	refresher := NewRefresher(container, fake, testConfig(), discard(), nil)

	require.NoError(t, refresher.RefreshOnce(context.Background()))
	previous := container.Current()
	require.NotNil(t, previous)

	fake.TitlesErr = sentinel.ErrUnavailable
	err := refresher.RefreshOnce(context.Background())
	require.ErrorIs(t, err, sentinel.ErrUnavailable)

	assert.Same(t, previous, container.Current())
}

func TestRefreshOnce_FailureBeforeFirstBuildStaysNotReady(t *testing.T) {
	container := NewContainer()
	fake := populatedFake()
	fake.TitlesErr = sentinel.ErrUnauthorized
	refresher := NewRefresher(container, fake, testConfig(), discard(), nil)

	require.Error(t, refresher.RefreshOnce(context.Background()))
	assert.False(t, container.Ready())
}

func TestRefreshOnce_SwapsInNewData(t *testing.T) {
	container := NewContainer()
	fake := populatedFake()
	refresher := NewRefresher(container, fake, testConfig(), discard(), nil)

	require.NoError(t, refresher.RefreshOnce(context.Background()))
	_, ok := container.Current().Roster.Lookup("98765432100")
	assert.False(t, ok)

	fake.SetTable("Staffs", [][]string{
		{"CPF", "Nome", "Inscrição"},
		{"12345678901", "Ana Souza", "A42"},
		{"98765432100", "Bruno Lima", "B07"},
	})
	require.NoError(t, refresher.RefreshOnce(context.Background()))

	_, ok = container.Current().Roster.Lookup("98765432100")
	assert.True(t, ok)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	container := NewContainer()
	refresher := NewRefresher(container, populatedFake(), testConfig(), discard(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- refresher.Run(ctx) }()

	// Let the initial build land, then stop the loop.
	require.Eventually(t, container.Ready, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop after cancellation")
	}
}

func TestRun_PicksUpRemoteChanges(t *testing.T) {
	container := NewContainer()
	fake := populatedFake()
	refresher := NewRefresher(container, fake, testConfig(), discard(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = refresher.Run(ctx) }()

	require.Eventually(t, container.Ready, time.Second, 5*time.Millisecond)

	fake.SetTable("Staffs", [][]string{
		{"CPF", "Nome", "Inscrição"},
		{"12345678901", "Ana Souza", "A42"},
		{"98765432100", "Bruno Lima", "B07"},
	})

	require.Eventually(t, func() bool {
		_, ok := container.Current().Roster.Lookup("98765432100")
		return ok
	}, time.Second, 5*time.Millisecond)
}
