package persist

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbi/transitcat/internal/catalogue"
	"github.com/passbi/transitcat/internal/render"
	"github.com/passbi/transitcat/internal/transit"
)

func buildFixture(t *testing.T) (*catalogue.Catalogue, render.Settings, *transit.Router) {
	t.Helper()
	cat := catalogue.New()
	require.NoError(t, cat.AddStop("A", 55.0, 37.0))
	require.NoError(t, cat.AddStop("B", 55.0, 37.01))
	require.NoError(t, cat.AddStop("C", 55.0, 37.02))
	require.NoError(t, cat.SetDistance("A", "B", 1000))
	require.NoError(t, cat.SetDistance("B", "A", 1100))
	require.NoError(t, cat.SetDistance("B", "C", 1200))
	require.NoError(t, cat.AddBus("1", []string{"A", "B", "C"}, false))

	tr, err := transit.NewRouter(cat, transit.Settings{WaitTime: 6, Velocity: 40})
	require.NoError(t, err)

	settings := render.Settings{
		Width: 600, Height: 400, Padding: 30,
		LineWidth: 14, StopRadius: 5,
		BusLabelFontSize: 20, StopLabelFontSize: 18,
		UnderlayerColor: render.RGBA(255, 255, 255, 0.8),
		UnderlayerWidth: 3,
		ColorPalette:    []render.Color{render.NamedColor("green"), render.RGB(255, 160, 0)},
	}
	return cat, settings, tr
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cat, settings, tr := buildFixture(t)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, cat, settings, tr))

	restoredCat, restoredSettings, restoredRouter, err := Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, cat.AllStops()[0].Name, restoredCat.AllStops()[0].Name)
	assert.Equal(t, len(cat.AllBuses()), len(restoredCat.AllBuses()))
	assert.Equal(t, settings.Width, restoredSettings.Width)
	assert.Equal(t, settings.ColorPalette[0].CSS(), restoredSettings.ColorPalette[0].CSS())

	want, err := tr.ShortestRoute("A", "C")
	require.NoError(t, err)
	got, err := restoredRouter.ShortestRoute("A", "C")
	require.NoError(t, err)
	assert.Equal(t, want.TotalTime, got.TotalTime)
	assert.Equal(t, len(want.Segments), len(got.Segments))
}

func TestLoadRejectsIncompatibleSchema(t *testing.T) {
	cat, settings, tr := buildFixture(t)

	blob := Build(cat, settings, tr)
	blob.SchemaVersion = 999

	_, _, _, err := Restore(blob)
	assert.ErrorIs(t, err, ErrIncompatibleSchema)
}
