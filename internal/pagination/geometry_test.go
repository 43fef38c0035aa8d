package pagination

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGeometry(t *testing.T) {
	tests := []struct {
		name     string
		width    float64
		height   float64
		rows     int
		columns  int
		wantSide float64
	}{
		{name: "height bound single column", width: 75, height: 120, rows: 5, columns: 1, wantSide: 21},
		{name: "width bound two columns", width: 75, height: 120, rows: 3, columns: 2, wantSide: 32.5},
		{name: "single cell", width: 75, height: 120, rows: 1, columns: 1, wantSide: 65},
		{name: "wide page", width: 200, height: 30, rows: 1, columns: 3, wantSide: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ComputeGeometry(tt.width, tt.height, tt.rows, tt.columns)
			require.NoError(t, err)
			assert.Equal(t, tt.width-2*MarginX, g.AvailableWidth)
			assert.Equal(t, tt.height-MarginTop-MarginBottom, g.AvailableHeight)
			assert.InDelta(t, tt.wantSide, g.Side, 1e-9)
		})
	}
}

func TestComputeGeometryDegenerate(t *testing.T) {
	tests := []struct {
		name    string
		width   float64
		height  float64
		rows    int
		columns int
	}{
		{name: "height below margins", width: 15, height: 10, rows: 5, columns: 1},
		{name: "height equals margins", width: 75, height: 15, rows: 1, columns: 1},
		{name: "width equals margins", width: 10, height: 120, rows: 1, columns: 1},
		{name: "tall grid on short page", width: 75, height: 10, rows: 50, columns: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeGeometry(tt.width, tt.height, tt.rows, tt.columns)
			require.Error(t, err)

			var layoutErr *LayoutError
			require.True(t, errors.As(err, &layoutErr))
			assert.Contains(t, err.Error(), "degenerate page")
		})
	}
}

func TestColumnPositions(t *testing.T) {
	t.Run("one column is centred", func(t *testing.T) {
		g, err := ComputeGeometry(75, 120, 5, 1)
		require.NoError(t, err)

		xs := ColumnPositions(g, 1)
		require.Len(t, xs, 1)
		assert.InDelta(t, MarginX+(g.AvailableWidth-g.Side)/2, xs[0], 1e-9)
		assert.InDelta(t, 27.0, xs[0], 1e-9)
	})

	t.Run("two columns are pinned to the margins", func(t *testing.T) {
		g, err := ComputeGeometry(75, 120, 3, 2)
		require.NoError(t, err)

		xs := ColumnPositions(g, 2)
		require.Len(t, xs, 2)
		assert.Equal(t, MarginX, xs[0])
		assert.Equal(t, 75-MarginX-g.Side, xs[1])
	})

	t.Run("two columns ignore leftover width", func(t *testing.T) {
		g, err := ComputeGeometry(200, 60, 1, 2)
		require.NoError(t, err)
		require.InDelta(t, 45.0, g.Side, 1e-9)

		xs := ColumnPositions(g, 2)
		assert.Equal(t, []float64{5, 150}, xs)
	})

	t.Run("three columns spread interior", func(t *testing.T) {
		g, err := ComputeGeometry(75, 120, 5, 3)
		require.NoError(t, err)
		require.InDelta(t, 21.0, g.Side, 1e-9)

		xs := ColumnPositions(g, 3)
		require.Len(t, xs, 3)
		assert.Equal(t, MarginX, xs[0])
		assert.InDelta(t, 27.0, xs[1], 1e-9)
		assert.InDelta(t, 49.0, xs[2], 1e-9)
	})

	t.Run("four columns without leftover", func(t *testing.T) {
		g, err := ComputeGeometry(75, 120, 5, 4)
		require.NoError(t, err)

		xs := ColumnPositions(g, 4)
		require.Len(t, xs, 4)
		for i, want := range []float64{5, 21.25, 37.5, 53.75} {
			assert.InDelta(t, want, xs[i], 1e-9, "column %d", i)
		}
	})

	t.Run("negative spacing is tolerated", func(t *testing.T) {
		g := Geometry{PageWidth: 40, PageHeight: 100, AvailableWidth: 30, AvailableHeight: 85, Side: 12}

		xs := ColumnPositions(g, 3)
		require.Len(t, xs, 3)
		assert.Equal(t, 5.0, xs[0])
		assert.InDelta(t, 5+12-3.0, xs[1], 1e-9)
		assert.Equal(t, 23.0, xs[2])
	})
}

func TestRowPositions(t *testing.T) {
	t.Run("one row is centred", func(t *testing.T) {
		g, err := ComputeGeometry(75, 120, 1, 1)
		require.NoError(t, err)

		ys := RowPositions(g, 1)
		require.Len(t, ys, 1)
		assert.InDelta(t, 30.0, ys[0], 1e-9)
	})

	t.Run("rows fill the printable height", func(t *testing.T) {
		g, err := ComputeGeometry(75, 120, 3, 2)
		require.NoError(t, err)

		ys := RowPositions(g, 3)
		require.Len(t, ys, 3)
		assert.Equal(t, MarginTop, ys[0])
		assert.InDelta(t, 46.25, ys[1], 1e-9)
		assert.InDelta(t, 120-MarginBottom-g.Side, ys[2], 1e-9)
	})
}
