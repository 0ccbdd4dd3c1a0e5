package coverage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/geometry"
)

func TestVoronoiPartitioner(t *testing.T) {
	region, err := NewRegion([]geometry.Vector2D{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	})
	require.NoError(t, err)

	sites := []geometry.Vector2D{
		{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}, {X: 5, Y: 5},
	}
	part, err := VoronoiPartitioner{}.Partition(sites, region)
	require.NoError(t, err)
	require.Len(t, part.Diagram.Cells, len(sites))

	total := 0.0
	for i := range sites {
		cell := part.Cell(i)
		require.GreaterOrEqual(t, len(cell), 3)
		total += cell.Area()
	}
	require.InDelta(t, region.Vertices().Area(), total, 1e-9, "cells tile the region")
}

func TestPartition_Adjacency(t *testing.T) {
	region, err := NewRegion([]geometry.Vector2D{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	})
	require.NoError(t, err)

	// The center site touches all four corner cells; opposite corners are
	// separated by the center cell and must not appear adjacent.
	sites := []geometry.Vector2D{
		{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8}, {X: 5, Y: 5},
	}
	part, err := VoronoiPartitioner{}.Partition(sites, region)
	require.NoError(t, err)

	adj := part.Adjacency()
	for i := range adj {
		require.True(t, adj[i][i], "diagonal marks the self contribution")
		for j := range adj[i] {
			require.Equal(t, adj[i][j], adj[j][i], "adjacency is symmetric (%d,%d)", i, j)
		}
	}

	require.Contains(t, adj.Neighbors(0), 4, "every corner borders the center cell")
	require.Contains(t, adj.Neighbors(4), 0)
	require.NotContains(t, adj.Neighbors(0), 0, "neighbor list excludes self")
	require.NotContains(t, adj.Neighbors(0), 2, "opposite corners are not adjacent")
	require.Len(t, adj.Neighbors(4), 4)
}

func TestCentroidCandidate(t *testing.T) {
	region, err := NewRegion(unitSquare())
	require.NoError(t, err)

	sites := []geometry.Vector2D{{X: 0.25, Y: 0.5}, {X: 0.75, Y: 0.5}}
	part, err := VoronoiPartitioner{}.Partition(sites, region)
	require.NoError(t, err)

	c, ok := centroidCandidate(part, region, 0)
	require.True(t, ok)
	require.InDelta(t, 0.25, c.X, 1e-9)
	require.InDelta(t, 0.5, c.Y, 1e-9)
}
