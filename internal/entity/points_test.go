package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPoints(t *testing.T) {
	require.Equal(t, Points(120), NewPoints(12))
	require.Equal(t, Points(13), NewPoints(1.25))
	require.Equal(t, Points(3), NewPoints(0.3))
	require.Equal(t, Points(0), NewPoints(0.04))
	require.Equal(t, "12.0", NewPoints(12).String())
}

func TestPoints_Mul(t *testing.T) {
	earned := NewPoints(100)
	require.Equal(t, NewPoints(20), earned.Mul(0.20))
	require.Equal(t, NewPoints(15), earned.Mul(0.15))
	require.Equal(t, NewPoints(10), earned.Mul(0.10))
	require.Equal(t, NewPoints(5), earned.Mul(0.05))

	require.Equal(t, NewPoints(0.4), NewPoints(2.1).Mul(0.20))
	require.Equal(t, Points(0), NewPoints(0.1).Mul(0.05))
}
