package rng_test

import (
	"testing"

	"github.com/jonaspleyer/egobox/rng"
	"github.com/stretchr/testify/require"
)

func TestNew_Deterministic(t *testing.T) {
	t.Parallel()

	a := rng.New(42)
	b := rng.New(42)
	require.Equal(t, a.Int63(), b.Int63())
}

func TestNew_ZeroSeedUsesDefault(t *testing.T) {
	t.Parallel()

	a := rng.New(0)
	b := rng.New(rng.DefaultSeed)
	require.Equal(t, a.Int63(), b.Int63())
}

func TestDerive_IndependentStreams(t *testing.T) {
	t.Parallel()

	base := rng.New(7)
	s1 := rng.Derive(base, 1)
	s2 := rng.Derive(base, 2)
	require.NotEqual(t, s1.Int63(), s2.Int63())
}

func TestDerive_NilBaseIsDeterministic(t *testing.T) {
	t.Parallel()

	a := rng.Derive(nil, 3)
	b := rng.Derive(nil, 3)
	require.Equal(t, a.Int63(), b.Int63())
}
