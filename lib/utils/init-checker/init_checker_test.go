package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface{ Do() }

type impl struct{}

func (impl) Do() {}

func TestCheckInit(t *testing.T) {
	var missing provider
	var nilPtr *impl
	require.NotPanics(t, func() { CheckInit("ok", impl{}) })
	require.PanicsWithValue(t, "missing dependency not initialized", func() { CheckInit("missing", missing) })
	require.Panics(t, func() { CheckInit("ptr", nilPtr) })
	require.Panics(t, func() { CheckInit("odd") })
}
