package glyf

import (
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestOptionsFromConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyf")
	defer teardown()
	//
	assert.Equal(t, DefaultOptions(), OptionsFrom(nil))
	assert.Equal(t, DefaultOptions(), OptionsFrom(testconfig.Conf{}))
	//
	opts := OptionsFrom(testconfig.Conf{
		ConfigStrict:   true,
		ConfigMaxDepth: 4,
	})
	if !opts.Strict || opts.MaxDepth != 4 {
		t.Errorf("expected strict options with depth 4, have %+v", opts)
	}
	opts = OptionsFrom(testconfig.Conf{
		ConfigStrict:   "true",
		ConfigMaxDepth: "-3",
	})
	assert.True(t, opts.Strict)
	assert.Equal(t, MaxComponentDepth, opts.MaxDepth, "invalid depth should be ignored")
	//
	opts = OptionsFrom(testconfig.Conf{
		ConfigMaxComponents: 100,
		ConfigMaxPoints:     0,
	})
	assert.Equal(t, 100, opts.MaxComponents)
	assert.Equal(t, MaxOutlinePoints, opts.MaxPoints, "invalid point limit should be ignored")
}

func TestOptionsMaxDepth(t *testing.T) {
	assert.Equal(t, MaxComponentDepth, Options{}.maxDepth())
	assert.Equal(t, 3, Options{MaxDepth: 3}.maxDepth())
	assert.Equal(t, MaxComponentCount, Options{}.maxComponents())
	assert.Equal(t, MaxOutlinePoints, Options{}.maxPoints())
}
