package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseImage_KnownSeries(t *testing.T) {
	image, err := BaseImage("noble")
	require.NoError(t, err)
	assert.Equal(t, "ubuntu:24.04", image)
}

func TestBaseImage_UnknownSeries(t *testing.T) {
	_, err := BaseImage("warty")
	assert.Error(t, err)
}
