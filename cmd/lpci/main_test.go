package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gizzahub/lpci-go/internal/lpcerr"
)

func TestExitCode_ExitErrorStatus(t *testing.T) {
	err := &lpcerr.ExitError{Job: "build", Series: "noble", Arch: "amd64", Status: 7}
	assert.Equal(t, 7, exitCode(err))
}

func TestExitCode_WrappedExitErrorStatus(t *testing.T) {
	inner := &lpcerr.ExitError{Job: "build", Series: "noble", Arch: "amd64", Status: 3}
	wrapped := fmt.Errorf("running pipeline: %w", inner)
	assert.Equal(t, 3, exitCode(wrapped))
}

func TestExitCode_OtherErrorDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}
