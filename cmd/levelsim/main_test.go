package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubCloser struct {
	err    error
	closed bool
}

func (c *stubCloser) Close() error {
	c.closed = true
	return c.err
}

func TestCloseLogged(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	ok := &stubCloser{}
	closeLogged(log, ok, "closing scoreboard")
	assert.True(t, ok.closed)
	assert.Empty(t, buf.String())

	failing := &stubCloser{err: errors.New("database is locked")}
	closeLogged(log, failing, "closing scoreboard")
	assert.True(t, failing.closed)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "closing scoreboard")
	assert.Contains(t, buf.String(), "database is locked")
}
