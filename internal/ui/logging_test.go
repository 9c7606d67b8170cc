package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, false)

	l.Debugf("hidden %d", 1)
	l.Infof("visible %d", 2)
	l.Errorf("broken\n")

	assert.Equal(t, "[INFO] visible 2\n[ERROR] broken\n", buf.String())
}

func TestLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, true).WithPrefix("ShanghaiFantasy")

	l.Debugf("GET %s", "/x")
	l.Errorf("Popular Error: %v", "eof")

	assert.Equal(t,
		"[DEBUG] ShanghaiFantasy GET /x\n[ERROR] ShanghaiFantasy Popular Error: eof\n",
		buf.String())
}
