package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rm-hull/dmi-tools/internal/dmi"
	"github.com/rm-hull/dmi-tools/internal/png/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	host := dmi.NewHost(stage.Imaging)
	path := filepath.Join(t.TempDir(), "icon.png")

	var out bytes.Buffer
	require.NoError(t, Create(&out, host, path, "1", "1", "#123456"))
	require.NoError(t, Resize(&out, host, path, "3", "3", "gaussian"))
	require.NoError(t, Strip(&out, host, path))
	require.NoError(t, States(&out, host, path))
	assert.Equal(t, "ok\nok\nok\n[]\n", out.String())

	err := Create(&out, host, path, "1", "1", "#12345")
	assert.ErrorContains(t, err, "invalid png data")

	err = States(&out, host, path+".missing")
	assert.EqualError(t, err, "no icon states could be read")
}
