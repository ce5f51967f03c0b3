package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	t.Setenv("APP_VERSION", "2.3.4")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())
	assert.Equal(t, "projectd 2.3.4\n", out.String())
}

func TestServeFlags(t *testing.T) {
	for _, name := range []string{"env-file", "port", "driver"} {
		assert.NotNil(t, ServeCmd.Flags().Lookup(name), name)
	}
}
