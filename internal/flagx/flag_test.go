package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-a", "localhost"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-a", "localhost"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag at end without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next token looks like a flag",
			args:    []string{"-c", "-notvalue"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "several allowed flags keep order",
			args:    []string{"-a", "http://x", "-c", "conf.json", "--other", "x"},
			allowed: []string{"-c", "-a"},
			want:    []string{"-a", "http://x", "-c", "conf.json"},
		},
		{
			name:    "empty args",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFiles(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	t.Run("short forms", func(t *testing.T) {
		os.Args = []string{"bin", "-c", "/tmp/a.json", "-e", "/tmp/.env"}
		f := ConfigFiles()
		assert.Equal(t, "/tmp/a.json", f.JSON)
		assert.Equal(t, "/tmp/.env", f.Env)
	})

	t.Run("long forms, last wins", func(t *testing.T) {
		os.Args = []string{"bin", "-c", "/tmp/1.json", "-config=/tmp/2.json", "-env", "x.env"}
		f := ConfigFiles()
		assert.Equal(t, "/tmp/2.json", f.JSON)
		assert.Equal(t, "x.env", f.Env)
	})

	t.Run("nothing given", func(t *testing.T) {
		os.Args = []string{"bin", "-a", "http://x"}
		assert.Equal(t, Files{}, ConfigFiles())
	})
}
