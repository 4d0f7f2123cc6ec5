package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	require.NoError(t, os.WriteFile(keyFile, []byte("  from-file\n"), 0o600))
	emptyFile := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(emptyFile, []byte("\n"), 0o600))

	t.Setenv("ATS_SCORER_TEST_KEY", " from-env ")

	tests := []struct {
		name    string
		src     Source
		want    string
		wantErr string
	}{
		{name: "file beats value", src: Source{Name: "key", Value: "inline", File: keyFile, Env: "ATS_SCORER_TEST_KEY"}, want: "from-file"},
		{name: "value beats env", src: Source{Name: "key", Value: " inline ", Env: "ATS_SCORER_TEST_KEY"}, want: "inline"},
		{name: "env fallback", src: Source{Name: "key", Env: "ATS_SCORER_TEST_KEY"}, want: "from-env"},
		{name: "empty file", src: Source{Name: "key", File: emptyFile, Value: "inline"}, wantErr: "is empty"},
		{name: "missing file", src: Source{Name: "key", File: filepath.Join(dir, "nope")}, wantErr: "reading key"},
		{name: "unset env", src: Source{Name: "key", Env: "ATS_SCORER_TEST_UNSET"}, wantErr: "set ATS_SCORER_TEST_UNSET"},
		{name: "nothing", src: Source{}, wantErr: "secret is not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
