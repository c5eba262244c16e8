package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		name      string
		ref       string
		wantOwner string
		wantName  string
		wantErr   bool
	}{
		{
			name:      "https url",
			ref:       "https://github.com/acme/widget",
			wantOwner: "acme",
			wantName:  "widget",
		},
		{
			name:      "http url",
			ref:       "http://github.com/acme/widget",
			wantOwner: "acme",
			wantName:  "widget",
		},
		{
			name:      "trailing slash",
			ref:       "https://github.com/acme/widget/",
			wantOwner: "acme",
			wantName:  "widget",
		},
		{
			name:      "bare owner and name",
			ref:       "acme/widget",
			wantOwner: "acme",
			wantName:  "widget",
		},
		{
			name:      "extra path segments ignored",
			ref:       "https://github.com/acme/widget/tree/main",
			wantOwner: "acme",
			wantName:  "widget",
		},
		{
			name:    "owner only",
			ref:     "https://github.com/onlyowner",
			wantErr: true,
		},
		{
			name:    "empty",
			ref:     "",
			wantErr: true,
		},
		{
			name:    "host only",
			ref:     "https://github.com/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, name, err := ParseRepoRef(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidRef)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestValidateLocalPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ValidateLocalPath(dir))

	assert.Error(t, ValidateLocalPath(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	err := ValidateLocalPath(file)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotADirectory)
}
