package localstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModFilename(t *testing.T) {
	assert.Equal(t, "AANobbMI-sodium-0.6.13.jar", ModFilename("AANobbMI", "sodium-0.6.13.jar"))
}

func TestParseModFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantID   string
		wantOK   bool
	}{
		{
			name:     "well-formed name",
			filename: "AANobbMI-sodium-0.6.13.jar",
			wantID:   "AANobbMI",
			wantOK:   true,
		},
		{
			name:     "rest may contain further dashes",
			filename: "P7dR8mSH-fabric-api-0.119.2+1.21.5.jar",
			wantID:   "P7dR8mSH",
			wantOK:   true,
		},
		{
			name:     "no separator",
			filename: "sodium.jar",
			wantOK:   false,
		},
		{
			name:     "empty identifier",
			filename: "-sodium.jar",
			wantOK:   false,
		},
		{
			name:     "empty remainder",
			filename: "AANobbMI-",
			wantOK:   false,
		},
		{
			name:     "empty string",
			filename: "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseModFilename(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestFilenameRoundTrip(t *testing.T) {
	stored := ModFilename("AANobbMI", "sodium-0.6.13+mc1.21.5.jar")
	id, ok := ParseModFilename(stored)
	assert.True(t, ok)
	assert.Equal(t, "AANobbMI", id)
}
