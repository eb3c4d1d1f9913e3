package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRepoName(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"ssh url", "git@github.com:nrislani/iics.git", "nrislani/iics"},
		{"ssh url without suffix", "git@github.com:nrislani/iics", "nrislani/iics"},
		{"https url", "https://github.com/nrislani/iics.git", "nrislani/iics"},
		{"https url without suffix", "https://github.com/nrislani/iics", "nrislani/iics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractRepoName(tt.url))
		})
	}
}
