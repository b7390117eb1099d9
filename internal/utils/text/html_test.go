package text_test

import (
	"testing"

	"compliance-prefilter/internal/utils/text"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooksLikeHTML(t *testing.T) {
	assert.True(t, text.LooksLikeHTML("<p>Company X was fined.</p>"))
	assert.False(t, text.LooksLikeHTML("Revenue < expectations"))
	assert.False(t, text.LooksLikeHTML("plain text"))
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "Company X was fined $2M for bribery.",
			want:  "Company X was fined $2M for bribery.",
		},
		{
			name:  "paragraphs",
			input: "<p>Company X was fined.</p>\n<p>Regulators opened   an inquiry.</p>",
			want:  "Company X was fined. Regulators opened an inquiry.",
		},
		{
			name: "scripts and styles dropped",
			input: `<html><head><style>p{color:red}</style></head><body><script>track()</script>
<h1>Data breach</h1>
<p>at Acme Corp</p></body></html>`,
			want: "Data breach at Acme Corp",
		},
		{
			name:  "entities decoded",
			input: "<p>Smith &amp; Sons recalled products</p>",
			want:  "Smith & Sons recalled products",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := text.StripHTML(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
