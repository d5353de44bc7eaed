package simplepresign

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeObjectKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"plain key", "file.txt", "file.txt"},
		{"nested key keeps slashes", "path/to/file.zip", "path/to/file.zip"},
		{"unreserved characters pass through", "AZaz09-._~", "AZaz09-._~"},
		{"space", "my file.txt", "my%20file.txt"},
		{"plus reads as space", "report+final.pdf", "report%20final.pdf"},
		{"parentheses", "doc (1).txt", "doc%20%281%29.txt"},
		{"query metacharacters", "a?b=c&d#e", "a%3Fb%3Dc%26d%23e"},
		{"percent", "100%.txt", "100%25.txt"},
		{"utf-8 bytes", "café/ü.txt", "caf%C3%A9/%C3%BC.txt"},
		{"mixed", "docs/my file+v2 (final).txt", "docs/my%20file%20v2%20%28final%29.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encodeObjectKey(tt.key))
		})
	}
}

func TestEncodeQueryComponent(t *testing.T) {
	assert.Equal(t,
		"AKIDEXAMPLE%2F20240101%2Fus-west-1%2Fs3%2Faws4_request",
		encodeQueryComponent("AKIDEXAMPLE/20240101/us-west-1/s3/aws4_request"))
	assert.Equal(t, "response-content-disposition", encodeQueryComponent("response-content-disposition"))
	assert.Equal(t, "a%20b%2Bc", encodeQueryComponent("a b+c"))
}
