package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentType(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"avatar.png", "image/png"},
		{"/tmp/upload/c.JPEG", "image/jpeg"},
		{"cover.jpg", "image/jpeg"},
		{"anim.gif", "image/gif"},
		{"photo.webp", "image/webp"},
		{"no-extension", "application/octet-stream"},
		{"archive.tar.gz", "application/octet-stream"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ContentType(tc.name), tc.name)
	}
}
