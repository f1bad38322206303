package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	// md5("user@example.com") = b58996c504c5638798eb6b511e6f49af
	want := "https://www.gravatar.com/avatar/b58996c504c5638798eb6b511e6f49af?s=200&r=pg&d=mm"
	assert.Equal(t, want, GravatarURL("user@example.com"))

	// Case and surrounding whitespace do not change the address identity.
	assert.Equal(t, want, GravatarURL("  User@Example.COM "))
}
