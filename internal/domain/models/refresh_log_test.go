package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefreshLogURLList(t *testing.T) {
	var l RefreshLog
	assert.Nil(t, l.URLList())

	l.SetURLList([]string{"https://example.com/a", "https://example.com/b"})
	assert.Equal(t, "https://example.com/a\nhttps://example.com/b", l.URLs)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, l.URLList())
}
