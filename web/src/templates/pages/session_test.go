package pages_test

import (
	"strings"
	"testing"

	"github.com/nfrund/postwall/web/src/templates/pages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, pages.SignIn(pages.SignInData{UserID: "42"}).Render(&sb))
	html := sb.String()

	assert.Contains(t, html, `action="/session"`)
	assert.Contains(t, html, `name="token"`)
	assert.Contains(t, html, `value="42"`)
}
