package i18n

import (
	"testing"

	"greencity/config"
	"greencity/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(config.I18nConfig{DefaultLanguage: "en", Languages: []string{"en", "ua"}})
	require.NoError(t, err)
	return c
}

func TestLoadRejectsUnknownLanguage(t *testing.T) {
	_, err := Load(config.I18nConfig{DefaultLanguage: "en", Languages: []string{"en", "de"}})
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	c := newCatalog(t)

	msg, err := c.Render("EVENT_COMMENT_MESSAGE", []string{"Olena", "Cleanup"})
	require.NoError(t, err)
	assert.Equal(t, "Olena commented on your event Cleanup", msg)

	title, err := c.Render("EVENT_COMMENT_TITLE", nil)
	require.NoError(t, err)
	assert.Equal(t, "New comment", title)

	_, err = c.Render("NO_SUCH_KEY", nil)
	assert.Error(t, err)
}

func TestLocalize(t *testing.T) {
	c := newCatalog(t)

	cases := map[string]struct {
		key, text, lang, want string
	}{
		"default language untouched": {"EVENT_COMMENT_MESSAGE", "Olena commented on your event Cleanup", "en", "Olena commented on your event Cleanup"},
		"two parameters":             {"EVENT_CREATED_MESSAGE", "Event Cleanup has been created by Taras", "ua", "Подію Cleanup створив(ла) Taras"},
		"no parameters":              {"EVENT_COMMENT_TITLE", "New comment", "ua", "Новий коментар"},
		"foreign text kept":          {"EVENT_COMMENT_MESSAGE", "hand written text", "ua", "hand written text"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Localize(tc.key, tc.text, tc.lang))
		})
	}
}

func TestResolveLanguage(t *testing.T) {
	c := newCatalog(t)

	lang, err := c.ResolveLanguage("")
	require.NoError(t, err)
	assert.Equal(t, "en", lang)

	_, err = c.ResolveLanguage("fr")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
