package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	folioerrors "github.com/zaidlab/folio/pkg/errors"
)

func validContent() *Content {
	return &Content{
		Version: "1.0.0",
		Profile: Profile{Name: "Test", Headline: "Hello"},
		Projects: []Project{
			{Title: "Alpha", Summary: "a"},
			{Title: "Beta", Summary: "b", URL: "https://beta.example.com"},
		},
		Contact: Contact{Links: []Link{{Label: "Email", URL: "mailto:me@example.com"}}},
	}
}

func TestValidateContentAcceptsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateContent(validContent()))
}

func TestValidateContentErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Content)
		field  string
	}{
		{
			name:   "bad version",
			mutate: func(c *Content) { c.Version = "one" },
			field:  "version",
		},
		{
			name:   "missing headline",
			mutate: func(c *Content) { c.Profile.Headline = "" },
			field:  "profile.headline",
		},
		{
			name:   "link scheme",
			mutate: func(c *Content) { c.Contact.Links[0].URL = "ftp://example.com" },
			field:  "contact.links[0].url",
		},
		{
			name:   "mailto without address",
			mutate: func(c *Content) { c.Contact.Links[0].URL = "mailto:nobody" },
			field:  "contact.links[0].url",
		},
		{
			name:   "duplicate title",
			mutate: func(c *Content) { c.Projects[1].Title = " alpha " },
			field:  "projects[1].title",
		},
		{
			name:   "upload extension without dot",
			mutate: func(c *Content) { c.Settings.UploadExtensions = []string{"stl"} },
			field:  "settings.uploadextensions[0]",
		},
		{
			name:   "strength above one",
			mutate: func(c *Content) { c.Settings.Motion.MaxStrength = 1.5 },
			field:  "settings.motion.maxstrength",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			content := validContent()
			tc.mutate(content)

			err := ValidateContent(content)
			var validationErr *folioerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestValidateContentNil(t *testing.T) {
	t.Parallel()

	require.Error(t, ValidateContent(nil))
}

func TestIsLinkURL(t *testing.T) {
	t.Parallel()

	require.True(t, isLinkURL("https://zaidlab.xyz"))
	require.True(t, isLinkURL("mailto:hello@example.com"))
	require.False(t, isLinkURL("https://"))
	require.False(t, isLinkURL("javascript:alert(1)"))
	require.False(t, isLinkURL("  "))
}
