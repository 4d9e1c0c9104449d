package kinship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestVocabularies_CoverEveryLabel(t *testing.T) {
	for _, v := range Vocabularies() {
		for _, l := range AllLabels() {
			assert.NotEmpty(t, v.Text(l), "%s has no text for %s", v.Tag(), l)
		}
	}
}

func TestVocabularyFor(t *testing.T) {
	tests := []struct {
		locale string
		want   *Vocabulary
	}{
		{locale: "", want: Nepali},
		{locale: "ne", want: Nepali},
		{locale: "ne-NP", want: Nepali},
		{locale: "en", want: English},
		{locale: "en-GB", want: English},
		{locale: "ja", want: Nepali},
		{locale: "!!", want: Nepali},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Same(t, tt.want, VocabularyFor(tt.locale))
		})
	}
}

func TestVocabulary_Text(t *testing.T) {
	assert.Equal(t, "दाजु", Nepali.Text(LabelElderBrother))
	assert.Equal(t, "देवर/भाउजू", Nepali.Text(LabelSiblingInLaw))
	assert.Equal(t, "Family Member", English.Text(LabelFamilyMember))
	assert.Equal(t, English.Text(LabelUnknown), English.Text(Label(200)))
	assert.Equal(t, language.Nepali, Nepali.Tag())
}
