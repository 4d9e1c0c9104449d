package kinship

import (
	"fmt"

	"golang.org/x/text/language"
)

// Vocabulary renders labels as display text for one locale. Vocabularies are
// built at init and never modified, so they can be shared freely.
type Vocabulary struct {
	tag   language.Tag
	terms [labelCount]string
}

// Tag returns the locale the vocabulary is written in.
func (v *Vocabulary) Tag() language.Tag {
	return v.tag
}

// Text returns the display text for l. Labels outside the taxonomy render as
// the text of LabelUnknown.
func (v *Vocabulary) Text(l Label) string {
	if !l.Valid() {
		return v.terms[LabelUnknown]
	}
	return v.terms[l]
}

func newVocabulary(tag language.Tag, terms map[Label]string) *Vocabulary {
	v := &Vocabulary{tag: tag}
	for _, l := range AllLabels() {
		t, ok := terms[l]
		if !ok || t == "" {
			panic(fmt.Sprintf("kinship: %s vocabulary has no text for %s", tag, l))
		}
		v.terms[l] = t
	}
	return v
}

// Nepali is the default vocabulary.
var Nepali = newVocabulary(language.Nepali, map[Label]string{
	LabelSelf:         "आफै",
	LabelUnknown:      "अज्ञात",
	LabelFamilyMember: "परिवारका सदस्य",

	LabelHusband: "लोग्ने",
	LabelWife:    "पत्नी",
	LabelSpouse:  "पति/पत्नी",

	LabelFather: "बुबा",
	LabelMother: "आमा",
	LabelParent: "अभिभावक",

	LabelSon:      "छोरा",
	LabelDaughter: "छोरी",
	LabelChild:    "सन्तान",

	LabelBrother:      "भाइ",
	LabelSister:       "बहिनी",
	LabelSibling:      "भाइबहिनी",
	LabelElderBrother: "दाजु",
	LabelElderSister:  "दिदी",
	LabelHalfBrother:  "सौतेनी भाइ",
	LabelHalfSister:   "सौतेनी बहिनी",
	LabelHalfSibling:  "सौतेनी भाइ/बहिनी",

	LabelFatherInLaw:   "ससुरा",
	LabelMotherInLaw:   "सासू",
	LabelParentInLaw:   "ससुरा/सासू",
	LabelSonInLaw:      "ज्वाइँ",
	LabelDaughterInLaw: "बुहारी",
	LabelChildInLaw:    "ज्वाइँ/बुहारी",
	LabelSiblingInLaw:  "देवर/भाउजू",

	LabelGrandfather:   "हजुरबुवा",
	LabelGrandmother:   "हजुरआमा",
	LabelGrandparent:   "हजुरआमा/हजुरबुवा",
	LabelGrandson:      "नाति",
	LabelGranddaughter: "नातिनी",
	LabelGrandchild:    "नातिनाति",

	LabelElderUncle:   "ठुलो बुवा",
	LabelYoungerUncle: "कान्छो बुवा",
	LabelElderAunt:    "ठुली आमा",
	LabelYoungerAunt:  "कान्छी आमा",
	LabelUncleAunt:    "काका/काकी",

	LabelCousinBrother: "फुपाजु/मामा",
	LabelCousinSister:  "फुपी/मामी",
	LabelCousinSibling: "चचेरे/ममेरे भाइ/बहिनी",

	LabelGreatGrandfather:   "परहजुरबुवा",
	LabelGreatGrandmother:   "परहजुरआमा",
	LabelGreatGrandparent:   "परहजुरआमा/हजुरबुवा",
	LabelGreatGrandson:      "परनाति",
	LabelGreatGranddaughter: "परनातिनी",
	LabelGreatGrandchild:    "परनाति/नातिनी",

	LabelNephew:      "भान्जा/भतिजो",
	LabelNiece:       "भान्जी/भतिजी",
	LabelNephewNiece: "भतिजा/भतिजी",

	LabelSecondCousinBrother: "दोस्रो चचेरे भाइ",
	LabelSecondCousinSister:  "दोस्रो चचेरे बहिनी",
	LabelSecondCousinSibling: "दोस्रो चचेरे भाइ/बहिनी",

	LabelCousinUncle:         "चचेरे काका/काकी",
	LabelCousinGrandchild:    "चचेरे नाति/नातिनी",
	LabelCousinGrandson:      "चचेरे नाति",
	LabelCousinGranddaughter: "चचेरे नातिनी",

	LabelGreatUncle:     "ठुलुवा",
	LabelGreatAunt:      "ठुली",
	LabelGreatUncleAunt: "ठुलुवा/ठुली",

	LabelNephewSon:      "भतिजाको छोरा",
	LabelNephewDaughter: "भतिजाको छोरी",
	LabelNephewChild:    "भतिजाको सन्तान",
})

// English renders the same taxonomy with English kinship terms.
var English = newVocabulary(language.English, map[Label]string{
	LabelSelf:         "Self",
	LabelUnknown:      "Unknown",
	LabelFamilyMember: "Family Member",

	LabelHusband: "Husband",
	LabelWife:    "Wife",
	LabelSpouse:  "Spouse",

	LabelFather: "Father",
	LabelMother: "Mother",
	LabelParent: "Parent",

	LabelSon:      "Son",
	LabelDaughter: "Daughter",
	LabelChild:    "Child",

	LabelBrother:      "Younger Brother",
	LabelSister:       "Younger Sister",
	LabelSibling:      "Sibling",
	LabelElderBrother: "Elder Brother",
	LabelElderSister:  "Elder Sister",
	LabelHalfBrother:  "Half-Brother",
	LabelHalfSister:   "Half-Sister",
	LabelHalfSibling:  "Half-Sibling",

	LabelFatherInLaw:   "Father-in-law",
	LabelMotherInLaw:   "Mother-in-law",
	LabelParentInLaw:   "Parent-in-law",
	LabelSonInLaw:      "Son-in-law",
	LabelDaughterInLaw: "Daughter-in-law",
	LabelChildInLaw:    "Child-in-law",
	LabelSiblingInLaw:  "Sibling-in-law",

	LabelGrandfather:   "Grandfather",
	LabelGrandmother:   "Grandmother",
	LabelGrandparent:   "Grandparent",
	LabelGrandson:      "Grandson",
	LabelGranddaughter: "Granddaughter",
	LabelGrandchild:    "Grandchild",

	LabelElderUncle:   "Elder Uncle",
	LabelYoungerUncle: "Younger Uncle",
	LabelElderAunt:    "Elder Aunt",
	LabelYoungerAunt:  "Younger Aunt",
	LabelUncleAunt:    "Aunt/Uncle",

	LabelCousinBrother: "Cousin (male)",
	LabelCousinSister:  "Cousin (female)",
	LabelCousinSibling: "Cousin",

	LabelGreatGrandfather:   "Great-grandfather",
	LabelGreatGrandmother:   "Great-grandmother",
	LabelGreatGrandparent:   "Great-grandparent",
	LabelGreatGrandson:      "Great-grandson",
	LabelGreatGranddaughter: "Great-granddaughter",
	LabelGreatGrandchild:    "Great-grandchild",

	LabelNephew:      "Nephew",
	LabelNiece:       "Niece",
	LabelNephewNiece: "Niece/Nephew",

	LabelSecondCousinBrother: "Second Cousin (male)",
	LabelSecondCousinSister:  "Second Cousin (female)",
	LabelSecondCousinSibling: "Second Cousin",

	LabelCousinUncle:         "Parent's Cousin",
	LabelCousinGrandson:      "Cousin's Son",
	LabelCousinGranddaughter: "Cousin's Daughter",
	LabelCousinGrandchild:    "Cousin's Child",

	LabelGreatUncle:     "Great-uncle",
	LabelGreatAunt:      "Great-aunt",
	LabelGreatUncleAunt: "Great-aunt/uncle",

	LabelNephewSon:      "Grandnephew",
	LabelNephewDaughter: "Grandniece",
	LabelNephewChild:    "Grandniece/nephew",
})

var (
	vocabularies  = []*Vocabulary{Nepali, English}
	localeMatcher = language.NewMatcher([]language.Tag{Nepali.tag, English.tag})
)

// VocabularyFor returns the vocabulary that best matches a BCP 47 locale
// such as "ne-NP" or "en-GB". Unknown or empty locales get Nepali.
func VocabularyFor(locale string) *Vocabulary {
	if locale == "" {
		return Nepali
	}
	_, idx := language.MatchStrings(localeMatcher, locale)
	return vocabularies[idx]
}

// Vocabularies lists the built-in vocabularies, default first.
func Vocabularies() []*Vocabulary {
	return []*Vocabulary{Nepali, English}
}
