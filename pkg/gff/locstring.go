package gff

// Language identifies the language of a localized substring.
type Language uint32

const (
	LanguageEnglish            Language = 0
	LanguageFrench             Language = 1
	LanguageGerman             Language = 2
	LanguageItalian            Language = 3
	LanguageSpanish            Language = 4
	LanguagePolish             Language = 5
	LanguageKorean             Language = 128
	LanguageChineseTraditional Language = 129
	LanguageChineseSimplified  Language = 130
	LanguageJapanese           Language = 131
)

// Gender selects between the male/neutral and female variants of a
// localized substring.
type Gender uint32

const (
	GenderMale   Gender = 0
	GenderFemale Gender = 1
)

// Substring is one localized text entry inside a LocString.
type Substring struct {
	Language Language
	Gender   Gender
	Text     string
}

// substringID packs language and gender into the on-disk substring
// identifier.
func substringID(lang Language, gender Gender) uint32 {
	return uint32(lang)*2 + uint32(gender)
}

// LocString is a localized string bundle: an optional reference into an
// external string table plus any number of inline substrings keyed by
// language and gender. Substrings keep insertion order, which is also the
// order they are written in.
type LocString struct {
	// StringRef indexes an external string table; -1 means no reference.
	StringRef int32

	subs  map[uint32]int
	order []Substring
}

// NewLocString returns an empty bundle with the given string reference.
// Use -1 for no reference.
func NewLocString(stringRef int32) *LocString {
	return &LocString{StringRef: stringRef, subs: make(map[uint32]int)}
}

// Set stores the text for a language/gender pair, replacing any existing
// entry for the pair in place.
func (l *LocString) Set(lang Language, gender Gender, text string) {
	id := substringID(lang, gender)
	if l.subs == nil {
		l.subs = make(map[uint32]int)
	}
	if i, ok := l.subs[id]; ok {
		l.order[i].Text = text
		return
	}
	l.subs[id] = len(l.order)
	l.order = append(l.order, Substring{Language: lang, Gender: gender, Text: text})
}

// Get returns the text for a language/gender pair.
func (l *LocString) Get(lang Language, gender Gender) (string, bool) {
	i, ok := l.subs[substringID(lang, gender)]
	if !ok {
		return "", false
	}
	return l.order[i].Text, true
}

// Delete removes the entry for a language/gender pair and reports whether
// it was present.
func (l *LocString) Delete(lang Language, gender Gender) bool {
	id := substringID(lang, gender)
	i, ok := l.subs[id]
	if !ok {
		return false
	}
	l.order = append(l.order[:i], l.order[i+1:]...)
	delete(l.subs, id)
	for j := i; j < len(l.order); j++ {
		s := l.order[j]
		l.subs[substringID(s.Language, s.Gender)] = j
	}
	return true
}

// Count returns the number of substrings.
func (l *LocString) Count() int { return len(l.order) }

// Substrings returns the entries in insertion order. The slice is a copy.
func (l *LocString) Substrings() []Substring {
	out := make([]Substring, len(l.order))
	copy(out, l.order)
	return out
}

// setByID stores a substring decoded from its packed identifier.
func (l *LocString) setByID(id uint32, text string) {
	l.Set(Language(id/2), Gender(id%2), text)
}
