package views

import (
	"golang.org/x/text/language"
)

// Head is the per-page document head: title, description and language.
type Head struct {
	Title       string
	Description string
	Lang        language.Tag
}

// Languages negotiates the document language from Accept-Language.
type Languages struct {
	matcher   language.Matcher
	supported []language.Tag
}

// NewLanguages builds a negotiator for the given BCP 47 tags. Invalid tags
// are skipped; with none left English is used. The first tag is the fallback.
func NewLanguages(tags ...string) *Languages {
	supported := make([]language.Tag, 0, len(tags))
	for _, s := range tags {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
	}
	if len(supported) == 0 {
		supported = append(supported, language.English)
	}
	return &Languages{
		matcher:   language.NewMatcher(supported),
		supported: supported,
	}
}

// Negotiate returns the best supported language for an Accept-Language
// header value.
func (l *Languages) Negotiate(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return l.supported[0]
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return l.supported[0]
	}
	_, idx, _ := l.matcher.Match(prefs...)
	return l.supported[idx]
}

// HeadFor builds the head of a page titled title under theme.
func (l *Languages) HeadFor(theme Theme, title, acceptLanguage string) Head {
	return Head{
		Title:       title,
		Description: theme.Head.Description,
		Lang:        l.Negotiate(acceptLanguage),
	}
}

// fullTitle joins the page title and the brand.
func (h Head) fullTitle(brand string) string {
	switch {
	case h.Title == "":
		return brand
	case brand == "":
		return h.Title
	default:
		return h.Title + " | " + brand
	}
}

func (h Head) lang() string {
	if h.Lang == language.Und {
		return language.English.String()
	}
	return h.Lang.String()
}
