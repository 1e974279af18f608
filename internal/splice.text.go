package internal

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Text template constants
const (
	TwitterBaseURL      = "https://twitter.com/"
	TwitterLinkOpen     = `<a href="`
	TwitterLinkMid      = `">@`
	TwitterLinkClose    = `</a>`
	JoinSeparator       = ", "
	RepeatSeparator     = " "
	SubjectPluralSuffix = "s"
	SubjectGonna        = " gonna "
	SubjectSentenceOpen = "I'm a "
	SubjectSentenceMid  = " and I'm gonna "
	SubjectSentenceEnd  = "."
)

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

// StrictPolicy returns the shared strict sanitizer. bluemonday policies are
// safe for concurrent use once built.
func StrictPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// SanitizeText strips markup from s and escapes what remains.
func SanitizeText(s string) string {
	return StrictPolicy().Sanitize(s)
}

// TwitterLink builds an anchor for the given handle.
func TwitterLink(handle string) string {
	h := SanitizeText(handle)
	var sb strings.Builder
	sb.Grow(len(TwitterLinkOpen) + len(TwitterBaseURL) + 2*len(h) + len(TwitterLinkMid) + len(TwitterLinkClose))
	sb.WriteString(TwitterLinkOpen)
	sb.WriteString(TwitterBaseURL)
	sb.WriteString(h)
	sb.WriteString(TwitterLinkMid)
	sb.WriteString(h)
	sb.WriteString(TwitterLinkClose)
	return sb.String()
}

// JoinOr joins values with ", " or evaluates fallback when values is empty.
// A nil fallback yields "".
func JoinOr(values []string, fallback StringThunk) string {
	if len(values) == 0 {
		if fallback == nil {
			return StringValueEmpty
		}
		return fallback()
	}
	return strings.Join(values, JoinSeparator)
}

// Capitalize upper-cases the first letter of each word and lower-cases the rest.
func Capitalize(s string) string {
	return cases.Title(language.English).String(s)
}

// RepeatAction renders "<Subject>s gonna " followed by count copies of
// "<action> ". A count of zero or less yields the prefix alone.
func RepeatAction(subject, action string, count int) string {
	count = max(count, 0)
	var sb strings.Builder
	sb.WriteString(Capitalize(subject))
	sb.WriteString(SubjectPluralSuffix)
	sb.WriteString(SubjectGonna)
	sb.WriteString(strings.Repeat(action+RepeatSeparator, count))
	return sb.String()
}

// SubjectSentence renders "I'm a <subject> and I'm gonna <action>."
func SubjectSentence(subject, action string) string {
	return SubjectSentenceOpen + subject + SubjectSentenceMid + action + SubjectSentenceEnd
}
