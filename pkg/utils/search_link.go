package utils

import (
	"net/url"
	"strings"
)

// querySuffix narrows the web search toward novels with this plot
// ("...라는 줄거리의 소설은" — "the novel with this storyline is").
const querySuffix = "라는 줄거리의 소설은"

// BuildSearchLink turns the user's story text into a Google search URL
// for the exhaustion fallback: line breaks collapse to spaces, the
// disambiguating suffix is appended, and the whole query is
// percent-encoded.
func BuildSearchLink(storyText string) string {
	normalized := strings.ReplaceAll(storyText, "\r\n", " ")
	normalized = strings.ReplaceAll(normalized, "\n", " ")
	query := normalized + querySuffix
	// QueryEscape writes '+' for spaces; swap for %20 so the link is
	// plain percent-encoding end to end.
	encoded := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	return "https://www.google.com/search?q=" + encoded
}
