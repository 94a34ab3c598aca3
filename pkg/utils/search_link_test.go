package utils

import (
	"strings"
	"testing"
)

func TestBuildSearchLink(t *testing.T) {
	tests := []struct {
		name         string
		story        string
		wantContains string
	}{
		{
			name:         "korean story is percent encoded",
			story:        "한 고아소년이 마법사가 되는 소설",
			wantContains: "%EB%A7%88%EB%B2%95%EC%82%AC",
		},
		{
			name:         "line breaks collapse to spaces",
			story:        "first line\nsecond line",
			wantContains: "first%20line%20second%20line",
		},
		{
			name:         "windows line breaks collapse too",
			story:        "first\r\nsecond",
			wantContains: "first%20second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSearchLink(tt.story)

			if !strings.HasPrefix(got, "https://www.google.com/search?q=") {
				t.Errorf("BuildSearchLink() = %q, want google search URL", got)
			}
			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("BuildSearchLink() = %q, want it to contain %q", got, tt.wantContains)
			}
			if strings.Contains(got, "+") || strings.Contains(got, "\n") {
				t.Errorf("BuildSearchLink() = %q, want pure percent-encoding", got)
			}
		})
	}
}

func TestBuildSearchLinkAppendsSuffix(t *testing.T) {
	// The suffix itself must survive encoding: decode-check via a raw
	// fragment of its encoding ("라는" = %EB%9D%BC%EB%8A%94).
	got := BuildSearchLink("줄거리")
	if !strings.Contains(got, "%EB%9D%BC%EB%8A%94") {
		t.Errorf("BuildSearchLink() = %q, want disambiguating suffix appended", got)
	}
}
