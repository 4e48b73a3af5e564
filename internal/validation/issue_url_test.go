package validation

import (
	"testing"
)

func TestParseIssueURL(t *testing.T) {
	tests := []struct {
		input   string
		want    IssueURL
		wantErr bool
	}{
		{"https://github.com/octocat/hello-world/issues/1", IssueURL{"github.com", "octocat", "hello-world", 1}, false},
		{"  https://github.com/octocat/hello-world/issues/42/  ", IssueURL{"github.com", "octocat", "hello-world", 42}, false},
		{"https://ghe.example.com/team/app/issues/7", IssueURL{"ghe.example.com", "team", "app", 7}, false},

		{"github.com/octocat/hello-world/issues/1", IssueURL{}, true}, // no scheme
		{"ftp://github.com/octocat/hello-world/issues/1", IssueURL{}, true},
		{"https://github.com/octocat/hello-world/pull/1", IssueURL{}, true},
		{"https://github.com/octocat/hello-world", IssueURL{}, true},
		{"https://github.com/octocat/hello-world/issues/abc", IssueURL{}, true},
		{"https://github.com/octocat/hello-world/issues/0", IssueURL{}, true},
		{"", IssueURL{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseIssueURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIssueURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseIssueURL(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIssueURLString(t *testing.T) {
	u := IssueURL{Host: "github.com", Owner: "octocat", Repo: "hello-world", Number: 3}
	if got := u.String(); got != "https://github.com/octocat/hello-world/issues/3" {
		t.Errorf("String() = %q", got)
	}
}
