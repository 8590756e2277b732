package deeplink

import (
	"errors"
	"testing"
)

func TestBuild(t *testing.T) {
	got, err := Build("881448767", "4D6F6F6E-6C69-6768-7400-000000000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "moonlight://appClicked?app=881448767&UUID=4D6F6F6E-6C69-6768-7400-000000000001"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestBuild_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		appID    string
		hostUUID string
	}{
		{"space", "my app", "u"},
		{"non-ascii", "jeu-é", "u"},
		{"control", "a\n", "u"},
		{"brace", "a", "{u}"},
		{"pipe", "a|b", "u"},
		{"bad escape", "%zz", "u"},
		{"truncated escape", "a%", "u"},
		{"short escape in uuid", "a", "u%4"},
		{"two fragments", "a#b#c", "u"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(tc.appID, tc.hostUUID)
			if !errors.Is(err, ErrInvalidLink) {
				t.Errorf("err = %v, want ErrInvalidLink", err)
			}
		})
	}
}

func TestBuild_EscapedIDRoundTrips(t *testing.T) {
	link, err := Build("a%20b", "u")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got, err := Parse(link)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != (Target{AppID: "a b", HostUUID: "u"}) {
		t.Errorf("Parse = %+v", got)
	}
}

func TestParse(t *testing.T) {
	link, err := Build("7", "host-1")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got, err := Parse(link)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != (Target{AppID: "7", HostUUID: "host-1"}) {
		t.Errorf("Parse = %+v", got)
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, raw := range []string{
		"https://appClicked?app=1&UUID=2",
		"moonlight://other?app=1&UUID=2",
		"moonlight://appClicked?app=1",
		"moonlight://appClicked?UUID=2",
		"::not a url",
	} {
		if _, err := Parse(raw); !errors.Is(err, ErrInvalidLink) {
			t.Errorf("Parse(%q) err = %v, want ErrInvalidLink", raw, err)
		}
	}
}
