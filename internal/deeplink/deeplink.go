package deeplink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const (
	Scheme = "moonlight"
	Host   = "appClicked"

	// Template is filled with the app id and the host UUID, unescaped
	Template = Scheme + "://" + Host + "?app=%s&UUID=%s"
)

// ErrInvalidLink is returned when the filled template is not a valid URL
var ErrInvalidLink = errors.New("invalid deep link")

// Target identifies the app a deep link opens
type Target struct {
	AppID    string
	HostUUID string
}

// Build fills the link template. Ids are inserted verbatim; characters that
// would need percent-encoding make the link invalid instead of being escaped.
func Build(appID, hostUUID string) (string, error) {
	raw := fmt.Sprintf(Template, appID, hostUUID)
	for _, r := range raw {
		if needsEscaping(r) {
			return "", fmt.Errorf("%w: unencodable character %q in %q", ErrInvalidLink, r, raw)
		}
	}
	if err := checkEscapes(raw); err != nil {
		return "", err
	}
	if strings.Count(raw, "#") > 1 {
		return "", fmt.Errorf("%w: more than one '#' in %q", ErrInvalidLink, raw)
	}
	if _, err := url.Parse(raw); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	return raw, nil
}

// checkEscapes requires every '%' to start a two-digit hex escape
func checkEscapes(raw string) error {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '%' {
			continue
		}
		if i+2 >= len(raw) || !isHex(raw[i+1]) || !isHex(raw[i+2]) {
			return fmt.Errorf("%w: bad percent-escape at offset %d in %q", ErrInvalidLink, i, raw)
		}
		i += 2
	}
	return nil
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Parse extracts the target of a link produced by Build
func Parse(raw string) (Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if u.Scheme != Scheme || u.Host != Host {
		return Target{}, fmt.Errorf("%w: unexpected target %s://%s", ErrInvalidLink, u.Scheme, u.Host)
	}

	q := u.Query()
	t := Target{AppID: q.Get("app"), HostUUID: q.Get("UUID")}
	if t.AppID == "" || t.HostUUID == "" {
		return Target{}, fmt.Errorf("%w: app and UUID are required", ErrInvalidLink)
	}
	return t, nil
}

// needsEscaping reports characters outside the set a URL may carry unescaped
func needsEscaping(r rune) bool {
	if r > unicode.MaxASCII || unicode.IsControl(r) || r == ' ' {
		return true
	}
	return strings.ContainsRune("\"<>\\^`{|}", r)
}
