package dragdrop

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const fileScheme = "file://"

// PathFromURI converts one entry of a text/uri-list payload into a local
// path. A leading file:// is stripped, %XY escapes are decoded and every
// maximal invalid UTF-8 subpart becomes one U+FFFD, so a truncated sequence
// yields a single replacement. Malformed escapes are kept as they are. It
// never fails.
func PathFromURI(uri string) string {
	raw := percentDecode(strings.TrimPrefix(uri, fileScheme))
	if utf8.ValidString(raw) {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteRune(utf8.RuneError)
			i += invalidPrefixLen(raw[i:])
			continue
		}
		b.WriteString(raw[i : i+size])
		i += size
	}
	return b.String()
}

// invalidPrefixLen is the length of the maximal subpart of an ill-formed
// sequence at the start of s: the lead byte plus the continuation bytes that
// are still valid for it. s must not start with a valid rune.
func invalidPrefixLen(s string) int {
	var want int
	lo, hi := byte(0x80), byte(0xBF)
	switch c := s[0]; {
	case 0xC2 <= c && c <= 0xDF:
		want = 2
	case c == 0xE0:
		want, lo = 3, 0xA0
	case c == 0xED:
		want, hi = 3, 0x9F
	case 0xE1 <= c && c <= 0xEF:
		want = 3
	case c == 0xF0:
		want, lo = 4, 0x90
	case c == 0xF4:
		want, hi = 4, 0x8F
	case 0xF1 <= c && c <= 0xF3:
		want = 4
	default:
		return 1
	}

	n := 1
	for n < want && n < len(s) && lo <= s[n] && s[n] <= hi {
		n++
		lo, hi = 0x80, 0xBF
	}
	return n
}

// PathsFromURIs decodes every URI, keeping order.
func PathsFromURIs(uris []string) []string {
	paths := make([]string, 0, len(uris))
	for _, uri := range uris {
		paths = append(paths, PathFromURI(uri))
	}
	return paths
}

// URIFromPath is the inverse of PathFromURI for valid UTF-8 paths.
func URIFromPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fileScheme + strings.Join(segments, "/")
}

func percentDecode(s string) string {
	if strings.IndexByte(s, '%') < 0 {
		return s
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
