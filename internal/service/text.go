package service

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeContent turns raw sheet bytes into text. Content that is not valid
// UTF-8 is read as Windows-1252, the usual encoding of spreadsheet exports.
func decodeContent(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return string(decoded)
}

// repairMojibake restores UTF-8 text that was decoded as Windows-1252 once,
// e.g. "â€¢" back to "•". Each run of non-ASCII characters is re-encoded on
// its own and kept only if the bytes form valid UTF-8, so genuine accented
// text is left alone.
func repairMojibake(s string) string {
	if isASCII(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for len(s) > 0 {
		i := strings.IndexFunc(s, func(r rune) bool { return r >= utf8.RuneSelf })
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		s = s[i:]

		j := strings.IndexFunc(s, func(r rune) bool { return r < utf8.RuneSelf })
		if j < 0 {
			j = len(s)
		}
		b.WriteString(repairRun(s[:j]))
		s = s[j:]
	}

	return b.String()
}

func repairRun(run string) string {
	raw, err := charmap.Windows1252.NewEncoder().String(run)
	if err != nil || raw == run || !utf8.ValidString(raw) {
		return run
	}
	return raw
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// cleanCell trims a cell and, when normalize is set, repairs encoding damage.
func cleanCell(s string, normalize bool) string {
	if normalize {
		s = repairMojibake(s)
		s = strings.ReplaceAll(s, "\uFFFD", "")
		s = strings.ReplaceAll(s, "\uFEFF", "")
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimSpace(s)
}

const bulletGlyphs = "•●▪◦‣·∙\uf0b7*-–—"

// stripBullet drops list markers from the start of a line.
func stripBullet(s string) string {
	s = strings.TrimSpace(s)
	for {
		trimmed := strings.TrimLeft(s, bulletGlyphs)
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

func hasBullet(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(line)
	return strings.ContainsRune(bulletGlyphs, r)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
