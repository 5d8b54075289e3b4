package txd

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var nameTerminator = []byte{0x00, 0x00}

// extractName reads the name that follows the signature at sig. It returns
// the decoded name and the index just past its double-zero terminator, or
// ok == false when no terminator exists before the end of data.
func extractName(data []byte, sig int, absOffset int64) (name string, end int, ok bool) {
	start := sig + NameOffset
	if start > len(data) {
		return "", 0, false
	}

	term := bytes.Index(data[start:], nameTerminator)
	if term < 0 {
		return "", 0, false
	}

	raw := data[start : start+term]
	if utf8.Valid(raw) {
		name = strings.TrimSpace(string(raw))
	} else {
		name = hex.EncodeToString(raw)
	}
	if name == "" {
		name = fmt.Sprintf("unnamed_texture_at_0x%08X", absOffset)
	}

	return name, start + term + len(nameTerminator), true
}

// SanitizeFileName makes name safe to use as a file name. Control characters
// and characters reserved on common filesystems become underscores. A name
// with nothing but control characters and whitespace falls back to one
// derived from the texture's offset.
func SanitizeFileName(name string, absOffset int64) string {
	printable := strings.IndexFunc(name, func(r rune) bool {
		return !isControl(r) && !unicode.IsSpace(r)
	})
	if printable < 0 {
		return fmt.Sprintf("texture_at_0x%08X", absOffset)
	}

	clean := strings.Map(func(r rune) rune {
		if isControl(r) || strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, name)

	return strings.TrimSpace(clean)
}

func isControl(r rune) bool {
	return r < 32 || r == 127
}
