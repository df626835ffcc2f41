package scanner

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16leBOM = []byte{0xFF, 0xFE}
	utf16beBOM = []byte{0xFE, 0xFF}
)

// StripBOM removes a leading byte-order mark from buf, if present, and
// returns the remainder. It tolerates a doubled UTF-8 BOM at the head of
// the stream (the XML parser's documented quirk in spec.md §9) by
// stripping every consecutive BOM occurrence, not just the first.
func StripBOM(buf []byte) []byte {
	for {
		if bytes.HasPrefix(buf, utf8BOM) {
			buf = buf[len(utf8BOM):]
			continue
		}
		break
	}
	return buf
}

// DecodeToUTF8 transcodes buf to UTF-8 based on a leading BOM. UTF-16LE and
// UTF-16BE streams are converted via golang.org/x/text/encoding/unicode; a
// UTF-8 (or doubled UTF-8) BOM is simply stripped. Input with no recognized
// BOM is returned unchanged, assumed to already be UTF-8 or ASCII.
func DecodeToUTF8(buf []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(buf, utf16leBOM):
		return decodeUTF16(buf, unicode.LittleEndian)
	case bytes.HasPrefix(buf, utf16beBOM):
		return decodeUTF16(buf, unicode.BigEndian)
	case bytes.HasPrefix(buf, utf8BOM):
		return StripBOM(buf), nil
	default:
		return buf, nil
	}
}

func decodeUTF16(buf []byte, endian unicode.Endianness) ([]byte, error) {
	enc := unicode.UTF16(endian, unicode.ExpectBOM)
	out, _, err := transform.Bytes(enc.NewDecoder(), buf)
	if err != nil {
		return nil, err
	}
	return out, nil
}
