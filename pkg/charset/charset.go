// Package charset names the text encodings the formatter can read and write
// and converts between raw file bytes and Go strings. The formatting engine
// always operates on decoded strings; decoding happens once on read and
// encoding once on write.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the name of a supported text encoding.
type Encoding string

const (
	// UTF8 is the default encoding. Decoding validates the bytes and
	// rejects malformed sequences.
	UTF8 Encoding = "utf-8"

	// Latin1 is ISO 8859-1. Every byte value is defined.
	Latin1 Encoding = "latin-1"

	// Windows1252 is the Windows western European code page.
	Windows1252 Encoding = "windows-1252"

	// UTF16LE is little-endian UTF-16 without byte order mark handling.
	UTF16LE Encoding = "utf-16le"

	// UTF16BE is big-endian UTF-16 without byte order mark handling.
	UTF16BE Encoding = "utf-16be"
)

// Default is the encoding assumed when none is configured.
const Default = UTF8

// ErrUnknownEncoding is returned when an encoding name is not one of the
// supported values.
var ErrUnknownEncoding = errors.New("unknown encoding")

// IsValid reports whether the encoding is one of the supported values.
func (e Encoding) IsValid() bool {
	switch e {
	case UTF8, Latin1, Windows1252, UTF16LE, UTF16BE:
		return true
	default:
		return false
	}
}

// codec returns the x/text codec for non-UTF-8 encodings. UTF-16 codecs
// ignore byte order marks: a leading U+FEFF decodes as an ordinary character,
// matching the explicit-endianness variants of other tools.
func (e Encoding) codec() (encoding.Encoding, bool) {
	switch e {
	case Latin1:
		return charmap.ISO8859_1, true
	case Windows1252:
		return charmap.Windows1252, true
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), true
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), true
	default:
		return nil, false
	}
}

// Decode converts raw file bytes into a Go string.
func (e Encoding) Decode(data []byte) (string, error) {
	switch e {
	case UTF8:
		if i := firstInvalidUTF8(data); i >= 0 {
			return "", fmt.Errorf("invalid UTF-8 byte at offset %d", i)
		}
		return string(data), nil

	case Latin1, Windows1252:
		codec, _ := e.codec()
		decoded, err := codec.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		// The code page decoders substitute U+FFFD for undefined bytes
		// instead of failing; neither code page maps any byte to U+FFFD,
		// so its presence always signals bad input.
		if bytes.ContainsRune(decoded, utf8.RuneError) {
			return "", fmt.Errorf("byte not defined in %s", string(e))
		}
		return string(decoded), nil

	case UTF16LE, UTF16BE:
		if len(data)%2 != 0 {
			return "", fmt.Errorf("%s data has odd length %d", string(e), len(data))
		}
		codec, _ := e.codec()
		decoded, err := codec.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil

	default:
		return "", fmt.Errorf("%w %q", ErrUnknownEncoding, string(e))
	}
}

// Encode converts a Go string into raw file bytes. Encoding fails when the
// text contains characters the target encoding cannot represent.
func (e Encoding) Encode(text string) ([]byte, error) {
	switch e {
	case UTF8:
		return []byte(text), nil

	case Latin1, Windows1252, UTF16LE, UTF16BE:
		codec, _ := e.codec()
		encoded, err := codec.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("text not representable in %s: %w", string(e), err)
		}
		return encoded, nil

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownEncoding, string(e))
	}
}

// firstInvalidUTF8 returns the offset of the first malformed sequence in
// data, or -1 when the whole input is valid.
func firstInvalidUTF8(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
