// Package codec converts file-name text to and from legacy encodings.
//
// Encodings are looked up by name: first in a small alias table covering the
// names offered by the CLI and glibc locale charsets such as eucJP, then in
// the IANA registry, then in the WHATWG index. Characters the target
// encoding cannot represent are replaced rather than rejected, and invalid
// input bytes decode to U+FFFD, so a round trip through incompatible
// encodings yields replacement characters instead of an error.
package codec

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownEncoding indicates an encoding name could not be resolved.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Codec converts between text and bytes in a named encoding.
type Codec interface {
	// Encode converts text to bytes in the named encoding.
	Encode(text, name string) ([]byte, error)

	// Decode converts bytes in the named encoding to text.
	Decode(data []byte, name string) (string, error)
}

// Presets are the legacy encodings offered for repairing file names, in menu
// order.
var Presets = []string{"Shift-JIS", "GBK", "CP949", "Big5", "Windows-1252"}

// aliases is keyed by lowercase names with '-' and '_' removed, so the CLI
// spellings and the glibc locale charsets ("eucJP", "iso88591") share entries.
var aliases = map[string]encoding.Encoding{
	"shiftjis":    japanese.ShiftJIS,
	"sjis":        japanese.ShiftJIS,
	"mskanji":     japanese.ShiftJIS,
	"eucjp":       japanese.EUCJP,
	"ujis":        japanese.EUCJP,
	"iso2022jp":   japanese.ISO2022JP,
	"gbk":         simplifiedchinese.GBK,
	"cp936":       simplifiedchinese.GBK,
	"gb2312":      simplifiedchinese.GBK,
	"euccn":       simplifiedchinese.GBK,
	"gb18030":     simplifiedchinese.GB18030,
	"cp949":       korean.EUCKR,
	"euckr":       korean.EUCKR,
	"big5":        traditionalchinese.Big5,
	"big5hkscs":   traditionalchinese.Big5,
	"cp950":       traditionalchinese.Big5,
	"windows1252": charmap.Windows1252,
	"cp1252":      charmap.Windows1252,
	"iso88591":    charmap.ISO8859_1,
	"iso88592":    charmap.ISO8859_2,
	"iso88595":    charmap.ISO8859_5,
	"iso88597":    charmap.ISO8859_7,
	"iso88599":    charmap.ISO8859_9,
	"iso885915":   charmap.ISO8859_15,
	"koi8r":       charmap.KOI8R,
	"koi8u":       charmap.KOI8U,
	"utf8":        unicode.UTF8,
}

func aliasKey(key string) string {
	return strings.NewReplacer("-", "", "_", "").Replace(key)
}

// TextCodec implements Codec with golang.org/x/text encodings.
type TextCodec struct{}

// NewTextCodec creates a new TextCodec.
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Lookup resolves an encoding name.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownEncoding)
	}
	if enc, ok := aliases[aliasKey(key)]; ok {
		return enc, nil
	}
	// ianaindex returns a nil encoding for registered names it has no codec for
	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(key); err == nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// Encode converts text to bytes in the named encoding. Unsupported characters
// are replaced with the encoding's replacement byte.
func (c *TextCodec) Encode(text, name string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	out, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %q as %s: %w", text, name, err)
	}
	return out, nil
}

// Decode converts bytes in the named encoding to NFC-normalized text.
func (c *TextCodec) Decode(data []byte, name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode as %s: %w", name, err)
	}
	return norm.NFC.String(string(out)), nil
}

// CanonicalName returns the IANA name of the named encoding, or the name as
// given when the registry has none for it.
func CanonicalName(name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	if canonical, err := ianaindex.IANA.Name(enc); err == nil && canonical != "" {
		return canonical, nil
	}
	return name, nil
}
