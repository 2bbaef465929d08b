package rule

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule is one rename transformation. The set of implementations is closed:
// Rename, Ordinal, Replace, Insert, InsertLast, Delete, DeleteLast, ToUnicode
// and ToLocale.
type Rule interface {
	// Kind returns the boundary identifier of the rule.
	Kind() Kind

	// Validate checks the rule's arguments without applying it.
	Validate() error

	apply(text string, env Env) (string, error)
}

// Sequenced is implemented by rules that consume the per-file sequence
// number. Sequence maps a file's position in the batch to that number.
type Sequenced interface {
	Sequence(index int) int
}

// Codec converts between text and bytes in a named encoding.
type Codec interface {
	Encode(text, encoding string) ([]byte, error)
	Decode(data []byte, encoding string) (string, error)
}

// Env carries what a rule may need beyond its own arguments.
type Env struct {
	// Codec is required by ToUnicode and ToLocale.
	Codec Codec

	// LocalEncoding is the system encoding name used by ToUnicode and ToLocale.
	LocalEncoding string

	// Sequence is the per-file number consumed by Ordinal.
	Sequence int
}

// maxOrdinalDigits is one less than the digit count of the largest int32,
// so a template value plus its sequence number can never overflow.
var maxOrdinalDigits = len(strconv.Itoa(math.MaxInt32)) - 1

// Rename replaces the masked text verbatim.
type Rename struct {
	To string
}

func (Rename) Kind() Kind      { return KindRename }
func (Rename) Validate() error { return nil }

func (r Rename) apply(string, Env) (string, error) {
	return r.To, nil
}

// Ordinal replaces the masked text with Prefix followed by a counter. The
// counter starts at the value of Template and is zero-padded to its width.
// Reverse counts down instead of up. Results wrap modulo 10^width.
type Ordinal struct {
	Prefix   string
	Template string
	Reverse  bool
}

func (o Ordinal) Kind() Kind {
	if o.Reverse {
		return KindOrdinalReverse
	}
	return KindOrdinal
}

// Sequence returns index for a forward ordinal and -index for a reverse one.
func (o Ordinal) Sequence(index int) int {
	if o.Reverse {
		return -index
	}
	return index
}

func (o Ordinal) Validate() error {
	_, _, err := o.parseTemplate()
	return err
}

func (o Ordinal) parseTemplate() (value, digits int, err error) {
	template := strings.TrimSpace(o.Template)
	digits = utf8.RuneCountInString(template)
	if digits > maxOrdinalDigits {
		return 0, 0, fmt.Errorf("%w: ordinal %q exceeds %d digits", ErrInvalidArgument, template, maxOrdinalDigits)
	}
	value, err = strconv.Atoi(template)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: ordinal %q is not a number", ErrInvalidArgument, template)
	}
	return value, digits, nil
}

func (o Ordinal) apply(_ string, env Env) (string, error) {
	value, digits, err := o.parseTemplate()
	if err != nil {
		return "", err
	}
	limit := int(math.Pow10(digits))
	n := ((value+env.Sequence)%limit + limit) % limit
	return fmt.Sprintf("%s%0*d", o.Prefix, digits, n), nil
}

// Replace substitutes every occurrence of From with To. An empty From is a
// no-op.
type Replace struct {
	From string
	To   string
}

func (Replace) Kind() Kind      { return KindReplace }
func (Replace) Validate() error { return nil }

func (r Replace) apply(text string, _ Env) (string, error) {
	if r.From == "" {
		return text, nil
	}
	return strings.ReplaceAll(text, r.From, r.To), nil
}

// Insert inserts Text before the codepoint at Offset, counted from the head.
// Offsets past the end append.
type Insert struct {
	Text   string
	Offset int
}

func (Insert) Kind() Kind { return KindInsert }

func (i Insert) Validate() error {
	return position("offset", i.Offset)
}

func (i Insert) apply(text string, _ Env) (string, error) {
	if err := i.Validate(); err != nil {
		return "", err
	}
	b := []byte(text)
	pos := clamp(IndexOfUTF8(b, 0, i.Offset), 0, len(b))
	return string(b[:pos]) + i.Text + string(b[pos:]), nil
}

// InsertLast inserts Text Offset codepoints before the end. When the text is
// shorter than Offset it is padded with leading spaces so the insertion still
// lands Offset codepoints from the end.
type InsertLast struct {
	Text   string
	Offset int
}

func (InsertLast) Kind() Kind { return KindInsertLast }

func (i InsertLast) Validate() error {
	return position("offset", i.Offset)
}

func (i InsertLast) apply(text string, _ Env) (string, error) {
	if err := i.Validate(); err != nil {
		return "", err
	}
	b := []byte(text)
	pos := IndexOfUTF8(b, len(b), -i.Offset)
	if pos < 0 {
		return i.Text + strings.Repeat(" ", -pos) + text, nil
	}
	return string(b[:pos]) + i.Text + string(b[pos:]), nil
}

// Delete removes Count codepoints starting at codepoint Start.
type Delete struct {
	Start int
	Count int
}

func (Delete) Kind() Kind { return KindDelete }

func (d Delete) Validate() error {
	if err := position("start", d.Start); err != nil {
		return err
	}
	return position("count", d.Count)
}

func (d Delete) apply(text string, _ Env) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	b := []byte(text)
	begin := IndexOfUTF8(b, 0, d.Start)
	end := IndexOfUTF8(b, begin, d.Count)
	return cut(b, begin, end), nil
}

// DeleteLast removes Count codepoints ending FromEnd codepoints before the
// end. A range reaching past the head is clamped, deleting fewer codepoints.
type DeleteLast struct {
	FromEnd int
	Count   int
}

func (DeleteLast) Kind() Kind { return KindDeleteLast }

func (d DeleteLast) Validate() error {
	if err := position("position", d.FromEnd); err != nil {
		return err
	}
	return position("count", d.Count)
}

func (d DeleteLast) apply(text string, _ Env) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	b := []byte(text)
	end := IndexOfUTF8(b, len(b), -d.FromEnd)
	begin := IndexOfUTF8(b, end, -d.Count)
	return cut(b, begin, end), nil
}

// ToUnicode repairs text that was decoded with the wrong encoding: the text is
// encoded back to local-encoding bytes and those bytes are decoded as
// Encoding.
type ToUnicode struct {
	Encoding string
}

func (ToUnicode) Kind() Kind { return KindToUnicode }

func (t ToUnicode) Validate() error {
	return encodingName(t.Encoding)
}

func (t ToUnicode) apply(text string, env Env) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return transcode(env, text, env.LocalEncoding, t.Encoding)
}

// ToLocale is the inverse of ToUnicode: the text is encoded as Encoding and
// decoded as the local encoding.
type ToLocale struct {
	Encoding string
}

func (ToLocale) Kind() Kind { return KindToLocale }

func (t ToLocale) Validate() error {
	return encodingName(t.Encoding)
}

func (t ToLocale) apply(text string, env Env) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return transcode(env, text, t.Encoding, env.LocalEncoding)
}

func transcode(env Env, text, from, to string) (string, error) {
	if env.Codec == nil {
		return "", fmt.Errorf("%w: no codec configured", ErrInvalidArgument)
	}
	data, err := env.Codec.Encode(text, from)
	if err != nil {
		return "", fmt.Errorf("failed to encode as %s: %w", from, err)
	}
	out, err := env.Codec.Decode(data, to)
	if err != nil {
		return "", fmt.Errorf("failed to decode as %s: %w", to, err)
	}
	return out, nil
}

// cut removes b[begin:end] after clamping both ends into b.
func cut(b []byte, begin, end int) string {
	begin = clamp(begin, 0, len(b))
	end = clamp(end, begin, len(b))
	return string(b[:begin]) + string(b[end:])
}

// MaxPosition bounds codepoint offsets and counts. It matches the common
// filename length limit in bytes, so larger values never address a codepoint.
const MaxPosition = 255

func position(name string, v int) error {
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidArgument, name, v)
	}
	if v > MaxPosition {
		return fmt.Errorf("%w: %s must not exceed %d, got %d", ErrInvalidArgument, name, MaxPosition, v)
	}
	return nil
}

func encodingName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: encoding name is empty", ErrInvalidArgument)
	}
	return nil
}
