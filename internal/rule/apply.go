package rule

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Apply computes the next file name for name, which must be a bare file name
// without directory components. The mask selects the base name or the
// extension, the rule rewrites it, and the two halves are joined again.
//
// Any error leaves the caller's state to the caller: Apply has no side effects.
func Apply(mask Mask, r Rule, name string, env Env) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: nil rule", ErrUnknownRule)
	}
	text, err := selectText(mask, name)
	if err != nil {
		return "", err
	}
	modText, err := r.apply(text, env)
	if err != nil {
		return "", fmt.Errorf("%s: %w", r.Kind(), err)
	}
	out, err := joinName(mask, name, modText)
	if err != nil {
		return "", err
	}
	if err := ValidateName(out); err != nil {
		return "", fmt.Errorf("%s on %q: %w", r.Kind(), name, err)
	}
	return out, nil
}

// ValidateName reports whether name can be used as a single directory entry.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidName, name)
	}
	return nil
}

// Parse builds a Rule from a kind and positional argument lists. Each kind
// requires an exact argument shape:
//
//	rename            strings: to
//	ordinal(-reverse) strings: prefix, template
//	replace           strings: from, to
//	insert(-last)     strings: text       numbers: offset
//	delete(-last)                         numbers: position, count
//	to-unicode        strings: encoding
//	to-locale         strings: encoding
func Parse(kind Kind, strs []string, nums []int) (Rule, error) {
	var r Rule
	switch kind {
	case KindRename:
		if len(strs) != 1 || len(nums) != 0 {
			return nil, insufficient(kind)
		}
		r = Rename{To: strs[0]}
	case KindOrdinal, KindOrdinalReverse:
		if len(strs) != 2 || len(nums) != 0 {
			return nil, insufficient(kind)
		}
		r = Ordinal{Prefix: strs[0], Template: strs[1], Reverse: kind == KindOrdinalReverse}
	case KindReplace:
		if len(strs) != 2 || len(nums) != 0 {
			return nil, insufficient(kind)
		}
		r = Replace{From: strs[0], To: strs[1]}
	case KindInsert:
		if len(strs) != 1 || len(nums) != 1 {
			return nil, insufficient(kind)
		}
		r = Insert{Text: strs[0], Offset: nums[0]}
	case KindInsertLast:
		if len(strs) != 1 || len(nums) != 1 {
			return nil, insufficient(kind)
		}
		r = InsertLast{Text: strs[0], Offset: nums[0]}
	case KindDelete:
		if len(strs) != 0 || len(nums) != 2 {
			return nil, insufficient(kind)
		}
		r = Delete{Start: nums[0], Count: nums[1]}
	case KindDeleteLast:
		if len(strs) != 0 || len(nums) != 2 {
			return nil, insufficient(kind)
		}
		r = DeleteLast{FromEnd: nums[0], Count: nums[1]}
	case KindToUnicode:
		if len(strs) != 1 || len(nums) != 0 {
			return nil, insufficient(kind)
		}
		r = ToUnicode{Encoding: strs[0]}
	case KindToLocale:
		if len(strs) != 1 || len(nums) != 0 {
			return nil, insufficient(kind)
		}
		r = ToLocale{Encoding: strs[0]}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, kind)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return r, nil
}

func insufficient(kind Kind) error {
	return fmt.Errorf("%w: %s", ErrInsufficientArguments, kind)
}

// Describe renders a rule with its arguments for logs and history listings.
func Describe(mask Mask, r Rule) string {
	var args string
	switch v := r.(type) {
	case Rename:
		args = fmt.Sprintf("to=%q", v.To)
	case Ordinal:
		args = fmt.Sprintf("prefix=%q ordinal=%q", v.Prefix, v.Template)
	case Replace:
		args = fmt.Sprintf("from=%q to=%q", v.From, v.To)
	case Insert:
		args = fmt.Sprintf("text=%q offset=%d", v.Text, v.Offset)
	case InsertLast:
		args = fmt.Sprintf("text=%q offset=%d", v.Text, v.Offset)
	case Delete:
		args = fmt.Sprintf("start=%d count=%d", v.Start, v.Count)
	case DeleteLast:
		args = fmt.Sprintf("from-end=%d count=%d", v.FromEnd, v.Count)
	case ToUnicode:
		args = fmt.Sprintf("encoding=%s", v.Encoding)
	case ToLocale:
		args = fmt.Sprintf("encoding=%s", v.Encoding)
	case nil:
		return "none"
	}
	return fmt.Sprintf("%s [%s] %s", r.Kind(), mask, args)
}
