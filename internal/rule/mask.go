package rule

import (
	"fmt"
	"strings"
)

// Mask selects which part of a file name a rule operates on.
type Mask int

const (
	// ExtExcluded applies the rule to the base name and keeps the extension.
	ExtExcluded Mask = iota
	// ExtOnly applies the rule to the extension and keeps the base name.
	ExtOnly
)

func (m Mask) String() string {
	switch m {
	case ExtExcluded:
		return "ext-excluded"
	case ExtOnly:
		return "ext-only"
	default:
		return fmt.Sprintf("Mask(%d)", int(m))
	}
}

// Valid reports whether m is a known mask.
func (m Mask) Valid() bool {
	return m == ExtExcluded || m == ExtOnly
}

// splitName splits a file name at its last dot. A name without a dot has an
// empty extension; ".bashrc" has an empty base and extension "bashrc".
func splitName(name string) (base, ext string, dotted bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return name, "", false
	}
	return name[:i], name[i+1:], true
}

// selectText returns the part of name the mask exposes to a rule.
func selectText(mask Mask, name string) (string, error) {
	base, ext, _ := splitName(name)
	switch mask {
	case ExtExcluded:
		return base, nil
	case ExtOnly:
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownMask, mask)
	}
}

// joinName rebuilds a file name from the original name and the rewritten
// masked text. The dot is only emitted when the original name had one or the
// extension part is non-empty, so extension-less names stay that way.
func joinName(mask Mask, name, modText string) (string, error) {
	base, ext, dotted := splitName(name)
	switch mask {
	case ExtExcluded:
		if dotted || ext != "" {
			return modText + "." + ext, nil
		}
		return modText, nil
	case ExtOnly:
		if dotted || modText != "" {
			return base + "." + modText, nil
		}
		return base, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownMask, mask)
	}
}
