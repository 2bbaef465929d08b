package rule

import (
	"fmt"
	"strings"
)

// Kind identifies a rename rule at the argument-list boundary.
type Kind int

const (
	KindRename Kind = iota
	KindOrdinal
	KindOrdinalReverse
	KindReplace
	KindInsert
	KindInsertLast
	KindDelete
	KindDeleteLast
	KindToUnicode
	KindToLocale
)

var kindNames = map[Kind]string{
	KindRename:         "rename",
	KindOrdinal:        "ordinal",
	KindOrdinalReverse: "ordinal-reverse",
	KindReplace:        "replace",
	KindInsert:         "insert",
	KindInsertLast:     "insert-last",
	KindDelete:         "delete",
	KindDeleteLast:     "delete-last",
	KindToUnicode:      "to-unicode",
	KindToLocale:       "to-locale",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindRename, KindOrdinal, KindOrdinalReverse, KindReplace,
		KindInsert, KindInsertLast, KindDelete, KindDeleteLast,
		KindToUnicode, KindToLocale,
	}
}

// ParseKind maps a kind name such as "insert-last" to its Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, s)
}
