package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/batchren/internal/rule"
)

const (
	maxOrdinalDigits     = 9
	defaultOrdinalDigits = 3
)

// ruleFlags holds the rule options shared by test and commit.
type ruleFlags struct {
	kind     string
	extOnly  bool
	to       string
	prefix   string
	ordinal  string
	digits   int
	reverse  bool
	from     string
	with     string
	text     string
	at       int
	tail     bool
	count    int
	encoding string
}

func (f *ruleFlags) bind(cmd *cobra.Command) {
	names := make([]string, 0, 7)
	for _, k := range []rule.Kind{rule.KindRename, rule.KindOrdinal, rule.KindReplace, rule.KindInsert, rule.KindDelete, rule.KindToUnicode, rule.KindToLocale} {
		names = append(names, k.String())
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.kind, "rule", "r", "", "Rename rule: "+strings.Join(names, ", "))
	flags.BoolVar(&f.extOnly, "ext-only", false, "Apply the rule to the extension instead of the base name")
	flags.StringVar(&f.to, "to", "", "New name (rename)")
	flags.StringVar(&f.prefix, "prefix", "", "Text before the counter (ordinal)")
	flags.StringVar(&f.ordinal, "ordinal", "", "First counter value, its width sets the padding (ordinal)")
	flags.IntVar(&f.digits, "digits", defaultOrdinalDigits, "Counter width, pads or truncates --ordinal (ordinal)")
	flags.BoolVar(&f.reverse, "reverse", false, "Count down instead of up (ordinal)")
	flags.StringVar(&f.from, "from", "", "Text to find (replace)")
	flags.StringVar(&f.with, "with", "", "Replacement text (replace)")
	flags.StringVar(&f.text, "text", "", "Text to insert (insert)")
	flags.IntVar(&f.at, "at", 1, "1-based character position (insert, delete)")
	flags.BoolVar(&f.tail, "tail", false, "Count --at from the end of the name (insert, delete)")
	flags.IntVar(&f.count, "count", 1, "Number of characters to delete (delete)")
	flags.StringVar(&f.encoding, "encoding", "", "Encoding the names were mangled with (to-unicode, to-locale)")
	_ = cmd.MarkFlagRequired("rule")
	_ = cmd.RegisterFlagCompletionFunc("rule", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// build maps the flags onto a rule kind with its string and number
// arguments and hands them to rule.Parse. Options the rule requires are only
// passed when set, so a missing one surfaces as insufficient arguments.
func (f *ruleFlags) build(cmd *cobra.Command) (rule.Mask, rule.Rule, error) {
	mask := rule.ExtExcluded
	if f.extOnly {
		mask = rule.ExtOnly
	}

	kind, err := rule.ParseKind(f.kind)
	if err != nil {
		return mask, nil, err
	}

	changed := cmd.Flags().Changed
	var strs []string
	var nums []int

	switch kind {
	case rule.KindRename:
		if changed("to") {
			strs = append(strs, f.to)
		}
	case rule.KindOrdinal, rule.KindOrdinalReverse:
		if f.reverse {
			kind = rule.KindOrdinalReverse
		}
		template := f.ordinal
		if !changed("ordinal") || changed("digits") {
			template, err = fitDigits(f.ordinal, f.digits)
			if err != nil {
				return mask, nil, err
			}
		}
		strs = append(strs, f.prefix, template)
	case rule.KindReplace:
		if changed("from") {
			strs = append(strs, f.from, f.with)
		}
	case rule.KindInsert, rule.KindInsertLast:
		if f.tail {
			kind = rule.KindInsertLast
		}
		if changed("text") {
			strs = append(strs, f.text)
		}
		nums = append(nums, f.at-1)
	case rule.KindDelete, rule.KindDeleteLast:
		if f.tail {
			kind = rule.KindDeleteLast
		}
		nums = append(nums, f.at-1, f.count)
	case rule.KindToUnicode, rule.KindToLocale:
		if changed("encoding") {
			strs = append(strs, f.encoding)
		}
	}

	r, err := rule.Parse(kind, strs, nums)
	if err != nil {
		return mask, nil, err
	}
	return mask, r, nil
}

// fitDigits pads an ordinal template with leading zeros or keeps its last
// digits so it is exactly n digits wide. An empty template counts from 1.
func fitDigits(template string, n int) (string, error) {
	if n < 1 || n > maxOrdinalDigits {
		return "", fmt.Errorf("%w: digits must be between 1 and %d, got %d", rule.ErrInvalidArgument, maxOrdinalDigits, n)
	}
	switch {
	case len(template) > n:
		return template[len(template)-n:], nil
	case template == "":
		return strings.Repeat("0", n-1) + "1", nil
	default:
		return strings.Repeat("0", n-len(template)) + template, nil
	}
}
