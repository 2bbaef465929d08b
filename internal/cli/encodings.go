package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/batchren/internal/codec"
)

type encodingInfo struct {
	Name      string `json:"name"`
	Canonical string `json:"canonical"`
}

var encodingsCmd = &cobra.Command{
	Use:   "encodings",
	Short: "List the common encodings for to-unicode and to-locale",
	Long: `List the encodings most often behind mangled file names.

Any IANA or WHATWG encoding name is accepted by --encoding; these are the
usual suspects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos := make([]encodingInfo, 0, len(codec.Presets))
		for _, name := range codec.Presets {
			canonical, err := codec.CanonicalName(name)
			if err != nil {
				return err
			}
			infos = append(infos, encodingInfo{Name: name, Canonical: canonical})
		}

		if jsonOutput {
			return outputJSON(infos)
		}

		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			rows = append(rows, []string{info.Name, info.Canonical})
		}
		PrintTable([]string{"NAME", "IANA NAME"}, rows)
		return nil
	},
}
