package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// typeInfo describes one registered value type.
type typeInfo struct {
	TypeID     string `json:"type_id"`
	Signature  string `json:"signature"`
	SortField  int    `json:"sort_field"`
	MatchField int    `json:"match_field"`
}

func newTypesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered value types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			var infos []typeInfo
			for _, id := range s.factory.TypeIDs() {
				v, err := s.factory.New(id)
				if err != nil {
					return err
				}
				infos = append(infos, typeInfo{
					TypeID:     id,
					Signature:  string(v.Signature()),
					SortField:  v.SortField(),
					MatchField: v.MatchField(),
				})
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), infos)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tSIGNATURE\tSORT\tMATCH")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", info.TypeID, info.Signature, info.SortField, info.MatchField)
			}
			return tw.Flush()
		},
	}
}
