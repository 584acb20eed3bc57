package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/semval/pkg/value"
)

func newQueryCmd(flags *rootFlags) *cobra.Command {
	var (
		vf     valueFlags
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "query TEXT",
		Short: "Parse a query condition such as \">=10 km\" or \"~Ber*\"",
		Long: "Split a leading comparator from TEXT and parse the rest as a value.\n" +
			"Allowed values are not enforced on query values.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			if cmd.Flags().Changed("strict") {
				p, err := value.NewComparatorParser(s.settings.Comparators, strict)
				if err != nil {
					return err
				}
				s.factory.SetComparators(p)
			}

			v, err := s.newValue(vf.property, vf.typeID)
			if err != nil {
				return err
			}
			q := s.factory.Query(v, args[0])

			r := reportValue(q.Value, vf.mode())
			r.Comparator = q.Comparator.String()
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), r)
			}
			return printValueReport(cmd.OutOrStdout(), r)
		},
	}
	vf.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "bare < and > are strict comparisons (default from config)")
	return cmd
}
