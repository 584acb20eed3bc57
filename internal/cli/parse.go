package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/semval/pkg/value"
)

// valueFlags selects and shapes the value a command builds.
type valueFlags struct {
	typeID   string
	property string
	html     bool
}

func (f *valueFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.typeID, "type", "", "value type id (see 'semval types')")
	cmd.Flags().StringVar(&f.property, "property", "", "property whose type and constraints apply")
	cmd.Flags().BoolVar(&f.html, "html", false, "render texts as HTML instead of wiki text")
	cmd.MarkFlagsMutuallyExclusive("type", "property")
	cmd.MarkFlagsOneRequired("type", "property")
}

func (f *valueFlags) mode() value.OutputMode {
	if f.html {
		return value.ModeHTML
	}
	return value.ModeWiki
}

func newParseCmd(flags *rootFlags) *cobra.Command {
	var (
		vf      valueFlags
		caption string
		format  string
		keys    bool
	)
	cmd := &cobra.Command{
		Use:   "parse TEXT | parse --keys KEY...",
		Short: "Parse user text (or internal keys) into a value",
		Long: "Parse user text into a typed value and print its keys, texts, errors and\n" +
			"links. With --property the property's allowed values are enforced and\n" +
			"links are derived. With --keys the arguments are internal keys instead.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !keys && len(args) != 1 {
				return cobra.ExactArgs(1)(cmd, args)
			}
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			v, err := s.newValue(vf.property, vf.typeID)
			if err != nil {
				return err
			}
			v.SetOutputFormat(format)
			if keys {
				v.SetKeys(args)
			} else {
				v.SetUserValue(args[0], caption)
			}

			r := reportValue(v, vf.mode())
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), r)
			}
			return printValueReport(cmd.OutOrStdout(), r)
		},
	}
	vf.register(cmd)
	cmd.Flags().StringVar(&caption, "caption", "", "display label that replaces the short text")
	cmd.Flags().StringVar(&format, "format", "", "output format hint passed to the type (\"-\" for plain)")
	cmd.Flags().BoolVar(&keys, "keys", false, "arguments are internal keys")
	return cmd
}
