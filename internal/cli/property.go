package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/semval/pkg/types"
)

func newPropertyCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Manage properties and their constraints",
	}
	cmd.AddCommand(newPropertyAddCmd(flags))
	cmd.AddCommand(newPropertyListCmd(flags))
	cmd.AddCommand(newPropertyShowCmd(flags))
	cmd.AddCommand(newPropertyRemoveCmd(flags))
	cmd.AddCommand(newPropertyConstraintCmd(flags, "allow", types.ConstraintAllowedValues,
		"Add allowed values to a property",
		"Values are stored as written and compared by their parsed form, so\n\"1,000\" and \"1000\" are the same allowed number."))
	cmd.AddCommand(newPropertyConstraintCmd(flags, "service", types.ConstraintServiceLinks,
		"Attach service link templates to a property",
		"Each SERVICE names the message smw_service_<SERVICE>. The expanded message\nholds one \"label|url\" pair per line."))
	return cmd
}

func newPropertyAddCmd(flags *rootFlags) *cobra.Command {
	var typeID, description string
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Define a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			// Reject types no kind is registered for.
			if _, err := s.factory.New(typeID); err != nil {
				return err
			}

			tbl, err := s.backend.GetTable(types.PropertiesTable)
			if err != nil {
				return systemError("get table: %w", err)
			}
			p := &types.Property{Name: args[0], TypeID: typeID, Description: description}
			id, err := tbl.Set("", p)
			if err != nil {
				return fmt.Errorf("add property %q: %w", args[0], err)
			}
			s.logger.Info("property added", slog.String("name", p.Name), slog.String("type", typeID))

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringVar(&typeID, "type", "_txt", "value type id (see 'semval types')")
	cmd.Flags().StringVar(&description, "description", "", "what the property records")
	return cmd
}

func newPropertyListCmd(flags *rootFlags) *cobra.Command {
	var typeID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			tbl, err := s.backend.GetTable(types.PropertiesTable)
			if err != nil {
				return systemError("get table: %w", err)
			}
			filter := types.Filter{}
			if typeID != "" {
				filter["type_id"] = typeID
			}
			results, err := tbl.Fetch(filter)
			if err != nil {
				return fmt.Errorf("fetch properties: %w", err)
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), results)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tDESCRIPTION")
			for _, r := range results {
				p := r.(*types.Property)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.TypeID, p.Description)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&typeID, "type", "", "only list properties of this type")
	return cmd
}

// propertyDetail is a property with its constraint values.
type propertyDetail struct {
	*types.Property
	AllowedValues []string `json:"allowed_values"`
	Services      []string `json:"services"`
}

func newPropertyShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a property and its constraints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.backend.PropertyByName(args[0])
			if err != nil {
				return err
			}
			d := propertyDetail{Property: p}
			if page, ok := p.Page(); ok {
				if d.AllowedValues, err = s.backend.ConstraintValues(page, types.ConstraintAllowedValues); err != nil {
					return systemError("read allowed values: %w", err)
				}
				if d.Services, err = s.backend.ConstraintValues(page, types.ConstraintServiceLinks); err != nil {
					return systemError("read services: %w", err)
				}
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), d)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', 0)
			fmt.Fprintf(tw, "name:\t%s\n", p.Name)
			fmt.Fprintf(tw, "type:\t%s\n", p.TypeID)
			if p.Description != "" {
				fmt.Fprintf(tw, "description:\t%s\n", p.Description)
			}
			for _, v := range d.AllowedValues {
				fmt.Fprintf(tw, "allows:\t%s\n", v)
			}
			for _, v := range d.Services {
				fmt.Fprintf(tw, "service:\t%s\n", v)
			}
			return tw.Flush()
		},
	}
}

func newPropertyRemoveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Delete a property and its constraints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.backend.PropertyByName(args[0])
			if err != nil {
				return err
			}
			tbl, err := s.backend.GetTable(types.PropertiesTable)
			if err != nil {
				return systemError("get table: %w", err)
			}
			if err := tbl.Delete(p.PropertyID); err != nil {
				return fmt.Errorf("remove property %q: %w", p.Name, err)
			}
			if !flags.jsonMode {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", p.Name)
			}
			return nil
		},
	}
}

// newPropertyConstraintCmd builds a command appending values to one
// constraint relation of a property.
func newPropertyConstraintCmd(flags *rootFlags, use, relation, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " NAME VALUE...",
		Short: short,
		Long:  short + ".\n\n" + long,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.backend.PropertyByName(args[0])
			if err != nil {
				return err
			}
			existing, err := p.GetConstraints(s.backend, relation)
			if err != nil {
				return systemError("read constraints: %w", err)
			}

			added := 0
			for i, raw := range args[1:] {
				if relation == types.ConstraintAllowedValues {
					s.warnUnparsable(p, raw)
				}
				_, err := p.DefineConstraint(s.backend, relation, raw, len(existing)+i)
				if errors.Is(err, types.ErrDuplicateName) {
					s.logger.Warn("value already listed", slog.String("property", p.Name), slog.String("value", raw))
					continue
				}
				if err != nil {
					return fmt.Errorf("add %q to %s: %w", raw, p.Name, err)
				}
				added++
			}

			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"property": p.Name, "added": added})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d value(s) to %s\n", added, p.Name)
			return nil
		},
	}
}

// warnUnparsable logs candidates that do not parse as the property's type.
// Such candidates are kept but never match.
func (s *session) warnUnparsable(p *types.Property, raw string) {
	v, err := s.factory.New(p.TypeID)
	if err != nil {
		return
	}
	v.SetUserValue(raw, "")
	if !v.IsValid() {
		s.logger.Warn("allowed value does not parse",
			slog.String("property", p.Name),
			slog.String("value", raw),
			slog.String("error", v.ErrorText()))
	}
}
