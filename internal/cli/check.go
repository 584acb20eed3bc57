package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/semval/internal/metrics"
	"github.com/mesh-intelligence/semval/pkg/types"
)

// checkRecord is one line of a check input file.
type checkRecord struct {
	Property string `json:"property"`
	Type     string `json:"type"`
	Value    string `json:"value"`
}

// checkResult is the outcome for one input line.
type checkResult struct {
	Line     int      `json:"line"`
	Property string   `json:"property,omitempty"`
	Type     string   `json:"type"`
	Value    string   `json:"value"`
	Valid    bool     `json:"valid"`
	Hash     string   `json:"hash,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// checkSummary is the JSON output of the check command.
type checkSummary struct {
	Records int                `json:"records"`
	Invalid int                `json:"invalid"`
	Results []checkResult      `json:"results"`
	Events  map[string]float64 `json:"events"`
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a JSONL file of property values",
		Long: "Validate every line of FILE, a JSONL file of records\n" +
			"{\"property\": NAME, \"type\": TYPE, \"value\": TEXT}. A record names a\n" +
			"property, a type, or both (the property wins). Use - for stdin.\n" +
			"Exits non-zero when any record is invalid.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			results, err := s.checkAll(cmd, in)
			if err != nil {
				return err
			}

			totals, err := s.recorder.Totals()
			if err != nil {
				return systemError("gather metrics: %w", err)
			}
			summary := checkSummary{Records: len(results), Results: []checkResult{}, Events: totals}
			for _, r := range results {
				if !r.Valid {
					summary.Invalid++
				}
				if all || !r.Valid {
					summary.Results = append(summary.Results, r)
				}
			}

			if flags.jsonMode {
				if err := printJSON(cmd.OutOrStdout(), summary); err != nil {
					return err
				}
			} else if err := printCheckSummary(cmd.OutOrStdout(), summary); err != nil {
				return err
			}

			if summary.Invalid > 0 {
				return fmt.Errorf("%d of %d records invalid", summary.Invalid, summary.Records)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "report valid records too")
	return cmd
}

// checkAll reads records from in and validates them on s.settings.Workers
// goroutines. Each goroutine builds its own values; the factory and the
// backend are shared.
func (s *session) checkAll(cmd *cobra.Command, in io.Reader) ([]checkResult, error) {
	var lines [][]byte
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, append([]byte(nil), scanner.Bytes()...))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	results := make([]checkResult, len(lines))
	skip := make([]bool, len(lines))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(s.settings.Workers)
	for i, line := range lines {
		if len(line) == 0 {
			skip[i] = true
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := s.checkLine(i+1, line)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	for i, r := range results {
		if !skip[i] {
			out = append(out, r)
		}
	}
	s.logger.Debug("check finished", slog.Int("records", len(out)), slog.Int("workers", s.settings.Workers))
	return out, nil
}

// checkLine validates one record. Malformed records and unknown properties
// or types are reported as invalid results; only storage failures abort.
func (s *session) checkLine(line int, data []byte) (checkResult, error) {
	var rec checkRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return checkResult{Line: line, Errors: []string{"malformed record: " + err.Error()}}, nil
	}
	res := checkResult{Line: line, Property: rec.Property, Type: rec.Type, Value: rec.Value}

	v, err := s.newValue(rec.Property, rec.Type)
	switch {
	case errors.Is(err, types.ErrCupboardDetached):
		return res, err
	case err != nil:
		res.Errors = []string{err.Error()}
		return res, nil
	}
	v.SetUserValue(rec.Value, "")

	res.Type = v.TypeID()
	res.Valid = v.IsValid()
	res.Hash = v.Hash()
	res.Errors = v.Errors()
	return res, nil
}

// printCheckSummary writes the invalid records and the event totals.
func printCheckSummary(w io.Writer, summary checkSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range summary.Results {
		status := "ok"
		if !r.Valid {
			status = "invalid"
		}
		fmt.Fprintf(tw, "line %d\t%s\t%s\t%q", r.Line, status, r.Type, r.Value)
		for _, e := range r.Errors {
			fmt.Fprintf(tw, "\t%s", e)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d records, %d invalid\n", summary.Records, summary.Invalid)
	for _, name := range metrics.EventNames(summary.Events) {
		fmt.Fprintf(w, "  %-12s %.0f\n", name, summary.Events[name])
	}
	return nil
}
