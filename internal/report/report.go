// Package report renders harness runs for the console.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-sod/avl/internal/report/model"
)

type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var ErrUnknownFormat = errors.New("unknown report format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Decode lets envconfig accept any letter case and reject unknown formats
// while the environment is loaded.
func (f *Format) Decode(value string) error {
	format, err := ParseFormat(value)
	if err != nil {
		return err
	}
	*f = format
	return nil
}

// Render writes run to w in the given format.
func Render(w io.Writer, run *model.Run, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(run); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(run); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatText, "":
		return renderText(w, run)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// RenderList writes one line per run.
func RenderList(w io.Writer, runs []model.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tSTARTED\tELAPSED\tRESULT")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\t%s\n",
			run.ID, run.Kind, run.StartedAt.Format(time.RFC3339), run.Elapsed().Round(time.Millisecond), outcome(run))
	}
	return tw.Flush()
}

// RenderCounts writes how many runs of each kind are stored.
func RenderCounts(w io.Writer, counts []model.KindCount) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tRUNS")
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Kind, c.Runs)
	}
	return tw.Flush()
}

func outcome(run model.Run) string {
	switch {
	case run.Summary != nil:
		return fmt.Sprintf("%d trials, mean insert %v", run.Summary.Trials, run.Summary.Insert.Mean)
	case run.Footprint != nil:
		return fmt.Sprintf("%d nodes, %d bytes", run.Footprint.Nodes, run.Footprint.TreeBytes)
	case run.Stress != nil && run.Stress.Failure != "":
		return "FAILED"
	case run.Stress != nil:
		return fmt.Sprintf("%d/%d rounds passed", run.Stress.Passed, run.Stress.Rounds)
	default:
		return "-"
	}
}

func renderText(w io.Writer, run *model.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Run %s (%s)\n", run.ID, run.Kind)
	keys := make([]string, 0, len(run.Params))
	for k := range run.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(tw, "  %s:\t%s\n", k, run.Params[k])
	}
	fmt.Fprintln(tw)

	if len(run.Trials) > 0 {
		fmt.Fprintln(tw, "TRIAL\tKEYS\tDISTINCT\tHEIGHT\tINSERT (ns)\tFIND (ns)\tDELETE (ns)")
		for _, t := range run.Trials {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
				t.Index, t.Keys, t.Distinct, t.Height, t.Insert.Nanoseconds(), t.Find.Nanoseconds(), t.Delete.Nanoseconds())
		}
		fmt.Fprintln(tw)
	}
	if s := run.Summary; s != nil {
		fmt.Fprintf(tw, "PHASE\tTOTAL\tMEAN\tMIN\tMAX\n")
		for _, p := range []struct {
			name string
			ps   model.PhaseSummary
		}{{"insert", s.Insert}, {"find", s.Find}, {"delete", s.Delete}} {
			fmt.Fprintf(tw, "%s\t%v\t%v\t%v\t%v\n", p.name, p.ps.Total, p.ps.Mean, p.ps.Min, p.ps.Max)
		}
		fmt.Fprintf(tw, "max height:\t%d\n", s.MaxHeight)
	}
	if fp := run.Footprint; fp != nil {
		fmt.Fprintf(tw, "%s object internals:\n", fp.NodeType)
		fmt.Fprintln(tw, "OFFSET\tSIZE\tTYPE\tFIELD")
		for _, f := range fp.NodeFields {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", f.Offset, f.Size, f.Type, f.Name)
		}
		fmt.Fprintf(tw, "instance size:\t%d bytes\n\n", fp.NodeSize)
		fmt.Fprintf(tw, "keys inserted:\t%d\n", fp.Keys)
		fmt.Fprintf(tw, "nodes:\t%d\n", fp.Nodes)
		fmt.Fprintf(tw, "tree bytes:\t%d\n", fp.TreeBytes)
		fmt.Fprintf(tw, "heap growth:\t%d bytes in %d objects\n", fp.HeapBytes, fp.HeapObjects)
		fmt.Fprintf(tw, "height:\t%d (bound %d)\n", fp.Height, fp.HeightBound)
	}
	if st := run.Stress; st != nil {
		fmt.Fprintf(tw, "rounds passed:\t%d/%d\n", st.Passed, st.Rounds)
		fmt.Fprintf(tw, "operations:\t%d\n", st.Operations)
		fmt.Fprintf(tw, "max height:\t%d\n", st.MaxHeight)
		if st.Failure != "" {
			fmt.Fprintf(tw, "failure:\t%s\n", st.Failure)
		}
	}
	return tw.Flush()
}
