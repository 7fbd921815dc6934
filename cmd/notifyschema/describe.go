package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sumire/notifyschema/internal/schema"
)

var describeJSON bool

var describeCmd = &cobra.Command{
	Use:   "describe [kind]",
	Short: "List structure kinds or print the field table of one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := schema.Default()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			for _, k := range registry.Kinds() {
				fmt.Fprintln(out, k)
			}
			return nil
		}

		table, err := registry.Describe(schema.Kind(args[0]))
		if err != nil {
			return err
		}

		if describeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(table)
		}
		return printTable(out, table)
	},
}

func init() {
	describeCmd.Flags().BoolVar(&describeJSON, "json", false, "print the table as JSON")
}

func printTable(w io.Writer, table *schema.FieldTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tTYPE\tREQUIRED\tDEFAULT\tIMMUTABLE\tDETAIL")
	for _, f := range table.Fields() {
		detail := string(f.Kind)
		if f.Enum != nil {
			detail = f.Enum.Name
		}
		def := "-"
		if f.Default != nil {
			def = fmt.Sprint(f.Default)
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%t\t%s\n", f.Name, f.Type, f.Required, def, f.Immutable, detail)
	}
	if table.IsUnion() {
		fmt.Fprintf(tw, "\nunion on %q\n", table.Discriminator())
	}
	return tw.Flush()
}
