package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/soaringjerry/messageservice/internal/catalog"
)

func newSeedCmd() *cobra.Command {
	var file, format string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Print the seed set the server starts with",
		Long: "Prints the embedded seed set, or validates and prints the seed file given\n" +
			"with --file. Exits non-zero when the file is invalid.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set := catalog.DefaultSeedSet()
			if file != "" {
				var err error
				if set, err = catalog.LoadSeedFile(file); err != nil {
					return err
				}
			}
			switch format {
			case "yaml":
				return writeSeedYAML(cmd.OutOrStdout(), set)
			case "table":
				writeSeedTable(cmd.OutOrStdout(), set)
				return nil
			}
			return fmt.Errorf("unknown format %q (want yaml or table)", format)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "seed file to check instead of the embedded set")
	cmd.Flags().StringVar(&format, "format", "table", "output format: yaml or table")
	return cmd
}

func writeSeedYAML(w io.Writer, set catalog.SeedSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(set); err != nil {
		return err
	}
	return enc.Close()
}

func writeSeedTable(w io.Writer, set catalog.SeedSet) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Group", "Code", "User message"})
	table.SetAutoWrapText(false)
	for _, g := range set.Groups {
		for _, m := range g.Messages {
			table.Append([]string{g.Name, m.Code, m.UserMessage})
		}
	}
	table.SetFooter([]string{"", "Total", fmt.Sprint(len(set.Messages()))})
	table.Render()
}
