package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/exoplanet-imaging-challenge/eidc2/fits"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.fits> [file.fits ...]",
		Short: "List the HDUs of a FITS or MEF file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, path := range args {
				if i > 0 {
					fmt.Println()
				}
				if err := printHDUs(path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func printHDUs(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	infos, err := fits.Info(f)
	if err != nil {
		return err
	}

	fmt.Println(path)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "HDU\tNAME\tBITPIX\tAXES")
	for _, info := range infos {
		name := info.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", info.Index, name, info.Bitpix, formatAxes(info.Axes))
	}
	return w.Flush()
}

func formatAxes(axes []int) string {
	if len(axes) == 0 {
		return "-"
	}
	parts := make([]string, len(axes))
	for i, a := range axes {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, "x")
}
