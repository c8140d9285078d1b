package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/backend-lab/internal/invoice"
	"github.com/noah-isme/backend-lab/internal/lab"
	"github.com/noah-isme/backend-lab/internal/reference"
	"github.com/noah-isme/backend-lab/internal/result"
)

// labcalc runs the billing and classification engines offline, e.g. to double-check a printed bill.
func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "labcalc",
		Short:         "Offline lab billing and result calculator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(invoiceCmd(), wordsCmd(), classifyCmd(), resolveCmd())
	return root
}

func invoiceCmd() *cobra.Command {
	var subtotal, discount, tax float64
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Compute discount, tax and final amount for a subtotal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), invoice.NewBill(subtotal, discount, tax))
		},
	}
	cmd.Flags().Float64Var(&subtotal, "subtotal", 0, "sum of ordered test prices")
	cmd.Flags().Float64Var(&discount, "discount", 0, "discount percent")
	cmd.Flags().Float64Var(&tax, "tax", 0, "tax percent applied after discount")
	_ = cmd.MarkFlagRequired("subtotal")
	return cmd
}

func wordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words AMOUNT",
		Short: "Spell an amount in words (Indian numbering)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, ok := lab.ParseStrictDecimal(args[0])
			if !ok {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), invoice.AmountInWords(amount))
			return err
		},
	}
}

func classifyCmd() *cobra.Command {
	var value, minValue, maxValue string
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a value against a min/max range",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rng *reference.Range
			if cmd.Flags().Changed("min") || cmd.Flags().Changed("max") {
				rng = &reference.Range{MinValue: reference.Bound(minValue), MaxValue: reference.Bound(maxValue)}
			}
			c := result.Classify(value, rng)
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"isAbnormal":     c.IsAbnormal,
				"status":         c.Status,
				"referenceRange": result.FormatRange(rng),
			})
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "measured value")
	cmd.Flags().StringVar(&minValue, "min", "", "range lower bound")
	cmd.Flags().StringVar(&maxValue, "max", "", "range upper bound")
	return cmd
}

func resolveCmd() *cobra.Command {
	var file, gender string
	var age int
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Pick the reference range for a patient from a JSON array of ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				in = f
			}
			var ranges []reference.Range
			if err := json.NewDecoder(in).Decode(&ranges); err != nil {
				return fmt.Errorf("decode ranges: %w", err)
			}
			var d reference.Demographics
			if cmd.Flags().Changed("age") {
				d.Age = &age
			}
			if cmd.Flags().Changed("gender") {
				d.Gender = &gender
			}
			sel := reference.Select(ranges, d)
			return writeJSON(cmd.OutOrStdout(), map[string]any{"range": sel.Range, "index": sel.Index, "rule": sel.Rule})
		},
	}
	cmd.Flags().StringVar(&file, "file", "-", "ranges file, - for stdin")
	cmd.Flags().IntVar(&age, "age", 0, "patient age in years")
	cmd.Flags().StringVar(&gender, "gender", "", "patient gender")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
