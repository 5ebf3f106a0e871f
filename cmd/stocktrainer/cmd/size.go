package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stocktrainer/risk"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Compute a round-lot position size",
	Long: `Compute position size in one of three modes.

Examples:
  stocktrainer size --mode percent --entry 10 --equity 100000 --percent 20
  stocktrainer size --mode fixed --entry 10 --equity 100000 --quantity 2350
  stocktrainer size --mode risk --entry 10 --equity 100000 --stop 9 --risk-percent 2`,
	RunE: runSize,
}

var (
	sizeMode     string
	sizeSide     string
	sizeEntry    float64
	sizeEquity   float64
	sizePercent  float64
	sizeQuantity int
	sizeRiskPct  float64
	sizeStop     float64
)

func init() {
	rootCmd.AddCommand(sizeCmd)

	sizeCmd.Flags().StringVarP(&sizeMode, "mode", "m", "percent", "sizing mode: percent|fixed|risk")
	sizeCmd.Flags().StringVar(&sizeSide, "side", "long", "trade side: long|short")
	sizeCmd.Flags().Float64VarP(&sizeEntry, "entry", "e", 0, "entry price")
	sizeCmd.Flags().Float64Var(&sizeEquity, "equity", 0, "account equity")
	sizeCmd.Flags().Float64Var(&sizePercent, "percent", 0, "percent of equity (percent mode)")
	sizeCmd.Flags().IntVarP(&sizeQuantity, "quantity", "q", 0, "share quantity (fixed mode)")
	sizeCmd.Flags().Float64Var(&sizeRiskPct, "risk-percent", risk.DefaultRiskPercent, "equity percent at risk (risk mode)")
	sizeCmd.Flags().Float64Var(&sizeStop, "stop", 0, "stop-loss price (risk mode)")
	sizeCmd.MarkFlagRequired("entry")
}

func runSize(cmd *cobra.Command, args []string) error {
	in := risk.Input{
		EntryPrice:    sizeEntry,
		AccountEquity: sizeEquity,
		Percent:       sizePercent,
		Quantity:      sizeQuantity,
		RiskPercent:   sizeRiskPct,
		StopLoss:      sizeStop,
	}

	switch sizeMode {
	case "fixed":
		in.Mode = risk.FixedQuantity
	case "risk":
		in.Mode = risk.RiskBased
	case "percent":
		in.Mode = risk.PercentOfEquity
	default:
		return fmt.Errorf("unknown mode %q (want percent, fixed, or risk)", sizeMode)
	}
	if sizeSide == "short" {
		in.Side = risk.Short
	}

	res, err := risk.Compute(in)
	if err != nil {
		return err
	}

	fmt.Printf("mode:             %s\n", in.Mode)
	fmt.Printf("quantity:         %d shares\n", res.Quantity)
	fmt.Printf("position value:   %.2f\n", res.PositionValue)
	fmt.Printf("position percent: %.2f%%\n", res.PositionPercent)
	return nil
}
