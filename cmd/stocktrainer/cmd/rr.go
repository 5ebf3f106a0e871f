package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stocktrainer/risk"
)

var rrCmd = &cobra.Command{
	Use:   "rr",
	Short: "Evaluate the profit/risk ratio of an entry/stop/target plan",
	RunE:  runRR,
}

var (
	rrEntry  float64
	rrStop   float64
	rrTarget float64
	rrSide   string
)

func init() {
	rootCmd.AddCommand(rrCmd)

	rrCmd.Flags().Float64VarP(&rrEntry, "entry", "e", 0, "entry price")
	rrCmd.Flags().Float64VarP(&rrStop, "stop", "s", 0, "stop-loss price")
	rrCmd.Flags().Float64VarP(&rrTarget, "target", "t", 0, "take-profit price")
	rrCmd.Flags().StringVar(&rrSide, "side", "long", "trade side: long|short")
	rrCmd.MarkFlagRequired("entry")
	rrCmd.MarkFlagRequired("stop")
	rrCmd.MarkFlagRequired("target")
}

func runRR(cmd *cobra.Command, args []string) error {
	side := risk.Long
	if rrSide == "short" {
		side = risk.Short
	}

	pr := risk.EvaluateProfitRisk(side, rrEntry, rrStop, rrTarget)

	fmt.Printf("risk:   %.4f\n", pr.Risk)
	fmt.Printf("reward: %.4f\n", pr.Reward)
	if !pr.Valid {
		fmt.Println("ratio:  0 (invalid: stop/target on wrong side of entry)")
		return nil
	}
	fmt.Printf("ratio:  %.2f\n", pr.Ratio)
	return nil
}
