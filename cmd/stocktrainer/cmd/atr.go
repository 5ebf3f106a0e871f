package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stocktrainer/indicators"
	"stocktrainer/market"
	"stocktrainer/risk"
)

var atrCmd = &cobra.Command{
	Use:   "atr",
	Short: "Compute the Average True Range of a candle CSV",
	Long: `Compute Wilder-smoothed ATR over daily bars.

Example:
  stocktrainer atr --csv data/600519.csv --period 14`,
	RunE: runATR,
}

var (
	atrCSVPath string
	atrSymbol  string
	atrPeriod  int
	atrEntry   float64
)

func init() {
	rootCmd.AddCommand(atrCmd)

	atrCmd.Flags().StringVarP(&atrCSVPath, "csv", "c", "", "CSV file of bars (date,open,high,low,close,volume)")
	atrCmd.Flags().StringVarP(&atrSymbol, "symbol", "s", "SYM", "symbol label for the series")
	atrCmd.Flags().IntVarP(&atrPeriod, "period", "p", indicators.DefaultATRPeriod, "smoothing period")
	atrCmd.Flags().Float64Var(&atrEntry, "entry", 0, "entry price; also prints the ATR-derived stop")
	atrCmd.MarkFlagRequired("csv")
}

func runATR(cmd *cobra.Command, args []string) error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	series, err := market.LoadCSV(atrCSVPath, atrSymbol, log)
	if err != nil {
		return err
	}

	atr, err := indicators.ATR(series.Candles, atrPeriod)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d bars, ATR(%d) = %.4f\n", series.Symbol, series.Len(), atrPeriod, atr)

	if atrEntry > 0 {
		v := indicators.ATROrFallback(series.Candles, atrPeriod, atrEntry)
		stop := risk.StopFromATR(risk.Long, atrEntry, v, risk.DefaultATRStopMultiple)
		fmt.Printf("long stop at %.1fx ATR below entry %.2f: %.2f\n",
			risk.DefaultATRStopMultiple, atrEntry, stop)
	}
	return nil
}
