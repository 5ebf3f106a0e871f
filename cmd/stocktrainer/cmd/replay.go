package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stocktrainer/config"
	"stocktrainer/journal"
	"stocktrainer/market"
	"stocktrainer/replay"
	"stocktrainer/sim"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay historical bars against a virtual account",
	Long: `Replay daily bars from CSV and execute scripted buy/sell events.

The events file holds one "index,action" row per trade, where index is the
bar the replay cursor must reach, e.g.:

  35,buy
  52,sell

Examples:
  stocktrainer replay --csv data/600519.csv
  stocktrainer replay --csv data/600519.csv --events trades.csv --config trainer.yaml`,
	RunE: runReplayCmd,
}

var (
	replayCSVPath    string
	replayEventsPath string
	replaySymbol     string
	replayConfigPath string
	replayBalance    float64
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayCSVPath, "csv", "c", "", "CSV file of bars (date,open,high,low,close,volume)")
	replayCmd.Flags().StringVarP(&replayEventsPath, "events", "e", "", "CSV file of scripted events (index,action)")
	replayCmd.Flags().StringVarP(&replaySymbol, "symbol", "s", "SYM", "symbol label for the series")
	replayCmd.Flags().StringVarP(&replayConfigPath, "config", "f", "", "path to config file")
	replayCmd.Flags().Float64VarP(&replayBalance, "balance", "b", 0, "starting capital (overrides config)")
	replayCmd.MarkFlagRequired("csv")
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg := config.Default()
	if replayConfigPath != "" {
		cfg, err = config.LoadFromFile(replayConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if replayBalance > 0 {
		cfg.Account.Balance = replayBalance
	}

	series, err := market.LoadCSV(replayCSVPath, replaySymbol, log)
	if err != nil {
		return err
	}

	events := map[int]string{}
	if replayEventsPath != "" {
		events, err = loadEvents(replayEventsPath)
		if err != nil {
			return fmt.Errorf("load events: %w", err)
		}
	}

	j, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	pf := sim.NewPortfolio(replaySymbol, cfg.Account.Balance,
		sim.WithCommission(cfg.Replay.CommissionRate))

	clock := replay.NewClock(cfg.Replay.WarmupOffset,
		time.Duration(cfg.Replay.StepIntervalMs)*time.Millisecond)

	sessionID := pf.Session().ID
	lastIndex := -1
	clock.Subscribe(func(u replay.Update) {
		if u.SessionReset || u.Index == lastIndex {
			return
		}
		lastIndex = u.Index

		action, ok := events[u.Index]
		if !ok {
			return
		}

		var t sim.Trade
		var err error
		switch action {
		case "buy":
			t, err = pf.Buy(u.Bar.Close, u.Bar.Date)
		case "sell":
			t, err = pf.Sell(u.Bar.Close, u.Bar.Date)
		default:
			log.Warn("unknown event action", zap.Int("index", u.Index), zap.String("action", action))
			return
		}
		if err != nil {
			// Expected domain outcomes, not failures.
			if errors.Is(err, sim.ErrInsufficientFunds) || errors.Is(err, sim.ErrNoPosition) {
				log.Warn("event rejected", zap.Int("index", u.Index), zap.Error(err))
				return
			}
			log.Error("event failed", zap.Int("index", u.Index), zap.Error(err))
			return
		}
		if rerr := j.RecordTrade(journal.FromTrade(sessionID, t)); rerr != nil {
			log.Error("journal trade", zap.Error(rerr))
		}
	})

	clock.Load(series)
	clock.Start()
	for clock.State() != replay.Finished {
		clock.Step()
	}

	pf.End()
	session := pf.Session()
	metrics := sim.ComputeMetrics(session)

	if err := j.RecordSession(journal.FromSession(session, metrics)); err != nil {
		log.Error("journal session", zap.Error(err))
	}

	printSessionReport(os.Stdout, session, metrics)
	return nil
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	if cfg.Journal.Type == "csv" {
		return journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.SessionsFile)
	}
	return journal.NewSQLite(cfg.Journal.DBPath)
}

// loadEvents reads the scripted trade events: one "index,action" row per
// event, header optional.
func loadEvents(path string) (map[int]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	events := map[int]string{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(row[0]), "index") {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("bad index %q: %w", row[0], err)
		}
		events[idx] = strings.ToLower(strings.TrimSpace(row[1]))
	}
}

func printSessionReport(w io.Writer, s sim.Session, m sim.Metrics) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Replay Session Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Session ID:      %s\n", s.ID)
	fmt.Fprintf(w, "Symbol:          %s\n", s.Symbol)
	fmt.Fprintf(w, "Started:         %s\n", s.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Ended:           %s\n", s.EndedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration:        %d min\n", m.DurationMinutes)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Round Trips:     %d\n", m.TotalTrades)
	fmt.Fprintf(w, "Win Rate:        %.2f%%\n", m.WinRate)
	if m.ProfitLossRatio > 0 {
		fmt.Fprintf(w, "P/L Ratio:       %.2f\n", m.ProfitLossRatio)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Capital:   %.2f\n", s.InitialCapital)
	fmt.Fprintf(w, "End Capital:     %.2f\n", s.CurrentCapital)
	if s.Position > 0 {
		fmt.Fprintf(w, "Open Position:   %d shares @ %.2f\n", s.Position, s.PositionCost)
	}
	fmt.Fprintf(w, "Net P/L:         %.2f\n", m.TotalProfitLoss)
	fmt.Fprintf(w, "Return:          %.2f%%\n", m.ProfitLossRate)
	fmt.Fprintln(w)
}
