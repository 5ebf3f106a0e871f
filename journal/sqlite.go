package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(session_id, action, price, quantity, bar_date, executed_at, profit_loss, profit_loss_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.SessionID, t.Action, t.Price, t.Quantity,
		t.BarDate, t.ExecutedAt, t.ProfitLoss, t.ProfitLossRate,
	)
	return err
}

func (j *SQLiteJournal) RecordSession(s SessionRecord) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO sessions
		(session_id, symbol, started_at, ended_at, initial_capital, final_capital,
		 total_trades, win_rate, profit_loss, profit_loss_rate, profit_loss_ratio)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.SessionID, s.Symbol, s.StartedAt, s.EndedAt, s.InitialCapital, s.FinalCapital,
		s.TotalTrades, s.WinRate, s.ProfitLoss, s.ProfitLossRate, s.ProfitLossRatio,
	)
	return err
}

// ListTrades returns the trades of one session in execution order.
func (j *SQLiteJournal) ListTrades(sessionID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT session_id, action, price, quantity, bar_date, executed_at, profit_loss, profit_loss_rate
		FROM trades WHERE session_id = ? ORDER BY executed_at`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(&t.SessionID, &t.Action, &t.Price, &t.Quantity,
			&t.BarDate, &t.ExecutedAt, &t.ProfitLoss, &t.ProfitLossRate); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
