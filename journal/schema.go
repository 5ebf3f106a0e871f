package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	session_id TEXT NOT NULL,
	action TEXT NOT NULL,
	price REAL NOT NULL,
	quantity INTEGER NOT NULL,
	bar_date DATETIME NOT NULL,
	executed_at DATETIME NOT NULL,
	profit_loss REAL NOT NULL,
	profit_loss_rate REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_session ON trades(session_id);

CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	started_at DATETIME NOT NULL,
	ended_at DATETIME NOT NULL,
	initial_capital REAL NOT NULL,
	final_capital REAL NOT NULL,
	total_trades INTEGER NOT NULL,
	win_rate REAL NOT NULL,
	profit_loss REAL NOT NULL,
	profit_loss_rate REAL NOT NULL,
	profit_loss_ratio REAL NOT NULL
);
`
