package journal

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	start DATETIME NOT NULL,
	end DATETIME NOT NULL,
	vol_multiplier REAL NOT NULL,
	ai_threshold REAL NOT NULL,
	rsi_threshold REAL NOT NULL,
	take_profit REAL NOT NULL,
	stop_loss REAL NOT NULL,
	time_exit INTEGER NOT NULL,
	cooldown INTEGER NOT NULL,
	start_balance REAL NOT NULL,
	final_balance REAL NOT NULL,
	total_profit REAL NOT NULL,
	profit_pct REAL NOT NULL,
	trade_count INTEGER NOT NULL,
	win_rate REAL NOT NULL,
	profit_factor REAL NOT NULL,
	mdd REAL NOT NULL,
	total_fees REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	side TEXT NOT NULL,
	price REAL NOT NULL,
	qty INTEGER NOT NULL,
	fee REAL NOT NULL,
	score REAL NOT NULL,
	profit REAL NOT NULL,
	profit_pct REAL NOT NULL,
	reason TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	balance REAL NOT NULL,
	equity REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);
CREATE INDEX IF NOT EXISTS idx_equity_run ON equity(run_id);
`
