package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite persists runs, trades and equity curves in a SQLite database.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, instrument, start, end,
		 vol_multiplier, ai_threshold, rsi_threshold, take_profit, stop_loss, time_exit, cooldown,
		 start_balance, final_balance, total_profit, profit_pct, trade_count, win_rate, profit_factor, mdd, total_fees)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Instrument, r.Start, r.End,
		r.Params.VolMult, r.Params.AIThreshold, r.Params.RSIThreshold,
		r.Params.TakeProfitPct, r.Params.StopLossPct, r.Params.TimeExitMin, r.Params.CooldownMin,
		r.StartBalance, r.FinalBalance, r.TotalProfit, r.ProfitPct,
		r.TradeCount, r.WinRate, r.ProfitFactor, r.MaxDrawdown, r.TotalFees,
	)
	return err
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, time, side, price, qty, fee, score, profit, profit_pct, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.Time, t.Side, t.Price, t.Qty, t.Fee, t.Score, t.Profit, t.ProfitPct, t.Reason,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, time, balance, equity)
		VALUES (?, ?, ?, ?)`,
		e.RunID, e.Time, e.Balance, e.Equity,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// GetRun returns a single run summary by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var r RunRecord

	row := j.db.QueryRow(`
		SELECT run_id, created, instrument, start, end,
		       vol_multiplier, ai_threshold, rsi_threshold, take_profit, stop_loss, time_exit, cooldown,
		       start_balance, final_balance, total_profit, profit_pct, trade_count, win_rate, profit_factor, mdd, total_fees
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID, &r.Created, &r.Instrument, &r.Start, &r.End,
		&r.Params.VolMult, &r.Params.AIThreshold, &r.Params.RSIThreshold,
		&r.Params.TakeProfitPct, &r.Params.StopLossPct, &r.Params.TimeExitMin, &r.Params.CooldownMin,
		&r.StartBalance, &r.FinalBalance, &r.TotalProfit, &r.ProfitPct,
		&r.TradeCount, &r.WinRate, &r.ProfitFactor, &r.MaxDrawdown, &r.TotalFees,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return r, nil
}

// ListRuns returns all run summaries, most recent first.
func (j *SQLite) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, instrument, start, end,
		       vol_multiplier, ai_threshold, rsi_threshold, take_profit, stop_loss, time_exit, cooldown,
		       start_balance, final_balance, total_profit, profit_pct, trade_count, win_rate, profit_factor, mdd, total_fees
		FROM runs
		ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.RunID, &r.Created, &r.Instrument, &r.Start, &r.End,
			&r.Params.VolMult, &r.Params.AIThreshold, &r.Params.RSIThreshold,
			&r.Params.TakeProfitPct, &r.Params.StopLossPct, &r.Params.TimeExitMin, &r.Params.CooldownMin,
			&r.StartBalance, &r.FinalBalance, &r.TotalProfit, &r.ProfitPct,
			&r.TradeCount, &r.WinRate, &r.ProfitFactor, &r.MaxDrawdown, &r.TotalFees,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListTradesByRun returns a run's trade legs in execution order.
func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, side, price, qty, fee, score, profit, profit_pct, reason
		FROM trades
		WHERE run_id = ?
		ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var t TradeRecord
		if err := rows.Scan(
			&t.RunID, &t.Time, &t.Side, &t.Price, &t.Qty,
			&t.Fee, &t.Score, &t.Profit, &t.ProfitPct, &t.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
