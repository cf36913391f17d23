// Package store persists quotes, inflation records, expense entries and
// obligations in a local sqlite database. It implements the engine's
// persistence collaborator interfaces; the schema lives in embedded
// migrations and is applied on Open.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/nmoretto/indexa"
)

// Store is a sqlite-backed implementation of the engine's persistence
// collaborators. Dates are stored as ISO-8601 text so lexicographic
// comparison in SQL is chronological; amounts and rates are stored as
// decimal text, never floats.
type Store struct {
	db *sql.DB
}

var _ indexa.QuoteSource = (*Store)(nil)
var _ indexa.CPISource = (*Store)(nil)
var _ indexa.AmountSource = (*Store)(nil)
var _ indexa.ObligationSource = (*Store)(nil)

// Open opens (creating if needed) the database at path and brings its
// schema up to date.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// QuoteAsOf returns the most recent quote on or before the given day.
func (s *Store) QuoteAsOf(on indexa.Date, currency string) (indexa.Quote, bool, error) {
	row := s.db.QueryRow(`
		SELECT day, sell FROM quotes
		WHERE currency = ? AND day <= ?
		ORDER BY day DESC LIMIT 1`,
		currency, on.String())
	return s.scanQuote(row, currency)
}

// Latest returns the most recent quote for the currency regardless of date.
func (s *Store) Latest(currency string) (indexa.Quote, bool, error) {
	row := s.db.QueryRow(`
		SELECT day, sell FROM quotes
		WHERE currency = ?
		ORDER BY day DESC LIMIT 1`,
		currency)
	return s.scanQuote(row, currency)
}

func (s *Store) scanQuote(row *sql.Row, currency string) (indexa.Quote, bool, error) {
	var day, sell string
	if err := row.Scan(&day, &sell); err != nil {
		if err == sql.ErrNoRows {
			return indexa.Quote{}, false, nil
		}
		return indexa.Quote{}, false, fmt.Errorf("scan quote: %w", err)
	}
	on, err := indexa.ParseDate(day)
	if err != nil {
		return indexa.Quote{}, false, fmt.Errorf("stored quote day: %w", err)
	}
	rate, err := decimal.NewFromString(sell)
	if err != nil {
		return indexa.Quote{}, false, fmt.Errorf("stored quote rate: %w", err)
	}
	return indexa.Quote{Date: on, Currency: currency, Sell: rate}, true, nil
}

// Upsert records or silently overwrites the quote for its (day, currency).
func (s *Store) Upsert(q indexa.Quote) error {
	_, err := s.db.Exec(`
		INSERT INTO quotes (day, currency, sell) VALUES (?, ?, ?)
		ON CONFLICT (day, currency) DO UPDATE SET sell = excluded.sell`,
		q.Date.String(), q.Currency, q.Sell.String())
	if err != nil {
		return fmt.Errorf("upsert quote %s %s: %w", q.Currency, q.Date, err)
	}
	return nil
}

// Records returns all inflation records in ascending period order.
func (s *Store) Records() ([]indexa.CPIRecord, error) {
	rows, err := s.db.Query(`SELECT period, monthly FROM cpi ORDER BY period`)
	if err != nil {
		return nil, fmt.Errorf("query cpi records: %w", err)
	}
	defer rows.Close()

	var records []indexa.CPIRecord
	for rows.Next() {
		var period, monthly string
		if err := rows.Scan(&period, &monthly); err != nil {
			return nil, fmt.Errorf("scan cpi record: %w", err)
		}
		on, err := indexa.ParseDate(period)
		if err != nil {
			return nil, fmt.Errorf("stored cpi period: %w", err)
		}
		pct, err := decimal.NewFromString(monthly)
		if err != nil {
			return nil, fmt.Errorf("stored cpi rate: %w", err)
		}
		records = append(records, indexa.CPIRecord{Period: on, Monthly: pct})
	}
	return records, rows.Err()
}

// Append inserts one inflation record. Inflation history is append-only:
// an existing period fails with ErrDuplicateRecord.
func (s *Store) Append(rec indexa.CPIRecord) error {
	period := rec.Period.MonthStart().String()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cpi append: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`SELECT COUNT(*) FROM cpi WHERE period = ?`, period).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check cpi period %s: %w", period, err)
	}
	if exists > 0 {
		return fmt.Errorf("cpi period %s: %w", period, indexa.ErrDuplicateRecord)
	}

	if _, err := tx.Exec(`INSERT INTO cpi (period, monthly) VALUES (?, ?)`,
		period, rec.Monthly.String()); err != nil {
		return fmt.Errorf("insert cpi record %s: %w", period, err)
	}
	return tx.Commit()
}

// Amounts returns the dated expense amounts in range, excluding drafts and
// soft-deleted entries.
func (s *Store) Amounts(r indexa.Range) ([]indexa.DatedAmount, error) {
	rows, err := s.db.Query(`
		SELECT day, amount, currency FROM entries
		WHERE deleted_at IS NULL AND draft = 0
		  AND day BETWEEN ? AND ?
		ORDER BY day`,
		r.From.String(), r.To.String())
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var out []indexa.DatedAmount
	for rows.Next() {
		var day, amount, currency string
		if err := rows.Scan(&day, &amount, &currency); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		on, err := indexa.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("stored entry day: %w", err)
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("stored entry amount: %w", err)
		}
		out = append(out, indexa.DatedAmount{Date: on, Amount: indexa.M(value, currency)})
	}
	return out, rows.Err()
}

// AddEntry records one expense point.
func (s *Store) AddEntry(on indexa.Date, amount indexa.Money, category string) error {
	_, err := s.db.Exec(`
		INSERT INTO entries (day, amount, currency, category) VALUES (?, ?, ?, ?)`,
		on.String(), amount.Amount().String(), amount.Currency(), category)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// Snapshots returns one engine snapshot per active obligation: its latest
// historical due record supplies the base amount and date. Obligations with
// no due record yet come back with a zero base.
func (s *Store) Snapshots() ([]indexa.Obligation, error) {
	rows, err := s.db.Query(`
		SELECT o.category, o.description, o.rule, o.frequency,
		       d.day, d.amount, d.currency
		FROM obligations o
		LEFT JOIN dues d ON d.obligation_id = o.id
		  AND d.day = (SELECT MAX(day) FROM dues WHERE obligation_id = o.id)
		WHERE o.active = 1
		ORDER BY o.id`)
	if err != nil {
		return nil, fmt.Errorf("query obligations: %w", err)
	}
	defer rows.Close()

	var out []indexa.Obligation
	for rows.Next() {
		var category, description, rule, frequency string
		var day, amount, currency sql.NullString
		if err := rows.Scan(&category, &description, &rule, &frequency,
			&day, &amount, &currency); err != nil {
			return nil, fmt.Errorf("scan obligation: %w", err)
		}

		ob := indexa.Obligation{
			Category:    category,
			Description: description,
			Rule:        indexa.ParseAdjustmentRule(rule),
			Frequency:   indexa.ParseFrequency(frequency),
		}
		if day.Valid {
			on, err := indexa.ParseDate(day.String)
			if err != nil {
				return nil, fmt.Errorf("stored due day: %w", err)
			}
			value, err := decimal.NewFromString(amount.String)
			if err != nil {
				return nil, fmt.Errorf("stored due amount: %w", err)
			}
			ob.LastDue = on
			ob.Base = indexa.M(value, currency.String)
		}
		out = append(out, ob)
	}
	return out, rows.Err()
}

// AddObligation registers an obligation and returns its id for due records.
func (s *Store) AddObligation(category, description, rule, frequency string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO obligations (category, description, rule, frequency) VALUES (?, ?, ?, ?)`,
		category, description, rule, frequency)
	if err != nil {
		return 0, fmt.Errorf("insert obligation: %w", err)
	}
	return res.LastInsertId()
}

// AddDue records one historical due payment for an obligation.
func (s *Store) AddDue(obligationID int64, on indexa.Date, amount indexa.Money) error {
	_, err := s.db.Exec(`
		INSERT INTO dues (obligation_id, day, amount, currency) VALUES (?, ?, ?, ?)`,
		obligationID, on.String(), amount.Amount().String(), amount.Currency())
	if err != nil {
		return fmt.Errorf("insert due record: %w", err)
	}
	return nil
}

// Deactivate retires an obligation from future snapshots, keeping its
// history.
func (s *Store) Deactivate(obligationID int64) error {
	_, err := s.db.Exec(`UPDATE obligations SET active = 0 WHERE id = ?`, obligationID)
	if err != nil {
		return fmt.Errorf("deactivate obligation %d: %w", obligationID, err)
	}
	return nil
}
