package service

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id          TEXT PRIMARY KEY,
	username         TEXT NOT NULL DEFAULT '',
	first_name       TEXT NOT NULL DEFAULT '',
	last_name        TEXT NOT NULL DEFAULT '',
	language_code    TEXT NOT NULL DEFAULT '',
	first_seen       INTEGER NOT NULL,
	last_activity    INTEGER NOT NULL,
	total_commands   INTEGER NOT NULL DEFAULT 0,
	signals_received INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS user_activity (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id       TEXT NOT NULL,
	activity_type TEXT NOT NULL,
	ts            INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS weekly_usage (
	user_id        TEXT NOT NULL,
	week_start     TEXT NOT NULL,
	activity_count INTEGER NOT NULL DEFAULT 0,
	last_activity  INTEGER NOT NULL,
	PRIMARY KEY (user_id, week_start)
);
CREATE TABLE IF NOT EXISTS signal_history (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol    TEXT NOT NULL,
	message   TEXT NOT NULL,
	sent_to   INTEGER NOT NULL DEFAULT 0,
	ts        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_user_activity_user ON user_activity(user_id);
`

const maxStoredMessage = 500

// Store аналитика по пользователям в sqlite. Ошибки не критичны для бота:
// вызывающий код логирует их и продолжает.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("profile mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("profile sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("profile schema: %w", err)
	}
	logger.Info("[PROFILE] opened %s", path)
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Close() error {
	return s.db.Close()
}

// weekStart понедельник текущей недели, YYYY-MM-DD
func weekStart(t time.Time) string {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(time.DateOnly)
}

// UpsertUser новый пользователь или обновление метаданных + счётчик команд
func (s *Store) UpsertUser(ctx context.Context, meta models.UserMeta) error {
	now := s.now().Unix()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE users SET
				username = ?, first_name = ?, last_name = ?, language_code = ?,
				last_activity = ?, total_commands = total_commands + 1
			WHERE user_id = ?`,
			meta.Username, meta.FirstName, meta.LastName, meta.LanguageCode, now, meta.UserID)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		kind := "command_used"
		if n, _ := res.RowsAffected(); n == 0 {
			kind = "first_interaction"
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO users (user_id, username, first_name, last_name, language_code,
					first_seen, last_activity, total_commands)
				VALUES (?, ?, ?, ?, ?, ?, ?, 1)`,
				meta.UserID, meta.Username, meta.FirstName, meta.LastName, meta.LanguageCode, now, now); err != nil {
				return fmt.Errorf("insert user: %w", err)
			}
		}
		return s.activity(ctx, tx, meta.UserID, kind)
	})
}

func (s *Store) RecordActivity(ctx context.Context, userID, kind string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.activity(ctx, tx, userID, kind)
	})
}

func (s *Store) activity(ctx context.Context, tx *sql.Tx, userID, kind string) error {
	now := s.now()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO weekly_usage (user_id, week_start, activity_count, last_activity)
		VALUES (?, ?, 1, ?)
		ON CONFLICT (user_id, week_start) DO UPDATE SET
			activity_count = activity_count + 1,
			last_activity = excluded.last_activity`,
		userID, weekStart(now), now.Unix()); err != nil {
		return fmt.Errorf("weekly usage: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_activity (user_id, activity_type, ts) VALUES (?, ?, ?)`,
		userID, kind, now.Unix()); err != nil {
		return fmt.Errorf("user activity: %w", err)
	}
	return nil
}

// LogSignal журнал отправленных сигналов, текст обрезается
func (s *Store) LogSignal(ctx context.Context, symbol, message string, sentTo int) error {
	if r := []rune(message); len(r) > maxStoredMessage {
		message = string(r[:maxStoredMessage])
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO signal_history (symbol, message, sent_to, ts) VALUES (?, ?, ?, ?)`,
		symbol, message, sentTo, s.now().Unix())
	if err != nil {
		return fmt.Errorf("log signal: %w", err)
	}
	return nil
}

// IncSignalsReceived +1 к счётчику каждого получателя
func (s *Store) IncSignalsReceived(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	now := s.now().Unix()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			UPDATE users SET signals_received = signals_received + 1, last_activity = ?
			WHERE user_id = ?`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, id := range userIDs {
			if _, err = stmt.ExecContext(ctx, now, id); err != nil {
				return fmt.Errorf("inc signals %s: %w", id, err)
			}
			if err = s.activity(ctx, tx, id, "signal_received"); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) QueryStats(ctx context.Context) (models.ProfileStats, error) {
	var st models.ProfileStats
	now := s.now()

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_commands), 0),
			COALESCE(SUM(CASE WHEN last_activity > ? THEN 1 ELSE 0 END), 0)
		FROM users`, now.Add(-24*time.Hour).Unix()).
		Scan(&st.TotalUsers, &st.TotalCommands, &st.DailyActive)
	if err != nil {
		return st, fmt.Errorf("stats users: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT user_id) FROM weekly_usage WHERE week_start = ?`, weekStart(now)).
		Scan(&st.WeeklyActive)
	if err != nil {
		return st, fmt.Errorf("stats weekly: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(sent_to), 0) FROM signal_history`).
		Scan(&st.TotalSignalsSent, &st.TotalDeliveries)
	if err != nil {
		return st, fmt.Errorf("stats signals: %w", err)
	}
	return st, nil
}

// Profiles последние активные пользователи с недельной активностью
func (s *Store) Profiles(ctx context.Context, limit int) ([]models.UserProfile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.user_id, u.username, u.first_name, u.last_name, u.language_code,
			u.total_commands, u.signals_received, COALESCE(w.activity_count, 0),
			u.first_seen, u.last_activity
		FROM users u
		LEFT JOIN weekly_usage w ON w.user_id = u.user_id AND w.week_start = ?
		ORDER BY u.last_activity DESC, u.user_id
		LIMIT ?`, weekStart(s.now()), limit)
	if err != nil {
		return nil, fmt.Errorf("profiles: %w", err)
	}
	defer rows.Close()

	var out []models.UserProfile
	for rows.Next() {
		var (
			p               models.UserProfile
			first, lastSeen int64
		)
		if err = rows.Scan(&p.UserID, &p.Username, &p.FirstName, &p.LastName, &p.LanguageCode,
			&p.TotalCommands, &p.SignalsReceived, &p.WeekActivity, &first, &lastSeen); err != nil {
			return nil, fmt.Errorf("profiles scan: %w", err)
		}
		p.FirstSeen = time.Unix(first, 0).UTC()
		p.LastActivity = time.Unix(lastSeen, 0).UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}
