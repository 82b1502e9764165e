package store

import (
	"database/sql"
	"fmt"
	"time"
)

const lastSeenKey = "last_seen"

// LoadTasks returns all tasks in insertion order.
func (db *DB) LoadTasks() ([]Task, error) {
	rows, err := db.Query(`SELECT name, days FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.Name, &t.Days); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SaveTasks replaces the stored list with tasks in a single transaction.
func (db *DB) SaveTasks(tasks []Task) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save tasks: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tasks (position, name, days) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert task: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		if _, err := stmt.Exec(i, t.Name, t.Days); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert task %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save tasks: %w", err)
	}
	return nil
}

// LoadLastDate returns the recorded last-seen date, or "" if none.
func (db *DB) LoadLastDate() (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = ?`, lastSeenKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get last seen: %w", err)
	}
	return value, nil
}

// SaveDate records date as the last-seen date.
func (db *DB) SaveDate(date string) error {
	_, err := db.Exec(`
		INSERT INTO meta (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, lastSeenKey, date, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save last seen: %w", err)
	}
	return nil
}
