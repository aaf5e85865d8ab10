package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"github.com/memoryxin/battlechess/internal/model"
	"github.com/memoryxin/battlechess/internal/storage"
)

// schema is the single user table. The title column is denormalized: clients
// recompute it from credit and the server stores whatever they report.
const schema = `
CREATE TABLE user (
	name VARCHAR(20) PRIMARY KEY,
	passwd VARCHAR(20) NOT NULL,
	credit INT NOT NULL,
	title VARCHAR(8)
);`

// Demo accounts seeded on first run
var seedAccounts = []model.Account{
	{Name: "xinxin", Passwd: "2333", Credit: 1095, Title: "小城主"},
	{Name: "memory", Passwd: "2333", Credit: 1095, Title: "小城主"},
}

// Storage is the default user store, a single-file SQLite database
type Storage struct {
	db *sql.DB
}

// Ensure Storage implements the interface
var _ storage.UserStore = (*Storage)(nil)

// Open opens the database at path, creating and seeding it on first run
func Open(path string) (*Storage, error) {
	fresh := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fresh = true
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Storage{db: db}
	if fresh {
		if err := s.bootstrap(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
	}
	return s, nil
}

// bootstrap creates the user table and the two demo accounts
func (s *Storage) bootstrap() error {
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	for _, account := range seedAccounts {
		if err := s.CreateUser(context.Background(), &account); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) GetUser(ctx context.Context, name string) (*model.Account, error) {
	account := model.Account{Name: name}
	row := s.db.QueryRowContext(ctx,
		"SELECT passwd, credit, title FROM user WHERE name = ?", name)
	if err := row.Scan(&account.Passwd, &account.Credit, &account.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (s *Storage) CreateUser(ctx context.Context, account *model.Account) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO user(name, passwd, credit, title) VALUES(?, ?, ?, ?)",
		account.Name, account.Passwd, account.Credit, account.Title)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return model.ErrUserExists
		}
		return err
	}
	return nil
}

func (s *Storage) UpdateCredit(ctx context.Context, name string, credit int, title string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE user SET credit = ?, title = ? WHERE name = ?",
		credit, title, name)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
