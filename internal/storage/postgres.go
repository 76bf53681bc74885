package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/xaenox/weather-bot/internal/models"
)

//go:embed migrations.sql
var migrations string

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

// DSN returns the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ ConversationStore = (*PostgresStorage)(nil)

func NewPostgresStorage(ctx context.Context, config DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &PostgresStorage{db: db, logger: logger}
	if err := s.initializeSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", config.Host),
		zap.Int("port", config.Port),
		zap.String("database", config.DBName))

	return s, nil
}

func (s *PostgresStorage) initializeSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, migrations); err != nil {
		return fmt.Errorf("execute migrations: %w", err)
	}
	return nil
}

func (s *PostgresStorage) MarkJoined(ctx context.Context, token string) (bool, error) {
	query := `
		INSERT INTO conversations (token)
		VALUES ($1)
		ON CONFLICT (token) DO NOTHING`

	result, err := s.db.ExecContext(ctx, query, token)
	if err != nil {
		return false, fmt.Errorf("insert conversation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

func (s *PostgresStorage) Forget(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return nil
}

func (s *PostgresStorage) List(ctx context.Context) ([]models.ConversationRecord, error) {
	query := `
		SELECT token, joined_at
		FROM conversations
		ORDER BY joined_at, token`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	var records []models.ConversationRecord
	for rows.Next() {
		var r models.ConversationRecord
		if err := rows.Scan(&r.Token, &r.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversations: %w", err)
	}

	return records, nil
}

func (s *PostgresStorage) CheckReadiness(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
