package database

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"
	_ "github.com/mattn/go-sqlite3"
)

// Service stores finished match results. It opens the local sqlite file by
// default; when DATABASE_URL is set it connects to Postgres via the pgx
// stdlib driver instead.
type Service struct {
	db         *sql.DB
	m          *sync.Mutex
	table_name string
	postgres   bool
}

var (
	tableName  = "schieber_matches"
	dbInstance *Service
)

const schema = `
	create table if not exists schieber_matches (
		id text not null primary key,
		created_at text,
		player1 text,
		player2 text,
		player3 text,
		player4 text,
		team1_score integer,
		team2_score integer,
		winner_team integer,
		target_score integer,
		hands_played integer
	);
	`

func New() Service {
	driver, dsn := "sqlite3", "./schieber.db"
	if url := os.Getenv("DATABASE_URL"); url != "" {
		driver, dsn = "pgx", url
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		panic(err)
	}

	if _, err := db.Exec(schema); err != nil {
		panic(err)
	}

	dbInstance = &Service{
		db:         db,
		table_name: tableName,
		m:          &sync.Mutex{},
		postgres:   driver == "pgx",
	}

	return *dbInstance
}

func (s *Service) Close() error {
	return s.db.Close()
}

func (s *Service) TableName() string {
	return s.table_name
}

// rebind rewrites ?-placeholders to $n for the pgx driver.
func (s *Service) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString(fmt.Sprintf("$%d", n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func scanResult(rows interface{ Scan(...any) error }, result *MatchResult) error {
	return rows.Scan(
		&result.ID,
		&result.CreatedAt,
		&result.Player1,
		&result.Player2,
		&result.Player3,
		&result.Player4,
		&result.Team1Score,
		&result.Team2Score,
		&result.WinnerTeam,
		&result.TargetScore,
		&result.HandsPlayed)
}

func (s *Service) GetAll() ([]MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query("SELECT * FROM " + s.table_name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var result MatchResult
		if err := scanResult(rows, &result); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *Service) GetByID(id string) (MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	var result MatchResult
	row := s.db.QueryRow(s.rebind("SELECT * FROM "+s.table_name+" WHERE id = ?"), id)
	if err := scanResult(row, &result); err != nil {
		return MatchResult{}, err
	}
	return result, nil
}

func (s *Service) Insert(result MatchResult) error {
	s.m.Lock()
	defer s.m.Unlock()
	_, err := s.db.Exec(s.rebind("INSERT INTO "+s.table_name+
		" (id, created_at, player1, player2, player3, player4, team1_score, team2_score, winner_team, target_score, hands_played)"+
		" VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		result.ID,
		result.CreatedAt,
		result.Player1,
		result.Player2,
		result.Player3,
		result.Player4,
		result.Team1Score,
		result.Team2Score,
		result.WinnerTeam,
		result.TargetScore,
		result.HandsPlayed)

	if err != nil {
		return err
	}

	return nil
}

func (s *Service) GetByPlayer(player_name string) ([]MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.Query(s.rebind("SELECT * FROM "+s.table_name+
		" WHERE player1 = ? OR player2 = ? OR player3 = ? OR player4 = ?"),
		player_name,
		player_name,
		player_name,
		player_name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var result MatchResult
		if err := scanResult(rows, &result); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, sql.ErrNoRows // No results found
	}

	return results, nil
}
