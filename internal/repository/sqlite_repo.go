package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"slintsurvey/internal/model"
)

const responsesSchema = `
CREATE TABLE IF NOT EXISTS responses (
	id              TEXT PRIMARY KEY,
	created_at      INTEGER NOT NULL,
	full_name       TEXT NOT NULL,
	email           TEXT NOT NULL,
	phone           TEXT,
	location        TEXT,
	profile         TEXT NOT NULL DEFAULT '[]',
	cluster         TEXT NOT NULL DEFAULT '[]',
	funding_need    TEXT,
	funding_range   TEXT,
	card_interest   TEXT,
	time_commitment TEXT,
	answers         TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_responses_created_at ON responses(created_at DESC);
`

// responseRow is the flattened SQLite shape of a StoredResponse
type responseRow struct {
	ID             string  `db:"id"`
	CreatedAt      int64   `db:"created_at"`
	FullName       string  `db:"full_name"`
	Email          string  `db:"email"`
	Phone          *string `db:"phone"`
	Location       *string `db:"location"`
	Profile        string  `db:"profile"`
	Cluster        string  `db:"cluster"`
	FundingNeed    *string `db:"funding_need"`
	FundingRange   *string `db:"funding_range"`
	CardInterest   *string `db:"card_interest"`
	TimeCommitment *string `db:"time_commitment"`
	Answers        string  `db:"answers"`
}

type sqliteResponseRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLiteResponseRepo opens (and migrates) the SQLite database at path
func NewSQLiteResponseRepo(ctx context.Context, path string) (ResponseRepo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", abs)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, responsesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return &sqliteResponseRepo{db: db, now: time.Now}, nil
}

func (r *sqliteResponseRepo) Create(ctx context.Context, response *model.StoredResponse) error {
	response.ID = uuid.NewString()
	response.CreatedAt = r.now().UTC()

	row, err := toRow(response)
	if err != nil {
		return err
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO responses (id, created_at, full_name, email, phone, location, profile, cluster,
			funding_need, funding_range, card_interest, time_commitment, answers)
		VALUES (:id, :created_at, :full_name, :email, :phone, :location, :profile, :cluster,
			:funding_need, :funding_range, :card_interest, :time_commitment, :answers)`, row)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

func (r *sqliteResponseRepo) List(ctx context.Context) ([]*model.StoredResponse, error) {
	var rows []responseRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM responses ORDER BY created_at DESC, rowid DESC`); err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	responses := make([]*model.StoredResponse, 0, len(rows))
	for i := range rows {
		response, err := fromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

func (r *sqliteResponseRepo) GetByID(ctx context.Context, id string) (*model.StoredResponse, error) {
	var row responseRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM responses WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get response: %w", err)
	}
	return fromRow(&row)
}

func (r *sqliteResponseRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM responses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete response: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqliteResponseRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM responses`); err != nil {
		return 0, fmt.Errorf("count responses: %w", err)
	}
	return n, nil
}

func (r *sqliteResponseRepo) Close(context.Context) error {
	return r.db.Close()
}

func toRow(response *model.StoredResponse) (*responseRow, error) {
	profile := response.Profile
	if profile == nil {
		profile = []string{}
	}
	cluster := response.Cluster
	if cluster == nil {
		cluster = []model.ClusterTag{}
	}
	answers := response.Answers
	if answers == nil {
		answers = model.AnswerSet{}
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}
	clusterJSON, err := json.Marshal(cluster)
	if err != nil {
		return nil, err
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	return &responseRow{
		ID:             response.ID,
		CreatedAt:      response.CreatedAt.UnixNano(),
		FullName:       response.FullName,
		Email:          response.Email,
		Phone:          response.Phone,
		Location:       response.Location,
		Profile:        string(profileJSON),
		Cluster:        string(clusterJSON),
		FundingNeed:    response.FundingNeed,
		FundingRange:   response.FundingRange,
		CardInterest:   response.CardInterest,
		TimeCommitment: response.TimeCommitment,
		Answers:        string(answersJSON),
	}, nil
}

func fromRow(row *responseRow) (*model.StoredResponse, error) {
	response := &model.StoredResponse{
		ID:             row.ID,
		CreatedAt:      time.Unix(0, row.CreatedAt).UTC(),
		FullName:       row.FullName,
		Email:          row.Email,
		Phone:          row.Phone,
		Location:       row.Location,
		FundingNeed:    row.FundingNeed,
		FundingRange:   row.FundingRange,
		CardInterest:   row.CardInterest,
		TimeCommitment: row.TimeCommitment,
	}
	if err := json.Unmarshal([]byte(row.Profile), &response.Profile); err != nil {
		return nil, fmt.Errorf("decode profile for %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Cluster), &response.Cluster); err != nil {
		return nil, fmt.Errorf("decode cluster for %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Answers), &response.Answers); err != nil {
		return nil, fmt.Errorf("decode answers for %s: %w", row.ID, err)
	}
	return response, nil
}
