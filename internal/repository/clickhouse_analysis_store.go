package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"PriceScout/internal/domain/models"
	domrepo "PriceScout/internal/domain/repository"
	applogger "PriceScout/pkg/logger"
)

// ClickHouseAnalysisStore persists analysis summaries for pricing history.
type ClickHouseAnalysisStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

// NewClickHouseAnalysisStore creates the ClickHouse-backed history store.
func NewClickHouseAnalysisStore(db *sql.DB, table string) *ClickHouseAnalysisStore {
	return &ClickHouseAnalysisStore{db: db, table: table}
}

// SetLogger injects a structured logger.
func (s *ClickHouseAnalysisStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHouseAnalysisStore) Init(ctx context.Context) error {
	return nil // schema init in pkg
}

func (s *ClickHouseAnalysisStore) Store(ctx context.Context, res *models.PriceAnalysisResult) error {
	if res == nil || res.AnalysisID == "" {
		return fmt.Errorf("analysis result missing id")
	}

	kind := ""
	if n := len(res.StrategiesTried); n > 0 {
		kind = string(res.StrategiesTried[n-1].Kind)
	}

	q := fmt.Sprintf(`INSERT INTO %s
        (analysis_id, ts, terms, strategy_kind, success, sample_count,
         min, max, mean, median, stdev, suggested_price, confidence)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.table)
	_, err := s.db.ExecContext(ctx, q,
		res.AnalysisID,
		res.AnalyzedAt,
		res.SearchTermsUsed,
		kind,
		boolToUInt8(res.Success),
		uint32(res.Summary.SampleCount),
		res.Summary.Min,
		res.Summary.Max,
		res.Summary.Mean,
		res.Summary.Median,
		res.Summary.StdDev,
		res.SuggestedPrice,
		res.ConfidenceScore,
	)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse analysis insert error",
				applogger.String("analysis_id", res.AnalysisID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("store analysis: %w", err)
	}
	return nil
}

func (s *ClickHouseAnalysisStore) History(ctx context.Context, terms string, from, to time.Time, limit int) ([]*models.PriceAnalysisResult, error) {
	q := fmt.Sprintf(`SELECT analysis_id, ts, terms, strategy_kind, success,
        sample_count, min, max, mean, median, stdev, suggested_price, confidence
        FROM %s WHERE ts >= ? AND ts <= ?`, s.table)
	args := []interface{}{from, to}
	if terms != "" {
		q += " AND terms = ?"
		args = append(args, terms)
	}
	q += " ORDER BY ts DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("history query: %w", err)
	}
	defer rows.Close()

	out := make([]*models.PriceAnalysisResult, 0, limit)
	for rows.Next() {
		var (
			r       models.PriceAnalysisResult
			kind    string
			success uint8
			count   uint32
		)
		if err := rows.Scan(
			&r.AnalysisID, &r.AnalyzedAt, &r.SearchTermsUsed, &kind, &success,
			&count, &r.Summary.Min, &r.Summary.Max, &r.Summary.Mean,
			&r.Summary.Median, &r.Summary.StdDev, &r.SuggestedPrice, &r.ConfidenceScore,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		r.Success = success != 0
		r.Summary.SampleCount = int(count)
		if kind != "" {
			r.StrategiesTried = []models.SearchStrategy{{Terms: r.SearchTermsUsed, Kind: models.StrategyKind(kind)}}
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *ClickHouseAnalysisStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseAnalysisStore) Close() error {
	return nil // connection managed by pkg client
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

var _ domrepo.AnalysisStore = (*ClickHouseAnalysisStore)(nil)
