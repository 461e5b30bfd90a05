// Package importer merges raw bookmarklet exports into the relational
// store.
//
// One call to [Service.Import] is one unit of work: detect (or accept)
// the payload format, parse it into validated records, then upsert every
// record inside a single database transaction. Parse failures never touch
// storage; storage failures roll the whole call back. The result is
// always a structured [Result], success or not.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/askelund/bgastats/internal/format"
	"github.com/askelund/bgastats/internal/parser"
	"github.com/askelund/bgastats/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Options tunes the import service; zero values fall back to defaults.
type Options struct {
	MaxConcurrent int
	MaxSlotWait   time.Duration
}

// Service is the import pipeline's entry point. It is stateless across
// calls: no retry memory, no cross-call caches, just the pool and the
// concurrency limiter.
type Service struct {
	pool    *pgxpool.Pool
	limiter *importLimiter
}

// New creates an import service bound to a connection pool.
func New(pool *pgxpool.Pool, opts Options) *Service {
	return &Service{
		pool:    pool,
		limiter: newImportLimiter(opts.MaxConcurrent, opts.MaxSlotWait),
	}
}

// Import runs the full pipeline for one payload. explicit may be empty,
// in which case the format detector classifies the payload. The returned
// Result is self-describing; Import never returns a Go error to keep the
// taxonomy mapping in one place.
func (s *Service) Import(ctx context.Context, raw string, explicit format.Format) Result {
	importID := uuid.NewString()
	started := time.Now()
	logger := slog.Default().With("import_id", importID)

	if err := s.limiter.acquire(ctx); err != nil {
		return failure(importID, fmt.Errorf("acquire import slot: %w", err))
	}
	defer s.limiter.release()

	raw = string(parser.SanitizeUTF8([]byte(raw)))

	tag := explicit
	if tag == "" {
		tag = format.Detect(raw)
	}
	if !format.Valid(tag) {
		logger.Warn("import rejected", "reason", "unsupported type", "tag", string(tag))
		return failure(importID, &unsupportedTypeError{tag: string(tag)})
	}

	// Pure parse stage. Nothing has touched storage yet, so a failure
	// here needs no rollback.
	records, err := parsePayload(tag, raw)
	if err != nil {
		logger.Warn("import parse failed", "format", string(tag), "error", err)
		return failure(importID, err)
	}

	counts, err := s.importInTx(ctx, tag, records)
	if err != nil {
		logger.Error("import rolled back", "format", string(tag), "error", err)
		return failure(importID, err)
	}

	logger.Info("import committed",
		"format", string(tag),
		"counts", map[string]int(counts),
		"duration", time.Since(started),
	)

	return Result{
		Success:    true,
		ImportID:   importID,
		ImportType: tag,
		Results:    counts,
	}
}

// parsedPayload is the output of the parse stage for any format; exactly
// one field is set.
type parsedPayload struct {
	games       []parser.GameRecord
	players     []parser.PlayerRecord
	match       *parser.MatchRecord
	tournaments []parser.TournamentRecord
}

func parsePayload(tag format.Format, raw string) (*parsedPayload, error) {
	switch tag {
	case format.GameList:
		games, err := parser.ParseGameList(raw)
		if err != nil {
			return nil, err
		}
		return &parsedPayload{games: games}, nil
	case format.PlayerStats:
		players, err := parser.ParsePlayerStats(raw)
		if err != nil {
			return nil, err
		}
		return &parsedPayload{players: players}, nil
	case format.MoveStats:
		match, err := parser.ParseMoveStats(raw)
		if err != nil {
			return nil, err
		}
		return &parsedPayload{match: match}, nil
	case format.TournamentStats:
		tournaments, err := parser.ParseTournamentStats(raw)
		if err != nil {
			return nil, err
		}
		return &parsedPayload{tournaments: tournaments}, nil
	}
	return nil, &unsupportedTypeError{tag: string(tag)}
}

// importInTx runs the upsert engine inside a single transaction. Either
// every record commits or none do.
func (s *Service) importInTx(ctx context.Context, tag format.Format, records *parsedPayload) (Counts, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op after commit.

	counts, err := runUpserts(ctx, store.NewTxStore(tx), tag, records)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return counts, nil
}

// runUpserts dispatches to the upsert path for the parsed format. Split
// from importInTx so tests can drive it against an in-memory Store.
func runUpserts(ctx context.Context, st Store, tag format.Format, records *parsedPayload) (Counts, error) {
	switch tag {
	case format.GameList:
		return importGameList(ctx, st, records.games)
	case format.PlayerStats:
		return importPlayerStats(ctx, st, records.players)
	case format.MoveStats:
		return importMoveStats(ctx, st, records.match)
	case format.TournamentStats:
		return importTournamentStats(ctx, st, records.tournaments)
	}
	return nil, &unsupportedTypeError{tag: string(tag)}
}
