package blobstore

import (
	"context"
	"sync"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/matchresult"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/schedule"
	"github.com/sourcegraph/conc/pool"
)

// Store serialises every read-modify-write over the blobs, so a write made
// through one repository is visible to the next read through any other.
type Store struct {
	mu    sync.Mutex
	blobs BlobStore
}

// Snapshot is the decoded content of all four blobs.
type Snapshot struct {
	Results         []matchresult.Result
	Schedule        []schedule.Match
	Roster          []player.Player
	CurrentPlayerID string
}

// Open wraps blobs and decodes every document once so a corrupt file fails
// startup instead of the first request.
func Open(ctx context.Context, blobs BlobStore) (*Store, Snapshot, error) {
	if blobs == nil {
		return nil, Snapshot{}, crerr.New("blob store is required")
	}
	s := &Store{blobs: blobs}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, Snapshot{}, err
	}
	return s, snap, nil
}

// Snapshot loads the four blobs concurrently.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		results []resultRecord
		matches []matchRecord
		roster  []playerRecord
		session sessionRecord
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error { return s.read(ctx, KeyResults, &results) })
	p.Go(func(ctx context.Context) error { return s.read(ctx, KeySchedule, &matches) })
	p.Go(func(ctx context.Context) error { return s.read(ctx, KeyRoster, &roster) })
	p.Go(func(ctx context.Context) error { return s.read(ctx, KeyCurrentPlayer, &session) })
	if err := p.Wait(); err != nil {
		return Snapshot{}, err
	}

	out := Snapshot{
		Results:         make([]matchresult.Result, 0, len(results)),
		Schedule:        make([]schedule.Match, 0, len(matches)),
		Roster:          make([]player.Player, 0, len(roster)),
		CurrentPlayerID: session.PlayerID,
	}
	for _, r := range results {
		out.Results = append(out.Results, r.toDomain())
	}
	for _, m := range matches {
		out.Schedule = append(out.Schedule, m.toDomain())
	}
	for _, rec := range roster {
		out.Roster = append(out.Roster, rec.toDomain())
	}
	return out, nil
}

// read decodes key into dest. A missing blob leaves dest untouched.
func (s *Store) read(ctx context.Context, key Key, dest any) error {
	data, ok, err := s.blobs.Load(ctx, key)
	if err != nil {
		return crerr.Wrapf(err, "load %s", key)
	}
	if !ok || len(data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, dest); err != nil {
		return crerr.Wrapf(err, "decode %s", key)
	}
	return nil
}

func (s *Store) write(ctx context.Context, key Key, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return crerr.Wrapf(err, "encode %s", key)
	}
	if err := s.blobs.Save(ctx, key, data); err != nil {
		return crerr.Wrapf(err, "save %s", key)
	}
	return nil
}
