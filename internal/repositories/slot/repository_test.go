package slot_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/pkg/clock"
	"github.com/KirkDiggler/ow-rando/internal/repositories/slot"
	"github.com/KirkDiggler/ow-rando/internal/testutils"
)

// RepositoryTestSuite runs the same behaviour checks against every backend.
type RepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	clock   *clock.Fixed
	repo    slot.Repository
	open    func(s *RepositoryTestSuite) (slot.Repository, func())
	cleanup func()
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFixed(testutils.FixedTime)
	s.repo, s.cleanup = s.open(s)
}

func (s *RepositoryTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		open: func(s *RepositoryTestSuite) (slot.Repository, func()) {
			return slot.NewInMemory(s.clock), nil
		},
	})
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		open: func(s *RepositoryTestSuite) (slot.Repository, func()) {
			client, cleanup := testutils.CreateTestRedisClient(s.T())
			repo, err := slot.NewRedis(&slot.RedisConfig{Client: client, Clock: s.clock})
			s.Require().NoError(err)
			return repo, cleanup
		},
	})
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		open: func(s *RepositoryTestSuite) (slot.Repository, func()) {
			repo, err := slot.OpenSQLite(&slot.SQLiteConfig{
				Path:  filepath.Join(s.T().TempDir(), "slots.db"),
				Clock: s.clock,
			})
			s.Require().NoError(err)
			return repo, func() { _ = repo.Close() }
		},
	})
}

func (s *RepositoryTestSuite) save(runID string, player int, ttl time.Duration) *slot.Slot {
	out, err := s.repo.Save(s.ctx, &slot.SaveInput{Slot: testutils.CreateTestSlot(runID, player), TTL: ttl})
	s.Require().NoError(err)
	return out.Slot
}

func (s *RepositoryTestSuite) TestSaveAndGet() {
	saved := s.save(testutils.TestRunID, 1, time.Hour)
	s.Equal(testutils.FixedTime, saved.CreatedAt)
	s.Equal(testutils.FixedTime.Add(time.Hour), saved.ExpiresAt)

	got, err := s.repo.Get(s.ctx, &slot.GetInput{RunID: testutils.TestRunID, Player: 1})
	s.Require().NoError(err)
	s.Equal(saved, got.Slot)
	s.Equal(testutils.CreateTestSummary(), got.Slot.Summary)
	s.Equal(testutils.TestRunID+"/1", got.Slot.GetID())
	s.Equal(slot.EntityType, got.Slot.GetType())
}

func (s *RepositoryTestSuite) TestSaveReplaces() {
	s.save(testutils.TestRunID, 1, time.Hour)

	replacement := testutils.CreateTestSlot(testutils.TestRunID, 1)
	replacement.Spoiler = ""
	replacement.Seed = 7
	_, err := s.repo.Save(s.ctx, &slot.SaveInput{Slot: replacement, TTL: time.Hour})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, &slot.GetInput{RunID: testutils.TestRunID, Player: 1})
	s.Require().NoError(err)
	s.Equal(int64(7), got.Slot.Seed)
	s.Empty(got.Slot.Spoiler)
}

func (s *RepositoryTestSuite) TestSaveDoesNotAliasInput() {
	input := testutils.CreateTestSlot(testutils.TestRunID, 1)
	_, err := s.repo.Save(s.ctx, &slot.SaveInput{Slot: input, TTL: time.Hour})
	s.Require().NoError(err)

	input.Spoiler = "changed"
	got, err := s.repo.Get(s.ctx, &slot.GetInput{RunID: testutils.TestRunID, Player: 1})
	s.Require().NoError(err)
	s.NotEqual("changed", got.Slot.Spoiler)
	s.True(input.CreatedAt.IsZero())
}

func (s *RepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, &slot.GetInput{RunID: "run_missing", Player: 1})
	s.True(errors.IsNotFound(err))

	s.save(testutils.TestRunID, 1, time.Hour)
	_, err = s.repo.Get(s.ctx, &slot.GetInput{RunID: testutils.TestRunID, Player: 2})
	s.True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestExpiry() {
	s.save(testutils.TestRunID, 1, time.Hour)
	s.clock.Advance(2 * time.Hour)

	_, err := s.repo.Get(s.ctx, &slot.GetInput{RunID: testutils.TestRunID, Player: 1})
	s.True(errors.IsNotFound(err))

	out, err := s.repo.List(s.ctx, &slot.ListInput{RunID: testutils.TestRunID})
	s.Require().NoError(err)
	s.Empty(out.Slots)
}

func (s *RepositoryTestSuite) TestListOrdersByPlayer() {
	for _, player := range []int{3, 1, 2} {
		s.save(testutils.TestRunID, player, time.Hour)
	}
	s.save("run_other", 1, time.Hour)

	out, err := s.repo.List(s.ctx, &slot.ListInput{RunID: testutils.TestRunID})
	s.Require().NoError(err)
	s.Require().Len(out.Slots, 3)
	for i, got := range out.Slots {
		s.Equal(i+1, got.Player)
		s.Equal(testutils.TestRunID, got.RunID)
	}
}

func (s *RepositoryTestSuite) TestDelete() {
	s.save(testutils.TestRunID, 1, time.Hour)
	s.save(testutils.TestRunID, 2, time.Hour)

	out, err := s.repo.Delete(s.ctx, &slot.DeleteInput{RunID: testutils.TestRunID})
	s.Require().NoError(err)
	s.Equal(2, out.SlotsDeleted)

	_, err = s.repo.Get(s.ctx, &slot.GetInput{RunID: testutils.TestRunID, Player: 1})
	s.True(errors.IsNotFound(err))

	out, err = s.repo.Delete(s.ctx, &slot.DeleteInput{RunID: testutils.TestRunID})
	s.Require().NoError(err)
	s.Zero(out.SlotsDeleted)
}

func (s *RepositoryTestSuite) TestInvalidInput() {
	testCases := []struct {
		name string
		call func() error
	}{
		{name: "nil save", call: func() error { _, err := s.repo.Save(s.ctx, nil); return err }},
		{name: "nil slot", call: func() error { _, err := s.repo.Save(s.ctx, &slot.SaveInput{}); return err }},
		{
			name: "empty run id",
			call: func() error {
				_, err := s.repo.Save(s.ctx, &slot.SaveInput{Slot: testutils.CreateTestSlot("", 1)})
				return err
			},
		},
		{
			name: "player zero",
			call: func() error {
				_, err := s.repo.Get(s.ctx, &slot.GetInput{RunID: testutils.TestRunID, Player: 0})
				return err
			},
		},
		{name: "nil list", call: func() error { _, err := s.repo.List(s.ctx, nil); return err }},
		{
			name: "empty list run",
			call: func() error { _, err := s.repo.List(s.ctx, &slot.ListInput{}); return err },
		},
		{
			name: "empty delete run",
			call: func() error { _, err := s.repo.Delete(s.ctx, &slot.DeleteInput{}); return err },
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.True(errors.IsInvalidArgument(tc.call()))
		})
	}
}

type RedisSpecificTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	repo    slot.Repository
	cleanup func()
}

func TestRedisSpecificSuite(t *testing.T) {
	suite.Run(t, new(RedisSpecificTestSuite))
}

func (s *RedisSpecificTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClientWithContext(s.T(), func(mr *miniredis.Miniredis) {
		s.mr = mr
	})
	repo, err := slot.NewRedis(&slot.RedisConfig{Client: client, Clock: clock.NewFixed(testutils.FixedTime)})
	s.Require().NoError(err)
	s.repo = repo
	s.cleanup = cleanup
}

func (s *RedisSpecificTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisSpecificTestSuite) TestKeyLayoutAndTTL() {
	_, err := s.repo.Save(context.Background(), &slot.SaveInput{
		Slot: testutils.CreateTestSlot(testutils.TestRunID, 2),
		TTL:  30 * time.Minute,
	})
	s.Require().NoError(err)

	key := "slot:" + testutils.TestRunID
	s.True(s.mr.Exists(key))
	s.Equal(30*time.Minute, s.mr.TTL(key))
	fields, err := s.mr.HKeys(key)
	s.Require().NoError(err)
	s.Equal([]string{"2"}, fields)

	s.mr.FastForward(31 * time.Minute)
	_, err = s.repo.Get(context.Background(), &slot.GetInput{RunID: testutils.TestRunID, Player: 2})
	s.True(errors.IsNotFound(err))
}

func (s *RedisSpecificTestSuite) TestDefaultTTL() {
	_, err := s.repo.Save(context.Background(), &slot.SaveInput{Slot: testutils.CreateTestSlot(testutils.TestRunID, 1)})
	s.Require().NoError(err)
	s.Equal(24*time.Hour, s.mr.TTL("slot:"+testutils.TestRunID))
}

func (s *RedisSpecificTestSuite) TestCorruptValue() {
	s.mr.HSet("slot:"+testutils.TestRunID, "1", "{not json")
	_, err := s.repo.Get(context.Background(), &slot.GetInput{RunID: testutils.TestRunID, Player: 1})
	s.Error(err)
	s.False(errors.IsNotFound(err))
}

func (s *RedisSpecificTestSuite) TestConfigValidation() {
	_, err := slot.NewRedis(&slot.RedisConfig{})
	s.True(errors.IsInvalidArgument(err))
	_, err = slot.NewRedis(nil)
	s.True(errors.IsInvalidArgument(err))
}

type SQLiteSpecificTestSuite struct {
	suite.Suite
}

func TestSQLiteSpecificSuite(t *testing.T) {
	suite.Run(t, new(SQLiteSpecificTestSuite))
}

func (s *SQLiteSpecificTestSuite) TestReopenKeepsSlotsAndSkipsAppliedMigrations() {
	path := filepath.Join(s.T().TempDir(), "archive.db")
	clk := clock.NewFixed(testutils.FixedTime)

	repo, err := slot.OpenSQLite(&slot.SQLiteConfig{Path: path, Clock: clk})
	s.Require().NoError(err)
	_, err = repo.Save(context.Background(), &slot.SaveInput{Slot: testutils.CreateTestSlot(testutils.TestRunID, 1)})
	s.Require().NoError(err)
	s.Require().NoError(repo.Close())

	reopened, err := slot.OpenSQLite(&slot.SQLiteConfig{Path: path, Clock: clk})
	s.Require().NoError(err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(context.Background(), &slot.GetInput{RunID: testutils.TestRunID, Player: 1})
	s.Require().NoError(err)
	s.True(got.Slot.ExpiresAt.IsZero())
	s.Equal(testutils.CreateTestSummary(), got.Slot.Summary)
}

func (s *SQLiteSpecificTestSuite) TestInMemoryPath() {
	repo, err := slot.OpenSQLite(&slot.SQLiteConfig{Path: ":memory:", Clock: clock.NewFixed(testutils.FixedTime)})
	s.Require().NoError(err)
	defer func() { _ = repo.Close() }()

	_, err = repo.Save(context.Background(), &slot.SaveInput{Slot: testutils.CreateTestSlot(testutils.TestRunID, 1)})
	s.Require().NoError(err)
	out, err := repo.List(context.Background(), &slot.ListInput{RunID: testutils.TestRunID})
	s.Require().NoError(err)
	s.Len(out.Slots, 1)
}

func (s *SQLiteSpecificTestSuite) TestConfigValidation() {
	_, err := slot.OpenSQLite(&slot.SQLiteConfig{Clock: clock.New()})
	s.True(errors.IsInvalidArgument(err))
}
