package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedle/server/internal/progress"
	"github.com/gamedle/server/internal/stats"
	"github.com/gamedle/server/internal/store"
)

type sessionFixture struct {
	kv          store.KV
	cfg         Config
	completions []Completion
}

func clockFor(day string) func() time.Time {
	t, _ := time.Parse("2006-01-02", day)
	return func() time.Time { return t.Add(12 * time.Hour) }
}

// newSession builds a session over the fixture's shared medium for the
// given day, so tests can simulate restarts and day rollovers.
func (f *sessionFixture) newSession(t *testing.T, day string) *Session {
	t.Helper()
	now := clockFor(day)
	return NewSession(
		f.cfg,
		loadChampions(t),
		progress.New(f.kv, now),
		stats.New(f.kv),
		NewRegistry(f.kv, now),
		Options{
			Now:        now,
			DailySalt:  "test_salt",
			OnComplete: func(c Completion) { f.completions = append(f.completions, c) },
		},
	)
}

func newFixture() *sessionFixture {
	return &sessionFixture{kv: store.NewMemory(), cfg: Loldle()}
}

// notTarget returns a champion name other than the session's target.
func notTarget(t *testing.T, s *Session) string {
	t.Helper()
	for _, name := range []string{"Ahri", "Garen", "Irelia"} {
		if name != s.Target().Name {
			return name
		}
	}
	t.Fatal("no non-target champion in fixture")
	return ""
}

func TestStartFreshInitializesProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s := f.newSession(t, "2024-01-01")
	s.Start(ctx)

	assert.Equal(t, StateInProgress, s.State())
	assert.Equal(t, 0, s.CurrentAttempt())
	require.NotNil(t, s.Target())

	now := clockFor("2024-01-01")
	p := progress.New(f.kv, now).Load(ctx, f.cfg.ID)
	require.NotNil(t, p)
	assert.Equal(t, 0, p.CurrentAttempt)
	assert.Equal(t, f.cfg.MaxAttempts, p.MaxAttempts)
	assert.NotEmpty(t, p.Payload) // target snapshot travels with the record
}

func TestDailyTargetIsDeterministic(t *testing.T) {
	ctx := context.Background()
	a := newFixture().newSession(t, "2024-01-01")
	b := newFixture().newSession(t, "2024-01-01")
	a.Start(ctx)
	b.Start(ctx)
	assert.Equal(t, a.Target().Name, b.Target().Name)
}

func TestSubmitWrongGuessContinues(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s := f.newSession(t, "2024-01-01")
	s.Start(ctx)

	res, out, err := s.Submit(ctx, notTarget(t, s))
	require.NoError(t, err)
	assert.False(t, res.Won())
	assert.Equal(t, Outcome{ShouldContinue: true}, out)
	assert.Equal(t, 1, s.CurrentAttempt())
	assert.Equal(t, StateInProgress, s.State())

	p := progress.New(f.kv, clockFor("2024-01-01")).Load(ctx, f.cfg.ID)
	require.NotNil(t, p)
	assert.Equal(t, 1, p.CurrentAttempt)
	assert.Len(t, p.Attempts, 1)
}

func TestWinFinalizesExactlyOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s := f.newSession(t, "2024-01-01")
	s.Start(ctx)

	_, _, err := s.Submit(ctx, notTarget(t, s))
	require.NoError(t, err)

	res, out, err := s.Submit(ctx, s.Target().Name)
	require.NoError(t, err)
	assert.True(t, res.Won())
	assert.Equal(t, Outcome{Won: true}, out)
	assert.Equal(t, StateWonToday, s.State())

	// Progress cleared, day state marked, stats bumped once.
	assert.Nil(t, progress.New(f.kv, clockFor("2024-01-01")).Load(ctx, f.cfg.ID))
	ds := NewRegistry(f.kv, clockFor("2024-01-01")).Today(ctx, f.cfg.ID)
	require.NotNil(t, ds)
	assert.True(t, ds.Won)
	assert.Equal(t, 2, ds.Attempts)

	st := stats.New(f.kv).Read(ctx, f.cfg.ID)
	assert.Equal(t, 1, st.Played)
	assert.Equal(t, 1, st.Won)
	assert.Equal(t, 1, st.CurrentStreak)

	require.Len(t, f.completions, 1)
	c := f.completions[0]
	assert.True(t, c.Won)
	assert.Equal(t, 2, c.Attempts)
	assert.Equal(t, s.Target().Name, c.Target.Name)
	assert.Equal(t, s.Target().Name, c.LastGuess.Name)

	// Further guesses are refused.
	_, _, err = s.Submit(ctx, notTarget(t, s))
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestWinOnFirstAttempt(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s := f.newSession(t, "2024-01-01")
	s.Start(ctx)

	_, out, err := s.Submit(ctx, s.Target().Name)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Won: true}, out)
	assert.Equal(t, []int{1, 0, 0, 0, 0, 0}, stats.New(f.kv).Read(ctx, f.cfg.ID).Distribution)
}

func TestLossOnFinalAttempt(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.cfg.MaxAttempts = 2
	s := f.newSession(t, "2024-01-01")
	s.Start(ctx)

	wrong := notTarget(t, s)
	_, out, err := s.Submit(ctx, wrong)
	require.NoError(t, err)
	assert.True(t, out.ShouldContinue)

	var second string
	for _, name := range []string{"Ahri", "Garen", "Irelia"} {
		if name != s.Target().Name && name != wrong {
			second = name
		}
	}
	_, out, err = s.Submit(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, Outcome{}, out) // terminal loss, never "continuing"
	assert.Equal(t, StateLostToday, s.State())

	st := stats.New(f.kv).Read(ctx, f.cfg.ID)
	assert.Equal(t, 1, st.Played)
	assert.Equal(t, 0, st.Won)
	assert.Equal(t, 0, st.CurrentStreak)
}

func TestSubmitValidationLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s := f.newSession(t, "2024-01-01")
	s.Start(ctx)

	_, _, err := s.Submit(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyGuess)

	_, _, err = s.Submit(ctx, "Teemo")
	assert.ErrorIs(t, err, ErrNotFound)

	wrong := notTarget(t, s)
	_, _, err = s.Submit(ctx, wrong)
	require.NoError(t, err)
	_, _, err = s.Submit(ctx, wrong)
	assert.ErrorIs(t, err, ErrAlreadyGuessed)

	assert.Equal(t, 1, s.CurrentAttempt())
}

func TestResumeRestoresHistoryAndTarget(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s := f.newSession(t, "2024-01-01")
	s.Start(ctx)
	wrong := notTarget(t, s)
	_, _, err := s.Submit(ctx, wrong)
	require.NoError(t, err)

	// Simulate a reload: a new session over the same medium.
	r := f.newSession(t, "2024-01-01")
	r.Start(ctx)
	assert.Equal(t, StateInProgress, r.State())
	assert.Equal(t, 1, r.CurrentAttempt())
	require.Len(t, r.Attempts(), 1)
	assert.Equal(t, wrong, r.Attempts()[0].Name.Value)
	assert.Equal(t, s.Target().Name, r.Target().Name)

	// The resumed game can still be won.
	_, out, err := r.Submit(ctx, r.Target().Name)
	require.NoError(t, err)
	assert.True(t, out.Won)
}

func TestCompletedDayGatesUntilTomorrow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s := f.newSession(t, "2024-01-01")
	s.Start(ctx)
	_, _, err := s.Submit(ctx, s.Target().Name)
	require.NoError(t, err)

	// Same day, fresh session: come back tomorrow.
	again := f.newSession(t, "2024-01-01")
	again.Start(ctx)
	assert.Equal(t, StateWonToday, again.State())
	_, _, err = again.Submit(ctx, "Ahri")
	assert.ErrorIs(t, err, ErrGameOver)

	// Next day: a fresh game.
	tomorrow := f.newSession(t, "2024-01-02")
	tomorrow.Start(ctx)
	assert.Equal(t, StateInProgress, tomorrow.State())
	assert.Equal(t, 0, tomorrow.CurrentAttempt())
}

func TestStaleProgressFromYesterdayIsDiscarded(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s := f.newSession(t, "2024-01-01")
	s.Start(ctx)
	_, _, err := s.Submit(ctx, notTarget(t, s))
	require.NoError(t, err)

	next := f.newSession(t, "2024-01-02")
	next.Start(ctx)
	assert.Equal(t, StateInProgress, next.State())
	assert.Equal(t, 0, next.CurrentAttempt())
	assert.Empty(t, next.Attempts())
}

func TestPlayAgainIsFreePlay(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s := f.newSession(t, "2024-01-01")
	s.Start(ctx)
	_, _, err := s.Submit(ctx, s.Target().Name)
	require.NoError(t, err)

	s.PlayAgain()
	assert.Equal(t, StateInProgress, s.State())
	assert.Equal(t, 0, s.CurrentAttempt())
	assert.True(t, s.FreePlay())

	_, out, err := s.Submit(ctx, s.Target().Name)
	require.NoError(t, err)
	assert.True(t, out.Won)

	// The daily round's record and stats are untouched by free play.
	st := stats.New(f.kv).Read(ctx, f.cfg.ID)
	assert.Equal(t, 1, st.Played)
	ds := NewRegistry(f.kv, clockFor("2024-01-01")).Today(ctx, f.cfg.ID)
	require.NotNil(t, ds)
	assert.Equal(t, 1, ds.Attempts)

	require.Len(t, f.completions, 2)
	assert.True(t, f.completions[1].FreePlay)
}

func TestSuggestExcludesGuessedNames(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	s := f.newSession(t, "2024-01-01")
	s.Start(ctx)

	wrong := notTarget(t, s)
	_, _, err := s.Submit(ctx, wrong)
	require.NoError(t, err)

	for _, e := range s.Suggest(wrong[:2]) {
		assert.NotEqual(t, wrong, e.Name)
	}
}
