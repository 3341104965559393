package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	runs atomic.Int32
	err  error
}

func (s *countingSweeper) Execute(context.Context) (int, error) {
	s.runs.Add(1)
	return 0, s.err
}

func TestStartRunsImmediately(t *testing.T) {
	sw := &countingSweeper{}
	s, err := New("0 3 * * *", time.UTC, sw, zerolog.Nop())
	require.NoError(t, err)

	s.Start()
	defer s.Stop(context.Background())

	assert.EqualValues(t, 1, sw.runs.Load())
	assert.Len(t, s.cron.Entries(), 1)
}

func TestInvalidSpec(t *testing.T) {
	_, err := New("every night", time.UTC, &countingSweeper{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestSweepErrorIsLogged(t *testing.T) {
	sw := &countingSweeper{err: errors.New("db down")}
	s, err := New("@daily", time.UTC, sw, zerolog.Nop())
	require.NoError(t, err)

	assert.NotPanics(t, s.RunSweep)
	assert.EqualValues(t, 1, sw.runs.Load())
}
