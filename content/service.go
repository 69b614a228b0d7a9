// Package content supplies the match and news lists shown in the lobby
package content

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/core"
)

// Feed is one loaded batch of lobby content
// Generation increments on each refresh so the lobby can detect swaps
type Feed struct {
	Matches    []Match
	News       []News
	Generation int64
	LoadedAt   time.Time
}

// Service loads content in the background and publishes it atomically
type Service struct {
	provider Provider
	timeout  time.Duration
	log      zerolog.Logger

	feed       atomic.Pointer[Feed]
	generation atomic.Int64
	refreshing atomic.Bool

	stopOnce sync.Once
	stopCh   chan struct{}
	cancel   context.CancelFunc
	ctx      context.Context
	wg       sync.WaitGroup
}

// NewService creates a content service; the feed starts with the static lists
func NewService(provider Provider, timeout time.Duration, log zerolog.Logger) *Service {
	if provider == nil {
		provider = Static{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		provider: provider,
		timeout:  timeout,
		log:      log,
		stopCh:   make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}

	matches, _ := Static{}.Matches(ctx)
	news, _ := Static{}.News(ctx)
	s.feed.Store(&Feed{Matches: matches, News: news, LoadedAt: time.Now()})
	return s
}

// Current returns the latest feed; never nil
func (s *Service) Current() *Feed {
	return s.feed.Load()
}

// Refresh fetches both lists in the background; a refresh already running absorbs the call
func (s *Service) Refresh() {
	select {
	case <-s.stopCh:
		return
	default:
	}
	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}

	s.wg.Add(1)
	core.Go(func() {
		defer s.wg.Done()
		defer s.refreshing.Store(false)
		s.load()
	})
}

// RefreshSync fetches both lists on the calling goroutine
func (s *Service) RefreshSync() *Feed {
	s.load()
	return s.Current()
}

func (s *Service) load() {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	cur := s.Current()
	matches, err := s.provider.Matches(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Keeping previous matches")
		matches = cur.Matches
	}
	news, err := s.provider.News(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Keeping previous news")
		news = cur.News
	}

	s.feed.Store(&Feed{
		Matches:    matches,
		News:       news,
		Generation: s.generation.Add(1),
		LoadedAt:   time.Now(),
	})
}

// Stop cancels an in-flight refresh and waits for it
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.cancel()
		s.wg.Wait()
	})
}
