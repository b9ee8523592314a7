// Package scheduler はcronで領域の定期更新を駆動します。
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job は一定間隔で実行される処理です。
type Job struct {
	Name    string
	Every   time.Duration
	Timeout time.Duration // 1回の実行の上限。0ならEveryを使う
	Run     func(ctx context.Context) error
}

// Scheduler は各Jobを独立したcronエントリとして実行します。
// 同じJobの前回実行が終わっていない場合、その回はスキップされます。
type Scheduler struct {
	c   *cron.Cron
	log zerolog.Logger

	mu     sync.Mutex
	base   context.Context
	cancel context.CancelFunc
}

// New は jobs を登録したSchedulerを返します。まだ開始はしません。
func New(log zerolog.Logger, jobs ...Job) (*Scheduler, error) {
	cl := cronLogger{log: log}
	s := &Scheduler{
		c:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		log:  log,
		base: context.Background(),
	}
	for _, j := range jobs {
		if j.Every <= 0 {
			return nil, fmt.Errorf("scheduler: job %q: interval must be positive", j.Name)
		}
		if _, err := s.c.AddFunc("@every "+j.Every.String(), s.wrap(j)); err != nil {
			return nil, fmt.Errorf("scheduler: job %q: %w", j.Name, err)
		}
	}
	return s, nil
}

// Start begins running jobs in the background. Cancelling ctx aborts in-flight runs.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.base, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()
	s.c.Start()
}

// Stop prevents further runs, cancels in-flight ones and waits for them to return.
func (s *Scheduler) Stop() {
	done := s.c.Stop()
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	<-done.Done()
}

func (s *Scheduler) baseContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base
}

func (s *Scheduler) wrap(j Job) func() {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = j.Every
	}
	return func() {
		ctx, cancel := context.WithTimeout(s.baseContext(), timeout)
		defer cancel()

		start := time.Now()
		if err := j.Run(ctx); err != nil {
			s.log.Warn().Err(err).Str("job", j.Name).Dur("took", time.Since(start)).Msg("scheduler: job failed")
			return
		}
		s.log.Debug().Str("job", j.Name).Dur("took", time.Since(start)).Msg("scheduler: job done")
	}
}

// cronLogger はcron.Loggerをzerologに橋渡しします。
type cronLogger struct {
	log zerolog.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
