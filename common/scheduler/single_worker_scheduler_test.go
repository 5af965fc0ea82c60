package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/RedRem95/DelayObject/common/clock"
	"github.com/RedRem95/DelayObject/common/log"
)

type (
	singleWorkerSchedulerSuite struct {
		*require.Assertions
		suite.Suite

		timeSource *clock.EventTimeSource
		scheduler  *SingleWorkerScheduler
	}
)

func TestSingleWorkerSchedulerSuite(t *testing.T) {
	s := new(singleWorkerSchedulerSuite)
	suite.Run(t, s)
}

func (s *singleWorkerSchedulerSuite) SetupTest() {
	s.Assertions = require.New(s.T())

	s.timeSource = clock.NewEventTimeSource()
	s.scheduler = NewSingleWorkerScheduler(s.timeSource, log.NewTestLogger())
	s.scheduler.Start()
}

func (s *singleWorkerSchedulerSuite) TearDownTest() {
	s.scheduler.Stop()
}

func (s *singleWorkerSchedulerSuite) waitFor(ch <-chan struct{}, msg string) {
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		s.FailNow(msg)
	}
}

func (s *singleWorkerSchedulerSuite) assertNotFired(ch <-chan struct{}, msg string) {
	select {
	case <-ch:
		s.FailNow(msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *singleWorkerSchedulerSuite) TestSchedule_FutureDeadline() {
	executed := make(chan struct{})
	s.scheduler.Schedule(time.Second, func() { close(executed) })

	s.assertNotFired(executed, "task must not run before its deadline")

	s.timeSource.Advance(time.Second)
	s.waitFor(executed, "task did not run after its deadline passed")
}

func (s *singleWorkerSchedulerSuite) TestSchedule_PastDeadline() {
	executed := make(chan struct{})
	s.scheduler.Schedule(-time.Second, func() { close(executed) })

	s.waitFor(executed, "task with a past deadline should run essentially immediately")
}

func (s *singleWorkerSchedulerSuite) TestSchedule_ZeroDelay() {
	executed := make(chan struct{})
	s.scheduler.Schedule(0, func() { close(executed) })

	s.waitFor(executed, "task with zero delay should run essentially immediately")
}

func (s *singleWorkerSchedulerSuite) TestSchedule_SerializesExecution() {
	firstRunning := make(chan struct{})
	release := make(chan struct{})
	secondDone := make(chan struct{})

	s.scheduler.Schedule(time.Second, func() {
		close(firstRunning)
		<-release
	})
	s.scheduler.Schedule(2*time.Second, func() { close(secondDone) })

	s.timeSource.Advance(3 * time.Second)
	s.waitFor(firstRunning, "first task did not start")

	// the single worker is blocked inside the first task
	s.assertNotFired(secondDone, "second task must not run while the first is still executing")

	close(release)
	s.waitFor(secondDone, "second task did not run after the first finished")
}

func (s *singleWorkerSchedulerSuite) TestSchedule_PanicDoesNotKillWorker() {
	survived := make(chan struct{})

	s.scheduler.Schedule(0, func() { panic("task panic") })
	s.scheduler.Schedule(time.Second, func() { close(survived) })

	s.timeSource.Advance(time.Second)
	s.waitFor(survived, "worker should capture a task panic and keep running")
}

func (s *singleWorkerSchedulerSuite) TestSchedule_NilTask() {
	s.Panics(func() {
		s.scheduler.Schedule(0, nil)
	})
}

func (s *singleWorkerSchedulerSuite) TestStop_DropsPendingTasks() {
	executed := make(chan struct{})
	s.scheduler.Schedule(time.Hour, func() { close(executed) })

	s.scheduler.Stop()
	s.timeSource.Advance(2 * time.Hour)

	s.assertNotFired(executed, "pending task must not run after Stop")
}

func (s *singleWorkerSchedulerSuite) TestStop_ConcurrentScheduleNotRetained() {
	const offerers = 8
	const offersEach = 64

	var startWG, doneWG sync.WaitGroup
	startWG.Add(1)
	doneWG.Add(offerers)
	for i := 0; i < offerers; i++ {
		go func() {
			defer doneWG.Done()
			startWG.Wait()
			for j := 0; j < offersEach; j++ {
				s.scheduler.Schedule(time.Hour, func() {})
			}
		}()
	}
	startWG.Done()
	s.scheduler.Stop()
	doneWG.Wait()

	// offers racing Stop must either be drained by Stop or rejected;
	// none may stay queued
	s.scheduler.mu.Lock()
	remaining := s.scheduler.pending.Size()
	s.scheduler.mu.Unlock()
	s.Zero(remaining, "no task may remain queued after Stop returns and all offers finished")
}

func (s *singleWorkerSchedulerSuite) TestSchedule_AfterStop() {
	executed := make(chan struct{})

	s.scheduler.Stop()
	s.scheduler.Schedule(0, func() { close(executed) })

	s.assertNotFired(executed, "task offered after Stop must be dropped")
}

func TestProvider_SharedCreatedOnce(t *testing.T) {
	t.Parallel()

	var created int32
	var mu sync.Mutex
	provider := NewProvider(func() Scheduler {
		mu.Lock()
		created++
		mu.Unlock()
		return NewSingleWorkerScheduler(clock.NewEventTimeSource(), log.NewNoopLogger())
	})

	const callers = 32
	results := make([]Scheduler, callers)

	var startWG, doneWG sync.WaitGroup
	startWG.Add(1)
	doneWG.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer doneWG.Done()
			startWG.Wait()
			results[i] = provider.Shared()
		}(i)
	}
	startWG.Done()
	doneWG.Wait()

	require.EqualValues(t, 1, created, "concurrent first use must create exactly one scheduler")
	for i := 1; i < callers; i++ {
		require.Same(t, results[0], results[i], "all callers must converge on the same instance")
	}
}

func TestProvider_LazyUntilFirstUse(t *testing.T) {
	t.Parallel()

	var created int
	provider := NewProvider(func() Scheduler {
		created++
		return NewSingleWorkerScheduler(clock.NewEventTimeSource(), log.NewNoopLogger())
	})

	require.Zero(t, created, "factory must not run before first use")
	provider.Shared()
	provider.Shared()
	require.Equal(t, 1, created, "factory must run exactly once")
}
