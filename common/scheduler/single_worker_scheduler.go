package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/RedRem95/DelayObject/common/clock"
	"github.com/RedRem95/DelayObject/common/log"
	"github.com/RedRem95/DelayObject/common/log/tag"
)

const (
	statusInitialized int32 = iota
	statusStarted
	statusStopped
)

const shutdownTimeout = time.Minute

type (
	// SingleWorkerScheduler runs delayed tasks on one worker goroutine.
	// Tasks become due at or after their deadline and execute serialized,
	// so a slow task delays everything due behind it. That is the intended
	// trade: bounded background capacity over callback parallelism.
	SingleWorkerScheduler struct {
		status       int32
		shutdownChan chan struct{}
		shutdownWG   sync.WaitGroup

		timeSource clock.TimeSource
		logger     log.Logger

		mu      sync.Mutex
		pending *binaryheap.Heap
		// signalChan has capacity 1: one buffered signal is enough to make
		// the worker re-read the head of the heap.
		signalChan chan struct{}
	}

	scheduledTask struct {
		deadline time.Time
		task     Task
	}
)

var _ Scheduler = (*SingleWorkerScheduler)(nil)

// NewSingleWorkerScheduler creates a stopped scheduler. Call Start before
// scheduling tasks.
func NewSingleWorkerScheduler(
	timeSource clock.TimeSource,
	logger log.Logger,
) *SingleWorkerScheduler {
	return &SingleWorkerScheduler{
		status:       statusInitialized,
		shutdownChan: make(chan struct{}),
		timeSource:   timeSource,
		logger:       logger,
		pending:      binaryheap.NewWith(compareDeadline),
		signalChan:   make(chan struct{}, 1),
	}
}

func compareDeadline(a, b interface{}) int {
	return a.(*scheduledTask).deadline.Compare(b.(*scheduledTask).deadline)
}

func (s *SingleWorkerScheduler) Start() {
	if !atomic.CompareAndSwapInt32(
		&s.status,
		statusInitialized,
		statusStarted,
	) {
		return
	}

	s.shutdownWG.Add(1)
	go s.workerLoop()

	s.logger.Debug("single worker scheduler started")
}

func (s *SingleWorkerScheduler) Stop() {
	if !atomic.CompareAndSwapInt32(
		&s.status,
		statusStarted,
		statusStopped,
	) {
		return
	}

	close(s.shutdownChan)
	go func() {
		if success := awaitWaitGroup(&s.shutdownWG, shutdownTimeout); !success {
			s.logger.Warn("single worker scheduler timed out waiting for worker")
		}
	}()

	s.mu.Lock()
	dropped := s.pending.Size()
	s.pending.Clear()
	s.mu.Unlock()
	if dropped > 0 {
		s.logger.Warn("single worker scheduler dropped pending tasks", tag.PendingTasks(dropped))
	}

	s.logger.Debug("single worker scheduler stopped")
}

// Schedule enqueues task to run once, at or after now+delay. Tasks offered
// after Stop are dropped. The stopped check happens under s.mu, the same
// lock Stop drains under, so an offer racing Stop is either drained there
// or rejected here; it can never stay queued unnoticed.
func (s *SingleWorkerScheduler) Schedule(delay time.Duration, task Task) {
	if task == nil {
		panic("scheduler: nil task")
	}

	deadline := s.timeSource.Now().Add(delay)
	s.mu.Lock()
	if s.isStopped() {
		s.mu.Unlock()
		s.logger.Warn("task scheduled on stopped scheduler", tag.ScheduledDelay(delay))
		return
	}
	s.pending.Push(&scheduledTask{deadline: deadline, task: task})
	s.mu.Unlock()

	s.signal()
}

func (s *SingleWorkerScheduler) signal() {
	select {
	case s.signalChan <- struct{}{}:
	default:
	}
}

func (s *SingleWorkerScheduler) workerLoop() {
	defer s.shutdownWG.Done()

	for {
		delay, ok := s.nextDelay()
		if ok && delay <= 0 {
			s.runDueTasks()
			continue
		}

		var wakeup clock.Timer
		if ok {
			wakeup = s.timeSource.AfterFunc(delay, s.signal)
		}

		select {
		case <-s.signalChan:
			if wakeup != nil {
				wakeup.Stop()
			}
		case <-s.shutdownChan:
			if wakeup != nil {
				wakeup.Stop()
			}
			return
		}
	}
}

// nextDelay returns the time until the earliest pending deadline, or false
// if nothing is pending.
func (s *SingleWorkerScheduler) nextDelay() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	top, ok := s.pending.Peek()
	if !ok {
		return 0, false
	}
	return top.(*scheduledTask).deadline.Sub(s.timeSource.Now()), true
}

func (s *SingleWorkerScheduler) runDueTasks() {
	for {
		s.mu.Lock()
		top, ok := s.pending.Peek()
		if !ok || top.(*scheduledTask).deadline.After(s.timeSource.Now()) {
			s.mu.Unlock()
			return
		}
		item, _ := s.pending.Pop()
		s.mu.Unlock()

		s.executeTask(item.(*scheduledTask).task)
	}
}

func (s *SingleWorkerScheduler) executeTask(task Task) {
	var panicErr error
	defer log.CapturePanic(s.logger, &panicErr)

	task()
}

func (s *SingleWorkerScheduler) isStopped() bool {
	return atomic.LoadInt32(&s.status) == statusStopped
}

func awaitWaitGroup(wg *sync.WaitGroup, timeout time.Duration) bool {
	doneChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneChan)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-doneChan:
		return true
	case <-timer.C:
		return false
	}
}
