package delay

import (
	"github.com/RedRem95/DelayObject/common/clock"
	"github.com/RedRem95/DelayObject/common/log"
	"github.com/RedRem95/DelayObject/common/scheduler"
)

// sharedProvider owns the process-wide scheduler used by RegisterCallback.
// The single worker is created lazily, on the first registration that does
// not bring its own scheduler, and lives until the process exits. A single
// worker keeps background capacity bounded no matter how many Objects
// register callbacks.
var sharedProvider = scheduler.NewProvider(func() scheduler.Scheduler {
	s := scheduler.NewSingleWorkerScheduler(
		clock.NewRealTimeSource(),
		log.NewDefaultLogger(),
	)
	s.Start()
	return s
})
