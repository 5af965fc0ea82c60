package log

import (
	"fmt"
	"runtime/debug"

	"github.com/RedRem95/DelayObject/common/log/tag"
)

// CapturePanic recovers a panic from a deferred call, logs it and returns
// the panic value as an error through the pointer. A pointer is needed
// because recover only works when called directly by a deferred function,
// and the caller usually wants the error as its own return value.
func CapturePanic(logger Logger, retError *error) {
	if panicObj := recover(); panicObj != nil {
		err, ok := panicObj.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", panicObj)
		}

		logger.Error("Panic is captured", tag.SysStackTrace(string(debug.Stack())), tag.Error(err))

		*retError = err
	}
}
