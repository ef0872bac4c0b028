package advanced

import (
	"fmt"
	"io"
	"sync"

	"github.com/StuartLittlefair/trm-roche/dbg"
	"github.com/logrusorgru/aurora"
)

// This is for debugging purposes only. When a writer is set, integrators and
// eclipse searches report their progress to it, each run tagged with a
// readable name.

var (
	traceMu  sync.Mutex
	traceOut io.Writer
)

// SetTrace directs debug output to w. A nil writer switches tracing off.
func SetTrace(w io.Writer) {
	traceMu.Lock()
	defer traceMu.Unlock()
	traceOut = w
}

func tracing() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceOut != nil
}

// Name for a traced run, or "" when tracing is off so that the name memo is
// never touched on the fast path.
func traceName(obj interface{}) string {
	if !tracing() {
		return ""
	}
	return aurora.Cyan(dbg.Name(obj)).String()
}

func tracef(name, format string, args ...interface{}) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if traceOut == nil {
		return
	}
	fmt.Fprintf(traceOut, "%s %s\n", name, fmt.Sprintf(format, args...))
}

// Coloured outcome marker for trace lines.
func traceOutcome(ok bool) string {
	if ok {
		return aurora.Green("yes").String()
	}
	return aurora.Red("no").String()
}
