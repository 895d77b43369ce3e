// log.go wires Logger to a leveled package logger built on
// github.com/op/go-logging, the way FrankyGo's movegen and attacks
// packages each hold a package-scoped *logging.Logger and call its
// Debugf/Infof methods instead of fmt.Printf.
package engine

import (
	"time"

	"github.com/corechess/corechess/board"
	"github.com/op/go-logging"
)

// GoLogger implements Logger by emitting one formatted Info line per
// depth iteration through a *logging.Logger.
type GoLogger struct {
	Logger *logging.Logger
	start  time.Time
}

// NewGoLogger builds a GoLogger with a logger registered under name.
func NewGoLogger(name string) *GoLogger {
	return &GoLogger{Logger: logging.MustGetLogger(name)}
}

func (l *GoLogger) BeginSearch() { l.start = time.Now() }
func (l *GoLogger) EndSearch()   {}

func (l *GoLogger) PrintPV(stats Stats, score int32, pv []board.Move) {
	pvStrs := make([]string, len(pv))
	for i, m := range pv {
		pvStrs[i] = m.String()
	}
	l.Logger.Infof("depth=%d nodes=%d cache_hits=%d score_cp=%d elapsed=%v pv=%v",
		stats.Depth, stats.Nodes, stats.CacheHits, score, time.Since(l.start), pvStrs)
}
