package hemesh

import "log"

// TraceObserver receives diagnostics from tree queries. The intersection
// code itself never logs; attach an observer with WithObserver to see what a
// query did. Observers are called synchronously from the querying goroutine.
type TraceObserver interface {
	TraceStarted(r Ray)
	LeafTested(index int, t float64, hit bool)
	NearestChanged(from, to Nearest)
	TraceFinished(result Nearest)
}

type nopObserver struct{}

func (nopObserver) TraceStarted(Ray)                {}
func (nopObserver) LeafTested(int, float64, bool)   {}
func (nopObserver) NearestChanged(Nearest, Nearest) {}
func (nopObserver) TraceFinished(Nearest)           {}

// LogObserver writes trace events to a standard logger. Leaf tests are only
// logged when Verbose is set.
type LogObserver struct {
	Logger  *log.Logger
	Verbose bool
}

func NewLogObserver(logger *log.Logger, verbose bool) *LogObserver {
	if logger == nil {
		logger = log.Default()
	}
	return &LogObserver{Logger: logger, Verbose: verbose}
}

func (o *LogObserver) TraceStarted(r Ray) {
	o.Logger.Printf("trace: origin %v direction %v", r.Origin, r.Direction)
}

func (o *LogObserver) LeafTested(index int, t float64, hit bool) {
	if !o.Verbose {
		return
	}
	if hit {
		o.Logger.Printf("trace: leaf %d hit at t=%g", index, t)
	} else {
		o.Logger.Printf("trace: leaf %d missed", index)
	}
}

func (o *LogObserver) NearestChanged(from, to Nearest) {
	if !from.Valid {
		o.Logger.Printf("trace: nearest set to %g (leaf %d)", to.T, to.Index)
		return
	}
	o.Logger.Printf("trace: nearest changed from %g to %g (leaf %d)", from.T, to.T, to.Index)
}

func (o *LogObserver) TraceFinished(result Nearest) {
	if !result.Valid {
		o.Logger.Println("trace: no intersection")
		return
	}
	o.Logger.Printf("trace: nearest %g (leaf %d)", result.T, result.Index)
}
