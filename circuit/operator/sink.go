package operator

import (
	"go.uber.org/zap"

	"github.com/vmware/database-stream-processor/circuit"
)

// Inspect wires a side-effecting observer onto a stream without altering
// the dataflow: f runs once per tick against the stream's current value,
// purely for logging/testing/metrics hooks. Generalizes
// runtime/vam/op/over.go's Pull-loop to a per-tick callback.
func Inspect[T any](c *circuit.Circuit, name string, in circuit.Stream[T], f func(T)) {
	circuit.AddSink(c, name, in, func(v T) error {
		f(v)
		return nil
	})
}

// Condition observes a stream and logs (at warn level) whenever pred
// fails against the current value — a lightweight runtime assertion
// operator for wiring invariant checks into a circuit under test or
// under a zap-backed production logger, rather than panicking inline.
func Condition[T any](c *circuit.Circuit, name string, in circuit.Stream[T], log *zap.Logger, pred func(T) bool, msg string) {
	if log == nil {
		log = zap.NewNop()
	}
	circuit.AddSink(c, name, in, func(v T) error {
		if !pred(v) {
			log.Warn(msg, zap.String("operator", name))
		}
		return nil
	})
}
