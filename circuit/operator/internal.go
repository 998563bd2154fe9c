package operator

import "github.com/vmware/database-stream-processor/circuit"

// integrateGeneric is the shared Z^-1-feedback running-total shape that
// both Integrate (over zset.Z) and IntegrateIndexed (over zset.IZ) build
// on; add is the stream value type's own Plus.
func integrateGeneric[T any](c *circuit.Circuit, name string, in circuit.Stream[T], zero T, add func(T, T) T) circuit.Stream[T] {
	delayed, connect := circuit.AddDelay(c, name+".z1", zero)
	sum := circuit.AddBinaryOperator(c, name, in, delayed, func(a, b T) (T, error) { return add(a, b), nil })
	connect(sum)
	return sum
}
