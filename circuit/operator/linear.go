package operator

import (
	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/circuit"
	"github.com/vmware/database-stream-processor/zset"
)

// Plus adds two Z-set streams pointwise.
func Plus[A zset.Ordered[A], R algebra.Value[R]](c *circuit.Circuit, name string, a, b circuit.Stream[zset.Z[A, R]]) circuit.Stream[zset.Z[A, R]] {
	return circuit.AddBinaryOperator(c, name, a, b, func(x, y zset.Z[A, R]) (zset.Z[A, R], error) {
		return x.Plus(y), nil
	})
}

// Minus subtracts b from a pointwise.
func Minus[A zset.Ordered[A], R algebra.Value[R]](c *circuit.Circuit, name string, a, b circuit.Stream[zset.Z[A, R]]) circuit.Stream[zset.Z[A, R]] {
	return circuit.AddBinaryOperator(c, name, a, b, func(x, y zset.Z[A, R]) (zset.Z[A, R], error) {
		return x.Minus(y), nil
	})
}

// Negate flips every weight's sign.
func Negate[A zset.Ordered[A], R algebra.Value[R]](c *circuit.Circuit, name string, in circuit.Stream[zset.Z[A, R]]) circuit.Stream[zset.Z[A, R]] {
	return circuit.AddUnaryOperator(c, name, in, func(z zset.Z[A, R]) (zset.Z[A, R], error) {
		return z.Negate(), nil
	})
}

// Integrate accumulates every tick's delta into a running total: the
// classic Z^-1-feedback integral, sum_{i<=n} delta_i, built directly out
// of a delay-fed addition the way operator/integrate_trace.rs does.
func Integrate[A zset.Ordered[A], R algebra.Value[R]](c *circuit.Circuit, name string, in circuit.Stream[zset.Z[A, R]]) circuit.Stream[zset.Z[A, R]] {
	return integrateGeneric(c, name, in, zset.Empty[A, R](), func(a, b zset.Z[A, R]) zset.Z[A, R] { return a.Plus(b) })
}

// Differentiate is Integrate's inverse: this tick's value minus the
// previous tick's, turning a running total back into a delta stream.
func Differentiate[A zset.Ordered[A], R algebra.Value[R]](c *circuit.Circuit, name string, in circuit.Stream[zset.Z[A, R]]) circuit.Stream[zset.Z[A, R]] {
	delayed, connect := circuit.AddDelay(c, name+".z1", zset.Empty[A, R]())
	connect(in)
	return Minus(c, name, in, delayed)
}
