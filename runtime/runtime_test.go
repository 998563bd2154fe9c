package runtime

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vmware/database-stream-processor/algebra"
	"github.com/vmware/database-stream-processor/circuit"
	"github.com/vmware/database-stream-processor/internal/telemetry"
	"github.com/vmware/database-stream-processor/zset"
)

type strKey string

func (s strKey) Less(o strKey) bool  { return s < o }
func (s strKey) Equal(o strKey) bool { return s == o }

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatal(err)
	}
	return m.GetCounter().GetValue()
}

func TestSequenceNextMonotonicPerWorker(t *testing.T) {
	done := make(chan struct{})
	var got [4][]uint64
	h := Run(4, Options{}, func(w *Worker) {
		for i := 0; i < 100; i++ {
			got[w.Index()] = append(got[w.Index()], w.Runtime().SequenceNext(w.Index()))
		}
	})
	go func() { h.Join(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("workers did not finish")
	}
	for worker, seq := range got {
		if len(seq) != 100 {
			t.Fatalf("worker %d: got %d values, want 100", worker, len(seq))
		}
		for i, v := range seq {
			if v != uint64(i) {
				t.Fatalf("worker %d: seq[%d] = %d, want %d", worker, i, v, i)
			}
		}
	}
}

func TestKillTerminatesSpinningWorkers(t *testing.T) {
	const nworkers = 16
	h := Run(nworkers, Options{}, func(w *Worker) {
		for !w.Killed() {
		}
	})
	done := make(chan struct{})
	go func() { h.Kill(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("kill did not cause all workers to terminate in time")
	}
}

func TestStoreUpdateIsAtomicPerKey(t *testing.T) {
	s := NewStore()
	const n = 1000
	done := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		go func() {
			Update(s, "counter", func(v int) int { return v + 1 })
			done <- struct{}{}
		}()
	}
	for i := 0; i < n; i++ {
		<-done
	}
	got, ok := Load[int](s, "counter")
	if !ok || got != n {
		t.Fatalf("got %v, %v, want %d, true", got, ok, n)
	}
}

func TestStepCheckedRecordsTickAndOverflowMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := telemetry.NewRuntimeMetrics(registry)

	done := make(chan struct{})
	h := Run(1, Options{Metrics: metrics}, func(w *Worker) {
		defer close(done)
		c := circuit.New(nil)
		in := circuit.AddInputZSet[strKey, algebra.I64](c, "in")
		_ = circuit.AddUnaryOperator(c, "identity", in.Stream(), func(z zset.Z[strKey, algebra.I64]) (zset.Z[strKey, algebra.I64], error) {
			return z, nil
		})

		step := func(killed func() bool) error { return c.StepKillable(killed) }
		for i := 0; i < 3; i++ {
			in.Push(zset.FromTuples([]zset.Tuple[strKey, algebra.I64]{{Item: "a", Weight: 1}}))
			if err := w.StepChecked(c.NumNodes(), step); err != nil {
				t.Error(err)
			}
		}
	})
	<-done
	h.Join()

	if got := counterValue(t, metrics.Ticks); got != 3 {
		t.Fatalf("Ticks = %v, want 3", got)
	}
	if got := counterValue(t, metrics.OverflowErrors); got != 0 {
		t.Fatalf("OverflowErrors = %v, want 0", got)
	}
	if got := counterValue(t, metrics.OperatorEvals); got != 6 {
		t.Fatalf("OperatorEvals = %v, want 6", got)
	}
}

func TestShardIsStableAndWithinRange(t *testing.T) {
	key := []byte("some-key")
	first := Shard(key, 8)
	for i := 0; i < 10; i++ {
		if got := Shard(key, 8); got != first {
			t.Fatalf("Shard not stable: got %d, want %d", got, first)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard %d out of range [0,8)", first)
	}
}
