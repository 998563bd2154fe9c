package runtime

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Shard returns the destination worker index for key under a runtime of
// nworkers workers: a stable hash of key modulo nworkers, the way input
// indexed Z-sets are partitioned across workers. Plain hash-mod-N rather
// than rendezvous/consistent hashing — see DESIGN.md's dropped-dep entry
// for why: this runtime's worker count is fixed for the run's lifetime,
// so there is no remapping event for a minimal-disruption hash to
// optimize.
func Shard(key []byte, nworkers int) int {
	if nworkers <= 0 {
		return 0
	}
	return int(xxhash.Sum64(key) % uint64(nworkers))
}

// ShardUint64 is Shard for callers whose key is already a fixed-width
// integer (e.g. a pre-hashed row key), avoiding an allocation for the
// byte-slice conversion.
func ShardUint64(key uint64, nworkers int) int {
	if nworkers <= 0 {
		return 0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return int(xxhash.Sum64(buf[:]) % uint64(nworkers))
}
