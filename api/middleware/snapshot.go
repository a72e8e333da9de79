package middleware

import (
	"net/http"
	"strconv"
	"sync/atomic"
)

const snapshotSeqHeader = "X-Snapshot-Seq"

// SnapshotSeq stamps every response with a per-process monotonic sequence
// number. Polling clients compare it to detect out-of-order responses and
// drop stale snapshots.
func SnapshotSeq() func(http.Handler) http.Handler {
	var seq atomic.Uint64
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(snapshotSeqHeader, strconv.FormatUint(seq.Add(1), 10))
			next.ServeHTTP(w, r)
		})
	}
}
