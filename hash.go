package keyseq

import (
	"fmt"
	"hash/fnv"
)

// KeyHasher maps a sequence key to a bucket hash, used by the
// bounded-keys factory to assign a key to one of its buckets (spec §4.7,
// §9 bucket assignment). Grounded on the mycelian-ai shardqueue's
// shardFor: FNV-1a over the key's string form, stable across calls within
// a process. Override with WithKeyHasher when K has a cheaper natural
// hash than the default fmt.Sprintf fallback.
type KeyHasher[K comparable] func(key K) uint64

func defaultKeyHasher[K comparable]() KeyHasher[K] {
	return func(key K) uint64 {
		h := fnv.New64a()
		_, _ = fmt.Fprintf(h, "%v", key)
		return h.Sum64()
	}
}
