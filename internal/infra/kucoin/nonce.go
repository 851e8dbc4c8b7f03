package kucoin

import (
	"sync"
	"time"
)

var (
	nonce int64 = time.Now().UnixMilli()

	nonceMu sync.Mutex
)

// nextNonce returns a strictly increasing millisecond nonce. KuCoin rejects
// requests whose nonce does not exceed the previous one, so the counter only
// ever moves forward even when calls land within the same millisecond.
func nextNonce() int64 {
	nonceMu.Lock()
	defer nonceMu.Unlock()

	now := time.Now().UnixMilli()
	if now > nonce {
		nonce = now
	} else {
		nonce++
	}
	return nonce
}
