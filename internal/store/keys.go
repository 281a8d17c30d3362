package store

import (
	"crypto/rand"
	"math/big"
)

// KeyPrefix prefixes every generated storage key.
const KeyPrefix = "article_"

const keyCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const keyRandomLen = 8

// NewArticleKey generates a fresh random storage key, e.g. "article_x7Kq92Bd".
// Keys are content-independent: re-ingesting the same source identifier
// produces a new document rather than an update.
func NewArticleKey() string {
	buf := make([]byte, keyRandomLen)
	max := big.NewInt(int64(len(keyCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the system source is broken.
			panic(err)
		}
		buf[i] = keyCharset[n.Int64()]
	}
	return KeyPrefix + string(buf)
}
