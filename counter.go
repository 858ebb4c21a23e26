package tinify

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/golang/glog"
)

// compressionCount is shared by every client in the process. Each response
// carrying the header overwrites it, the last write wins.
var compressionCount atomic.Int64

// CompressionCount returns the number of compressions reported by the most
// recent response that carried a Compression-Count header, from any client.
// It is zero until such a response arrives.
//
// Concurrent clients using different keys overwrite each other's value.
func CompressionCount() int { return int(compressionCount.Load()) }

func updateCompressionCount(value string) {
	if value = strings.TrimSpace(value); value == "" {
		return
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		glog.Warningf("tinify: ignoring %s header %q: %v", HeaderCompressionCount, value, err)
		return
	}

	compressionCount.Store(n)
}
