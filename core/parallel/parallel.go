// Package parallel は範囲分割による単純なワーカープールを提供します。
package parallel

import (
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"
)

// Parallelize は items 件を CPU コア数に応じて連続区間 [start, end) に分割し、
// 各区間について fn を並列に実行します。全ての fn が戻るまでブロックします。
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := min(start+chunkSize, items)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold は items が threshold を超える場合のみ並列化します。
// それ以下では呼び出し元のゴルーチンで fn(0, items) を一度だけ実行します。
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// ForEach は fn(i) を 0 <= i < items の各要素について並列に呼び出し、
// 失敗した全ての呼び出しのエラーを結合して返します。
// 1 件の失敗で他の要素の処理が中断されることはありません。
func ForEach(items int, fn func(i int) error) error {
	if items <= 0 {
		return nil
	}

	errs := make([]error, items)
	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			errs[i] = fn(i)
		}
	})

	var combined error
	for _, err := range errs {
		combined = errors.CombineErrors(combined, err)
	}
	return combined
}
