package fetcher

import (
	"context"
	"fmt"
	"sync"
)

// BulkRequest описывает серию однотипных запросов по срезам большого
// набора данных. Build собирает запрос для среза [start, stop);
// вернув nil без ошибки, он пропускает срез.
type BulkRequest struct {
	Total     int
	ChunkSize int
	Build     func(start, stop int) (*Request, error)
}

// CountChunks возвращает число срезов, покрывающих total элементов
func CountChunks(total, chunkSize int) int {
	if total <= 0 || chunkSize <= 0 {
		return 0
	}
	return (total + chunkSize - 1) / chunkSize
}

// DoBulk выполняет серию запросов параллельно и собирает результаты.
// Сбой одного среза не отменяет остальные: успешные результаты
// возвращаются вместе со списком ошибок по неудачным срезам.
func (f *Fetcher) DoBulk(ctx context.Context, bulk *BulkRequest) ([]*Result, []error) {
	chunks := CountChunks(bulk.Total, bulk.ChunkSize)
	if chunks == 0 {
		return nil, nil
	}

	results := make([]*Result, chunks)
	errs := make([]error, chunks)

	var wg sync.WaitGroup
	for i := 0; i < chunks; i++ {
		start := i * bulk.ChunkSize
		stop := start + bulk.ChunkSize
		if stop > bulk.Total {
			stop = bulk.Total
		}

		req, err := bulk.Build(start, stop)
		if err != nil {
			errs[i] = &Error{Kind: KindOrchestration, Err: err}
			continue
		}
		if req == nil {
			continue
		}

		wg.Add(1)
		go func(i int, req *Request) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = &Error{Kind: KindOrchestration,
						Err: fmt.Errorf("паника при выполнении среза %d: %v", i, r)}
				}
			}()
			res, err := f.Do(ctx, req)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = res
		}(i, req)
	}
	wg.Wait()

	collected := make([]*Result, 0, chunks)
	for _, r := range results {
		if r != nil {
			collected = append(collected, r)
		}
	}
	failed := make([]error, 0)
	for _, e := range errs {
		if e != nil {
			failed = append(failed, e)
		}
	}
	return collected, failed
}
