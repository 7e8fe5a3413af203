package server

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"

	"hydro/model"
)

type task struct {
	index int
	req   model.FormulateReq
}

type result struct {
	index int
	resp  *FormulateResp
	err   error
}

type BatchResult struct {
	Resp *FormulateResp
	Err  error
}

// 多个配方并发计算，结果与请求顺序一致
// workers <= 0 时使用 CPU 核数
func (s *Service) FormulateBatch(reqs []model.FormulateReq, workers int) []BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}
	start := time.Now()

	dispatchChan := make(chan task, len(reqs))
	doneSoFar := make(chan result, len(reqs))
	for i := 0; i < workers; i++ {
		go func() {
			for t := range dispatchChan {
				resp, err := s.Formulate(t.req)
				doneSoFar <- result{index: t.index, resp: resp, err: err}
			}
		}()
	}
	for i, req := range reqs {
		dispatchChan <- task{index: i, req: req}
	}
	close(dispatchChan)

	results := make([]BatchResult, len(reqs))
	for range reqs {
		r := <-doneSoFar
		results[r.index] = BatchResult{Resp: r.resp, Err: r.err}
	}
	log.WithFields(log.Fields{
		"recipes": len(reqs),
		"workers": workers,
		"cost":    time.Since(start),
	}).Debug("批量配方计算完成")
	return results
}
