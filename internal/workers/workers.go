package workers

import (
	"github.com/avelichko/imagegate/internal/config"
	"github.com/avelichko/imagegate/internal/logger"
	"github.com/avelichko/imagegate/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the gateway's background workers. Workers whose
// configuration disables them are not included.
func NewWorkers(storages *store.Storages, cfg config.Workers, experimental config.Experimental, logger *logger.Logger) *Workers {
	ws := &Workers{}

	if sweeper := NewCacheSweeper(storages, cfg, experimental, logger); sweeper != nil {
		ws.workers = append(ws.workers, sweeper)
	}

	return ws
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop signals every worker that supports stopping to finish. Workers
// without a stop path are left to exit with the process.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		if stopper, ok := worker.(interface{ Stop() }); ok {
			stopper.Stop()
		}
	}
}
