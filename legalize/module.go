// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package legalize

import (
	"sync"

	"github.com/gx-org/legalize/ir"
	"go.uber.org/multierr"
)

// DefaultWorkers is the number of functions converted simultaneously
// by ConvertModule when no number of workers is given.
const DefaultWorkers = 4

type asyncErrors struct {
	locker sync.Mutex
	errs   error
}

func (ae *asyncErrors) add(err error) {
	ae.locker.Lock()
	defer ae.locker.Unlock()

	ae.errs = multierr.Append(ae.errs, err)
}

func (ae *asyncErrors) errors() error {
	ae.locker.Lock()
	defer ae.locker.Unlock()

	errs := ae.errs
	ae.errs = nil
	return errs
}

type (
	funcToWorker struct {
		index int
		fn    *ir.Func
	}

	// moduleConverter converts the functions of a module in Go routines.
	// Each function is converted by a single Go routine.
	moduleConverter struct {
		driver   *Driver
		wg       sync.WaitGroup
		errs     asyncErrors
		toWorker chan funcToWorker
		results  []*Result
	}
)

// ConvertModule converts all the functions of a module, using up to
// workers Go routines. Functions share no state: each one is converted
// independently by a single Go routine.
//
// The results are returned in the order of the module functions.
// The returned error combines the failures of all the functions.
func (d *Driver) ConvertModule(m *ir.Module, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	funcs := m.Funcs()
	mc := &moduleConverter{
		driver:   d,
		toWorker: make(chan funcToWorker),
		results:  make([]*Result, len(funcs)),
	}
	for range min(workers, max(len(funcs), 1)) {
		mc.wg.Add(1)
		go mc.convertWorker()
	}
	for i, fn := range funcs {
		mc.toWorker <- funcToWorker{index: i, fn: fn}
	}
	return mc.results, mc.close()
}

func (mc *moduleConverter) convertWorker() {
	defer mc.wg.Done()
	for info := range mc.toWorker {
		res := mc.driver.ConvertFunc(info.fn)
		mc.results[info.index] = res
		if err := res.Err(); err != nil {
			mc.errs.add(err)
		}
	}
}

func (mc *moduleConverter) close() error {
	close(mc.toWorker)
	mc.wg.Wait()
	return mc.errs.errors()
}
