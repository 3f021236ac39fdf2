// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emit

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// spinLock guards short critical sections that never run user code.
//
// Holders only touch queues, listener slices and futures, so hold times are
// short and bounded by a single queue growth at worst.
type spinLock struct {
	word atomix.Uint64 // 0 = free, 1 = held
}

func (l *spinLock) lock() {
	sw := spin.Wait{}
	for !l.word.CompareAndSwapAcqRel(0, 1) {
		sw.Once()
	}
}

func (l *spinLock) unlock() {
	l.word.StoreRelease(0)
}
