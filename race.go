// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package emit

// RaceEnabled is true when the race detector is active.
// Tests use it to skip cross-goroutine emit/pull cases: the detector does
// not see the atomix-based spin locks as synchronization.
const RaceEnabled = true
