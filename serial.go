// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing bus identifier, useful only for
// diagnostics (logs, metrics labels) and not part of the spec's
// correctness surface.
type Serial = uint32

// busCounter is the global monotonic counter for bus serials.
var busCounter atomix.Uint32

func nextBusSerial() Serial {
	return busCounter.Add(1)
}
