// Copyright 2024 The gpssvm Authors
// This file is part of gpssvm.
//
// gpssvm is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// gpssvm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with gpssvm. If not, see <http://www.gnu.org/licenses/>.

package log

import "github.com/davecgh/go-spew/spew"

// dumpConfig renders nested struct fields (unexported included) for deep
// interpreter-state inspection, matching the teacher's debug-dump style.
var dumpConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump renders v as a multi-line, indented structure for debug logging.
// Intended for ad-hoc interpreter-state inspection, not for the VM's own
// output or trace streams.
func Dump(v any) string {
	return dumpConfig.Sdump(v)
}
