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

package main

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/probecore/gpssvm/vm"
)

// dumpMemoryTable renders m as an ASCII table of address/value pairs, in
// the teacher's dumpconfig vein of rendering VM-internal state for a human
// to read rather than as a machine-readable format.
func dumpMemoryTable(m *vm.Memory) string {
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"addr", "value"})
	table.SetAutoFormatHeaders(false)

	for i := 0; i < m.Len(); i++ {
		v, err := m.Read(uint32(i))
		if err != nil {
			table.Append([]string{strconv.Itoa(i), "<error: " + err.Error() + ">"})
			continue
		}
		table.Append([]string{strconv.Itoa(i), v.Display()})
	}
	table.Render()
	return b.String()
}
