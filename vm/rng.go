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

package vm

import "math/rand"

// RandomSource is the external RNG collaborator of spec §6: an injectable,
// seedable generator of signed 32-bit integers. Generate-driven transact
// minting is the only consumer.
type RandomSource interface {
	NextInt32() int32
}

// mathRandSource adapts math/rand to RandomSource. It is built directly on
// the standard library rather than a pack dependency; see DESIGN.md for why
// no example/ecosystem library improves on it for this narrow need.
type mathRandSource struct {
	r *rand.Rand
}

// NewMathRand returns a RandomSource seeded deterministically from seed,
// suitable for reproducible test runs and demo programs alike.
func NewMathRand(seed int64) RandomSource {
	return &mathRandSource{r: rand.New(rand.NewSource(seed))}
}

// NextInt32 returns the next signed 32-bit integer in the sequence.
func (m *mathRandSource) NextInt32() int32 {
	return int32(m.r.Uint32())
}
