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

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind tags the variant held by a Value. Comparisons, coercions, and
// equality are only ever defined between same-Kind values; see Equal and
// Compare.
type Kind uint8

const (
	KindBoolean Kind = iota
	KindFloat
	KindInteger
	KindUnsignedInteger
	KindFacility
)

var kindNames = [...]string{
	KindBoolean:         "Boolean",
	KindFloat:           "Float",
	KindInteger:         "Integer",
	KindUnsignedInteger: "UnsignedInteger",
	KindFacility:        "Facility",
}

// String returns the variant name, used verbatim in Display's "TAG, VALUE" form.
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Value is GpssValue: a tagged scalar. The zero Value is Boolean(false),
// matching Transact's default parameter slot.
type Value struct {
	kind Kind
	b    bool
	f    float32
	i    int32
	u    uint32
	fac  uint8 // Facility utilization count
}

// Bool constructs a Boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Float constructs a Float value.
func Float(f float32) Value { return Value{kind: KindFloat, f: f} }

// Int constructs an Integer value.
func Int(i int32) Value { return Value{kind: KindInteger, i: i} }

// UInt constructs an UnsignedInteger value.
func UInt(u uint32) Value { return Value{kind: KindUnsignedInteger, u: u} }

// Fac constructs a Facility value with the given utilization count.
func Fac(count uint8) Value { return Value{kind: KindFacility, fac: count} }

// Kind reports the value's tag.
func (v Value) Kind() Kind { return v.kind }

// Equal implements GpssValue equality: defined only between same-tag values.
// Cross-tag comparison returns ErrTypeMismatch rather than panicking
// (resolves spec Open Question 2).
func (v Value) Equal(other Value) (bool, error) {
	if v.kind != other.kind {
		return false, fmt.Errorf("%w: Equal(%s, %s)", ErrTypeMismatch, v.kind, other.kind)
	}
	switch v.kind {
	case KindBoolean:
		return v.b == other.b, nil
	case KindFloat:
		return v.f == other.f, nil
	case KindInteger:
		return v.i == other.i, nil
	case KindUnsignedInteger:
		return v.u == other.u, nil
	case KindFacility:
		return false, fmt.Errorf("%w: Facility has no meaningful equality", ErrTypeMismatch)
	default:
		return false, fmt.Errorf("%w: unknown kind %d", ErrTypeMismatch, v.kind)
	}
}

// Compare implements GpssValue ordering: defined only between same-tag
// values, and never for Facility (spec §4.1 notes it "has no meaningful
// ordering"). Returns -1, 0, or 1.
func (v Value) Compare(other Value) (int, error) {
	if v.kind != other.kind {
		return 0, fmt.Errorf("%w: Compare(%s, %s)", ErrTypeMismatch, v.kind, other.kind)
	}
	switch v.kind {
	case KindBoolean:
		return boolCompare(v.b, other.b), nil
	case KindFloat:
		return floatCompare(v.f, other.f), nil
	case KindInteger:
		return intCompare(v.i, other.i), nil
	case KindUnsignedInteger:
		return uintCompare(v.u, other.u), nil
	default:
		return 0, fmt.Errorf("%w: %s has no meaningful ordering", ErrTypeMismatch, v.kind)
	}
}

func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

func floatCompare(a, b float32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func intCompare(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func uintCompare(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// IsFacilityBusy reports whether a Facility value has a nonzero utilization
// count. Defined only for Facility values.
func (v Value) IsFacilityBusy() (bool, error) {
	if v.kind != KindFacility {
		return false, fmt.Errorf("%w: IsFacilityBusy on %s", ErrTypeMismatch, v.kind)
	}
	return v.fac > 0, nil
}

// ToBool coerces a Boolean value to bool. Defined only for Boolean.
func (v Value) ToBool() (bool, error) {
	if v.kind != KindBoolean {
		return false, fmt.Errorf("%w: ToBool on %s", ErrTypeMismatch, v.kind)
	}
	return v.b, nil
}

// ToFloat32 coerces a Float value to float32. Defined only for Float.
func (v Value) ToFloat32() (float32, error) {
	if v.kind != KindFloat {
		return 0, fmt.Errorf("%w: ToFloat32 on %s", ErrTypeMismatch, v.kind)
	}
	return v.f, nil
}

// ToU32 coerces an UnsignedInteger value to uint32. Defined only for
// UnsignedInteger.
func (v Value) ToU32() (uint32, error) {
	if v.kind != KindUnsignedInteger {
		return 0, fmt.Errorf("%w: ToU32 on %s", ErrTypeMismatch, v.kind)
	}
	return v.u, nil
}

// ToUsize coerces an UnsignedInteger value to int (used for indexing).
// Defined only for UnsignedInteger.
func (v Value) ToUsize() (int, error) {
	if v.kind != KindUnsignedInteger {
		return 0, fmt.Errorf("%w: ToUsize on %s", ErrTypeMismatch, v.kind)
	}
	return int(v.u), nil
}

// Display renders the "TAG, VALUE" form mandated by spec §4.1 and used
// verbatim by the Print instruction (spec §6).
func (v Value) Display() string {
	switch v.kind {
	case KindBoolean:
		return fmt.Sprintf("%s, %t", v.kind, v.b)
	case KindFloat:
		return fmt.Sprintf("%s, %v", v.kind, v.f)
	case KindInteger:
		return fmt.Sprintf("%s, %d", v.kind, v.i)
	case KindUnsignedInteger:
		return fmt.Sprintf("%s, %d", v.kind, v.u)
	case KindFacility:
		return fmt.Sprintf("%s, %d", v.kind, v.fac)
	default:
		return fmt.Sprintf("Unknown, %v", v)
	}
}

// transactParams is the fixed arity of a Transact's parameter vector.
const transactParams = 16

// Transact is a movable simulation entity with a fixed 16-slot parameter
// vector. ID is an expansion over spec.md: a UUID assigned at creation,
// carried through Advance resumptions, used only for log/trace
// traceability and never compared or stored as a GpssValue.
type Transact struct {
	Params [transactParams]Value
	ID     uuid.UUID
}

// NewTransact mints a transact with parameter 0 drawn from rng and all
// other slots defaulted to Boolean(false), per spec §4.1's
// Transact::new_with_rng.
func NewTransact(rng RandomSource) Transact {
	var t Transact
	t.Params[0] = Int(rng.NextInt32())
	for i := 1; i < transactParams; i++ {
		t.Params[i] = Bool(false)
	}
	t.ID = uuid.New()
	return t
}
