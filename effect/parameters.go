// SPDX-License-Identifier: EPL-2.0

package effect

import (
	"fmt"
	"math"
)

// Field names one adjustable parameter.
type Field int

const (
	FieldSpeed Field = iota
	FieldDelay
	FieldDecay
	FieldLimit
	FieldVolume
	FieldCovers
)

// Fields lists every parameter in display order.
var Fields = []Field{FieldSpeed, FieldDelay, FieldDecay, FieldLimit, FieldVolume, FieldCovers}

type fieldInfo struct {
	name     string
	min, max float64
	integer  bool
	chain    bool
}

var fieldTable = map[Field]fieldInfo{
	FieldSpeed:  {name: "speed", min: 0, max: 2, chain: true},
	FieldDelay:  {name: "delay", min: 0, max: 3, chain: true},
	FieldDecay:  {name: "decay", min: 0, max: 3, chain: true},
	FieldLimit:  {name: "limit", min: 0, max: 4, integer: true},
	FieldVolume: {name: "volume", min: 0, max: 2},
	FieldCovers: {name: "covers", min: 1, max: 8, integer: true},
}

func (f Field) String() string {
	if info, ok := fieldTable[f]; ok {
		return info.name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Range returns the inclusive bounds accepted by Parameters.With.
func (f Field) Range() (lo, hi float64) {
	info := fieldTable[f]
	return info.min, info.max
}

// AffectsChain reports whether changing f changes the chain output.
// limit, volume and covers are display values only.
func (f Field) AffectsChain() bool { return fieldTable[f].chain }

// Parameters is the full, immutable parameter set of a track.
type Parameters struct {
	Speed        float64 // 0 disables the stage and locks the field
	DelaySeconds float64
	Decay        float64 // feedback gain per echo
	Limit        int
	Volume       float64
	Covers       int // measures spanned by the selection
}

// DefaultParameters is the state after a reset: every chain stage disabled.
func DefaultParameters() Parameters {
	return Parameters{
		Speed:  1,
		Volume: 1,
		Covers: 1,
	}
}

// SpeedLocked reports whether speed was driven to zero. Further speed
// updates are ignored until the parameters are reset.
func (p Parameters) SpeedLocked() bool { return p.Speed <= 0 }

// Get returns the value of f as a float.
func (p Parameters) Get(f Field) (float64, error) {
	switch f {
	case FieldSpeed:
		return p.Speed, nil
	case FieldDelay:
		return p.DelaySeconds, nil
	case FieldDecay:
		return p.Decay, nil
	case FieldLimit:
		return float64(p.Limit), nil
	case FieldVolume:
		return p.Volume, nil
	case FieldCovers:
		return float64(p.Covers), nil
	}

	return 0, fmt.Errorf("%v: %w", f, ErrUnknownParameter)
}

// With returns a copy of p with f set to value. Integer fields are rounded
// to the nearest integer. Speed accepts 0 or [MinSpeed, 2]. Setting speed
// while it is locked returns p unchanged without an error.
func (p Parameters) With(f Field, value float64) (Parameters, error) {
	info, ok := fieldTable[f]
	if !ok {
		return p, fmt.Errorf("%v: %w", f, ErrUnknownParameter)
	}

	if math.IsNaN(value) || value < info.min || value > info.max {
		return p, fmt.Errorf("%s = %v not in [%v, %v]: %w",
			info.name, value, info.min, info.max, ErrParameterOutOfRange)
	}

	if f == FieldSpeed && value > 0 && value < MinSpeed {
		return p, fmt.Errorf("%s = %v below %v: %w", info.name, value, MinSpeed, ErrParameterOutOfRange)
	}

	if info.integer {
		value = math.Round(value)
	}

	switch f {
	case FieldSpeed:
		if p.SpeedLocked() {
			return p, nil
		}
		p.Speed = value
	case FieldDelay:
		p.DelaySeconds = value
	case FieldDecay:
		p.Decay = value
	case FieldLimit:
		p.Limit = int(value)
	case FieldVolume:
		p.Volume = value
	case FieldCovers:
		p.Covers = int(value)
	}

	return p, nil
}
