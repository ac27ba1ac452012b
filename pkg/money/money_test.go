package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int64
		want    int64
		wantErr bool
	}{
		{name: "small", a: 2, b: 3, want: 5},
		{name: "negative", a: -2, b: -3, want: -5},
		{name: "at max", a: math.MaxInt64 - 1, b: 1, want: math.MaxInt64},
		{name: "past max", a: math.MaxInt64, b: 1, wantErr: true},
		{name: "past min", a: math.MinInt64, b: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Add(tt.a, tt.b)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int64
		want    int64
		wantErr bool
	}{
		{name: "zero", a: math.MaxInt64, b: 0, want: 0},
		{name: "small", a: 1000, b: 12, want: 12000},
		{name: "max amount by twelve", a: MaxAmount, b: 12, want: 12 * MaxAmount},
		{name: "quarter max by twelve", a: math.MaxInt64 / 4, b: 12, wantErr: true},
		{name: "min by minus one", a: math.MinInt64, b: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mul(tt.a, tt.b)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSum(t *testing.T) {
	got, err := Sum(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got)

	_, err = Sum(math.MaxInt64/2+1, math.MaxInt64/2+1)
	assert.ErrorIs(t, err, ErrOverflow)
}
