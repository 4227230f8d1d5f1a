package statements

import "github.com/privacyzk/privacyzk/pkg/curve"

func scalarFromInt64(n int64) *curve.Scalar {
	b := make([]byte, 32)
	u := uint64(n)
	for i := 31; i >= 24; i-- {
		b[i] = byte(u)
		u >>= 8
	}
	return curve.NewScalarFromBytes(b)
}
