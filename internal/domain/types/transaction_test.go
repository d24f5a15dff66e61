package types_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"walletlink/internal/domain/types"
)

func TestLamportsFromSOL(t *testing.T) {
	ok := map[string]uint64{
		"1.5":                   1_500_000_000,
		"0.033000099":           33_000_099,
		"0.000000001":           1,
		".25":                   250_000_000,
		"3.":                    3_000_000_000,
		"0":                     0,
		"18446744073":           18_446_744_073_000_000_000,
		"18446744073.709551615": 18_446_744_073_709_551_615,
	}
	for in, want := range ok {
		got, err := types.LamportsFromSOL(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, in := range []string{"", ".", "-1", "+1", "2e10", "1e11", "1.0000000001", "18446744073.709551616", "18446744074", "1,5", "0x10", "NaN"} {
		_, err := types.LamportsFromSOL(in)
		require.Error(t, err, in)
		require.True(t, types.IsKind(err, types.KindPrecondition), in)
	}
}

func TestLamportsFromSOLIsExactForNineDecimals(t *testing.T) {
	for n := uint64(0); n < 1_000_000_000; n += 99_991 {
		s := fmt.Sprintf("%d.%09d", n/7, n)
		got, err := types.LamportsFromSOL(s)
		require.NoError(t, err, s)
		require.Equal(t, (n/7)*1_000_000_000+n, got, s)
	}
}
