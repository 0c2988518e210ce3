package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo(Add)
	require.Equal(t, Add, info.Code)
	require.Equal(t, "ADD", info.Name)
	require.Equal(t, 2, info.Arity)
	require.False(t, info.HasOperand)

	info = GetInfo(LoadConst)
	require.Equal(t, "LOAD_CONST", info.Name)
	require.Equal(t, 0, info.Arity)
	require.True(t, info.HasOperand)

	info = GetInfo(SarConst)
	require.Equal(t, "SAR_CONST", info.Name)
	require.Equal(t, 1, info.Arity)
	require.True(t, info.HasOperand)
}

func TestConstVariant(t *testing.T) {
	require.Equal(t, ShlConst, ConstVariant(Shl))
	require.Equal(t, ShrConst, ConstVariant(Shr))
	require.Equal(t, SarConst, ConstVariant(Sar))
	require.Equal(t, RolConst, ConstVariant(Rol))
	require.Equal(t, RorConst, ConstVariant(Ror))
	require.Equal(t, Invalid, ConstVariant(Add))
}
