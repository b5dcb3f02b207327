package encoding_test

import (
	"strings"
	"testing"

	"github.com/stattrackr/stattrackr/internal/encoding"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	value, err := encoding.UnmarshalJSON[payload](strings.NewReader(`{"name":"Arsenal"}`))
	require.NoError(t, err)
	require.Equal(t, "Arsenal", value.Name)

	_, errBad := encoding.UnmarshalBytes[payload]([]byte(`{"name":`))
	require.ErrorIs(t, errBad, encoding.ErrDecodeJSON)
}

func TestMarshalJSON(t *testing.T) {
	body, err := encoding.MarshalJSON(nil)
	require.NoError(t, err)
	require.Nil(t, body)

	body, err = encoding.MarshalJSON(map[string]string{"refresh": "abc"})
	require.NoError(t, err)
	require.JSONEq(t, `{"refresh":"abc"}`, string(body))
}
