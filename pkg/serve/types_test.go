package serve

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_CutUnmarshal(t *testing.T) {
	input := `{"type":"cut","payload":{"list":"2-3","mode":"chars","lines":["abcd"]}}`

	var req Request
	err := json.Unmarshal([]byte(input), &req)
	require.NoError(t, err)

	assert.Equal(t, "cut", req.Type)

	var payload CutPayload
	err = json.Unmarshal(req.Payload, &payload)
	require.NoError(t, err)

	assert.Equal(t, "2-3", payload.List)
	assert.Equal(t, "chars", payload.Mode)
	assert.Equal(t, []string{"abcd"}, payload.Lines)
}

func TestResponse_Marshal(t *testing.T) {
	resp := Response{
		Success: true,
		Type:    "ready",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"success":true`)
	assert.Contains(t, string(data), `"type":"ready"`)
	assert.NotContains(t, string(data), `"kind"`)
}
