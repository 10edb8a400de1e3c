package oxmpkt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldWidths(t *testing.T) {
	assert.Equal(t, 4, FieldInPort.Width())
	assert.Equal(t, 6, FieldEthSrc.Width())
	assert.Equal(t, 1, FieldIPProto.Width())
	assert.Equal(t, uint64(0xffff), FieldTCPSrc.FullMask())
	assert.Equal(t, uint64(0xffffffffffff), FieldDHCPChaddr.FullMask())

	for _, f := range Fields() {
		assert.Greater(t, f.Width(), 0, f.String())
	}
}

func TestFieldStringRoundTrip(t *testing.T) {
	var f Field
	assert.NoError(t, f.Set("IPV4_DST"))
	assert.Equal(t, FieldIPv4Dst, f)
	assert.Error(t, f.Set("NO_SUCH_FIELD"))
}

func TestFieldJSON(t *testing.T) {
	data, err := json.Marshal(FieldVLANVID)
	assert.NoError(t, err)
	assert.Equal(t, `"VLAN_VID"`, string(data))

	var f Field
	assert.NoError(t, json.Unmarshal([]byte(`"TCP_DST"`), &f))
	assert.Equal(t, FieldTCPDst, f)

	_, err = json.Marshal(Field(99))
	assert.Error(t, err)
}
