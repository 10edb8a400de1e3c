package api

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sdnlab/flowpath/internal/rule"
	"github.com/sdnlab/flowpath/internal/service"
	"github.com/sdnlab/flowpath/pkg/oxmpkt"
	"github.com/stretchr/testify/assert"
)

// ipv4/tcp syn, 172.16.23.2:51998 > 172.16.23.1:1024
var synData = []byte{106, 16, 233, 55, 99, 172, 10, 20, 138, 88, 14, 20, 8, 0, 69, 0, 0, 60, 246, 122, 64, 0, 64, 6, 190, 29, 172, 16, 23, 2, 172, 16, 23, 1, 203, 30, 4, 0, 128, 116, 92, 195, 0, 0, 0, 0, 160, 2, 250, 240, 134, 82, 0, 0, 71, 69, 84, 32, 47, 32, 72, 84, 84, 80, 47, 49, 46, 49, 13, 10, 72, 111, 115, 116}

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	SetRouter(g, service.NewFlowService())
	return g
}

func doJSON(t *testing.T, g *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestRuleAPI(t *testing.T) {
	g := testEngine()

	r := rule.Rule{
		Matchers: []rule.Matcher{rule.MatchIPProto(6)},
		Target:   rule.TargetOutput{Port: 2},
	}
	w := doJSON(t, g, http.MethodPost, APIPathAddRule, r)
	assert.Equal(t, http.StatusOK, w.Code)

	id, err := GetBodyData[int](w.Body.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, 1, *id)

	w = doJSON(t, g, http.MethodGet, APIPathQueryRules, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	rules, err := GetBodyData[[]*rule.Rule](w.Body.Bytes())
	assert.NoError(t, err)
	assert.Len(t, *rules, 1)

	w = doJSON(t, g, http.MethodGet, InstantiateRuleAPIURL(APIPathQueryRule, *id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, g, http.MethodDelete, InstantiateRuleAPIURL(APIPathDeleteRule, *id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, g, http.MethodGet, InstantiateRuleAPIURL(APIPathQueryRule, *id), nil)
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestRuleAPIInvalidBody(t *testing.T) {
	g := testEngine()

	req := httptest.NewRequest(http.MethodPost, APIPathAddRule, bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestDecodeAPI(t *testing.T) {
	g := testEngine()

	w := doJSON(t, g, http.MethodPost, APIPathDecode, DecodeReq{
		Frame:  hex.EncodeToString(synData),
		InPort: 4,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	resp, err := GetBodyData[DecodeResp](w.Body.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, false, resp.VLANTagged)
	assert.Equal(t, len(synData), resp.TotalBytes)

	fields := make(map[oxmpkt.Field]string)
	for _, f := range resp.Fields {
		fields[f.Field] = f.Value
	}
	assert.Equal(t, "00000004", fields[oxmpkt.FieldInPort])
	assert.Equal(t, "0800", fields[oxmpkt.FieldEthType])
	assert.Equal(t, "ac101702", fields[oxmpkt.FieldIPv4Src])
	assert.Equal(t, "0400", fields[oxmpkt.FieldTCPDst])
}

func TestDecodeAPIBadHex(t *testing.T) {
	g := testEngine()
	w := doJSON(t, g, http.MethodPost, APIPathDecode, DecodeReq{Frame: "zz"})
	assert.NotEqual(t, http.StatusOK, w.Code)
}
