package api

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sdnlab/flowpath/internal/service"
)

const (
	APIPathQueryRules = "/api/rules"
	APIPathQueryRule  = "/api/rules/:rule_id"
	APIPathAddRule    = "/api/rules"
	APIPathDeleteRule = "/api/rules/:rule_id"

	APIPathDecode = "/api/decode"
)

func SetRouter(g *gin.Engine, flow *service.FlowService) {
	h := ruleHandler{service: flow}
	g.GET(APIPathQueryRules, h.QueryRules)
	g.GET(APIPathQueryRule, h.QueryRule)
	g.POST(APIPathAddRule, h.AddRule)
	g.DELETE(APIPathDeleteRule, h.DeleteRule)

	g.POST(APIPathDecode, decodeHandler{}.Decode)
}

func InstantiateRuleAPIURL(apiPath string, ruleID int) string {
	return InstantiateAPIURL(apiPath, map[string]string{":rule_id": strconv.Itoa(ruleID)})
}

func InstantiateAPIURL(apiPath string, params map[string]string) string {
	for k, v := range params {
		apiPath = strings.ReplaceAll(apiPath, k, v)
	}
	return strings.TrimSuffix(apiPath, "/")
}
