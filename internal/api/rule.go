package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sdnlab/flowpath/internal/rule"
	"github.com/sdnlab/flowpath/internal/service"
)

type ruleHandler struct {
	service *service.FlowService
}

func (h ruleHandler) QueryRule(c *gin.Context) {
	ruleID, err := strconv.Atoi(c.Param("rule_id"))
	if err != nil {
		Error(c, ErrorCodeInvalid, err)
		return
	}

	r, err := h.service.QueryRule(ruleID)
	if err != nil {
		Error(c, ErrorCodeNotExist, err)
	} else {
		Success(c, r)
	}
}

func (h ruleHandler) QueryRules(c *gin.Context) {
	Success(c, h.service.QueryRules())
}

func (h ruleHandler) AddRule(c *gin.Context) {
	var r rule.Rule
	if err := c.ShouldBindJSON(&r); err != nil {
		Error(c, ErrorCodeInvalid, err)
		return
	}

	ruleID, err := h.service.AddRule(&r)
	if err != nil {
		Error(c, ErrorCodeInvalid, err)
	} else {
		Success(c, ruleID)
	}
}

func (h ruleHandler) DeleteRule(c *gin.Context) {
	ruleID, err := strconv.Atoi(c.Param("rule_id"))
	if err != nil {
		Error(c, ErrorCodeInvalid, err)
		return
	}

	if err := h.service.DeleteRule(ruleID); err != nil {
		Error(c, ErrorCodeNotExist, err)
	} else {
		Success(c, ruleID)
	}
}
