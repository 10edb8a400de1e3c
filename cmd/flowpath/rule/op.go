package rule

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sdnlab/flowpath/internal/api"
	"github.com/sdnlab/flowpath/internal/rule"
	"github.com/sdnlab/flowpath/pkg/utils"
	"github.com/spf13/cobra"
)

var apiAddr string

var addCmd = cobra.Command{
	Use:   "add",
	Short: "Add a rule",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := buildRule(cmd)
		if err != nil {
			return err
		}
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		resp, err := utils.DoRequest(apiAddr, http.MethodPost, api.APIPathQueryRules, data)
		if err != nil {
			return err
		}
		ruleID, err := api.GetBodyData[int](resp)
		if err != nil {
			return err
		}
		fmt.Println(*ruleID)
		return nil
	},
}

var listCmd = cobra.Command{
	Use:     "list",
	Short:   "List rules",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := utils.DoRequest(apiAddr, http.MethodGet, api.APIPathQueryRules, nil)
		if err != nil {
			return err
		}
		rules, err := api.GetBodyData[[]rule.Rule](resp)
		if err != nil {
			return err
		}
		displayRules(*rules)
		return nil
	},
}

var getCmd = cobra.Command{
	Use:   "get <rule-id>",
	Short: "Get a rule by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid rule id: %s", args[0])
		}
		resp, err := utils.DoRequest(apiAddr, http.MethodGet, api.InstantiateRuleAPIURL(api.APIPathQueryRule, id), nil)
		if err != nil {
			return err
		}
		r, err := api.GetBodyData[rule.Rule](resp)
		if err != nil {
			return err
		}
		displayRules([]rule.Rule{*r})
		return nil
	},
}

var deleteCmd = cobra.Command{
	Use:     "delete <rule-id>",
	Short:   "Delete a rule by id",
	Aliases: []string{"del"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid rule id: %s", args[0])
		}
		resp, err := utils.DoRequest(apiAddr, http.MethodDelete, api.InstantiateRuleAPIURL(api.APIPathDeleteRule, id), nil)
		if err != nil {
			return err
		}
		_, err = api.GetBodyData[any](resp)
		return err
	},
}

func displayRules(rules []rule.Rule) {
	var data [][]string
	for _, r := range rules {
		data = append(data, []string{
			strconv.Itoa(r.ID),
			formatMatchers(r.Matchers),
			formatTarget(r.Target),
			strconv.FormatUint(r.Packets, 10),
			strconv.FormatUint(r.Bytes, 10),
		})
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.SeparatorsNone,
				Lines:      tw.LinesNone,
			},
		})),
		tablewriter.WithRowAlignment(tw.AlignLeft),
	)
	table.Header("ID", "Match", "Target", "Packets", "Bytes")
	table.Bulk(data)
	table.Render()
}

func formatMatchers(matchers []rule.Matcher) string {
	if len(matchers) == 0 {
		return "any"
	}
	s := ""
	for i, m := range matchers {
		if i > 0 {
			s += ","
		}
		switch v := m.(type) {
		case rule.MatchEtherType:
			s += fmt.Sprintf("ether-type=0x%04x", uint16(v))
		case rule.MatchIPProto:
			s += fmt.Sprintf("ip-proto=%d", uint8(v))
		case rule.MatchVLANTagged:
			s += fmt.Sprintf("vlan-tagged=%t", bool(v))
		case rule.MatchDHCPOption:
			s += fmt.Sprintf("dhcp-option=%d", v.Code)
		case rule.MatchField:
			s += fmt.Sprintf("%s=0x%x", v.Field, v.Value)
			if v.Mask != 0 {
				s += fmt.Sprintf("/0x%x", v.Mask)
			}
		default:
			s += m.MatchType().String()
		}
	}
	return s
}

func formatTarget(target rule.Target) string {
	switch v := target.(type) {
	case rule.TargetDrop:
		return "drop"
	case rule.TargetOutput:
		return fmt.Sprintf("output:%d", v.Port)
	case rule.TargetSetField:
		s := "set"
		for _, p := range v.Patches {
			s += fmt.Sprintf(" %s=0x%x", p.Field, p.Value)
			if p.Mask != 0 {
				s += fmt.Sprintf("/0x%x", p.Mask)
			}
		}
		return fmt.Sprintf("%s output:%d", s, v.Port)
	default:
		return target.TargetType().String()
	}
}
