package rule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sdnlab/flowpath/internal/rule"
	"github.com/sdnlab/flowpath/pkg/oxmpkt"
	"github.com/spf13/cobra"
)

const defaultAPIAddr = "http://127.0.0.1:9910"

type ruleFlags struct {
	EtherType  uint16
	IPProto    uint8
	VLANTagged bool
	DHCPOption uint8
	Matches    []string // FIELD=value[/mask]

	Drop    bool
	Output  uint32
	Patches []string // FIELD=value[/mask]
	Port    uint32
}

var flags ruleFlags

// parseFieldSpec parses "FIELD=value[/mask]" with 0x-prefixed or
// decimal numbers, e.g. "IPV4_DST=0x0a000001/0xffffff00".
func parseFieldSpec(s string) (oxmpkt.Field, uint64, uint64, error) {
	var f oxmpkt.Field

	name, rest, ok := strings.Cut(s, "=")
	if !ok {
		return f, 0, 0, fmt.Errorf("invalid field spec: %s", s)
	}
	if err := f.Set(name); err != nil {
		return f, 0, 0, err
	}

	valueStr, maskStr, hasMask := strings.Cut(rest, "/")
	value, err := strconv.ParseUint(valueStr, 0, 64)
	if err != nil {
		return f, 0, 0, fmt.Errorf("invalid field value: %s", valueStr)
	}

	var mask uint64
	if hasMask {
		mask, err = strconv.ParseUint(maskStr, 0, 64)
		if err != nil {
			return f, 0, 0, fmt.Errorf("invalid field mask: %s", maskStr)
		}
	}
	return f, value, mask, nil
}

func buildRule(cmd *cobra.Command) (*rule.Rule, error) {
	r := &rule.Rule{}

	if cmd.Flags().Changed("ether-type") {
		r.Matchers = append(r.Matchers, rule.MatchEtherType(flags.EtherType))
	}
	if cmd.Flags().Changed("ip-proto") {
		r.Matchers = append(r.Matchers, rule.MatchIPProto(flags.IPProto))
	}
	if cmd.Flags().Changed("vlan-tagged") {
		r.Matchers = append(r.Matchers, rule.MatchVLANTagged(flags.VLANTagged))
	}
	if cmd.Flags().Changed("dhcp-option") {
		r.Matchers = append(r.Matchers, rule.MatchDHCPOption{Code: flags.DHCPOption})
	}
	for _, s := range flags.Matches {
		f, value, mask, err := parseFieldSpec(s)
		if err != nil {
			return nil, err
		}
		r.Matchers = append(r.Matchers, rule.MatchField{Field: f, Value: value, Mask: mask})
	}

	switch {
	case flags.Drop:
		r.Target = rule.TargetDrop{}
	case len(flags.Patches) > 0:
		tgt := rule.TargetSetField{Port: flags.Port}
		for _, s := range flags.Patches {
			f, value, mask, err := parseFieldSpec(s)
			if err != nil {
				return nil, err
			}
			tgt.Patches = append(tgt.Patches, rule.FieldPatch{Field: f, Value: value, Mask: mask})
		}
		r.Target = tgt
	case cmd.Flags().Changed("output"):
		r.Target = rule.TargetOutput{Port: flags.Output}
	default:
		return nil, fmt.Errorf("missing target, use one of --drop/--output/--set")
	}
	return r, nil
}

var ruleCmd = cobra.Command{
	Use:     "rule",
	Short:   "Manage data path rules",
	Aliases: []string{"r"},
}

func Export(root *cobra.Command) {
	addCmd.Flags().Uint16Var(&flags.EtherType, "ether-type", 0, "Match ether type, e.g. 0x0800")
	addCmd.Flags().Uint8Var(&flags.IPProto, "ip-proto", 0, "Match ip protocol, e.g. 6")
	addCmd.Flags().BoolVar(&flags.VLANTagged, "vlan-tagged", false, "Match 802.1q tag presence")
	addCmd.Flags().Uint8Var(&flags.DHCPOption, "dhcp-option", 0, "Match dhcp option code presence")
	addCmd.Flags().StringArrayVarP(&flags.Matches, "match", "m", nil, "Match FIELD=value[/mask]")
	addCmd.Flags().BoolVar(&flags.Drop, "drop", false, "Drop matched frames")
	addCmd.Flags().Uint32VarP(&flags.Output, "output", "o", 0, "Output matched frames to port")
	addCmd.Flags().StringArrayVar(&flags.Patches, "set", nil, "Rewrite FIELD=value[/mask] before output")
	addCmd.Flags().Uint32Var(&flags.Port, "port", 0, "Output port for --set rules")

	ruleCmd.PersistentFlags().StringVar(&apiAddr, "addr", defaultAPIAddr, "API address")
	ruleCmd.AddCommand(&addCmd, &listCmd, &getCmd, &deleteCmd)
	root.AddCommand(&ruleCmd)
}
