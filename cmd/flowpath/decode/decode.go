// Package decode implements the flowpath decode subcommand, a local
// frame dissector for debugging rule matches without a running daemon.
package decode

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sdnlab/flowpath/internal/api"
	"github.com/sdnlab/flowpath/pkg/oxmpkt"
	"github.com/spf13/cobra"
)

type decodeFlags struct {
	File string
	Port uint32
}

var flags decodeFlags

var decodeCmd = cobra.Command{
	Use:   "decode [hex-frame]",
	Short: "Decode a raw frame and show its bound fields",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := readFrame(args)
		if err != nil {
			return err
		}
		p := oxmpkt.NewParser(frame, flags.Port)
		display(api.DecodeParser(p))
		return nil
	},
}

func Export(root *cobra.Command) {
	decodeCmd.Flags().StringVarP(&flags.File, "file", "f", "", "Read hex frame from file instead of argument")
	decodeCmd.Flags().Uint32VarP(&flags.Port, "port", "p", 0, "Ingress port number")
	root.AddCommand(&decodeCmd)
}

func readFrame(args []string) ([]byte, error) {
	var text string
	if flags.File != "" {
		data, err := os.ReadFile(flags.File)
		if err != nil {
			return nil, err
		}
		text = string(data)
	} else if len(args) == 1 {
		text = args[0]
	} else {
		return nil, fmt.Errorf("missing frame, pass a hex string or --file")
	}

	text = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, text)

	frame, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("invalid hex frame: %w", err)
	}
	return frame, nil
}

func display(resp api.DecodeResp) {
	tagged := "no"
	if resp.VLANTagged {
		tagged = "yes"
	}
	fmt.Printf("%s %d bytes, 802.1q tagged: %s\n",
		color.New(color.FgGreen).Sprint("frame:"), resp.TotalBytes, tagged)

	var data [][]string
	for _, f := range resp.Fields {
		data = append(data, []string{f.Field.String(), f.Value})
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
	table.Header("Field", "Value")
	table.Bulk(data)
	table.Render()

	if len(resp.DHCPOptions) == 0 {
		return
	}
	fmt.Println(color.New(color.FgGreen).Sprint("dhcp options:"))
	for _, opt := range resp.DHCPOptions {
		fmt.Printf("  %s: %s\n", strconv.Itoa(int(opt.Code)), opt.Value)
	}
}
