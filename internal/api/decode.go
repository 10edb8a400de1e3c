package api

import (
	"encoding/hex"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sdnlab/flowpath/pkg/oxmpkt"
)

type DecodeReq struct {
	Frame  string `json:"frame"` // hex-encoded frame bytes
	InPort uint32 `json:"in_port"`
}

type DecodeField struct {
	Field oxmpkt.Field `json:"field"`
	Value string       `json:"value"` // zero-padded hex at field width
}

type DecodeDHCPOption struct {
	Code   uint8  `json:"code"`
	Length uint8  `json:"length"`
	Value  string `json:"value"`
}

type DecodeResp struct {
	VLANTagged  bool               `json:"vlan_tagged"`
	TotalBytes  int                `json:"total_bytes"`
	Fields      []DecodeField      `json:"fields"`
	DHCPOptions []DecodeDHCPOption `json:"dhcp_options,omitempty"`
}

// DecodeParser flattens a parse result for presentation; the CLI and
// the HTTP endpoint share it.
func DecodeParser(p *oxmpkt.Parser) DecodeResp {
	resp := DecodeResp{
		VLANTagged: p.VLANTagged(),
		TotalBytes: p.TotalBytes(),
	}
	for _, f := range p.BoundFields() {
		resp.Fields = append(resp.Fields, DecodeField{
			Field: f,
			Value: fmt.Sprintf("%0*x", f.Width()*2, p.Load(f, f.FullMask())),
		})
	}
	for code := 0; code < 256; code++ {
		if opt, ok := p.DHCPOption(uint8(code)); ok {
			resp.DHCPOptions = append(resp.DHCPOptions, DecodeDHCPOption{
				Code:   opt.Code,
				Length: opt.Length,
				Value:  hex.EncodeToString(opt.Value),
			})
		}
	}
	return resp
}

type decodeHandler struct{}

func (decodeHandler) Decode(c *gin.Context) {
	var req DecodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, ErrorCodeInvalid, err)
		return
	}

	data, err := hex.DecodeString(req.Frame)
	if err != nil {
		Error(c, ErrorCodeInvalid, err)
		return
	}

	Success(c, DecodeParser(oxmpkt.NewParser(data, req.InPort)))
}
