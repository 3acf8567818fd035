// Command aircompile compiles a declarative code section list against a
// StarkInfo layout and evaluates the resulting Block at one row, reading a
// single JSON document from stdin and writing the result to stdout. It
// exists to exercise pkg/airvm from outside a Go program; it is not part of
// the interpreter's core (spec §1 explicitly places process-level glue out
// of scope).
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vybium/airvm/internal/airvm/ref"
	"github.com/vybium/airvm/pkg/airvm"
)

// nodeInput mirrors airvm.Node with JSON-friendly field names and a
// string-typed kind.
type nodeInput struct {
	Kind  string `json:"kind"`
	ID    uint32 `json:"id"`
	Prime bool   `json:"prime"`
	Value string `json:"value,omitempty"`
}

func (n nodeInput) toNode() (airvm.Node, error) {
	kind, err := ref.ParseKind(n.Kind)
	if err != nil {
		return airvm.Node{}, err
	}
	return airvm.Node{Kind: kind, ID: n.ID, Prime: n.Prime, Value: n.Value}, nil
}

type sectionInput struct {
	Op   string      `json:"op"`
	Src  []nodeInput `json:"src"`
	Dest nodeInput   `json:"dest"`
}

type starkInfoInput struct {
	NBits        uint              `json:"nbits"`
	NBitsExt     uint              `json:"nbits_ext"`
	NConstants   uint32            `json:"n_constants"`
	QDim         int               `json:"q_dim"`
	CmN          []uint32          `json:"cm_n"`
	Cm2ns        []uint32          `json:"cm_2ns"`
	TmpExpN      []uint32          `json:"tmpexp_n"`
	VarPolMap    []airmVarPolMap   `json:"var_pol_map"`
	MapSectionsN map[string]uint32 `json:"map_sectionsN"`
}

type airmVarPolMap struct {
	Section    string `json:"section"`
	SectionPos uint32 `json:"section_pos"`
	Dim        int    `json:"dim"`
}

type request struct {
	StarkInfo   starkInfoInput      `json:"stark_info"`
	Code        []sectionInput      `json:"code"`
	Domain      string              `json:"domain"`
	Ret         bool                `json:"ret"`
	Row         uint64              `json:"row"`
	Sections    map[string][]uint64 `json:"sections"`
	Disassemble bool                `json:"disassemble"`
}

type response struct {
	Dim         int      `json:"dim,omitempty"`
	Elements    []uint64 `json:"elements,omitempty"`
	Disassembly string   `json:"disassembly,omitempty"`
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)
	if !scanner.Scan() {
		fatal("failed to read request from stdin")
	}

	var req request
	if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
		fatal(fmt.Sprintf("failed to parse request: %v", err))
	}

	result, err := run(req)
	if err != nil {
		fatal(err.Error())
	}

	if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
		fatal(fmt.Sprintf("failed to encode result: %v", err))
	}
}

func run(req request) (*response, error) {
	info := &airvm.StarkInfo{
		NBits:        req.StarkInfo.NBits,
		NBitsExt:     req.StarkInfo.NBitsExt,
		NConstants:   req.StarkInfo.NConstants,
		QDim:         req.StarkInfo.QDim,
		CmN:          req.StarkInfo.CmN,
		Cm2ns:        req.StarkInfo.Cm2ns,
		TmpExpN:      req.StarkInfo.TmpExpN,
		MapSectionsN: req.StarkInfo.MapSectionsN,
	}
	for _, pm := range req.StarkInfo.VarPolMap {
		info.VarPolMap = append(info.VarPolMap, airvm.VarPolMap{
			Section:    pm.Section,
			SectionPos: pm.SectionPos,
			Dim:        pm.Dim,
		})
	}

	code := make(airvm.Code, 0, len(req.Code))
	for _, s := range req.Code {
		src := make([]airvm.Node, 0, len(s.Src))
		for _, n := range s.Src {
			node, err := n.toNode()
			if err != nil {
				return nil, err
			}
			src = append(src, node)
		}
		dest, err := s.Dest.toNode()
		if err != nil {
			return nil, err
		}
		code = append(code, airvm.Section{Op: airvm.Op(s.Op), Src: src, Dest: dest})
	}

	dom := airvm.BaseDomain
	if req.Domain == "2ns" {
		dom = airvm.ExtendedDomain
	}
	opts := airvm.DefaultOptions().WithDomain(dom).WithRet(req.Ret)

	block, err := airvm.Compile(info, code, opts)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	if req.Disassemble {
		return &response{Disassembly: block.String()}, nil
	}

	ctx := airvm.NewContext(nil)
	for name, values := range req.Sections {
		buf := make([]airvm.Fv, len(values))
		for i, v := range values {
			buf[i] = airvm.FvFromBase(airvm.NewBase(v))
		}
		if err := ctx.SetSection(name, buf); err != nil {
			return nil, fmt.Errorf("context: %w", err)
		}
	}

	result, err := airvm.Eval(block, ctx, req.Row)
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}

	elems := result.AsElements()
	out := make([]uint64, 3)
	for i, e := range elems {
		out[i] = e.Value()
	}
	return &response{Dim: result.Dim(), Elements: out}, nil
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, "ERROR: "+msg)
	os.Exit(1)
}
