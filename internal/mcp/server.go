// Package mcp exposes the solvers and the grader as Model Context Protocol
// tools over stdio. Every tool is stateless: each call carries its full input
// and the server holds nothing between calls.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wirelab/internal/grade"
	"wirelab/internal/logging"
	"wirelab/internal/worksheet"
	"wirelab/pkg/acnet"
	"wirelab/pkg/units"
	"wirelab/pkg/wire"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server with the wirelab tool set.
type Server struct {
	MCPServer *sdkmcp.Server
}

// NewServer creates an MCP server with the solver, validation, worksheet,
// and grading tools registered.
func NewServer(version string) *Server {
	s := &Server{}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "wirelab", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP over stdio until ctx is canceled or the transport closes.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "solve_dc",
		Description: "Resolve a DC circuit from any subset of watts, current, resistance, and voltage. Returns all four quantities with the formula used for each derived one.",
	}, s.handleSolveDC)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "solve_ac",
		Description: "Evaluate a series AC circuit (resistor plus optional inductor and capacitor). Returns reactances, impedance, phase angle, power factor, current, and the three powers.",
	}, s.handleSolveAC)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "validate_ac",
		Description: "Check an AC circuit description without solving it. Returns valid=true or the list of problems.",
	}, s.handleValidateAC)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_worksheets",
		Description: "List the built-in practice worksheets with their titles and problem counts.",
	}, s.handleListWorksheets)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "grade_worksheet",
		Description: "Grade a learner's answers against a worksheet. Answers map problem IDs to quantity keys to entered values; unanswered quantities count as wrong.",
	}, s.handleGradeWorksheet)
}

// --- Tool input/output types ---

type solveDCInput struct {
	Watts      *float64 `json:"watts,omitempty" jsonschema:"power in watts"`
	Current    *float64 `json:"current,omitempty" jsonschema:"current in amperes"`
	Resistance *float64 `json:"resistance,omitempty" jsonschema:"resistance in ohms"`
	Voltage    *float64 `json:"voltage,omitempty" jsonschema:"voltage in volts"`
}

type solveDCOutput struct {
	wire.Set
	Derived map[string]string `json:"derived,omitempty"`
	Display map[string]string `json:"display"`
}

type circuitInput struct {
	Voltage     float64 `json:"voltage" jsonschema:"source voltage in volts RMS"`
	FrequencyHz float64 `json:"frequency_hz" jsonschema:"source frequency in hertz"`
	Resistance  float64 `json:"resistance" jsonschema:"series resistance in ohms"`
	Inductance  float64 `json:"inductance,omitempty" jsonschema:"series inductance in henries, 0 for none"`
	Capacitance float64 `json:"capacitance,omitempty" jsonschema:"series capacitance in farads, 0 for none"`
}

func (in circuitInput) circuit() acnet.Input {
	return acnet.Input{
		Voltage:     in.Voltage,
		FrequencyHz: in.FrequencyHz,
		Resistance:  in.Resistance,
		Inductance:  in.Inductance,
		Capacitance: in.Capacitance,
	}
}

type solveACOutput struct {
	acnet.Result
	Display map[string]string `json:"display"`
}

type validateACOutput struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

type listWorksheetsInput struct{}

type worksheetInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Problems    int    `json:"problems"`
}

type listWorksheetsOutput struct {
	Worksheets []worksheetInfo `json:"worksheets"`
}

type gradeWorksheetInput struct {
	Worksheet string                        `json:"worksheet" jsonschema:"built-in worksheet name or path to a worksheet YAML file"`
	Student   string                        `json:"student,omitempty" jsonschema:"learner name for the report header"`
	Answers   map[string]map[string]float64 `json:"answers" jsonschema:"problem ID to quantity key to entered value"`
}

type gradeWorksheetOutput struct {
	Correct int      `json:"correct"`
	Total   int      `json:"total"`
	Score   float64  `json:"score"`
	Report  string   `json:"report"`
	Errors  []string `json:"errors,omitempty"`
}

// --- Tool handlers ---

func (s *Server) handleSolveDC(ctx context.Context, _ *sdkmcp.CallToolRequest, input solveDCInput) (*sdkmcp.CallToolResult, solveDCOutput, error) {
	g := wire.Givens{}
	if input.Watts != nil {
		g[wire.Watts] = *input.Watts
	}
	if input.Current != nil {
		g[wire.Current] = *input.Current
	}
	if input.Resistance != nil {
		g[wire.Resistance] = *input.Resistance
	}
	if input.Voltage != nil {
		g[wire.Voltage] = *input.Voltage
	}

	sol, err := wire.Resolve(g)
	if err != nil {
		var und *wire.UnderdeterminedError
		if errors.As(err, &und) {
			names := make([]string, len(und.Missing))
			for i, q := range und.Missing {
				names[i] = string(q)
			}
			return nil, solveDCOutput{}, fmt.Errorf("cannot resolve %s: provide more of watts, current, resistance, voltage", strings.Join(names, ", "))
		}
		return nil, solveDCOutput{}, fmt.Errorf("solve_dc: %w", err)
	}

	out := solveDCOutput{
		Set:     sol.Set,
		Derived: make(map[string]string, len(sol.Derivations)),
		Display: make(map[string]string, len(wire.Quantities)),
	}
	for q, d := range sol.Derivations {
		out.Derived[string(q)] = d.Formula
	}
	for _, q := range wire.Quantities {
		out.Display[string(q)] = units.FormatQuantity(sol.Set.Get(q), q)
	}
	return nil, out, nil
}

func (s *Server) handleSolveAC(ctx context.Context, _ *sdkmcp.CallToolRequest, input circuitInput) (*sdkmcp.CallToolResult, solveACOutput, error) {
	in := input.circuit()
	if problems := acnet.Validate(in); len(problems) > 0 {
		return nil, solveACOutput{}, fmt.Errorf("invalid circuit: %s", strings.Join(problems, "; "))
	}

	res := acnet.Solve(in)
	out := solveACOutput{
		Result:  res,
		Display: acDisplay(res),
	}
	return nil, out, nil
}

func (s *Server) handleValidateAC(ctx context.Context, _ *sdkmcp.CallToolRequest, input circuitInput) (*sdkmcp.CallToolResult, validateACOutput, error) {
	problems := acnet.Validate(input.circuit())
	return nil, validateACOutput{
		Valid:    len(problems) == 0,
		Problems: problems,
	}, nil
}

func (s *Server) handleListWorksheets(ctx context.Context, _ *sdkmcp.CallToolRequest, _ listWorksheetsInput) (*sdkmcp.CallToolResult, listWorksheetsOutput, error) {
	var out listWorksheetsOutput
	for _, name := range worksheet.List() {
		ws, err := worksheet.LoadEmbedded(name)
		if err != nil {
			return nil, listWorksheetsOutput{}, fmt.Errorf("load worksheet %q: %w", name, err)
		}
		out.Worksheets = append(out.Worksheets, worksheetInfo{
			Name:        ws.Name,
			Title:       ws.Title,
			Description: ws.Description,
			Problems:    len(ws.Problems),
		})
	}
	return nil, out, nil
}

func (s *Server) handleGradeWorksheet(ctx context.Context, _ *sdkmcp.CallToolRequest, input gradeWorksheetInput) (*sdkmcp.CallToolResult, gradeWorksheetOutput, error) {
	if input.Worksheet == "" {
		return nil, gradeWorksheetOutput{}, fmt.Errorf("worksheet is required")
	}
	if len(input.Answers) == 0 {
		return nil, gradeWorksheetOutput{}, fmt.Errorf("answers is required")
	}

	ws, err := worksheet.Find(input.Worksheet)
	if err != nil {
		return nil, gradeWorksheetOutput{}, err
	}

	res := grade.Grade(ws, &grade.AnswerSheet{
		Worksheet: ws.Name,
		Student:   input.Student,
		Answers:   input.Answers,
	})

	logging.New("mcp").Info("worksheet graded",
		"worksheet", ws.Name, "student", input.Student,
		"correct", res.Correct, "total", res.Total)

	return nil, gradeWorksheetOutput{
		Correct: res.Correct,
		Total:   res.Total,
		Score:   res.Score,
		Report:  grade.FormatReport(res),
		Errors:  res.Errors,
	}, nil
}

// acDisplay renders every result key with its unit suffix at the key's
// contractual decimal count.
func acDisplay(res acnet.Result) map[string]string {
	display := make(map[string]string, len(acnet.Keys))
	for _, key := range acnet.Keys {
		v, _ := res.Get(key)
		display[key] = units.Format(v, units.DecimalsForKey(key), units.ForKey(key))
	}
	return display
}
