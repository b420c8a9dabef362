package tool

import (
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool identity.
const (
	Namespace = "ada"
	Name      = "execute"
	ID        = Namespace + ":" + Name

	// MCPName is the name advertised over MCP, where ':' is not a valid
	// tool name character.
	MCPName = Namespace + "_" + Name
)

// Argument keys of the execute tool.
const (
	ArgCode   = "code"
	ArgParams = "params"
)

const description = "Compiles and runs an Ada block, or proves it with GNATprove, " +
	"and returns the program or verifier output."

// Definition returns the execute tool in the toolfoundation model.
func Definition() model.Tool {
	return model.Tool{
		Tool: mcp.Tool{
			Name:        Name,
			Title:       "Execute Ada block",
			Description: description,
			InputSchema: inputSchema(),
		},
		Namespace: Namespace,
		Tags:      []string{"ada", "spark", "gnat", "compile", "prove", "execute"},
	}
}

func inputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			ArgCode: map[string]any{
				"type":        "string",
				"description": "Ada source of a main subprogram",
			},
			ArgParams: map[string]any{
				"type":        "object",
				"description": "Block header arguments",
				"properties": map[string]any{
					"unit":        map[string]any{"type": "string"},
					"ada-version": map[string]any{"type": []any{"integer", "string"}},
					"assertions":  map[string]any{"type": []any{"boolean", "string"}},
					"prove":       map[string]any{"type": []any{"boolean", "string"}},
					"mode":        map[string]any{"type": "string"},
					"level":       map[string]any{"type": "string"},
				},
			},
		},
		"required": []any{ArgCode},
	}
}

// Doc returns the documentation entry for the execute tool.
func Doc() tooldoc.DocEntry {
	return tooldoc.DocEntry{
		Summary: "Compile-and-run or formally verify a self-contained Ada block",
		Notes: "Each block is written to a fresh source file in the scratch directory. " +
			"Without prove the block is compiled with gnatmake and the binary is run; " +
			"with prove a project file is generated and gnatprove checks the source. " +
			"Compiler and verifier diagnostics are returned as output. " +
			"Sessions are not supported.",
		Examples: []tooldoc.ToolExample{
			{
				Title: "Hello world",
				Args: map[string]any{
					ArgCode: `with Ada.Text_IO; procedure Hello is begin Ada.Text_IO.Put_Line ("Hello"); end Hello;`,
				},
			},
			{
				Title: "Named unit with assertions",
				Args: map[string]any{
					ArgCode:   "procedure Main is begin pragma Assert (1 + 1 = 2); end Main;",
					ArgParams: map[string]any{"unit": "main", "assertions": "t", "ada-version": 2012},
				},
			},
			{
				Title: "Prove at silver level",
				Args: map[string]any{
					ArgCode:   "procedure Inc (X : in out Integer) with Pre => X < Integer'Last is begin X := X + 1; end Inc;",
					ArgParams: map[string]any{"prove": "t", "level": "silver"},
				},
			},
		},
	}
}
