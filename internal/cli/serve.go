package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"reflect"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oyin-bo/lexigen/internal/mcp"
	"github.com/oyin-bo/lexigen/pkg/errors"
)

// toolAdapter exposes a registry command as an MCP tool
type toolAdapter struct {
	def *ToolDefinition
}

// NewMCPTool wraps a tool definition for the MCP server
func NewMCPTool(def *ToolDefinition) mcp.Tool {
	return &toolAdapter{def: def}
}

func (a *toolAdapter) Name() string        { return a.def.Name }
func (a *toolAdapter) Description() string { return a.def.Description }

func (a *toolAdapter) InputSchema() interface{} {
	return a.def.ExtractInputSchema()
}

func (a *toolAdapter) Call(ctx context.Context, arguments json.RawMessage) (string, error) {
	args, err := a.def.DecodeArgs(arguments)
	if err != nil {
		return "", err
	}
	return a.def.Execute(ctx, args)
}

// DecodeArgs builds an args instance from JSON, starting from the
// defaults declared in the struct tags. Unknown fields are rejected.
func (td *ToolDefinition) DecodeArgs(raw json.RawMessage) (interface{}, error) {
	args := createArgsInstance(td.ArgsType)
	applyDefaults(args)

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(args); err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "Invalid arguments for "+td.Name)
	}

	// Required fields must be present and non-empty
	v := reflect.ValueOf(args).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if hasRequiredTag(t.Field(i)) && v.Field(i).IsZero() {
			return nil, errors.Newf(errors.InvalidInput, "%s requires %s", td.Name, t.Field(i).Tag.Get("long"))
		}
	}
	return args, nil
}

// applyDefaults sets fields from their default tags
func applyDefaults(argsInstance interface{}) {
	v := reflect.ValueOf(argsInstance).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		def := t.Field(i).Tag.Get("default")
		if def == "" {
			continue
		}
		switch t.Field(i).Type.Kind() {
		case reflect.String:
			v.Field(i).SetString(def)
		case reflect.Int:
			if n, err := strconv.Atoi(def); err == nil {
				v.Field(i).SetInt(int64(n))
			}
		case reflect.Uint64:
			if n, err := strconv.ParseUint(def, 10, 64); err == nil {
				v.Field(i).SetUint(n)
			}
		case reflect.Bool:
			if b, err := strconv.ParseBool(def); err == nil {
				v.Field(i).SetBool(b)
			}
		}
	}
}

// NewMCPServer builds a server exposing every registry command
func NewMCPServer(registry *Registry) *mcp.Server {
	server := mcp.NewServer("lexigen", Version)
	for _, def := range registry.Tools() {
		server.RegisterTool(NewMCPTool(def))
	}
	return server
}

// RegisterServeCommand adds the "serve" command, which speaks MCP over stdio
func (r *Runner) RegisterServeCommand() {
	r.rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the lexigen commands as MCP tools over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := NewMCPServer(r.registry)
			return server.Serve(cmd.Context(), os.Stdin, r.stdout)
		},
	})
}
