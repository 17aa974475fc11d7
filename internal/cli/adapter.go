package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/oyin-bo/lexigen/internal/config"
	"github.com/oyin-bo/lexigen/internal/tools"
	"github.com/oyin-bo/lexigen/pkg/errors"
)

// NewDefaultRegistry registers every lexigen command
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()

	encodeTool := tools.NewEncodeTool()
	registry.RegisterTool(&ToolDefinition{
		Name:        encodeTool.Name(),
		Description: encodeTool.Description(),
		ArgsType:    &EncodeArgs{},
		Execute: func(ctx context.Context, args interface{}) (string, error) {
			a, ok := args.(*EncodeArgs)
			if !ok {
				return "", errors.Newf(errors.InternalError, "unexpected args type %T", args)
			}
			res, err := encodeTool.Run(ctx, a.Request())
			if err != nil {
				return "", err
			}
			return tools.FormatEncodeResult(res), nil
		},
	})

	decodeTool := tools.NewDecodeTool()
	registry.RegisterTool(&ToolDefinition{
		Name:        decodeTool.Name(),
		Description: decodeTool.Description(),
		ArgsType:    &DecodeArgs{},
		Execute: func(ctx context.Context, args interface{}) (string, error) {
			a, ok := args.(*DecodeArgs)
			if !ok {
				return "", errors.Newf(errors.InternalError, "unexpected args type %T", args)
			}
			n, err := decodeTool.Run(ctx, a.Bundle, a.Output)
			if err != nil {
				return "", err
			}
			return tools.FormatDecodeResult(a.Output, n), nil
		},
	})

	registry.RegisterTool(&ToolDefinition{
		Name:        "dialects",
		Description: "List the output dialects with their chunk sizes and build hints",
		ArgsType:    &DialectsArgs{},
		Execute: func(ctx context.Context, args interface{}) (string, error) {
			a, ok := args.(*DialectsArgs)
			if !ok {
				return "", errors.Newf(errors.InternalError, "unexpected args type %T", args)
			}
			cfg, err := config.Load(a.Config)
			if err != nil {
				return "", err
			}
			return tools.FormatDialects(tools.ListDialects(cfg)), nil
		},
	})

	registry.RegisterTool(&ToolDefinition{
		Name:        "schema",
		Description: "Print the JSON schema of a command's arguments",
		ArgsType:    &SchemaArgs{},
		Execute: func(ctx context.Context, args interface{}) (string, error) {
			a, ok := args.(*SchemaArgs)
			if !ok {
				return "", errors.Newf(errors.InternalError, "unexpected args type %T", args)
			}
			def, found := registry.GetTool(a.Command)
			if !found {
				var names []string
				for _, d := range registry.Tools() {
					names = append(names, d.Name)
				}
				return "", errors.Newf(errors.InvalidInput, "unknown command %q (known: %s)", a.Command, strings.Join(names, ", "))
			}
			out, err := def.SchemaJSON()
			if err != nil {
				return "", errors.Wrap(err, errors.InternalError, fmt.Sprintf("cannot render schema for %s", def.Name))
			}
			return out, nil
		},
	})

	return registry
}

// Request converts command-line arguments to an encode request
func (a *EncodeArgs) Request() tools.EncodeRequest {
	return tools.EncodeRequest{
		Input:      a.Input,
		Output:     a.Output,
		Dialect:    a.Template,
		WordSource: a.Wordlist,
		Random:     a.Random,
		Seed:       a.Seed,
		WordLength: a.WordLength,
		ChunkSize:  a.ChunkSize,
		BundleOut:  a.BundleOut,
		TableIn:    a.TableIn,
		ConfigPath: a.Config,
	}
}
