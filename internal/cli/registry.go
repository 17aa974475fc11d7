package cli

import (
	"context"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

// ToolDefinition defines a command with its metadata and execution logic
type ToolDefinition struct {
	Name        string
	Description string
	ArgsType    interface{}
	Execute     func(ctx context.Context, args interface{}) (string, error)
}

// Registry manages all available commands
type Registry struct {
	tools map[string]*ToolDefinition
	order []string
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*ToolDefinition),
	}
}

// RegisterTool adds a command to the registry
func (r *Registry) RegisterTool(def *ToolDefinition) {
	if _, exists := r.tools[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.tools[def.Name] = def
}

// GetTool retrieves a command by name
func (r *Registry) GetTool(name string) (*ToolDefinition, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// Tools returns the registered commands in registration order
func (r *Registry) Tools() []*ToolDefinition {
	out := make([]*ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// ExtractInputSchema generates the JSON Schema of the args type
func (td *ToolDefinition) ExtractInputSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		DoNotReference:             true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}
	return reflector.Reflect(td.ArgsType)
}

// SchemaJSON renders the args schema as indented JSON
func (td *ToolDefinition) SchemaJSON() (string, error) {
	data, err := json.MarshalIndent(td.ExtractInputSchema(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CreateCobraCommand generates a cobra command from a tool definition
func CreateCobraCommand(td *ToolDefinition, execute func(ctx context.Context, args interface{}) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   td.Name,
		Short: td.Description,
		Long:  td.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			argsInstance := createArgsInstance(td.ArgsType)

			// Bind flags to struct fields
			if err := bindFlagsToStruct(cmd, argsInstance); err != nil {
				return err
			}

			return execute(ctx, argsInstance)
		},
	}

	// Add flags based on struct fields
	addFlagsFromStruct(cmd, td.ArgsType)

	return cmd
}

// createArgsInstance creates a new instance of the args type
func createArgsInstance(argsType interface{}) interface{} {
	t := reflect.TypeOf(argsType)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return reflect.New(t).Interface()
}

// addFlagsFromStruct adds cobra flags based on struct tags
func addFlagsFromStruct(cmd *cobra.Command, argsType interface{}) {
	t := reflect.TypeOf(argsType)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		shortFlag := field.Tag.Get("short")
		longFlag := field.Tag.Get("long")
		defaultValue := field.Tag.Get("default")
		description := getDescription(field)

		if longFlag == "" {
			continue
		}

		flags := cmd.Flags()
		switch field.Type.Kind() {
		case reflect.String:
			flags.StringP(longFlag, shortFlag, defaultValue, description)
		case reflect.Int:
			def, _ := strconv.Atoi(defaultValue)
			flags.IntP(longFlag, shortFlag, def, description)
		case reflect.Uint64:
			def, _ := strconv.ParseUint(defaultValue, 10, 64)
			flags.Uint64P(longFlag, shortFlag, def, description)
		case reflect.Bool:
			def, _ := strconv.ParseBool(defaultValue)
			flags.BoolP(longFlag, shortFlag, def, description)
		}

		// Mark required fields
		if hasRequiredTag(field) {
			cmd.MarkFlagRequired(longFlag)
		}
	}
}

// bindFlagsToStruct binds cobra flag values to struct fields
func bindFlagsToStruct(cmd *cobra.Command, argsInstance interface{}) error {
	v := reflect.ValueOf(argsInstance)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		longFlag := field.Tag.Get("long")

		if longFlag == "" {
			continue
		}

		switch field.Type.Kind() {
		case reflect.String:
			val, err := cmd.Flags().GetString(longFlag)
			if err != nil {
				return err
			}
			v.Field(i).SetString(val)
		case reflect.Int:
			val, err := cmd.Flags().GetInt(longFlag)
			if err != nil {
				return err
			}
			v.Field(i).SetInt(int64(val))
		case reflect.Uint64:
			val, err := cmd.Flags().GetUint64(longFlag)
			if err != nil {
				return err
			}
			v.Field(i).SetUint(val)
		case reflect.Bool:
			val, err := cmd.Flags().GetBool(longFlag)
			if err != nil {
				return err
			}
			v.Field(i).SetBool(val)
		}
	}

	return nil
}

// getDescription extracts description from jsonschema tag
func getDescription(field reflect.StructField) string {
	return parseTag(field.Tag.Get("jsonschema"))["description"]
}

// hasRequiredTag checks if field is required
func hasRequiredTag(field reflect.StructField) bool {
	_, required := parseTag(field.Tag.Get("jsonschema"))["required"]
	return required
}

// parseTag parses a jsonschema tag ("required,description=...") into
// key-value pairs. Descriptions must not contain commas.
func parseTag(tag string) map[string]string {
	result := make(map[string]string)
	if tag == "" {
		return result
	}
	for _, part := range strings.Split(tag, ",") {
		key, value, _ := strings.Cut(part, "=")
		result[key] = value
	}
	return result
}
