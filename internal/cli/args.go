// Package cli provides the command-line interface
package cli

// EncodeArgs defines arguments for the encode command
type EncodeArgs struct {
	Input      string `json:"input" jsonschema:"required,description=Payload file to encode" short:"i" long:"input"`
	Output     string `json:"output" jsonschema:"required,description=File to write the generated source to" short:"o" long:"output"`
	Template   string `json:"template" jsonschema:"required,description=Output dialect (see the dialects command)" short:"t" long:"template"`
	Wordlist   string `json:"wordlist,omitempty" jsonschema:"description=Word list file or directory to draw words from" short:"w" long:"wordlist"`
	Random     bool   `json:"random,omitempty" jsonschema:"description=Generate random words instead of reading a word source" short:"r" long:"random"`
	Seed       uint64 `json:"seed,omitempty" jsonschema:"description=Seed for word selection (0 picks one and logs it)" long:"seed"`
	WordLength int    `json:"word_length,omitempty" jsonschema:"description=Length of random words (default 6)" long:"word-length"`
	ChunkSize  int    `json:"chunk_size,omitempty" jsonschema:"description=Words per declared chunk (0 disables chunking; -1 uses the dialect default)" long:"chunk-size" default:"-1"`
	BundleOut  string `json:"bundle_out,omitempty" jsonschema:"description=Also write the table and encoded words to this CBOR file" long:"bundle-out"`
	TableIn    string `json:"table_in,omitempty" jsonschema:"description=Reuse the word table from a bundle written by --bundle-out" long:"table-in"`
	Config     string `json:"config,omitempty" jsonschema:"description=Configuration file (default: lexigen.toml found from the working directory up)" long:"config"`
}

// DecodeArgs defines arguments for the decode command
type DecodeArgs struct {
	Bundle string `json:"bundle" jsonschema:"required,description=Bundle written by encode --bundle-out" short:"b" long:"bundle"`
	Output string `json:"output" jsonschema:"required,description=File to write the recovered payload to" short:"o" long:"output"`
}

// DialectsArgs defines arguments for the dialects command
type DialectsArgs struct {
	Config string `json:"config,omitempty" jsonschema:"description=Configuration file whose chunk sizes should be shown" long:"config"`
}

// SchemaArgs defines arguments for the schema command
type SchemaArgs struct {
	Command string `json:"command" jsonschema:"required,description=Command whose argument schema to print" short:"c" long:"command"`
}
