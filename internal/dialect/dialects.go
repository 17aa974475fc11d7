package dialect

import "github.com/oyin-bo/lexigen/internal/chunk"

func init() {
	register(&Dialect{
		Name:        "cpp",
		Description: "C++ (MSVC, GCC or Clang)",
		Extension:   ".cpp",
		ChunkSize:   chunk.DefaultSize,
		BuildHints: []string{
			"cl output.cpp /std:c++14 /EHsc /Od /bigobj",
			"large payloads fail to compile without /bigobj",
		},
		quote:     quoteCpp,
		indent:    "    ",
		inline:    "std::vector<std::string> encodedWords = {%s};",
		part:      "std::vector<std::string> encodedWordsPart%[1]d = {%[2]s};",
		mergeHead: "std::vector<std::string> encodedWords;",
		mergeLine: "encodedWords.insert(encodedWords.end(), encodedWordsPart%[1]d.begin(), encodedWordsPart%[1]d.end());",
		body:      "cpp.tmpl",
	})

	register(&Dialect{
		Name:        "rust",
		Description: "Rust",
		Extension:   ".rs",
		BuildHints:  []string{"rustc -O output.rs"},
		Unicode:     true,
		quote:       quoteRust,
		indent:      "    ",
		inline:      "let encoded_words: Vec<&str> = vec![%s];",
		part:        "const ENCODED_WORDS_PART%[1]d: &[&str] = &[%[2]s];",
		mergeHead:   "let mut encoded_words: Vec<&str> = Vec::new();",
		mergeLine:   "encoded_words.extend_from_slice(ENCODED_WORDS_PART%[1]d);",
		body:        "rust.tmpl",
	})

	register(&Dialect{
		Name:        "go",
		Description: "Go",
		Extension:   ".go",
		BuildHints:  []string{"go build -o output output.go"},
		build:       buildGo,
	})

	register(&Dialect{
		Name:        "csharp",
		Description: "C# (.NET Framework or .NET)",
		Extension:   ".cs",
		BuildHints:  []string{"csc /optimize output.cs"},
		Unicode:     true,
		quote:       quoteCSharp,
		indent:      "        ",
		inline:      "string[] encodedWords = new string[] { %s };",
		part:        "    static readonly string[] EncodedWordsPart%[1]d = new string[] { %[2]s };",
		mergeHead:   "var encodedWords = new List<string>();",
		mergeLine:   "encodedWords.AddRange(EncodedWordsPart%[1]d);",
		body:        "csharp.tmpl",
	})

	register(&Dialect{
		Name:        "powershell",
		Description: "PowerShell script",
		Extension:   ".ps1",
		BuildHints:  []string{"powershell -NoProfile -ExecutionPolicy Bypass -File output.ps1 > payload.bin"},
		Unicode:     true,
		quote:       quotePowerShell,
		inline:      "$EncodedWords = @(%s)",
		part:        "$EncodedWordsPart%[1]d = @(%[2]s)",
		mergeHead:   "$EncodedWords = New-Object System.Collections.Generic.List[string]",
		mergeLine:   "$EncodedWords.AddRange([string[]] $EncodedWordsPart%[1]d)",
		body:        "powershell.tmpl",
	})

	register(&Dialect{
		Name:        "powershell_alt",
		Description: "PowerShell script with functions and an -OutFile parameter",
		Extension:   ".ps1",
		BuildHints:  []string{"powershell -NoProfile -ExecutionPolicy Bypass -File output.ps1 -OutFile payload.bin"},
		Unicode:     true,
		quote:       quotePowerShell,
		inline:      "$EncodedWords = @(%s)",
		part:        "$EncodedWordsPart%[1]d = @(%[2]s)",
		mergeHead:   "$EncodedWords = New-Object System.Collections.Generic.List[string]",
		mergeLine:   "$EncodedWords.AddRange([string[]] $EncodedWordsPart%[1]d)",
		body:        "powershell_alt.tmpl",
	})

	register(&Dialect{
		Name:        "wsh",
		Description: "VBScript for Windows Script Host",
		Extension:   ".vbs",
		BuildHints:  []string{"cscript //nologo output.vbs payload.bin"},
		Warnings:    []string{"the VBScript output has not been tested against a real Windows Script Host"},
		Unicode:     true,
		quote:       quoteVBScript,
		inline:      "EncodedWords = Array(%s)",
		part:        "Dim EncodedWordsPart%[1]d\nEncodedWordsPart%[1]d = Array(%[2]s)",
		mergeHead:   "EncodedWords = Array()",
		mergeLine:   "EncodedWords = Concat(EncodedWords, EncodedWordsPart%[1]d)",
		body:        "wsh.tmpl",
	})
}
