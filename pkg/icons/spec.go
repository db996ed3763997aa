package icons

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/scrutinytools/devtools/pkg/console"
	"github.com/scrutinytools/devtools/pkg/logger"
)

var specLog = logger.New("icons:spec")

//go:embed spec_schema.json
var specSchemaJSON []byte

// CommonSpecFile is merged under every variant's own spec file.
const CommonSpecFile = "common.json"

// Size is one output dimension pair, decoded from the [width, height]
// tuples in spec files.
type Size struct {
	Width  int
	Height int
}

// UnmarshalJSON decodes a [width, height] array into a Size
func (s *Size) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("size must be a [width, height] pair: %w", err)
	}
	s.Width, s.Height = pair[0], pair[1]
	return nil
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// AssetSpec describes one icon asset: its source image and the sizes to
// render from it.
type AssetSpec struct {
	Src     string `json:"src"`
	Formats []Size `json:"formats"`
}

// Spec is the merged icon specification for one variant. Source paths in
// Assets are resolved against Dir.
type Spec struct {
	Variant string
	Dir     string
	Assets  map[string]AssetSpec
}

// Names returns the asset names in sorted order for deterministic builds.
func (s *Spec) Names() []string {
	return slices.Sorted(maps.Keys(s.Assets))
}

// LoadSpec builds the merged spec for a variant from the spec directory.
// Entries in the variant file shadow same-named entries from common.json.
func LoadSpec(specDir, variant string) (*Spec, error) {
	schema, err := compileSpecSchema()
	if err != nil {
		return nil, err
	}

	spec := &Spec{
		Variant: variant,
		Dir:     specDir,
		Assets:  make(map[string]AssetSpec),
	}
	if err := mergeSpecFile(spec, filepath.Join(specDir, CommonSpecFile), schema); err != nil {
		return nil, err
	}
	if err := mergeSpecFile(spec, filepath.Join(specDir, variant+".json"), schema); err != nil {
		return nil, err
	}

	if len(spec.Assets) == 0 {
		return nil, fmt.Errorf("icon spec for variant '%s' in %s defines no assets", variant, specDir)
	}
	specLog.Printf("Loaded %d assets for variant %s", len(spec.Assets), variant)
	return spec, nil
}

// mergeSpecFile validates one spec file against the embedded schema and
// merges its entries into spec, later files overriding earlier ones.
func mergeSpecFile(spec *Spec, path string, schema *jsonschema.Schema) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read icon spec %s: %w", path, err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return newSpecSyntaxError(path, data, err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("icon spec %s is invalid: %w", path, err)
	}

	var assets map[string]AssetSpec
	if err := json.Unmarshal(data, &assets); err != nil {
		return fmt.Errorf("failed to decode icon spec %s: %w", path, err)
	}
	maps.Copy(spec.Assets, assets)
	specLog.Printf("Merged %d assets from %s", len(assets), path)
	return nil
}

var (
	specSchemaOnce sync.Once
	specSchema     *jsonschema.Schema
	specSchemaErr  error
)

func compileSpecSchema() (*jsonschema.Schema, error) {
	specSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(specSchemaJSON))
		if err != nil {
			specSchemaErr = fmt.Errorf("failed to parse embedded icon spec schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("icon-spec.schema.json", doc); err != nil {
			specSchemaErr = fmt.Errorf("failed to register icon spec schema: %w", err)
			return
		}
		specSchema, specSchemaErr = compiler.Compile("icon-spec.schema.json")
	})
	return specSchema, specSchemaErr
}

// SyntaxError is a JSON syntax failure in a spec file, carrying the source
// position and surrounding lines for terminal display.
type SyntaxError struct {
	Path    string
	Line    int
	Column  int
	Msg     string
	Context []string
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Msg)
}

// Diagnostic converts the error into a renderable console diagnostic.
func (e *SyntaxError) Diagnostic() console.FileError {
	return console.FileError{
		Position: console.ErrorPosition{File: e.Path, Line: e.Line, Column: e.Column},
		Type:     "error",
		Message:  e.Msg,
		Context:  e.Context,
	}
}

func newSpecSyntaxError(path string, data []byte, err error) error {
	var syn *json.SyntaxError
	if !errors.As(err, &syn) {
		return fmt.Errorf("failed to parse icon spec %s: %w", path, err)
	}
	line, col := lineColAt(data, syn.Offset)
	return &SyntaxError{
		Path:    path,
		Line:    line,
		Column:  col,
		Msg:     syn.Error(),
		Context: contextWindow(data, line),
	}
}

// lineColAt converts a byte offset into 1-based line and column numbers.
func lineColAt(data []byte, offset int64) (int, int) {
	line, col := 1, 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// contextWindow returns the source lines from one above through one below
// the given 1-based line.
func contextWindow(data []byte, line int) []string {
	lines := strings.Split(string(data), "\n")
	start := line - 2
	if start < 0 {
		start = 0
	}
	end := line + 1
	if end > len(lines) {
		end = len(lines)
	}
	return lines[start:end]
}
