package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"

	"plugin-compiler/internal/descriptor"
	"plugin-compiler/internal/naming"
	"plugin-compiler/internal/protocol"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:      "plugins",
		OutputDir:        "./generated",
		GenerateComments: true,
	}
}

// Generator renders the Go side of a compiled module: its registration
// constants, parameter keys and the parameter holder struct.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "foo_module.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders the file for m. names must come from naming.Derive(m).
func (g *Generator) Generate(m *descriptor.Module, names naming.Names) (*GeneratedFile, error) {
	data, err := g.buildTemplateData(m, names)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := moduleTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, data.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: data.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

// Filename returns the name of the file generated for a module kind.
func Filename(kind string) string {
	return strings.ToLower(kind) + "_module.go"
}

type templateData struct {
	PackageName      string
	Filename         string
	GenerateComments bool
	Kind             string
	ModuleName       string
	APIVersion       string
	Copyright        string
	License          string
	ArgsType         string
	Fields           []fieldData
	Submodules       []submoduleData
}

type fieldData struct {
	Name    string
	Type    string
	Default string
	KeyName string
	Key     string
	Text    string
}

type submoduleData struct {
	Kind   string
	Open   string
	Fields []fieldData
}

func (g *Generator) buildTemplateData(m *descriptor.Module, names naming.Names) (*templateData, error) {
	data := &templateData{
		PackageName:      g.config.PackageName,
		Filename:         Filename(names.Kind),
		GenerateComments: g.config.GenerateComments,
		Kind:             names.Kind,
		ModuleName:       names.Module,
		APIVersion:       protocol.APIVersion,
		Copyright:        protocol.Copyright,
		License:          protocol.License,
	}

	if shape := m.Shape(); shape != nil {
		data.ArgsType = shape.TypeName
	}

	fields, err := buildFields(m, names)
	if err != nil {
		return nil, err
	}

	data.Fields = fields

	for i, sub := range m.Children() {
		sn := names.Submodules[i]

		subFields, err := buildFields(sub, sn)
		if err != nil {
			return nil, err
		}

		data.Submodules = append(data.Submodules, submoduleData{Kind: sn.Kind, Open: sn.Open, Fields: subFields})
	}

	return data, nil
}

func buildFields(m *descriptor.Module, names naming.Names) ([]fieldData, error) {
	params := m.Parameters()
	if len(params) != len(names.Params) {
		return nil, fmt.Errorf("module %s: %d parameters but %d derived names", names.Kind, len(params), len(names.Params))
	}

	fields := make([]fieldData, 0, len(params))

	for i, p := range params {
		def, err := goLiteral(p)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name.Name, err)
		}

		n := names.Params[i]
		fields = append(fields, fieldData{
			Name:    n.Field,
			Type:    p.Type.GoType(),
			Default: def,
			KeyName: names.Kind + "Key" + n.Field,
			Key:     n.Key,
			Text:    oneLine(p.Text.Value),
		})
	}

	return fields, nil
}

// goLiteral renders the default of p as a Go constant expression.
func goLiteral(p *descriptor.Parameter) (string, error) {
	switch p.Type {
	case descriptor.ScalarInt64:
		v, err := p.Default.Int64()
		if err != nil {
			return "", err
		}

		return strconv.FormatInt(v, 10), nil
	case descriptor.ScalarFloat32:
		v, err := p.Default.Float64()
		if err != nil {
			return "", err
		}

		s := strconv.FormatFloat(v, 'g', -1, 32)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}

		return s, nil
	case descriptor.ScalarBool:
		return strconv.FormatBool(p.Default.Bool()), nil
	case descriptor.ScalarString:
		return strconv.Quote(p.Default.Text()), nil
	default:
		return "", fmt.Errorf("unsupported type %q", p.TypeName.Name)
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var moduleTemplate = template.Must(template.New("module").Parse(`// Code generated by plugin-compiler. DO NOT EDIT.

package {{.PackageName}}

{{if .GenerateComments}}// Registration constants of the {{.Kind}} module.
{{end}}const (
	{{.Kind}}ModuleName = {{printf "%q" .ModuleName}}
	{{.Kind}}APIVersion = {{printf "%q" .APIVersion}}
	{{.Kind}}Copyright  = {{printf "%q" .Copyright}}
	{{.Kind}}License    = {{printf "%q" .License}}
)
{{if .ArgsType}}
{{if .GenerateComments}}// {{.ArgsType}} holds the parameters of the {{.Kind}} module.
{{end}}type {{.ArgsType}} struct {
{{range .Fields}}	{{.Name}} {{.Type}}{{if $.GenerateComments}} // {{.Text}}{{end}}
{{end}}}

{{if .GenerateComments}}// Default{{.ArgsType}} returns the declared defaults.
{{end}}func Default{{.ArgsType}}() {{.ArgsType}} {
	return {{.ArgsType}}{
{{range .Fields}}		{{.Name}}: {{.Default}},
{{end}}	}
}

{{if .GenerateComments}}// Registration keys of the {{.Kind}} parameters.
{{end}}const (
{{range .Fields}}	{{.KeyName}} = {{printf "%q" .Key}}
{{end}})
{{end}}
{{range .Submodules}}
{{if $.GenerateComments}}// Registration of the {{.Kind}} submodule.
{{end}}const (
	{{.Kind}}OpenLabel = {{printf "%q" .Open}}
{{range .Fields}}	{{.KeyName}} = {{printf "%q" .Key}}
{{end}})
{{end}}
`))
