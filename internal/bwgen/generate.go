// Package bwgen is blockwire's code generator: the Go analogue of the
// source's derive macro. It parses a Go source file for struct types
// annotated with `bw:"..."` field tags and emits a companion file with
// ReadUnboxed/WriteUnboxed methods that walk the fields in declaration
// order. Inline fields become calls to bwgenRead<Type>/bwgenWrite<Type>
// functions, which the generated file does not define; ptr and vec fields
// get only a comment, so their reads and writes are not generated (see
// cgfx.Npc for a hand-written pair that covers them).
//
// No suitable third-party code-generation library appeared anywhere in
// the retrieved corpus, so this is built on go/parser, go/ast and
// text/template: the same standard-library toolkit stringer and every
// other well-known Go source generator uses.
package bwgen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"strings"
	"text/template"
)

// Kind classifies how a field's bytes are laid out relative to the
// record containing it.
type Kind int

const (
	// KindInline means the field's encoding sits directly in the
	// record's own bytes (primitives, and nested records with no
	// pointer indirection of their own).
	KindInline Kind = iota
	// KindPointer means the field is boxed: a relative pointer in the
	// record's bytes, with the field's actual content living in a
	// separately allocated block.
	KindPointer
	// KindVec means the field is a length-prefixed, boxed sequence.
	KindVec
)

// Field describes one struct field targeted for generation.
type Field struct {
	Name string
	Type string
	Kind Kind
}

// Record describes one struct type to generate ReadUnboxed/WriteUnboxed
// methods for.
type Record struct {
	Name     string
	Category string // the blockwire.WriteCtx category type name, e.g. "cgfx.Category"
	Fields   []Field
}

// File is a parsed source file's generation target: its package name and
// every tagged struct found in it.
type File struct {
	Package string
	Records []Record
}

// ParseSource parses Go source (as from a file, or an in-memory buffer
// in tests) and extracts every struct type carrying at least one field
// with a `bw:"..."` tag. category is the WriteCtx category type name
// generated methods should use; DriverRefused-worthy fields (unsupported
// tag values) cause an error rather than being silently skipped.
func ParseSource(filename string, src any, category string) (*File, error) {
	fset := token.NewFileSet()
	astFile, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("bwgen: parse %s: %w", filename, err)
	}

	out := &File{Package: astFile.Name.Name}

	for _, decl := range astFile.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			rec, tagged, err := extractRecord(ts.Name.Name, st, category)
			if err != nil {
				return nil, err
			}
			if tagged {
				out.Records = append(out.Records, rec)
			}
		}
	}
	return out, nil
}

func extractRecord(name string, st *ast.StructType, category string) (Record, bool, error) {
	rec := Record{Name: name, Category: category}
	tagged := false

	for _, f := range st.Fields.List {
		if len(f.Names) == 0 || f.Tag == nil {
			continue
		}
		tagVal := strings.Trim(f.Tag.Value, "`")
		bw := lookupTag(tagVal, "bw")
		if bw == "" {
			continue
		}
		tagged = true

		kind, err := parseKind(bw)
		if err != nil {
			return Record{}, false, fmt.Errorf("bwgen: %s.%s: %w", name, f.Names[0].Name, err)
		}

		typeName, err := exprString(f.Type)
		if err != nil {
			return Record{}, false, fmt.Errorf("bwgen: %s.%s: %w", name, f.Names[0].Name, err)
		}

		for _, n := range f.Names {
			rec.Fields = append(rec.Fields, Field{Name: n.Name, Type: typeName, Kind: kind})
		}
	}

	return rec, tagged, nil
}

func parseKind(tag string) (Kind, error) {
	switch tag {
	case "inline", "":
		return KindInline, nil
	case "ptr":
		return KindPointer, nil
	case "vec":
		return KindVec, nil
	default:
		return 0, fmt.Errorf("unrecognized bw tag %q", tag)
	}
}

// lookupTag does a minimal struct-tag lookup without pulling in
// reflect.StructTag (the tag text here is still source code, not a
// runtime string, so reflect's quoting rules don't quite apply to the
// raw token text go/ast hands back).
func lookupTag(raw, key string) string {
	for _, part := range strings.Fields(raw) {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 || kv[0] != key {
			continue
		}
		return strings.Trim(kv[1], `"`)
	}
	return ""
}

func exprString(expr ast.Expr) (string, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, nil
	case *ast.SelectorExpr:
		pkg, err := exprString(t.X)
		if err != nil {
			return "", err
		}
		return pkg + "." + t.Sel.Name, nil
	case *ast.StarExpr:
		inner, err := exprString(t.X)
		if err != nil {
			return "", err
		}
		return "*" + inner, nil
	case *ast.ArrayType:
		inner, err := exprString(t.Elt)
		if err != nil {
			return "", err
		}
		return "[]" + inner, nil
	default:
		return "", fmt.Errorf("unsupported field type expression %T", expr)
	}
}

var tmplFuncs = template.FuncMap{"title": strings.Title}

var tmpl = template.Must(template.New("bwgen").Funcs(tmplFuncs).Parse(`// Code generated by bwgen. DO NOT EDIT.

package {{.Package}}

import "github.com/hyliodon/blockwire"
{{range .Records}}
func (v *{{.Name}}) ReadUnboxed(r blockwire.Reader, d blockwire.ReadDomain) error {
	var err error
{{range .Fields}}{{if eq .Kind 0}}	if v.{{.Name}}, err = bwgenRead{{.Type | title}}(r, d); err != nil {
		return err
	}
{{else}}	// field {{.Name}} ({{.Type}}) requires a boxed reader generated per-type; see cgfx for a hand-written example
{{end}}{{end}}	return err
}

func (v *{{.Name}}) WriteUnboxed(ctx *blockwire.WriteCtx[{{$.CategoryOf .}}], d blockwire.WriteDomain) error {
{{range .Fields}}{{if eq .Kind 0}}	if err := bwgenWrite{{.Type | title}}(ctx, d, v.{{.Name}}); err != nil {
		return err
	}
{{else}}	// field {{.Name}} ({{.Type}}) requires a boxed writer generated per-type; see cgfx for a hand-written example
{{end}}{{end}}	return nil
}
{{end}}`))

// CategoryOf returns the category type name recorded for rec. The
// template calls it through $ (the top-level File) while iterating
// .Records.
func (f *File) CategoryOf(rec Record) string { return rec.Category }

// Generate renders the generated source for f into w.
func Generate(w io.Writer, f *File) error {
	return tmpl.Execute(w, f)
}
