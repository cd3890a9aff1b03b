package types

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// catalogFile is the top-level structure of a types.hcl file:
//
//	type "org.example.Generator" {
//	  super    = "org.example.Base"
//	  abstract = false
//	  property "message" { type = builtin.string }
//	  property "bean" {
//	    type  = "org.example.Bean"
//	    multi = true
//	  }
//	}
type catalogFile struct {
	Types []*typeBlock `hcl:"type,block"`
}

type typeBlock struct {
	Name       string           `hcl:"name,label"`
	Super      string           `hcl:"super,optional"`
	Abstract   bool             `hcl:"abstract,optional"`
	Properties []*propertyBlock `hcl:"property,block"`
}

type propertyBlock struct {
	Name  string `hcl:"name,label"`
	Type  string `hcl:"type,optional"`
	Multi bool   `hcl:"multi,optional"`
}

// evalContext exposes the builtin type names to catalog expressions as
// builtin.string, builtin.boolean, builtin.bool and builtin.object.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"builtin": cty.ObjectVal(map[string]cty.Value{
				"string":  cty.StringVal(String),
				"boolean": cty.StringVal(Boolean),
				"bool":    cty.StringVal(Bool),
				"object":  cty.StringVal(Object),
			}),
		},
	}
}

// LoadCatalog reads and decodes an HCL type catalog from disk.
func LoadCatalog(path string) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse type catalog %s: %w", path, diags)
	}
	return decodeCatalog(path, file)
}

// ParseCatalog decodes an HCL type catalog held in memory.
func ParseCatalog(filename string, src []byte) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse type catalog %s: %w", filename, diags)
	}
	return decodeCatalog(filename, file)
}

func decodeCatalog(filename string, file *hcl.File) (*Catalog, error) {
	var config catalogFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode type catalog %s: %w", filename, diags)
	}

	catalog := NewCatalog()
	for _, block := range config.Types {
		t := &TypeDescriptor{
			Name:       block.Name,
			Super:      block.Super,
			Abstract:   block.Abstract,
			Properties: make(map[string]*PropertyDescriptor, len(block.Properties)),
		}
		if t.Super == "" && t.Name != Object {
			t.Super = Object
		}
		for _, pb := range block.Properties {
			if _, dup := t.Properties[pb.Name]; dup {
				return nil, fmt.Errorf("%s: property %q of type %s is declared twice", filename, pb.Name, t.Name)
			}
			propType := Canonical(pb.Type)
			if propType == "" {
				propType = Object
			}
			t.Properties[pb.Name] = &PropertyDescriptor{
				Name:  pb.Name,
				Type:  propType,
				Multi: pb.Multi,
				Owner: t.Name,
			}
		}
		if err := catalog.Add(t); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}
	return catalog, nil
}
