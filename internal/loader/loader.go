// Package loader reads tagger descriptor records from HCL files.
//
// A file holds any number of tagger blocks:
//
//	tagger "org.example.visibility" {
//	  factory = "visibility"
//	  enablement {
//	    when = contains(project.natures, "cnature") && language.id == "c"
//	  }
//	}
//
// Records are returned in file order, files in lexical path order. Problems
// confined to one record, such as an enablement condition that does not
// compile, are attached to that record so the registry can disable it; only
// malformed files abort loading.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/bindtags/internal/ctxlog"
	"github.com/specialistvlad/bindtags/internal/enablement"
	"github.com/specialistvlad/bindtags/internal/fsutil"
	"github.com/specialistvlad/bindtags/internal/tagger"
)

// Extension is the file extension of descriptor files.
const Extension = ".hcl"

// FactoryResolver maps a factory name to a factory. *registry.Catalog
// satisfies it.
type FactoryResolver interface {
	Factory(name string) tagger.Factory
}

// fileRoot decodes all top-level blocks of a descriptor file.
type fileRoot struct {
	Taggers []*taggerBlock `hcl:"tagger,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

type taggerBlock struct {
	ID         string             `hcl:"id,label"`
	Factory    string             `hcl:"factory"`
	Enablement []*enablementBlock `hcl:"enablement,block"`
	DefRange   hcl.Range          `hcl:",def_range"`
}

type enablementBlock struct {
	When hcl.Expression `hcl:"when"`
}

// Load reads every descriptor file found under paths.
func Load(ctx context.Context, resolver FactoryResolver, paths ...string) ([]tagger.Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Tagger loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered descriptor files.", "count", len(files))

	parser := hclparse.NewParser()
	var configs []tagger.Config
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read descriptor file %s: %w", file, err)
		}
		cfgs, err := parse(ctx, parser, resolver, file, src)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfgs...)
	}

	logger.Debug("Tagger loading complete.", "taggers", len(configs))
	return configs, nil
}

// LoadSource reads descriptor records from src, naming it filename in
// diagnostics.
func LoadSource(ctx context.Context, resolver FactoryResolver, filename string, src []byte) ([]tagger.Config, error) {
	return parse(ctx, hclparse.NewParser(), resolver, filename, src)
}

func parse(ctx context.Context, parser *hclparse.Parser, resolver FactoryResolver, filename string, src []byte) ([]tagger.Config, error) {
	if resolver == nil {
		return nil, errors.New("no factory resolver")
	}

	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse descriptor file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode descriptor file %s: %w", filename, diags)
	}

	logger := ctxlog.FromContext(ctx)
	configs := make([]tagger.Config, 0, len(root.Taggers))
	for _, b := range root.Taggers {
		if b.ID == "" {
			logger.Error("Skipping tagger without id.", "range", b.DefRange.String())
			continue
		}
		configs = append(configs, translate(b, resolver))
	}
	return configs, nil
}

func translate(b *taggerBlock, resolver FactoryResolver) tagger.Config {
	cfg := tagger.Config{
		ID:      b.ID,
		Factory: resolver.Factory(b.Factory),
	}

	var diags hcl.Diagnostics
	for _, e := range b.Enablement {
		expr, exprDiags := enablement.FromHCL(e.When)
		diags = append(diags, exprDiags...)
		if exprDiags.HasErrors() {
			continue
		}
		cfg.Enablement = append(cfg.Enablement, expr)
	}
	if diags.HasErrors() {
		cfg.Err = fmt.Errorf("invalid enablement condition: %w", diags)
	}
	return cfg
}
