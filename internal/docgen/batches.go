package docgen

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/julianshen/firmdiag/internal/diagram"
	"github.com/julianshen/firmdiag/internal/extract"
	"github.com/julianshen/firmdiag/internal/notation"
	"github.com/julianshen/firmdiag/internal/raster"
	"github.com/julianshen/firmdiag/internal/scanner"
	"github.com/julianshen/firmdiag/internal/topology"
)

// Batch names accepted by Run.
const (
	BatchFlowcharts = "flowcharts"
	BatchAdvanced   = "advanced"
	BatchWiring     = "wiring"
	BatchStatic     = "static"
)

// BatchNames returns every batch in run order.
func BatchNames() []string {
	return []string{BatchFlowcharts, BatchAdvanced, BatchWiring, BatchStatic}
}

// job is a built batch waiting to be assembled and written.
type job struct {
	batch    Batch
	stats    extract.Stats
	failures []ArtifactError
	fonts    raster.FontSource
	fallback string
	pins     extract.PinBinding
	table    extract.PinTable
}

type builder func(ctx context.Context, cfg Config, progress io.Writer) (*job, error)

var builders = map[string]builder{
	BatchFlowcharts: buildFlowcharts,
	BatchAdvanced:   buildAdvanced,
	BatchWiring:     buildWiring,
	BatchStatic:     buildStatic,
}

func collect(ctx context.Context, cfg Config, set extract.PatternSet, progress io.Writer) (extract.Stats, error) {
	fmt.Fprintf(progress, "firmdiag: scanning %s...\n", cfg.SourceDir)
	files, err := scanner.Scan(ctx, cfg.SourceDir, cfg.Scan)
	if err != nil {
		return extract.Stats{}, fmt.Errorf("scan: %w", err)
	}
	fmt.Fprintf(progress, "firmdiag: extracting signatures from %d files...\n", len(files))
	return extract.Collect(ctx, cfg.SourceDir, files, set), nil
}

func document(path, title, description string, target notation.Target, body string) Artifact {
	return Artifact{
		Path:        path,
		Title:       title,
		Description: description,
		Kind:        KindMarkdown,
		Target:      target,
		Content:     []byte(notation.Fenced(title, target, body)),
	}
}

func graphTarget(g *diagram.Graph) notation.Target {
	if g.Kind == diagram.KindGraph {
		return notation.TargetGraph
	}
	return notation.TargetFlowchart
}

func flowDocument(path, title, description string, g *diagram.Graph) Artifact {
	return document(path, title, description, graphTarget(g), notation.Flowchart(g))
}

func buildFlowcharts(ctx context.Context, cfg Config, progress io.Writer) (*job, error) {
	stats, err := collect(ctx, cfg, extract.BasicPatterns(), progress)
	if err != nil {
		return nil, err
	}
	return &job{
		stats: stats,
		batch: Batch{
			Name:  BatchFlowcharts,
			Dir:   cfg.FlowchartsDir,
			Title: "Code diagrams: agricultural gateway",
			Artifacts: []Artifact{
				flowDocument("main-flow.md", "Main flow", "Control flow of the main program", topology.MainFlow()),
				document("class-diagram.md", "Class diagram", "Classes and their relationships",
					notation.TargetClass, notation.Class(topology.Classes())),
				document("sequence-diagram.md", "Sequence diagram", "Interaction between components",
					notation.TargetSequence, notation.Sequence(topology.GatewaySequence())),
			},
		},
	}, nil
}

func buildAdvanced(ctx context.Context, cfg Config, progress io.Writer) (*job, error) {
	stats, err := collect(ctx, cfg, extract.FullPatterns(), progress)
	if err != nil {
		return nil, err
	}
	dot := topology.GatewayDOT()
	return &job{
		stats: stats,
		batch: Batch{
			Name:  BatchAdvanced,
			Dir:   cfg.AdvancedDir,
			Title: "Advanced diagrams: agricultural gateway",
			Artifacts: []Artifact{
				flowDocument("advanced-flow.md", "Advanced flow", "Detailed control flow with decisions", topology.AdvancedFlow()),
				flowDocument("call-graph.md", "Function call graph", "Dependencies between functions", topology.CallGraph()),
				flowDocument("data-flow.md", "Data flow", "Data moving between components", topology.DataFlow()),
				document("system-states.md", "System states", "States and transitions of the system",
					notation.TargetState, notation.State(topology.SystemStates())),
				{
					Path:        "gateway.dot",
					Title:       "Graphviz",
					Description: "Gateway control flow for Graphviz",
					Kind:        KindSource,
					Target:      notation.TargetDOT,
					Content:     []byte(notation.DOT(dot)),
				},
			},
		},
	}, nil
}

// buildWiring fails when the pin configuration cannot be read: there is no
// sensible wiring diagram without it. Unresolved roles are not errors.
func buildWiring(ctx context.Context, cfg Config, progress io.Writer) (*job, error) {
	table := extract.DefaultPinTable().WithOverrides(cfg.PinOverrides)
	fmt.Fprintf(progress, "firmdiag: reading pin bindings from %s...\n", cfg.PinConfig)
	pins, err := extract.ExtractPins(cfg.PinConfig, table)
	if err != nil {
		return nil, fmt.Errorf("pins: %w", err)
	}

	stats, err := collect(ctx, cfg, extract.BasicPatterns(), progress)
	if err != nil {
		return nil, err
	}

	fm, err := notation.FrontMatter("Board wiring")
	if err != nil {
		return nil, err
	}
	g := topology.Wiring(pins)
	content := fm + notation.Comment("Generated from "+filepath.ToSlash(cfg.PinConfig)) + notation.Flowchart(g)

	return &job{
		stats: stats,
		pins:  pins,
		table: table,
		batch: Batch{
			Name:  BatchWiring,
			Dir:   filepath.Dir(cfg.WiringFile),
			Title: "Architecture diagrams: board wiring",
			Artifacts: []Artifact{{
				Path:        filepath.Base(cfg.WiringFile),
				Title:       "Board wiring",
				Description: "Connections between the controller and its modules, with pins from the configuration header",
				Kind:        KindSource,
				Target:      graphTarget(g),
				Content:     []byte(content),
			}},
		},
	}, nil
}

// buildStatic renders the raster images. A scene that fails to render is
// recorded as a failed artifact and the others are still produced.
func buildStatic(ctx context.Context, cfg Config, progress io.Writer) (*job, error) {
	stats, err := collect(ctx, cfg, extract.BasicPatterns(), progress)
	if err != nil {
		return nil, err
	}

	fonts := raster.AcquireFonts(cfg.Font)
	defer fonts.Close()
	fmt.Fprintf(progress, "firmdiag: rendering images with %s fonts...\n", fonts.Source)

	j := &job{
		stats:    stats,
		fonts:    fonts.Source,
		fallback: fonts.Reason,
		batch: Batch{
			Name:  BatchStatic,
			Dir:   cfg.StaticDir,
			Title: "Static images: agricultural sensing network",
		},
	}

	p := cfg.Palette
	scenes := []struct {
		path, title, description string
		scene                    *diagram.Scene
	}{
		{"architecture_diagram.png", "System architecture", "Field node, LoRa mesh and gateway with sensors", topology.ArchitectureScene(p)},
		{"data_flow_diagram.png", "Data flow", "Measurement path from acquisition to transmission", topology.DataFlowScene(p)},
		{"voltage_reader_diagram.png", "Voltage reader", "Sensor reading chain of the field node", topology.VoltageReaderScene(p)},
	}
	for _, s := range scenes {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a := Artifact{Path: s.path, Title: s.title, Description: s.description, Kind: KindRaster}
		img, err := raster.Render(s.scene, fonts, cfg.PixelsPerUnit)
		if err == nil {
			a.Content, err = encode(img)
		}
		if err != nil {
			j.failures = append(j.failures, ArtifactError{Path: s.path, Err: err})
			continue
		}
		j.batch.Artifacts = append(j.batch.Artifacts, a)
	}

	logo := Artifact{Path: "logo.png", Title: "Logo", Description: "Project logo", Kind: KindRaster}
	img, err := raster.ComposeLogo(topology.ProjectLogo(p), fonts)
	if err == nil {
		logo.Content, err = encode(img)
	}
	if err != nil {
		j.failures = append(j.failures, ArtifactError{Path: logo.Path, Err: err})
	} else {
		j.batch.Artifacts = append(j.batch.Artifacts, logo)
	}
	return j, nil
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
