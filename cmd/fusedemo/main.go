// Command fusedemo fuses the graphs of a YAML scene and prints a summary.
//
// Without -scene it fuses a built-in scene: a grid of lines crossed by a
// diagonal, split across two sources.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/fuse"
	"github.com/gogpu/fuse/graph"
	"github.com/gogpu/fuse/points"
	"github.com/gogpu/fuse/value"
)

// scene is the YAML layout of the -scene file:
//
//	sources:
//	  - points: [[0, 0, 0], [1, 0, 0]]
//	    edges: [[0, 1]]
//	    attributes:
//	      Weight: [1, 2]
type scene struct {
	Sources []sceneSource `yaml:"sources"`
}

type sceneSource struct {
	Points     [][3]float64         `yaml:"points"`
	Edges      [][2]int             `yaml:"edges"`
	Attributes map[string][]float64 `yaml:"attributes"`
}

func main() {
	var (
		scenePath    = flag.String("scene", "", "YAML scene file")
		settingsPath = flag.String("settings", "", "YAML settings file")
		verbose      = flag.Bool("v", false, "log every phase")
	)
	flag.Parse()

	if *verbose {
		fuse.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	settings := fuse.DefaultSettings()
	if *settingsPath != "" {
		f, err := os.Open(*settingsPath)
		if err != nil {
			log.Fatalf("Failed to open settings: %v", err)
		}
		settings, err = fuse.LoadSettings(f)
		_ = f.Close()
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
	}

	sc := demoScene()
	if *scenePath != "" {
		var err error
		if sc, err = loadScene(*scenePath); err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
	}

	sources, err := sc.build()
	if err != nil {
		log.Fatalf("Invalid scene: %v", err)
	}

	res, err := fuse.NewProcessor(fuse.WithSettings(settings)).Execute(context.Background(), sources)
	if err != nil {
		log.Fatalf("Fusion failed: %v", err)
	}
	printResult(res)
}

func loadScene(path string) (scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scene{}, err
	}
	var sc scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return scene{}, err
	}
	return sc, nil
}

func (sc scene) build() ([]fuse.Source, error) {
	out := make([]fuse.Source, 0, len(sc.Sources))
	for si, s := range sc.Sources {
		vtx := points.NewCollection(len(s.Points))
		for i, p := range s.Points {
			vtx.Points[i].Position = value.NewVector(p[0], p[1], p[2])
		}
		for name, values := range s.Attributes {
			if len(values) > vtx.Len() {
				return nil, fmt.Errorf("source %d: %d values for %q, %d points", si, len(values), name, vtx.Len())
			}
			for i, v := range values {
				if err := vtx.SetValue(name, i, value.Double(v)); err != nil {
					return nil, fmt.Errorf("source %d: %w", si, err)
				}
			}
		}

		src := fuse.Source{Vtx: vtx}
		for _, e := range s.Edges {
			src.Edges = append(src.Edges, graph.Link{Start: e[0], End: e[1]})
		}
		out = append(out, src)
	}
	return out, nil
}

// demoScene lays horizontal lines in one source and vertical lines plus a
// diagonal in another.
func demoScene() scene {
	const n = 4
	var rows, cols sceneSource
	rows.Attributes = map[string][]float64{}
	for i := range n {
		y := float64(i)
		rows.Points = append(rows.Points, [3]float64{-1, y, 0}, [3]float64{n, y, 0})
		rows.Edges = append(rows.Edges, [2]int{2 * i, 2*i + 1})

		cols.Points = append(cols.Points, [3]float64{y, -1, 0}, [3]float64{y, n, 0})
		cols.Edges = append(cols.Edges, [2]int{2 * i, 2*i + 1})
	}
	for i := range rows.Points {
		rows.Attributes["Weight"] = append(rows.Attributes["Weight"], float64(i))
	}
	d := len(cols.Points)
	cols.Points = append(cols.Points, [3]float64{-0.5, -0.5, 0}, [3]float64{n - 0.5, n - 0.5, 0})
	cols.Edges = append(cols.Edges, [2]int{d, d + 1})
	return scene{Sources: []sceneSource{rows, cols}}
}

func printResult(res *fuse.Result) {
	st := res.Stats
	fmt.Printf("run %s\n", res.RunID)
	fmt.Printf("  input:    %d sources, %d points, %d edges\n", st.Sources, st.InputPoints, st.InputEdges)
	fmt.Printf("  union:    %d nodes, %d edges (%d dropped)\n", st.UnionNodes, st.UnionEdges, st.DroppedEdges)
	fmt.Printf("  refined:  %d point/edge splits, %d crossings into %d nodes\n", st.PointEdgeSplits, st.Crossings, st.CrossingNodes)
	fmt.Printf("  output:   %d vertices, %d clusters\n", res.Vtx.Len(), st.Clusters)
	for i, c := range res.Clusters {
		fmt.Printf("    cluster %d: %d edges\n", i, len(c.Links))
	}
	for _, w := range res.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}
