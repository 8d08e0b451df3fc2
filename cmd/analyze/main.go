// Command analyze decides, on a directed site graph, whether global
// state recording is possible (one strongly connected component
// covering every site) and which sites are valid initiators.
//
// Usage:
//
//	analyze [--verbose] <graph.json> [vertex]
//
// With a vertex argument the analysis additionally prints the SCC
// containing that vertex - the witnesses of a recording started there -
// and its initiator verdict. An unknown vertex is reported as a
// warning; the global outputs still follow.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/distsim/core"
	"github.com/katalvlaran/distsim/scc"
	"github.com/katalvlaran/distsim/scenario"
)

func main() {
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	pflag.Parse()
	log := newLogger(*verbose)

	args := pflag.Args()
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: analyze [--verbose] <graph.json> [vertex]")
		os.Exit(2)
	}

	g, err := scenario.LoadGraph(args[0])
	if err != nil {
		log.Error().Err(err).Str("file", args[0]).Msg("cannot load graph")
		os.Exit(1)
	}
	log.Debug().Int("vertices", g.VertexCount()).Int("edges", g.EdgeCount()).Msg("graph loaded")

	if len(args) == 2 {
		reportVertex(log, g, args[1])
	}
	if err = reportGlobal(g); err != nil {
		log.Error().Err(err).Msg("analysis failed")
		os.Exit(1)
	}
}

// reportVertex prints the SCC and initiator verdict of one vertex.
// An unknown vertex only warns; the global outputs still follow.
func reportVertex(log zerolog.Logger, g *core.Graph, vertex string) {
	comp, err := scc.ComponentOf(g, vertex)
	if errors.Is(err, scc.ErrUnknownVertex) {
		log.Warn().Str("vertex", vertex).Msg("vertex not present in the graph")

		return
	}
	if err != nil {
		log.Error().Err(err).Msg("analysis failed")
		os.Exit(1)
	}
	fmt.Printf("%s shares a strongly connected component with [ %s ]\n",
		vertex, strings.Join(comp, ", "))

	ok, err := scc.IsInitiator(g, vertex)
	if err != nil {
		log.Error().Err(err).Msg("analysis failed")
		os.Exit(1)
	}
	if ok {
		fmt.Printf("%s is a good candidate for an initiator!\n", vertex)
	} else {
		fmt.Printf("%s is NOT a good candidate for an initiator\n", vertex)
	}
}

// reportGlobal prints the state-recording verdict and the initiator
// list of the whole graph.
func reportGlobal(g *core.Graph) error {
	comps, err := scc.Decompose(g)
	if err != nil {
		return err
	}
	if len(comps) == 1 {
		fmt.Println("global state recording is possible: the graph is one strongly connected component")
	} else {
		fmt.Printf("global state recording is not possible: %d strongly connected components\n", len(comps))
		for _, comp := range comps {
			fmt.Printf("  [ %s ]\n", strings.Join(comp, ", "))
		}
	}

	initiators, err := scc.Initiators(g)
	if err != nil {
		return err
	}
	if len(initiators) == 0 {
		fmt.Println("no good candidates for initiators found")
	} else {
		fmt.Printf("nodes [ %s ] make good candidates for initiators\n", strings.Join(initiators, ", "))
	}

	return nil
}

// newLogger builds the console logger every executable shares.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).Level(level).With().Timestamp().Logger()
}
