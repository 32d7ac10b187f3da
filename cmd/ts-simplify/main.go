// ts-simplify reads a tree sequence container, simplifies it down to a
// chosen sample subset, and writes the result back out.
//
// Example:
//
//	ts-simplify -in all.tsz -sample 0,1,2,3 -out subset.tsz
package main

import (
	"flag"
	"strconv"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/grailbio/treeseq/biopb"
	"github.com/grailbio/treeseq/container"
	"github.com/grailbio/treeseq/simplify"
)

func parseSampleList(s string) []biopb.NodeID {
	if s == "" {
		log.Fatal("-sample is required")
	}
	parts := strings.Split(s, ",")
	ids := make([]biopb.NodeID, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 32)
		if err != nil {
			log.Fatalf("-sample: invalid node id %q: %v", p, err)
		}
		ids[i] = biopb.NodeID(v)
	}
	return ids
}

func main() {
	inPath := flag.String("in", "", "path to the input tree-sequence container")
	outPath := flag.String("out", "", "path to write the simplified tree-sequence container")
	sampleFlag := flag.String("sample", "", "comma-separated, order-preserving list of input node ids to retain")
	flag.Parse()

	cleanup := grail.Init()
	defer cleanup()

	if *inPath == "" || *outPath == "" {
		log.Fatal("-in and -out are required")
	}
	sample := parseSampleList(*sampleFlag)

	ctx := vcontext.Background()
	ts, err := container.Read(ctx, *inPath)
	if err != nil {
		log.Fatalf("read %s: %v", *inPath, err)
	}
	log.Printf("read %s: %d nodes, %d edgesets, %d sites", *inPath, ts.NumNodes(), len(ts.EdgesetList), len(ts.SiteList))

	out, err := simplify.Simplify(ts, sample)
	if err != nil {
		log.Fatalf("simplify: %v", err)
	}
	log.Printf("simplified to %d samples: %d nodes, %d edgesets, %d sites",
		len(sample), out.NumNodes(), len(out.EdgesetList), len(out.SiteList))

	if err := container.Write(ctx, *outPath, out); err != nil {
		log.Fatalf("write %s: %v", *outPath, err)
	}
	log.Printf("wrote %s", *outPath)
}
