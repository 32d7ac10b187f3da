// Package container persists a tsadapter.Tables to a single-block recordio
// file, compressed with zstd.
//
// This is a deliberate departure from the teacher's on-disk format: the
// teacher's recordio consumers (encoding/pam/fieldio, encoding/pam/pamutil)
// serialize with a gogo/protobuf-generated Marshal/Unmarshal pair produced
// by a .proto codegen pipeline this module has no analogue of. Rather than
// hand-write a wire-compatible protobuf encoder with no .proto source of
// truth, this package marshals with encoding/gob -- the stdlib substitute a
// systems Go program reaches for when it owns both ends of the wire and
// has no codegen pipeline -- and keeps everything else about the teacher's
// pattern: one recordio block per file, a magic/version-checked header
// struct, zstd via recordiozstd, file.Create/file.Open for the storage
// backend.
package container

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"

	"github.com/grailbio/base/errorreporter"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"

	"github.com/grailbio/treeseq/tsadapter"
)

func init() {
	recordiozstd.Init()
}

// Magic identifies a treeseq container file, the way PAMFieldIndex's Magic
// (0xe360ac9026052aca) identifies a PAM field index block.
const Magic = uint64(0x7473716ba1caf00d)

// Version is bumped whenever the on-disk envelope (not the tree-sequence
// semantics) changes incompatibly.
const Version = 1

// envelope is the one value gob-encoded into the recordio block.
type envelope struct {
	Magic   uint64
	Version int
	Tables  tsadapter.Tables
}

// Write serializes ts into a single-block recordio file at path, clobbering
// any existing contents, mirroring pamutil.WriteShardIndex's shape.
func Write(ctx context.Context, path string, ts *tsadapter.Tables) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(envelope{Magic: Magic, Version: Version, Tables: *ts}); err != nil {
		return errors.E(err, path)
	}

	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, path)
	}
	rio := recordio.NewWriter(out.Writer(ctx), recordio.WriterOpts{
		Transformers: []string{recordiozstd.Name},
	})
	rio.Append(buf.Bytes())

	var reporter errorreporter.T
	reporter.Set(rio.Finish())
	reporter.Set(out.Close(ctx))
	return reporter.Err()
}

// Read loads a tsadapter.Tables previously written by Write, mirroring
// pamutil.ReadShardIndex's scan-one-block-and-unmarshal shape.
func Read(ctx context.Context, path string) (out *tsadapter.Tables, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, path)
	}
	defer file.CloseAndReport(ctx, in, &err)

	rio := recordio.NewScanner(in.Reader(ctx), recordio.ScannerOpts{})
	defer rio.Finish() // nolint: errcheck
	if !rio.Scan() {
		return nil, errors.E(rio.Err(), fmt.Sprintf("container.Read %v: failed to read record: %v", path, rio.Err()))
	}

	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(rio.Get().([]byte))).Decode(&env); err != nil {
		return nil, errors.E(err, path)
	}
	if env.Magic != Magic {
		return nil, fmt.Errorf("container.Read %v: wrong magic %#x, expected %#x", path, env.Magic, Magic)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("container.Read %v: wrong version %d, expected %d", path, env.Version, Version)
	}
	return &env.Tables, rio.Err()
}
