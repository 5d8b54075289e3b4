// txdinfo - inspect TXD archives and the DDS files extracted from them
//
// Usage:
//   txdinfo list archive.txd              # List textures without writing anything
//   txdinfo dds texture.dds               # Show DDS header info (.dds.zst accepted)
//   txdinfo decode texture.dds out.png    # Render a DDS to png, webp or tga

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/RemakeEngine/txdtools/pkg/archive"
	"github.com/RemakeEngine/txdtools/pkg/logging"
	"github.com/RemakeEngine/txdtools/pkg/preview"
	"github.com/RemakeEngine/txdtools/pkg/texture"
	"github.com/RemakeEngine/txdtools/pkg/txd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch command := os.Args[1]; command {
	case "list":
		if len(os.Args) != 3 {
			fmt.Fprintf(os.Stderr, "Usage: txdinfo list archive.txd\n")
			os.Exit(1)
		}
		err = listTextures(os.Args[2])

	case "dds":
		if len(os.Args) != 3 {
			fmt.Fprintf(os.Stderr, "Usage: txdinfo dds texture.dds\n")
			os.Exit(1)
		}
		err = showInfo(os.Args[2])

	case "decode":
		if len(os.Args) != 4 {
			fmt.Fprintf(os.Stderr, "Usage: txdinfo decode texture.dds out.png\n")
			os.Exit(1)
		}
		err = decodeDDS(os.Args[2], os.Args[3])
		if err == nil {
			fmt.Printf("Decoded %s → %s\n", os.Args[2], os.Args[3])
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `txdinfo - inspect TXD archives and DDS textures

Usage:
  txdinfo list archive.txd              List textures without writing anything
  txdinfo dds texture.dds               Show DDS header info
  txdinfo decode texture.dds out.png    Render a DDS to png, webp or tga
`)
}

// readUnwrapped reads path and strips any ZSTD or LZ4 container.
func readUnwrapped(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	data, _, err := archive.Unwrap(raw)
	if err != nil {
		return nil, fmt.Errorf("unwrap: %w", err)
	}
	return data, nil
}

// listing collects textures instead of writing them.
type listing struct {
	textures []*txd.Texture
}

func (l *listing) WriteTexture(tex *txd.Texture) error {
	l.textures = append(l.textures, tex)
	return nil
}

func listTextures(path string) error {
	data, err := readUnwrapped(path)
	if err != nil {
		return err
	}

	var l listing
	stats, err := txd.Extract(data, &l, logging.New(logging.NewConsole(os.Stderr, logging.LevelWarn)))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tNAME\tFORMAT\tSIZE\tMIPS\tBYTES")
	for _, tex := range l.textures {
		fmt.Fprintf(tw, "0x%08X\t%s\t%s\t%dx%d\t%d\t%d\n",
			tex.Offset, tex.Name, tex.Label, tex.Meta.Width, tex.Meta.Height, tex.Meta.MipCount, tex.Meta.TotalSize)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d textures, %d segments, %d block markers, %d name signatures\n",
		stats.Exported, stats.Segments, stats.BlockMarkers, stats.NameSignatures)
	return nil
}

func showInfo(path string) error {
	data, err := readUnwrapped(path)
	if err != nil {
		return err
	}

	info, ok := texture.ParseHeader(data)
	if !ok {
		return fmt.Errorf("parse header: not a DDS file")
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Dimensions: %dx%d\n", info.Width, info.Height)
	fmt.Printf("Mip levels: %d\n", max(info.MipCount, 1))
	if info.Compressed {
		fmt.Printf("Format: %s\n", string(info.FourCC[:]))
		fmt.Printf("Linear size: %d bytes\n", info.PitchOrSize)
	} else {
		fmt.Printf("Format: RGBA8888\n")
		fmt.Printf("Pitch: %d bytes\n", info.PitchOrSize)
	}
	fmt.Printf("Data size: %d bytes (%.2f KB)\n", len(data)-texture.DDS_FILE_HEADER_SIZE,
		float64(len(data)-texture.DDS_FILE_HEADER_SIZE)/1024)

	return nil
}

func decodeDDS(inputPath, outputPath string) error {
	data, err := readUnwrapped(inputPath)
	if err != nil {
		return err
	}

	format, err := preview.ParseFormat(strings.TrimPrefix(filepath.Ext(outputPath), "."))
	if err != nil || format == preview.FormatNone {
		return fmt.Errorf("unsupported output extension %q", filepath.Ext(outputPath))
	}

	return writeImage(outputPath, data, format)
}

// writeImage renders dds into path, removing the file if rendering fails.
func writeImage(path string, dds []byte, format preview.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	if err := preview.Render(f, dds, format, 0); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("render: %w", err)
	}
	return f.Close()
}
