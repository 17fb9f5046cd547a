// seehuhn.de/go/annotedit - interactive editing of vector annotations
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Annotedit replays a recorded editing session and writes the resulting
// annotations as a PDF file or as an image.
//
// Usage:
//
//	annotedit [options] script.yaml
//
// The script lists the pointer gestures of the session, for example:
//
//	pages: [[600, 800]]
//	steps:
//	  - mode: polygon
//	  - tap: [100, 100]
//	  - tap: [200, 100]
//	  - tap: [150, 200]
//	  - do: finish
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/annotedit"
	"seehuhn.de/go/annotedit/badgerdoc"
	"seehuhn.de/go/annotedit/config"
	"seehuhn.de/go/annotedit/memdoc"
	"seehuhn.de/go/annotedit/pdfexport"
	"seehuhn.de/go/annotedit/raster"
	"seehuhn.de/go/annotedit/relay"
	"seehuhn.de/go/annotedit/tool"
	"seehuhn.de/go/annotedit/viewport"
)

var (
	configFile = flag.String("config", "", "configuration file")
	outFile    = flag.String("o", "", "output file (default: standard output)")
	format     = flag.String("format", "", "output format: pdf, png, tiff or bmp (default: from the output file name)")
	pageNum    = flag.Int("page", 1, "page to render for image output")
	scale      = flag.Float64("scale", 1, "pixels per document unit for image output")
	thumbSize  = flag.Int("thumb", 0, "if positive, shrink image output to fit this size")
	verbose    = flag.Bool("v", false, "log debug messages")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] script.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	err := run(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(scriptFile string) error {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			return err
		}
	}

	script, err := readScript(scriptFile)
	if err != nil {
		return err
	}
	boxes, err := script.Boxes()
	if err != nil {
		return fmt.Errorf("%s: %w", scriptFile, err)
	}

	outFormat, err := outputFormat(*format, *outFile)
	if err != nil {
		return err
	}
	if outFormat != "pdf" && (*pageNum < 1 || *pageNum > len(boxes)) {
		return fmt.Errorf("page %d out of range 1-%d", *pageNum, len(boxes))
	}

	doc, closeDoc, err := openDocument(cfg, log)
	if err != nil {
		return err
	}
	defer closeDoc()

	if cfg.Relay.Listen != "" {
		hub := relay.NewHub(log)
		srv := &http.Server{Addr: cfg.Relay.Listen, Handler: hub}
		go func() {
			err := srv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("relay stopped")
			}
		}()
		defer func() {
			hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
		doc = relay.Wrap(doc, hub)
		log.WithField("addr", cfg.Relay.Listen).Info("publishing changes")
	}

	view := viewport.New(boxes, script.Gap)
	p := newPlayer(doc, view, tool.Env{
		Style:    cfg.Style(),
		Settings: cfg.Settings(),
		Log:      log,
	})
	if err := p.Play(script.Steps); err != nil {
		return fmt.Errorf("%s: %w", scriptFile, err)
	}

	out, err := createOutput(*outFile)
	if err != nil {
		return err
	}
	err = export(out, doc, boxes, outFormat)
	if err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func openDocument(cfg *config.Config, log logrus.FieldLogger) (annotedit.Document, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendBadger:
		doc, err := badgerdoc.Open(badgerdoc.Config{
			Path:          cfg.Storage.Path,
			CompressAbove: cfg.Storage.CompressAbove,
			Logger:        log,
		})
		if err != nil {
			return nil, nil, err
		}
		return doc, doc.Close, nil
	default:
		return memdoc.New(), func() error { return nil }, nil
	}
}

func export(w io.Writer, doc annotedit.Reader, boxes []rect.Rect, format string) error {
	if format == "pdf" {
		pages, err := pdfexport.Collect(doc, boxes)
		if err != nil {
			return err
		}
		return pdfexport.Write(w, pages, &pdfexport.Options{Creator: "annotedit"})
	}

	annots, err := doc.Annotations(*pageNum)
	if err != nil {
		return err
	}
	img := raster.Render(boxes[*pageNum-1], annots, *scale)
	if *thumbSize > 0 {
		return raster.Encode(w, raster.Thumbnail(img, *thumbSize), format)
	}
	return raster.Encode(w, img, format)
}

func outputFormat(format, fname string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(fname)) {
		case ".png":
			format = "png"
		case ".tif", ".tiff":
			format = "tiff"
		case ".bmp":
			format = "bmp"
		default:
			format = "pdf"
		}
	}
	switch format {
	case "pdf", "png", "tiff", "bmp":
		return format, nil
	}
	return "", fmt.Errorf("unsupported output format %q", format)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// createOutput opens the output file.  Binary data is never written to
// a terminal.
func createOutput(fname string) (io.WriteCloser, error) {
	if fname != "" && fname != "-" {
		return os.Create(fname)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, errors.New("refusing to write binary data to a terminal, use -o")
	}
	return nopCloser{os.Stdout}, nil
}
