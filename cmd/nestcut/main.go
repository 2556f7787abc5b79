// NestCut — rectangular part nesting for sheet goods
//
// Reads a cut list (JSON request document, CSV, or Excel), nests the
// parts onto stock boards per material, and writes the placement result
// as JSON. Optional PDF diagrams, DXF layouts, and QR part labels.
//
// Build:
//   go build -o nestcut ./cmd/nestcut
//
// Examples:
//   nestcut -in job.json -out result.json
//   nestcut -csv parts.csv -material MDF -kerf 2.5 -pdf layout.pdf
//   nestcut -serve :8080

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nestcut/nestcut/internal/engine"
	"github.com/nestcut/nestcut/internal/export"
	"github.com/nestcut/nestcut/internal/importer"
	"github.com/nestcut/nestcut/internal/model"
	"github.com/nestcut/nestcut/internal/project"
	"github.com/nestcut/nestcut/internal/server"
)

func main() {
	var (
		inPath     = flag.String("in", "", "JSON nest request file")
		csvPath    = flag.String("csv", "", "CSV cut list file")
		xlsxPath   = flag.String("xlsx", "", "Excel cut list file")
		outPath    = flag.String("out", "", "result JSON file (default stdout)")
		material   = flag.String("material", "", "default material for CSV/Excel rows without one")
		kerf       = flag.Float64("kerf", 0, "saw kerf in mm (overrides config default)")
		noRotation = flag.Bool("no-rotation", false, "disable 90-degree rotation")
		pdfPath    = flag.String("pdf", "", "write board diagrams to this PDF file")
		dxfPath    = flag.String("dxf", "", "write cut layout to this DXF file")
		labelsPath = flag.String("labels", "", "write QR part labels to this PDF file")
		offcuts    = flag.Bool("offcuts", false, "report reusable offcuts on stderr")
		estimate   = flag.Bool("estimate", false, "print per-material board purchase estimates and exit")
		wastePct   = flag.Float64("waste", 15, "waste factor percentage for -estimate")
		serveAddr  = flag.String("serve", "", "run as HTTP server on this address, e.g. :8080")
		configPath = flag.String("config", project.DefaultConfigPath(), "application config file")
		quiet      = flag.Bool("quiet", false, "suppress progress output")
	)
	flag.Parse()

	if *serveAddr != "" {
		log.Printf("listening on %s", *serveAddr)
		if err := server.Run(*serveAddr); err != nil {
			log.Fatalf("server: %v", err)
		}
		return
	}

	cfg, err := project.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config %s: %v", *configPath, err)
	}

	req, err := buildRequest(*inPath, *csvPath, *xlsxPath, *material, cfg)
	if err != nil {
		log.Fatal(err)
	}

	settings := req.Settings.ToSettings()
	if *kerf > 0 {
		settings.KerfWidth = *kerf
	}
	if *noRotation {
		settings.AllowRotation = false
	}

	if *estimate {
		for _, est := range req.EstimateAll(settings.KerfWidth, *wastePct) {
			fmt.Printf("%s: %d board(s) minimum, %d recommended with %.0f%% waste (%.2f exact)\n",
				est.Material, est.BoardsNeededMin, est.BoardsWithWaste, est.WastePercent, est.BoardsNeededExact)
		}
		return
	}

	parts := req.BuildParts(settings)
	if len(parts) == 0 {
		log.Fatal("no parts to nest")
	}

	nester := engine.New(settings)
	if !*quiet {
		nester.Progress = func(material string, placed, total, boards int) {
			log.Printf("%s: %d/%d parts on %d board(s)", material, placed, total, boards)
		}
	}

	start := time.Now()
	result := nester.NestAll(parts, req.BoardSizes())
	elapsed := time.Since(start)

	resp := export.BuildResponse(result, elapsed)
	if err := writeResult(*outPath, resp); err != nil {
		log.Fatal(err)
	}

	for _, f := range result.Failures() {
		log.Printf("warning: %v", f)
	}
	if !*quiet {
		log.Printf("nested %d part(s) on %d board(s) in %d ms",
			len(resp.Placements), resp.Stats.BoardsUsed, resp.Stats.TimeMS)
	}

	if *offcuts {
		detected := engine.DetectAllOffcuts(result.Boards(), settings.KerfWidth)
		for _, oc := range detected {
			log.Printf("offcut %s: %.0f x %.0f mm on %s board %d",
				oc.ID, oc.Width, oc.Height, oc.Material, oc.BoardID)
		}
		invPath := project.DefaultInventoryPath()
		inv, err := project.LoadInventory(invPath)
		if err != nil {
			log.Printf("warning: loading offcut inventory: %v", err)
		} else {
			inv.Add(detected)
			if err := project.SaveInventory(invPath, inv); err != nil {
				log.Printf("warning: saving offcut inventory: %v", err)
			}
		}
	}

	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, result, settings); err != nil {
			log.Fatalf("writing PDF: %v", err)
		}
	}
	if *dxfPath != "" {
		if err := export.ExportDXF(*dxfPath, result); err != nil {
			log.Fatalf("writing DXF: %v", err)
		}
	}
	if *labelsPath != "" {
		if err := export.ExportLabels(*labelsPath, result); err != nil {
			log.Fatalf("writing labels: %v", err)
		}
	}

	if in := firstNonEmpty(*inPath, *csvPath, *xlsxPath); in != "" {
		cfg.AddRecentInput(in)
		if err := project.SaveAppConfig(*configPath, cfg); err != nil {
			log.Printf("warning: saving config: %v", err)
		}
	}
}

// buildRequest assembles the nest request from whichever input flag was
// given. CSV and Excel inputs use the configured default board and
// settings; the JSON request document carries its own.
func buildRequest(inPath, csvPath, xlsxPath, material string, cfg project.AppConfig) (model.NestRequest, error) {
	inputs := 0
	for _, p := range []string{inPath, csvPath, xlsxPath} {
		if p != "" {
			inputs++
		}
	}
	if inputs == 0 {
		return model.NestRequest{}, fmt.Errorf("no input: use -in, -csv, or -xlsx")
	}
	if inputs > 1 {
		return model.NestRequest{}, fmt.Errorf("only one of -in, -csv, -xlsx may be given")
	}

	if inPath != "" {
		return importer.LoadRequest(inPath)
	}

	var res importer.ImportResult
	if csvPath != "" {
		res = importer.ImportCSV(csvPath)
	} else {
		res = importer.ImportExcel(xlsxPath)
	}
	for _, w := range res.Warnings {
		log.Printf("import: %s", w)
	}

	if material == "" {
		material = cfg.DefaultMaterial
	}
	allowRotation := cfg.DefaultAllowRotation
	settings := model.SettingsSpec{
		Kerf:          cfg.DefaultKerfWidth,
		AllowRotation: &allowRotation,
	}

	// Boards for every material the import names, plus the default
	seen := map[string]bool{material: true}
	boards := []model.BoardSpec{cfg.DefaultBoard(material)}
	for _, p := range res.Parts {
		if p.Material != "" && !seen[p.Material] {
			seen[p.Material] = true
			boards = append(boards, cfg.DefaultBoard(p.Material))
		}
	}

	return importer.RequestFromImport(res, material, boards, settings)
}

// writeResult writes the response document to the given path, or stdout
// when no path is set.
func writeResult(path string, resp export.Response) error {
	if path == "" {
		return export.WriteResponse(os.Stdout, resp)
	}
	return export.SaveResponse(path, resp)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
