// Package report renders a static HTML gallery of collected snapshots.
package report

import (
	_ "embed"
	"html/template"
	"os"
	"sort"
	"time"

	"github.com/gve-sw/gve-devnet-meraki-snapshot-collector/internal/collector"
)

//go:embed template.html
var pageTemplate string

type pageData struct {
	Path      string
	Generated string
	Cameras   []*collector.Record
}

// Render writes an HTML report to dest referencing the images under
// outputDir. Only cameras with a downloaded file appear; order is stable
// by display name.
func Render(cameras map[string]*collector.Record, outputDir, dest string) error {
	tmpl, err := template.New("report").Parse(pageTemplate)
	if err != nil {
		return err
	}

	data := pageData{
		Path:      outputDir,
		Generated: time.Now().Format(time.RFC1123),
	}
	for _, rec := range cameras {
		if rec.LocalPath == "" {
			continue
		}
		data.Cameras = append(data.Cameras, rec)
	}
	sort.Slice(data.Cameras, func(i, j int) bool {
		return data.Cameras[i].DisplayName() < data.Cameras[j].DisplayName()
	})

	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}
